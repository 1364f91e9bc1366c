// Package handlers implements the JSON API for the BizPrint storefront.
package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/filesystem"

	"github.com/Katlego909/bizprint/services"
)

// maxFormMemory bounds in-memory multipart parsing. Individual files are
// still capped at services.MaxUploadSize.
const maxFormMemory = 10 << 20

// errorJSON writes a uniform error payload.
func errorJSON(e *core.RequestEvent, status int, message string) error {
	return e.JSON(status, map[string]any{"error": message})
}

// unauthorized writes the uniform 401 payload.
func unauthorized(e *core.RequestEvent) error {
	return errorJSON(e, http.StatusUnauthorized, "Authentication required.")
}

// forbidden writes the uniform 403 payload.
func forbidden(e *core.RequestEvent) error {
	return errorJSON(e, http.StatusForbidden, "Admin access required.")
}

// parseForm parses the request body, accepting both multipart and
// urlencoded submissions.
func parseForm(e *core.RequestEvent) error {
	err := e.Request.ParseMultipartForm(maxFormMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		return e.Request.ParseForm()
	}
	return err
}

// formFile extracts and validates an uploaded form file. It returns
// (nil, nil) when the field is absent, and an upload validation error when
// the file exceeds the size limit or has a disallowed content type. Size is
// checked before type.
func formFile(e *core.RequestEvent, field string) (*filesystem.File, error) {
	file, header, err := e.Request.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	if err := services.ValidateUpload(header.Size, uploadContentType(header)); err != nil {
		return nil, err
	}

	f, err := filesystem.NewFileFromMultipart(header)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func uploadContentType(header *multipart.FileHeader) string {
	return header.Header.Get("Content-Type")
}

// findOrderByReference resolves an order by its public uuid.
func findOrderByReference(app *pocketbase.PocketBase, ref string) (*core.Record, error) {
	return app.FindFirstRecordByFilter(
		"orders", "uuid = {:uuid}", map[string]any{"uuid": ref},
	)
}

// ownsRecord reports whether the auth record may view an order or design
// request: superusers see everything, customers only their own records.
func ownsRecord(auth, record *core.Record) bool {
	if auth == nil {
		return false
	}
	if auth.IsSuperuser() {
		return true
	}
	return record.GetString("user") == auth.Id
}

// orderJSON shapes an order record for API responses. VAT and the product
// subtotal are back-calculated from the persisted VAT-inclusive total.
func orderJSON(app *pocketbase.PocketBase, record *core.Record) map[string]any {
	total := record.GetFloat("total_price")
	shipping := record.GetFloat("shipping_price")
	discount := record.GetFloat("discount_amount")

	productName := ""
	if product, err := app.FindRecordById("products", record.GetString("product")); err == nil {
		productName = product.GetString("name")
	}

	return map[string]any{
		"reference":        services.ShortReference(record.GetString("uuid")),
		"uuid":             record.GetString("uuid"),
		"product":          productName,
		"quantity":         record.GetInt("quantity"),
		"options":          record.Get("options"),
		"services":         record.Get("services"),
		"status":           record.GetString("status"),
		"payment_status":   record.GetString("payment_status"),
		"payment_method":   record.GetString("payment_method"),
		"shipping_method":  record.GetString("shipping_method"),
		"shipping_price":   shipping,
		"discount_amount":  discount,
		"product_subtotal": services.ProductSubtotalFromTotal(total, shipping, discount),
		"vat":              services.VATFromTotal(total),
		"total_price":      total,
		"created":          record.GetString("created"),
	}
}
