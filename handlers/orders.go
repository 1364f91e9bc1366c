package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/Katlego909/bizprint/services"
)

// HandleOrderCreate places an order for the authenticated customer.
//
// The request is a multipart form: product (slug), quantity, shipping_method
// (slug), payment_method, option_<Type> fields for each configured option
// type, repeated services values (labels), an optional discount_code and an
// optional artwork file. Contact details default to the customer profile
// when omitted.
func HandleOrderCreate(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if e.Auth == nil {
			return unauthorized(e)
		}

		if err := parseForm(e); err != nil {
			return errorJSON(e, http.StatusBadRequest, "Invalid form submission.")
		}

		product, err := app.FindFirstRecordByFilter(
			"products", "slug = {:slug}",
			map[string]any{"slug": e.Request.FormValue("product")},
		)
		if err != nil {
			return errorJSON(e, http.StatusNotFound, "Product not found.")
		}

		quantity, err := strconv.Atoi(e.Request.FormValue("quantity"))
		if err != nil || quantity < 1 {
			return errorJSON(e, http.StatusBadRequest, "Invalid quantity.")
		}

		basePrice, err := services.FindBasePrice(app, product.Id, quantity)
		if err != nil {
			return errorJSON(e, http.StatusNotFound, "No pricing available for the selected quantity.")
		}

		// Selected options arrive as option_<Type> form fields. Unknown
		// selections contribute nothing to the price.
		selectedOptions := map[string]string{}
		var modifiers []float64
		for key, vals := range e.Request.PostForm {
			if !strings.HasPrefix(key, "option_") || len(vals) == 0 {
				continue
			}
			optType := strings.TrimPrefix(key, "option_")
			selectedOptions[optType] = vals[0]
			modifiers = append(modifiers, services.OptionModifier(app, product.Id, optType, vals[0]))
		}

		selectedServices := e.Request.PostForm["services"]
		var servicePrices []float64
		for _, label := range selectedServices {
			servicePrices = append(servicePrices, services.ServicePrice(app, product.Id, label))
		}

		shippingSlug := e.Request.FormValue("shipping_method")
		shippingPrice := services.ResolveShippingPrice(app, shippingSlug)

		// The newsletter discount applies to everything except VAT: base,
		// option modifiers, selected services and shipping.
		preDiscount := basePrice + shippingPrice
		for _, m := range modifiers {
			preDiscount += m
		}
		for _, p := range servicePrices {
			preDiscount += p
		}
		discountCode := strings.ToUpper(strings.TrimSpace(e.Request.FormValue("discount_code")))
		discountAmount, discountOK := services.ResolveDiscount(app, discountCode, preDiscount)

		warning := ""
		if discountCode != "" && !discountOK {
			warning = "Invalid discount code. Your order was placed at full price."
			discountCode = ""
		}

		totals := services.CalcOrderTotals(services.OrderPricingInput{
			BasePrice:       basePrice,
			OptionModifiers: modifiers,
			ServicePrices:   servicePrices,
			ShippingPrice:   shippingPrice,
			DiscountAmount:  discountAmount,
		})

		artwork, err := formFile(e, "artwork")
		if err != nil {
			return errorJSON(e, http.StatusBadRequest, err.Error())
		}

		col, err := app.FindCollectionByNameOrId("orders")
		if err != nil {
			log.Printf("orders: orders collection missing: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Could not place order.")
		}

		record := core.NewRecord(col)
		record.Set("user", e.Auth.Id)
		record.Set("product", product.Id)
		record.Set("quantity", quantity)
		record.Set("base_price", basePrice)
		record.Set("options", selectedOptions)
		record.Set("services", selectedServices)
		record.Set("shipping_method", shippingSlug)
		record.Set("shipping_price", shippingPrice)
		record.Set("discount_code", discountCode)
		record.Set("discount_amount", discountAmount)
		record.Set("total_price", totals.Total)
		record.Set("status", services.OrderReceived)
		record.Set("payment_status", services.PaymentPending)
		record.Set("payment_method", paymentMethodOrDefault(e.Request.FormValue("payment_method")))
		setContactSnapshot(app, record, e)
		if artwork != nil {
			record.Set("artwork", artwork)
		}

		if err := app.Save(record); err != nil {
			log.Printf("orders: could not save order: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Could not place order.")
		}

		resp := map[string]any{
			"reference": services.ShortReference(record.GetString("uuid")),
			"uuid":      record.GetString("uuid"),
			"subtotal":  totals.Subtotal,
			"vat":       totals.VAT,
			"total":     totals.Total,
		}
		if warning != "" {
			resp["warning"] = warning
		}
		return e.JSON(http.StatusCreated, resp)
	}
}

func paymentMethodOrDefault(method string) string {
	if method == "online" {
		return "online"
	}
	return "eft"
}

// setContactSnapshot copies the contact details onto the order: explicit
// form values win, then the customer profile, then the auth record.
func setContactSnapshot(app *pocketbase.PocketBase, record *core.Record, e *core.RequestEvent) {
	name := e.Request.FormValue("full_name")
	email := e.Request.FormValue("email")
	phone := e.Request.FormValue("phone")
	address := e.Request.FormValue("address")

	if email == "" {
		email = e.Auth.GetString("email")
	}
	if name == "" {
		name = e.Auth.GetString("name")
	}

	if phone == "" || address == "" {
		profile, err := app.FindFirstRecordByFilter(
			"customer_profiles", "user = {:user}", map[string]any{"user": e.Auth.Id},
		)
		if err == nil {
			if phone == "" {
				phone = profile.GetString("phone")
			}
			if address == "" {
				address = profile.GetString("address")
			}
		}
	}

	record.Set("full_name", name)
	record.Set("email", email)
	record.Set("phone", phone)
	record.Set("address", address)
}

// HandleOrderList returns the authenticated customer's orders, newest first.
func HandleOrderList(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if e.Auth == nil {
			return unauthorized(e)
		}

		records, err := app.FindRecordsByFilter(
			"orders", "user = {:user}", "-created", 0, 0,
			map[string]any{"user": e.Auth.Id},
		)
		if err != nil {
			log.Printf("orders: could not query orders for %s: %v", e.Auth.Id, err)
			return errorJSON(e, http.StatusInternalServerError, "Could not load orders.")
		}

		items := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			items = append(items, orderJSON(app, rec))
		}
		return e.JSON(http.StatusOK, map[string]any{"orders": items})
	}
}

// HandleOrderDetail returns a single order by its uuid reference.
func HandleOrderDetail(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if e.Auth == nil {
			return unauthorized(e)
		}

		record, err := findOrderByReference(app, e.Request.PathValue("uuid"))
		if err != nil || !ownsRecord(e.Auth, record) {
			return errorJSON(e, http.StatusNotFound, "Order not found.")
		}
		return e.JSON(http.StatusOK, orderJSON(app, record))
	}
}

// HandleOrderCancel cancels an order. Only orders still in the received
// status can be cancelled by the customer.
func HandleOrderCancel(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if e.Auth == nil {
			return unauthorized(e)
		}

		record, err := findOrderByReference(app, e.Request.PathValue("uuid"))
		if err != nil || !ownsRecord(e.Auth, record) {
			return errorJSON(e, http.StatusNotFound, "Order not found.")
		}

		if !services.CanCancelOrder(record.GetString("status")) {
			return errorJSON(e, http.StatusBadRequest, services.ErrOrderNotCancellable.Error())
		}

		// Payment status is tracked independently and is not touched here:
		// a paid order cancelled before production still reads paid until
		// staff resolve the refund.
		record.Set("status", services.OrderCancelled)
		if err := app.Save(record); err != nil {
			log.Printf("orders: could not cancel order %s: %v", record.GetString("uuid"), err)
			return errorJSON(e, http.StatusInternalServerError, "Could not cancel order.")
		}
		return e.JSON(http.StatusOK, map[string]any{"status": services.OrderCancelled})
	}
}

// HandleOrderArtwork replaces the artwork file on an order. Artwork can
// only change while the order is received or in production.
func HandleOrderArtwork(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if e.Auth == nil {
			return unauthorized(e)
		}

		record, err := findOrderByReference(app, e.Request.PathValue("uuid"))
		if err != nil || !ownsRecord(e.Auth, record) {
			return errorJSON(e, http.StatusNotFound, "Order not found.")
		}

		if !services.CanUpdateArtwork(record.GetString("status")) {
			return errorJSON(e, http.StatusBadRequest, services.ErrArtworkLocked.Error())
		}

		if err := parseForm(e); err != nil {
			return errorJSON(e, http.StatusBadRequest, "Invalid form submission.")
		}
		file, err := formFile(e, "artwork")
		if err != nil {
			return errorJSON(e, http.StatusBadRequest, err.Error())
		}
		if file == nil {
			return errorJSON(e, http.StatusBadRequest, "No artwork file provided.")
		}

		record.Set("artwork", file)
		if err := app.Save(record); err != nil {
			log.Printf("orders: could not update artwork for %s: %v", record.GetString("uuid"), err)
			return errorJSON(e, http.StatusInternalServerError, "Could not update artwork.")
		}
		return e.JSON(http.StatusOK, map[string]any{"artwork": record.GetString("artwork")})
	}
}

// HandleOrderPaymentProof attaches a proof of payment to an order. Unlike
// artwork, proof can be uploaded at any order status.
func HandleOrderPaymentProof(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if e.Auth == nil {
			return unauthorized(e)
		}

		record, err := findOrderByReference(app, e.Request.PathValue("uuid"))
		if err != nil || !ownsRecord(e.Auth, record) {
			return errorJSON(e, http.StatusNotFound, "Order not found.")
		}

		if err := parseForm(e); err != nil {
			return errorJSON(e, http.StatusBadRequest, "Invalid form submission.")
		}
		file, err := formFile(e, "proof_of_payment")
		if err != nil {
			return errorJSON(e, http.StatusBadRequest, err.Error())
		}
		if file == nil {
			return errorJSON(e, http.StatusBadRequest, "No proof of payment file provided.")
		}

		record.Set("proof_of_payment", file)
		if err := app.Save(record); err != nil {
			log.Printf("orders: could not save proof for %s: %v", record.GetString("uuid"), err)
			return errorJSON(e, http.StatusInternalServerError, "Could not save proof of payment.")
		}
		return e.JSON(http.StatusOK, map[string]any{"proof_of_payment": record.GetString("proof_of_payment")})
	}
}

// HandleOrderInvoicePDF streams the order invoice as a PDF download.
func HandleOrderInvoicePDF(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if e.Auth == nil {
			return unauthorized(e)
		}

		record, err := findOrderByReference(app, e.Request.PathValue("uuid"))
		if err != nil || !ownsRecord(e.Auth, record) {
			return errorJSON(e, http.StatusNotFound, "Order not found.")
		}

		productName := ""
		if product, err := app.FindRecordById("products", record.GetString("product")); err == nil {
			productName = product.GetString("name")
		}

		options := map[string]string{}
		record.UnmarshalJSONField("options", &options)
		var serviceLabels []string
		record.UnmarshalJSONField("services", &serviceLabels)

		total := record.GetFloat("total_price")
		shipping := record.GetFloat("shipping_price")
		discount := record.GetFloat("discount_amount")
		reference := services.ShortReference(record.GetString("uuid"))

		pdf, err := services.GenerateInvoicePDF(services.InvoiceData{
			InvoiceNumber:   reference,
			Date:            record.GetDateTime("created").Time().Format("02 Jan 2006"),
			ClientName:      record.GetString("full_name"),
			ClientEmail:     record.GetString("email"),
			ClientPhone:     record.GetString("phone"),
			ProductName:     productName,
			Quantity:        record.GetInt("quantity"),
			BasePrice:       record.GetFloat("base_price"),
			Options:         options,
			Services:        serviceLabels,
			ProductSubtotal: services.ProductSubtotalFromTotal(total, shipping, discount),
			Shipping:        shipping,
			Discount:        discount,
			VAT:             services.VATFromTotal(total),
			Total:           total,
			PaymentStatus:   record.GetString("payment_status"),
			PaymentMethod:   record.GetString("payment_method"),
		})
		if err != nil {
			log.Printf("orders: invoice generation failed for %s: %v", reference, err)
			return errorJSON(e, http.StatusInternalServerError, "Could not generate invoice.")
		}

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition",
			`attachment; filename="Invoice_`+reference+`.pdf"`)
		e.Response.Write(pdf)
		return nil
	}
}
