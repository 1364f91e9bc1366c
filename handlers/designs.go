package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/Katlego909/bizprint/services"
)

// HandleDesignRequestCreate accepts a design brief from either a logged-in
// customer or a guest. A request belongs to exactly one of the two: an
// authenticated request is linked to the user, an anonymous one must carry
// a contact name and email. At least one design package is required.
func HandleDesignRequestCreate(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := parseForm(e); err != nil {
			return errorJSON(e, http.StatusBadRequest, "Invalid form submission.")
		}

		packageIDs := e.Request.PostForm["packages"]
		if len(packageIDs) == 0 {
			return errorJSON(e, http.StatusBadRequest, "Select at least one design package.")
		}
		for _, id := range packageIDs {
			if _, err := app.FindRecordById("design_packages", id); err != nil {
				return errorJSON(e, http.StatusBadRequest, "Unknown design package.")
			}
		}

		fullName := e.Request.FormValue("full_name")
		email := e.Request.FormValue("email")
		if e.Auth == nil && (fullName == "" || email == "") {
			return errorJSON(e, http.StatusBadRequest, "Guest requests need a contact name and email.")
		}

		timeline := e.Request.FormValue("timeline_preference")
		switch timeline {
		case services.TimelineRush, services.TimelineStandard, services.TimelineFlexible, "":
		default:
			return errorJSON(e, http.StatusBadRequest, "Invalid timeline preference.")
		}

		upload, err := formFile(e, "uploaded_files")
		if err != nil {
			return errorJSON(e, http.StatusBadRequest, err.Error())
		}

		col, err := app.FindCollectionByNameOrId("design_requests")
		if err != nil {
			log.Printf("designs: design_requests collection missing: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Could not submit design request.")
		}

		record := core.NewRecord(col)
		if e.Auth != nil {
			record.Set("user", e.Auth.Id)
			if email == "" {
				email = e.Auth.GetString("email")
			}
			if fullName == "" {
				fullName = e.Auth.GetString("name")
			}
		}
		record.Set("full_name", fullName)
		record.Set("email", email)
		record.Set("phone", e.Request.FormValue("phone"))
		record.Set("packages", packageIDs)
		record.Set("additional_instructions", e.Request.FormValue("additional_instructions"))
		record.Set("brand_colors", e.Request.FormValue("brand_colors"))
		record.Set("target_audience", e.Request.FormValue("target_audience"))
		record.Set("design_preferences", e.Request.FormValue("design_preferences"))
		record.Set("inspiration_links", e.Request.FormValue("inspiration_links"))
		record.Set("timeline_preference", timeline)
		record.Set("status", services.DesignPending)
		if upload != nil {
			record.Set("uploaded_files", upload)
		}

		if err := app.Save(record); err != nil {
			log.Printf("designs: could not save design request: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Could not submit design request.")
		}

		return e.JSON(http.StatusCreated, map[string]any{
			"reference":   services.ShortReference(record.GetString("uuid")),
			"uuid":        record.GetString("uuid"),
			"quote_token": record.GetString("quote_token"),
		})
	}
}

// findDesignRequest resolves the path ref to a design request. The quote
// token is tried first so that a token colliding with another record's id
// always wins; the record id is a fallback for authenticated owners.
func findDesignRequest(app *pocketbase.PocketBase, ref string) (*core.Record, error) {
	record, err := app.FindFirstRecordByFilter(
		"design_requests", "quote_token = {:token}", map[string]any{"token": ref},
	)
	if err == nil {
		return record, nil
	}
	return app.FindRecordById("design_requests", ref)
}

// designQuoteJSON shapes the quote view of a design request. Totals are
// always recomputed from the linked packages and timeline.
func designQuoteJSON(app *pocketbase.PocketBase, record *core.Record) map[string]any {
	names, prices := designPackageDetails(app, record)
	timeline := record.GetString("timeline_preference")
	totals := services.CalcDesignTotals(prices, timeline)

	return map[string]any{
		"reference":       services.ShortReference(record.GetString("uuid")),
		"uuid":            record.GetString("uuid"),
		"status":          record.GetString("status"),
		"client_name":     record.GetString("full_name"),
		"packages":        names,
		"timeline":        timeline,
		"subtotal":        totals.Subtotal,
		"rush_fee":        totals.RushFee,
		"vat":             totals.VAT,
		"total":           totals.Total,
		"turnaround_days": services.EstimatedTurnaroundDays(timeline, len(prices)),
		"created":         record.GetString("created"),
	}
}

func designPackageDetails(app *pocketbase.PocketBase, record *core.Record) ([]string, []float64) {
	ids := record.GetStringSlice("packages")
	names := make([]string, 0, len(ids))
	prices := make([]float64, 0, len(ids))
	for _, id := range ids {
		pkg, err := app.FindRecordById("design_packages", id)
		if err != nil {
			continue
		}
		names = append(names, pkg.GetString("title"))
		prices = append(prices, pkg.GetFloat("price"))
	}
	return names, prices
}

// HandleDesignQuote returns the quote for a design request. The ref path
// segment is either the shareable quote token or the record id.
func HandleDesignQuote(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := findDesignRequest(app, e.Request.PathValue("ref"))
		if err != nil {
			return errorJSON(e, http.StatusNotFound, "Quote not found.")
		}
		return e.JSON(http.StatusOK, designQuoteJSON(app, record))
	}
}

// HandleDesignQuotePDF streams the quote as a PDF download.
func HandleDesignQuotePDF(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := findDesignRequest(app, e.Request.PathValue("ref"))
		if err != nil {
			return errorJSON(e, http.StatusNotFound, "Quote not found.")
		}

		names, prices := designPackageDetails(app, record)
		lines := make([]services.QuoteLine, 0, len(names))
		for i, name := range names {
			lines = append(lines, services.QuoteLine{Title: name, Price: prices[i]})
		}

		timeline := record.GetString("timeline_preference")
		reference := services.ShortReference(record.GetString("uuid"))

		pdf, err := services.GenerateQuotePDF(services.QuoteData{
			QuoteNumber:    reference,
			Date:           record.GetDateTime("created").Time().Format("02 Jan 2006"),
			Status:         record.GetString("status"),
			ClientName:     record.GetString("full_name"),
			ClientEmail:    record.GetString("email"),
			ClientPhone:    record.GetString("phone"),
			Lines:          lines,
			Totals:         services.CalcDesignTotals(prices, timeline),
			Timeline:       timeline,
			TurnaroundDays: services.EstimatedTurnaroundDays(timeline, len(prices)),
		})
		if err != nil {
			log.Printf("designs: quote generation failed for %s: %v", reference, err)
			return errorJSON(e, http.StatusInternalServerError, "Could not generate quote.")
		}

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition",
			`attachment; filename="Quote_`+reference+`.pdf"`)
		e.Response.Write(pdf)
		return nil
	}
}

// HandleDesignPaymentProof attaches a proof of payment to a design request.
func HandleDesignPaymentProof(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := findDesignRequest(app, e.Request.PathValue("ref"))
		if err != nil {
			return errorJSON(e, http.StatusNotFound, "Quote not found.")
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
			log.Printf("designs: could not save proof for %s: %v", record.GetString("uuid"), err)
			return errorJSON(e, http.StatusInternalServerError, "Could not save proof of payment.")
		}
		return e.JSON(http.StatusOK, map[string]any{"proof_of_payment": record.GetString("proof_of_payment")})
	}
}
