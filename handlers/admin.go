package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/Katlego909/bizprint/services"
)

// HandleAdminOrderStatus moves an order through its state machine. The
// notification side effects fire from the record hooks after the save.
func HandleAdminOrderStatus(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if e.Auth == nil {
			return unauthorized(e)
		}
		if !e.Auth.IsSuperuser() {
			return forbidden(e)
		}

		record, err := findOrderByReference(app, e.Request.PathValue("uuid"))
		if err != nil {
			return errorJSON(e, http.StatusNotFound, "Order not found.")
		}

		newStatus := e.Request.FormValue("status")
		if !services.ValidOrderTransition(record.GetString("status"), newStatus) {
			return errorJSON(e, http.StatusBadRequest, services.ErrInvalidStatusTransition.Error())
		}

		record.Set("status", newStatus)
		if err := app.Save(record); err != nil {
			log.Printf("admin: could not update order %s status: %v", record.GetString("uuid"), err)
			return errorJSON(e, http.StatusInternalServerError, "Could not update order.")
		}
		return e.JSON(http.StatusOK, map[string]any{"status": newStatus})
	}
}

// HandleAdminOrderPayment updates an order's payment status. Pending is the
// only state that can move; paid and cancelled are terminal.
func HandleAdminOrderPayment(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if e.Auth == nil {
			return unauthorized(e)
		}
		if !e.Auth.IsSuperuser() {
			return forbidden(e)
		}

		record, err := findOrderByReference(app, e.Request.PathValue("uuid"))
		if err != nil {
			return errorJSON(e, http.StatusNotFound, "Order not found.")
		}

		newStatus := e.Request.FormValue("payment_status")
		if !services.ValidPaymentTransition(record.GetString("payment_status"), newStatus) {
			return errorJSON(e, http.StatusBadRequest, services.ErrInvalidStatusTransition.Error())
		}

		record.Set("payment_status", newStatus)
		if err := app.Save(record); err != nil {
			log.Printf("admin: could not update order %s payment: %v", record.GetString("uuid"), err)
			return errorJSON(e, http.StatusInternalServerError, "Could not update order.")
		}
		return e.JSON(http.StatusOK, map[string]any{"payment_status": newStatus})
	}
}

// HandleAdminDesignStatus moves a design request through its state machine.
// The lifecycle emails fire from the record hooks after the save.
func HandleAdminDesignStatus(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if e.Auth == nil {
			return unauthorized(e)
		}
		if !e.Auth.IsSuperuser() {
			return forbidden(e)
		}

		record, err := app.FindRecordById("design_requests", e.Request.PathValue("id"))
		if err != nil {
			return errorJSON(e, http.StatusNotFound, "Design request not found.")
		}

		newStatus := e.Request.FormValue("status")
		if !services.ValidDesignTransition(record.GetString("status"), newStatus) {
			return errorJSON(e, http.StatusBadRequest, services.ErrInvalidStatusTransition.Error())
		}

		record.Set("status", newStatus)
		if err := app.Save(record); err != nil {
			log.Printf("admin: could not update design request %s: %v", record.Id, err)
			return errorJSON(e, http.StatusInternalServerError, "Could not update design request.")
		}
		return e.JSON(http.StatusOK, map[string]any{"status": newStatus})
	}
}

// HandleAdminOrdersExport streams all orders as an Excel workbook.
func HandleAdminOrdersExport(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if e.Auth == nil {
			return unauthorized(e)
		}
		if !e.Auth.IsSuperuser() {
			return forbidden(e)
		}

		records, err := app.FindRecordsByFilter("orders", "id != ''", "-created", 0, 0, nil)
		if err != nil {
			log.Printf("admin: could not query orders for export: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Could not export orders.")
		}

		rows := make([]services.OrderExportRow, 0, len(records))
		for _, rec := range records {
			productName := ""
			if product, err := app.FindRecordById("products", rec.GetString("product")); err == nil {
				productName = product.GetString("name")
			}
			rows = append(rows, services.OrderExportRow{
				Reference:     services.ShortReference(rec.GetString("uuid")),
				CreatedDate:   rec.GetDateTime("created").Time().Format("02 Jan 2006"),
				CustomerName:  rec.GetString("full_name"),
				CustomerEmail: rec.GetString("email"),
				ProductName:   productName,
				Quantity:      rec.GetInt("quantity"),
				Status:        rec.GetString("status"),
				PaymentStatus: rec.GetString("payment_status"),
				TotalPrice:    rec.GetFloat("total_price"),
			})
		}

		xlsxBytes, err := services.GenerateOrdersExcel(services.OrderExportData{
			GeneratedDate: time.Now().Format("02 Jan 2006"),
			Rows:          rows,
		})
		if err != nil {
			log.Printf("admin: orders export failed: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Could not export orders.")
		}

		e.Response.Header().Set("Content-Type",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition",
			`attachment; filename="BizPrint_Orders.xlsx"`)
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleAdminAnalytics returns the storewide totals for the admin surface.
func HandleAdminAnalytics(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if e.Auth == nil {
			return unauthorized(e)
		}
		if !e.Auth.IsSuperuser() {
			return forbidden(e)
		}

		stats, err := collectOrderStats(app, "id != ''", nil)
		if err != nil {
			log.Printf("admin: could not query orders for analytics: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Could not load analytics.")
		}

		subscribers, err := app.FindRecordsByFilter("newsletter_subscribers", "id != ''", "", 0, 0, nil)
		if err != nil {
			log.Printf("admin: could not count subscribers: %v", err)
		}

		analytics := services.CalcPlatformAnalytics(stats, len(subscribers))

		top := make([]map[string]any, 0, len(analytics.TopProducts))
		for _, p := range analytics.TopProducts {
			top = append(top, map[string]any{"name": p.Name, "orders": p.Orders})
		}
		return e.JSON(http.StatusOK, map[string]any{
			"total_orders":           analytics.TotalOrders,
			"total_revenue":          analytics.TotalRevenue,
			"top_products":           top,
			"newsletter_subscribers": analytics.NewsletterSubscribers,
		})
	}
}

// collectOrderStats loads orders matching the filter and reduces them to
// the analytics input shape.
func collectOrderStats(app *pocketbase.PocketBase, filter string, params map[string]any) ([]services.OrderStat, error) {
	records, err := app.FindRecordsByFilter("orders", filter, "", 0, 0, params)
	if err != nil {
		return nil, err
	}

	stats := make([]services.OrderStat, 0, len(records))
	for _, rec := range records {
		productName := ""
		if product, err := app.FindRecordById("products", rec.GetString("product")); err == nil {
			productName = product.GetString("name")
		}
		stats = append(stats, services.OrderStat{
			ProductName:    productName,
			Status:         rec.GetString("status"),
			PaymentStatus:  rec.GetString("payment_status"),
			TotalPrice:     rec.GetFloat("total_price"),
			DiscountAmount: rec.GetFloat("discount_amount"),
		})
	}
	return stats, nil
}
