package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/Katlego909/bizprint/collections"
	"github.com/Katlego909/bizprint/handlers"
	"github.com/Katlego909/bizprint/hooks"
	"github.com/Katlego909/bizprint/notifications"
)

func main() {
	app := pocketbase.New()

	mailer := notifications.NewAppMailer(app)
	// WhatsApp delivery is mocked: messages are logged, not sent. Swap in a
	// gateway-backed Sender here once an account exists.
	hooks.Register(app, notifications.LogSender{}, mailer)

	// Create collections and seed the catalog on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Catalog ──────────────────────────────────────────────
		se.Router.GET("/api/bizprint/categories", handlers.HandleCategoryList(app))
		se.Router.GET("/api/bizprint/products", handlers.HandleProductList(app))
		se.Router.GET("/api/bizprint/products/{slug}", handlers.HandleProductDetail(app))
		se.Router.GET("/api/bizprint/design-packages", handlers.HandleDesignPackageList(app))
		se.Router.GET("/api/bizprint/shipping-methods", handlers.HandleShippingMethodList(app))

		// ── Orders ───────────────────────────────────────────────
		se.Router.POST("/api/bizprint/orders", handlers.HandleOrderCreate(app))
		se.Router.GET("/api/bizprint/orders", handlers.HandleOrderList(app))
		se.Router.GET("/api/bizprint/orders/{uuid}", handlers.HandleOrderDetail(app))
		se.Router.POST("/api/bizprint/orders/{uuid}/cancel", handlers.HandleOrderCancel(app))
		se.Router.POST("/api/bizprint/orders/{uuid}/artwork", handlers.HandleOrderArtwork(app))
		se.Router.POST("/api/bizprint/orders/{uuid}/payment-proof", handlers.HandleOrderPaymentProof(app))
		se.Router.GET("/api/bizprint/orders/{uuid}/invoice.pdf", handlers.HandleOrderInvoicePDF(app))

		// ── Design requests ──────────────────────────────────────
		se.Router.POST("/api/bizprint/design-requests", handlers.HandleDesignRequestCreate(app))
		se.Router.GET("/api/bizprint/design-quotes/{ref}", handlers.HandleDesignQuote(app))
		se.Router.GET("/api/bizprint/design-quotes/{ref}/quote.pdf", handlers.HandleDesignQuotePDF(app))
		se.Router.POST("/api/bizprint/design-quotes/{ref}/payment-proof", handlers.HandleDesignPaymentProof(app))

		// ── Account ──────────────────────────────────────────────
		se.Router.GET("/api/bizprint/account/analytics", handlers.HandleAccountAnalytics(app))
		se.Router.GET("/api/bizprint/account/loyalty", handlers.HandleAccountLoyalty(app))
		se.Router.POST("/api/bizprint/account/referral", handlers.HandleReferralApply(app))
		se.Router.POST("/api/bizprint/account/profile", handlers.HandleProfileUpdate(app))

		// ── Newsletter and contact ───────────────────────────────
		se.Router.POST("/api/bizprint/newsletter", handlers.HandleNewsletterSubscribe(app))
		se.Router.POST("/api/bizprint/contact", handlers.HandleContact(app, mailer))

		// ── Admin ────────────────────────────────────────────────
		se.Router.POST("/api/bizprint/admin/orders/{uuid}/status", handlers.HandleAdminOrderStatus(app))
		se.Router.POST("/api/bizprint/admin/orders/{uuid}/payment", handlers.HandleAdminOrderPayment(app))
		se.Router.POST("/api/bizprint/admin/design-requests/{id}/status", handlers.HandleAdminDesignStatus(app))
		se.Router.GET("/api/bizprint/admin/orders/export.xlsx", handlers.HandleAdminOrdersExport(app))
		se.Router.GET("/api/bizprint/admin/analytics", handlers.HandleAdminAnalytics(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
