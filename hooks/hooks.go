// Package hooks wires record lifecycle events to notification side effects
// and derived-field maintenance. All notifications fire only after the write
// has succeeded and are best effort: a failed send is logged, never surfaced
// to the saving request.
package hooks

import (
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/Katlego909/bizprint/notifications"
	"github.com/Katlego909/bizprint/services"
	"github.com/Katlego909/bizprint/templates"
)

// Register attaches all BizPrint record hooks to the app. The sender and
// mailer are injected so tests can substitute recording fakes.
func Register(app *pocketbase.PocketBase, sender notifications.Sender, mailer notifications.Mailer) {
	registerOrderHooks(app, sender, mailer)
	registerDesignRequestHooks(app, mailer)
	registerProfileHooks(app)
	registerNewsletterHooks(app, mailer)
}

func registerOrderHooks(app *pocketbase.PocketBase, sender notifications.Sender, mailer notifications.Mailer) {
	app.OnRecordCreate("orders").BindFunc(func(e *core.RecordEvent) error {
		if e.Record.GetString("uuid") == "" {
			e.Record.Set("uuid", uuid.NewString())
		}
		if err := e.Next(); err != nil {
			return err
		}

		sendOrderWelcome(e.App, e.Record, sender, mailer)
		return nil
	})

	app.OnRecordUpdate("orders").BindFunc(func(e *core.RecordEvent) error {
		original := e.Record.Original()
		oldStatus := original.GetString("status")
		oldPayment := original.GetString("payment_status")

		if err := e.Next(); err != nil {
			return err
		}

		newStatus := e.Record.GetString("status")
		newPayment := e.Record.GetString("payment_status")
		phone := e.Record.GetString("phone")
		reference := services.ShortReference(e.Record.GetString("uuid"))

		if _, ok := services.OrderStatusNotification(oldStatus, newStatus); ok && phone != "" {
			body := notifications.StatusMessage(reference, newStatus)
			if err := sender.Send(notifications.NormalizePhone(phone), body); err != nil {
				log.Printf("hooks: order %s status notification failed: %v", reference, err)
			}
		}

		if _, ok := services.PaymentNotification(oldPayment, newPayment); ok {
			if phone != "" {
				body := notifications.PaymentReceivedMessage(reference)
				if err := sender.Send(notifications.NormalizePhone(phone), body); err != nil {
					log.Printf("hooks: order %s payment notification failed: %v", reference, err)
				}
			}
			awardLoyaltyPoints(e.App, e.Record, reference)
		}
		return nil
	})
}

func sendOrderWelcome(app core.App, record *core.Record, sender notifications.Sender, mailer notifications.Mailer) {
	reference := services.ShortReference(record.GetString("uuid"))
	fullName := record.GetString("full_name")
	total := record.GetFloat("total_price")

	productName := ""
	if product, err := app.FindRecordById("products", record.GetString("product")); err == nil {
		productName = product.GetString("name")
	}

	if phone := record.GetString("phone"); phone != "" {
		body := notifications.WelcomeMessage(fullName, reference, productName, total)
		if err := sender.Send(notifications.NormalizePhone(phone), body); err != nil {
			log.Printf("hooks: order %s welcome message failed: %v", reference, err)
		}
	}

	email := record.GetString("email")
	if email == "" {
		return
	}
	shipping := record.GetFloat("shipping_price")
	discount := record.GetFloat("discount_amount")
	html, err := templates.Render(templates.OrderConfirmation(templates.OrderConfirmationData{
		Reference:   reference,
		ClientName:  fullName,
		ProductName: productName,
		Quantity:    record.GetInt("quantity"),
		Shipping:    shipping,
		Discount:    discount,
		Subtotal:    services.ProductSubtotalFromTotal(total, shipping, discount),
		VAT:         services.VATFromTotal(total),
		Total:       total,
	}))
	if err != nil {
		log.Printf("hooks: order %s confirmation render failed: %v", reference, err)
		return
	}
	subject := "Order Confirmation #" + reference + " - BizPrint"
	if err := mailer.Send(email, subject, html); err != nil {
		log.Printf("hooks: order %s confirmation email failed: %v", reference, err)
	}
}

// awardLoyaltyPoints credits one point per rand of the order total when
// payment lands, and appends a loyalty_transactions entry. The tier itself
// is recomputed by the profile update hook.
func awardLoyaltyPoints(app core.App, order *core.Record, reference string) {
	userID := order.GetString("user")
	if userID == "" {
		return
	}

	profile, err := app.FindFirstRecordByFilter(
		"customer_profiles", "user = {:user}", map[string]any{"user": userID},
	)
	if err != nil {
		log.Printf("hooks: order %s has no customer profile for loyalty: %v", reference, err)
		return
	}

	points := int(order.GetFloat("total_price"))
	if points <= 0 {
		return
	}

	profile.Set("loyalty_points", profile.GetInt("loyalty_points")+points)
	if err := app.Save(profile); err != nil {
		log.Printf("hooks: order %s loyalty credit failed: %v", reference, err)
		return
	}

	txCol, err := app.FindCollectionByNameOrId("loyalty_transactions")
	if err != nil {
		return
	}
	tx := core.NewRecord(txCol)
	tx.Set("user", userID)
	tx.Set("points", points)
	tx.Set("reason", "Order #"+reference+" paid")
	if err := app.Save(tx); err != nil {
		log.Printf("hooks: order %s loyalty transaction failed: %v", reference, err)
	}
}

func registerDesignRequestHooks(app *pocketbase.PocketBase, mailer notifications.Mailer) {
	app.OnRecordCreate("design_requests").BindFunc(func(e *core.RecordEvent) error {
		if e.Record.GetString("uuid") == "" {
			e.Record.Set("uuid", uuid.NewString())
		}
		if e.Record.GetString("quote_token") == "" {
			e.Record.Set("quote_token", uuid.NewString())
		}
		if err := e.Next(); err != nil {
			return err
		}

		kind, ok := services.DesignEmail(true, "", e.Record.GetString("status"))
		if ok {
			sendDesignEmail(e.App, e.Record, kind, mailer)
		}
		return nil
	})

	app.OnRecordUpdate("design_requests").BindFunc(func(e *core.RecordEvent) error {
		oldStatus := e.Record.Original().GetString("status")

		if err := e.Next(); err != nil {
			return err
		}

		kind, ok := services.DesignEmail(false, oldStatus, e.Record.GetString("status"))
		if ok {
			sendDesignEmail(e.App, e.Record, kind, mailer)
		}
		return nil
	})
}

func sendDesignEmail(app core.App, record *core.Record, kind services.DesignEmailKind, mailer notifications.Mailer) {
	email := record.GetString("email")
	reference := services.ShortReference(record.GetString("uuid"))
	if email == "" {
		if user, err := app.FindRecordById("users", record.GetString("user")); err == nil {
			email = user.GetString("email")
		}
	}
	if email == "" {
		log.Printf("hooks: design request %s has no recipient email", reference)
		return
	}

	packageIDs := record.GetStringSlice("packages")
	names := make([]string, 0, len(packageIDs))
	prices := make([]float64, 0, len(packageIDs))
	for _, id := range packageIDs {
		pkg, err := app.FindRecordById("design_packages", id)
		if err != nil {
			continue
		}
		names = append(names, pkg.GetString("title"))
		prices = append(prices, pkg.GetFloat("price"))
	}

	timeline := record.GetString("timeline_preference")
	html, err := templates.Render(templates.DesignEmail(kind, templates.DesignEmailData{
		Reference:      reference,
		ClientName:     clientName(app, record),
		Packages:       names,
		Totals:         services.CalcDesignTotals(prices, timeline),
		TurnaroundDays: services.EstimatedTurnaroundDays(timeline, len(packageIDs)),
	}))
	if err != nil {
		log.Printf("hooks: design request %s email render failed: %v", reference, err)
		return
	}

	subject := notifications.DesignEmailSubject(kind, reference)
	if err := mailer.Send(email, subject, html); err != nil {
		log.Printf("hooks: design request %s email failed: %v", reference, err)
	}
}

func clientName(app core.App, record *core.Record) string {
	if name := record.GetString("full_name"); name != "" {
		return name
	}
	if user, err := app.FindRecordById("users", record.GetString("user")); err == nil {
		if name := user.GetString("name"); name != "" {
			return name
		}
		return user.GetString("email")
	}
	return "there"
}

func registerProfileHooks(app *pocketbase.PocketBase) {
	app.OnRecordCreate("customer_profiles").BindFunc(func(e *core.RecordEvent) error {
		if e.Record.GetString("referral_code") == "" {
			e.Record.Set("referral_code", NewReferralCode())
		}
		e.Record.Set("loyalty_tier", services.LoyaltyTier(e.Record.GetInt("loyalty_points")))
		return e.Next()
	})

	app.OnRecordUpdate("customer_profiles").BindFunc(func(e *core.RecordEvent) error {
		e.Record.Set("loyalty_tier", services.LoyaltyTier(e.Record.GetInt("loyalty_points")))
		return e.Next()
	})
}

func registerNewsletterHooks(app *pocketbase.PocketBase, mailer notifications.Mailer) {
	app.OnRecordCreate("newsletter_subscribers").BindFunc(func(e *core.RecordEvent) error {
		if e.Record.GetString("discount_code") == "" {
			e.Record.Set("discount_code", NewDiscountCode())
		}
		if err := e.Next(); err != nil {
			return err
		}

		email := e.Record.GetString("email")
		html, err := templates.Render(templates.NewsletterDiscount(email, e.Record.GetString("discount_code")))
		if err != nil {
			log.Printf("hooks: newsletter discount render failed: %v", err)
			return nil
		}
		if err := mailer.Send(email, "Your 10% BizPrint Discount Code", html); err != nil {
			log.Printf("hooks: newsletter discount email to %s failed: %v", email, err)
		}
		return nil
	})
}

// NewDiscountCode returns a newsletter discount code like BIZ-9F83A21C.
func NewDiscountCode() string {
	return "BIZ-" + randomCodeSuffix()
}

// NewReferralCode returns a customer referral code like REF-9F83A21C.
func NewReferralCode() string {
	return "REF-" + randomCodeSuffix()
}

func randomCodeSuffix() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
