package handlers

import (
	"log"
	"net/http"
	"net/mail"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/Katlego909/bizprint/notifications"
	"github.com/Katlego909/bizprint/templates"
)

// HandleNewsletterSubscribe registers an email address for the newsletter.
// The discount code is generated by the create hook, which also sends the
// welcome email. Subscribing twice is a no-op that reports the existing
// subscription.
func HandleNewsletterSubscribe(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		email := e.Request.FormValue("email")
		if _, err := mail.ParseAddress(email); err != nil {
			return errorJSON(e, http.StatusBadRequest, "Enter a valid email address.")
		}

		if _, err := app.FindFirstRecordByFilter(
			"newsletter_subscribers", "email = {:email}", map[string]any{"email": email},
		); err == nil {
			return e.JSON(http.StatusOK, map[string]any{"subscribed": true})
		}

		col, err := app.FindCollectionByNameOrId("newsletter_subscribers")
		if err != nil {
			log.Printf("newsletter: collection missing: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Could not subscribe.")
		}

		record := core.NewRecord(col)
		record.Set("email", email)
		if err := app.Save(record); err != nil {
			log.Printf("newsletter: could not save subscriber %s: %v", email, err)
			return errorJSON(e, http.StatusInternalServerError, "Could not subscribe.")
		}

		return e.JSON(http.StatusCreated, map[string]any{"subscribed": true})
	}
}

// HandleContact forwards a contact form submission to the store inbox.
func HandleContact(app *pocketbase.PocketBase, mailer notifications.Mailer) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		name := e.Request.FormValue("name")
		email := e.Request.FormValue("email")
		subject := e.Request.FormValue("subject")
		message := e.Request.FormValue("message")

		if name == "" || message == "" {
			return errorJSON(e, http.StatusBadRequest, "Name and message are required.")
		}
		if _, err := mail.ParseAddress(email); err != nil {
			return errorJSON(e, http.StatusBadRequest, "Enter a valid email address.")
		}

		html, err := templates.Render(templates.ContactMessage(name, email, subject, message))
		if err != nil {
			log.Printf("contact: render failed: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Could not send message.")
		}

		to := app.Settings().Meta.SenderAddress
		if err := mailer.Send(to, "Contact form: "+subject, html); err != nil {
			log.Printf("contact: send failed: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Could not send message.")
		}
		return e.JSON(http.StatusOK, map[string]any{"sent": true})
	}
}
