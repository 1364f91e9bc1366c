package notifications

import (
	"net/mail"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/tools/mailer"
)

// Mailer delivers an HTML email. Like Sender, delivery is best-effort.
type Mailer interface {
	Send(to, subject, html string) error
}

// AppMailer sends through the PocketBase mail client, so SMTP settings are
// managed from the admin UI like everything else.
type AppMailer struct {
	app *pocketbase.PocketBase
}

func NewAppMailer(app *pocketbase.PocketBase) *AppMailer {
	return &AppMailer{app: app}
}

func (m *AppMailer) Send(to, subject, html string) error {
	settings := m.app.Settings()
	msg := &mailer.Message{
		From: mail.Address{
			Name:    settings.Meta.SenderName,
			Address: settings.Meta.SenderAddress,
		},
		To:      []mail.Address{{Address: to}},
		Subject: subject,
		HTML:    html,
	}
	return m.app.NewMailClient().Send(msg)
}
