// Package notifications owns the outbound messaging boundary: WhatsApp
// texts and transactional email. Phone number normalization happens here
// and nowhere else.
package notifications

import (
	"log"
	"strings"
)

// Sender delivers a WhatsApp text to a phone number. Implementations are
// best-effort: callers log and swallow errors so a provider outage never
// fails the write that triggered the message.
type Sender interface {
	Send(phone, body string) error
}

// LogSender writes messages to the application log instead of a provider.
// It is the default when no WhatsApp gateway is configured, and doubles as
// the local development sender.
type LogSender struct{}

func (LogSender) Send(phone, body string) error {
	log.Printf("whatsapp: [mock] to=%s body=%q", NormalizePhone(phone), body)
	return nil
}

// NormalizePhone converts a phone number to international E.164-style
// format for South Africa: separators are stripped, a leading 0 becomes
// +27, and a missing + prefix is added.
func NormalizePhone(phone string) string {
	r := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
	phone = r.Replace(phone)

	switch {
	case strings.HasPrefix(phone, "0"):
		return "+27" + phone[1:]
	case phone != "" && !strings.HasPrefix(phone, "+"):
		return "+" + phone
	}
	return phone
}
