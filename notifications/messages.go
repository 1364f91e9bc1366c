package notifications

import (
	"fmt"

	"github.com/Katlego909/bizprint/services"
)

// statusLabels maps order status values to their customer-facing names.
var statusLabels = map[string]string{
	services.OrderReceived:     "Received",
	services.OrderInProduction: "In Production",
	services.OrderCompleted:    "Completed",
	services.OrderShipped:      "Shipped",
	services.OrderCancelled:    "Cancelled",
	services.OrderRefunded:     "Refunded",
}

// StatusLabel returns the display name for an order status, falling back
// to the raw value.
func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

// WelcomeMessage is the WhatsApp text sent once when an order is created.
func WelcomeMessage(fullName, reference, productName string, total float64) string {
	return fmt.Sprintf(
		"🎉 Hi %s, thanks for your order at BizPrint!\n\n"+
			"Order #%s\n"+
			"📦 %s\n"+
			"💰 Total: %s\n\n"+
			"We will notify you once production starts.",
		fullName, reference, productName, services.FormatZAR(total),
	)
}

// StatusMessage is the WhatsApp text sent when an order's status changes.
// Every change carries the generic update header; in_production, completed
// and shipped add a specific line.
func StatusMessage(reference, newStatus string) string {
	msg := fmt.Sprintf(
		"📢 Update on Order #%s\n\nCurrent Status: *%s*\n\n",
		reference, StatusLabel(newStatus),
	)

	switch newStatus {
	case services.OrderInProduction:
		msg += "🎨 Your artwork is approved and printing has started!"
	case services.OrderCompleted:
		msg += "✅ Your order is complete and ready for collection/shipping."
	case services.OrderShipped:
		msg += "🚚 Your order is on its way!"
	}
	return msg
}

// PaymentReceivedMessage is the WhatsApp text sent when payment is
// confirmed.
func PaymentReceivedMessage(reference string) string {
	return fmt.Sprintf(
		"💰 Payment Received for Order #%s.\nThank you! We are now processing your order.",
		reference,
	)
}

// DesignEmailSubject returns the subject line for a design request
// lifecycle email.
func DesignEmailSubject(kind services.DesignEmailKind, reference string) string {
	switch kind {
	case services.DesignEmailQuoteReady:
		return fmt.Sprintf("Your Design Quote #%s is Ready - BizPrint", reference)
	case services.DesignEmailPaymentConfirmed:
		return fmt.Sprintf("Payment Confirmed - Design #%s - BizPrint", reference)
	case services.DesignEmailInProgress:
		return fmt.Sprintf("Your Design is In Progress - #%s - BizPrint", reference)
	case services.DesignEmailCompleted:
		return fmt.Sprintf("🎉 Your Design is Ready! - #%s - BizPrint", reference)
	}
	return ""
}
