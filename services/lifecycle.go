package services

import "errors"

// Order status values.
const (
	OrderReceived     = "received"
	OrderInProduction = "in_production"
	OrderCompleted    = "completed"
	OrderShipped      = "shipped"
	OrderCancelled    = "cancelled"
	OrderRefunded     = "refunded"
)

// Payment status values.
const (
	PaymentPending   = "pending"
	PaymentPaid      = "paid"
	PaymentCancelled = "cancelled"
)

// Design request status values.
const (
	DesignPending    = "pending"
	DesignPaid       = "paid"
	DesignInProgress = "in_progress"
	DesignCompleted  = "completed"
)

// ErrOrderNotCancellable is returned when a cancel is attempted on an order
// that has already moved past the received status.
var ErrOrderNotCancellable = errors.New("only orders in Received status can be cancelled")

// ErrArtworkLocked is returned when artwork is re-uploaded after production
// has finished.
var ErrArtworkLocked = errors.New("you can no longer update artwork for this order")

// ErrInvalidStatusTransition is returned for staff status updates that are
// not part of the order state machine.
var ErrInvalidStatusTransition = errors.New("invalid status transition")

// NotificationKind identifies the outbound WhatsApp message chosen for an
// order event.
type NotificationKind int

const (
	NotifyNone NotificationKind = iota
	NotifyOrderReceived
	NotifyInProduction
	NotifyCompleted
	NotifyShipped
	NotifyCancelled
	NotifyRefunded
	NotifyPaymentReceived
)

// DesignEmailKind identifies the single email chosen for a design request
// event.
type DesignEmailKind int

const (
	DesignEmailNone DesignEmailKind = iota
	DesignEmailQuoteReady
	DesignEmailPaymentConfirmed
	DesignEmailInProgress
	DesignEmailCompleted
)

// orderFlow defines the forward transitions of the order state machine.
// Refunds are handled separately: any non-cancelled state may be refunded.
var orderFlow = map[string][]string{
	OrderReceived:     {OrderInProduction, OrderCancelled},
	OrderInProduction: {OrderCompleted},
	OrderCompleted:    {OrderShipped},
}

// ValidOrderTransition reports whether a staff status change is part of
// the order state machine. A no-op save (status unchanged) is always
// allowed.
func ValidOrderTransition(oldStatus, newStatus string) bool {
	if oldStatus == newStatus {
		return true
	}
	if newStatus == OrderRefunded {
		return oldStatus != OrderCancelled
	}
	for _, next := range orderFlow[oldStatus] {
		if next == newStatus {
			return true
		}
	}
	return false
}

// CanCancelOrder reports whether a customer may still cancel an order.
// Cancellation is only permitted while the order sits in received.
func CanCancelOrder(status string) bool {
	return status == OrderReceived
}

// CanUpdateArtwork reports whether the customer may still replace the
// order's artwork file.
func CanUpdateArtwork(status string) bool {
	return status == OrderReceived || status == OrderInProduction
}

// ValidPaymentTransition reports whether a payment status change is
// allowed. Paid and cancelled are terminal.
func ValidPaymentTransition(oldStatus, newStatus string) bool {
	if oldStatus == newStatus {
		return true
	}
	return oldStatus == PaymentPending &&
		(newStatus == PaymentPaid || newStatus == PaymentCancelled)
}

// designFlow defines the forward transitions of the design request state
// machine.
var designFlow = map[string][]string{
	DesignPending:    {DesignPaid},
	DesignPaid:       {DesignInProgress},
	DesignInProgress: {DesignCompleted},
}

// ValidDesignTransition reports whether a staff design request status
// change is part of the state machine. A no-op save is always allowed.
func ValidDesignTransition(oldStatus, newStatus string) bool {
	if oldStatus == newStatus {
		return true
	}
	for _, next := range designFlow[oldStatus] {
		if next == newStatus {
			return true
		}
	}
	return false
}

// OrderStatusNotification maps an order status change to the WhatsApp
// notification it triggers. A save that leaves the status unchanged
// triggers nothing. Transitions with no customer-facing message (for
// example into cancelled by the customer themselves) still send the generic
// status update carrying the new status name.
func OrderStatusNotification(oldStatus, newStatus string) (NotificationKind, bool) {
	if oldStatus == newStatus {
		return NotifyNone, false
	}
	switch newStatus {
	case OrderInProduction:
		return NotifyInProduction, true
	case OrderCompleted:
		return NotifyCompleted, true
	case OrderShipped:
		return NotifyShipped, true
	case OrderCancelled:
		return NotifyCancelled, true
	case OrderRefunded:
		return NotifyRefunded, true
	}
	return NotifyNone, false
}

// PaymentNotification maps a payment status change to its notification.
// Only the transition into paid notifies the customer.
func PaymentNotification(oldStatus, newStatus string) (NotificationKind, bool) {
	if oldStatus == newStatus {
		return NotifyNone, false
	}
	if newStatus == PaymentPaid {
		return NotifyPaymentReceived, true
	}
	return NotifyNone, false
}

// DesignEmail picks the single email for a design request save. The branch
// order is significant and first-match-wins: a freshly created pending
// request gets the quote email; pending→paid gets the payment confirmation;
// any transition into in_progress or completed gets the matching progress
// email. At most one email fires per save. For created records old is the
// empty string.
func DesignEmail(created bool, oldStatus, newStatus string) (DesignEmailKind, bool) {
	switch {
	case created && newStatus == DesignPending:
		return DesignEmailQuoteReady, true
	case oldStatus == DesignPending && newStatus == DesignPaid:
		return DesignEmailPaymentConfirmed, true
	case oldStatus != DesignInProgress && newStatus == DesignInProgress:
		return DesignEmailInProgress, true
	case oldStatus != DesignCompleted && newStatus == DesignCompleted:
		return DesignEmailCompleted, true
	}
	return DesignEmailNone, false
}
