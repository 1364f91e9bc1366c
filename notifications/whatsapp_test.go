package notifications

import (
	"strings"
	"testing"

	"github.com/Katlego909/bizprint/services"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"local with leading zero", "0821234567", "+27821234567"},
		{"already international", "+27821234567", "+27821234567"},
		{"missing plus", "27821234567", "+27821234567"},
		{"spaces and hyphens", "082 123-4567", "+27821234567"},
		{"parentheses", "(082) 123 4567", "+27821234567"},
		{"formatted international", "+27 82 123 4567", "+27821234567"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePhone(tt.in); got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWelcomeMessage(t *testing.T) {
	msg := WelcomeMessage("Thabo", "9F83A21C", "A5 Full Colour Flyers", 930.35)

	for _, frag := range []string{"Hi Thabo", "Order #9F83A21C", "A5 Full Colour Flyers", "R930.35"} {
		if !strings.Contains(msg, frag) {
			t.Errorf("welcome message missing %q:\n%s", frag, msg)
		}
	}
}

func TestStatusMessage(t *testing.T) {
	tests := []struct {
		status string
		frag   string
	}{
		{services.OrderInProduction, "printing has started"},
		{services.OrderCompleted, "ready for collection"},
		{services.OrderShipped, "on its way"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			msg := StatusMessage("9F83A21C", tt.status)
			if !strings.Contains(msg, "Order #9F83A21C") {
				t.Errorf("status message missing reference:\n%s", msg)
			}
			if !strings.Contains(msg, StatusLabel(tt.status)) {
				t.Errorf("status message missing label %q:\n%s", StatusLabel(tt.status), msg)
			}
			if !strings.Contains(msg, tt.frag) {
				t.Errorf("status message missing %q:\n%s", tt.frag, msg)
			}
		})
	}

	// Cancelled has no extra line, just the generic header.
	msg := StatusMessage("9F83A21C", services.OrderCancelled)
	if !strings.Contains(msg, "Cancelled") {
		t.Errorf("cancelled message missing label:\n%s", msg)
	}
}

func TestDesignEmailSubject(t *testing.T) {
	tests := []struct {
		kind services.DesignEmailKind
		frag string
	}{
		{services.DesignEmailQuoteReady, "Your Design Quote #AB12CD34 is Ready"},
		{services.DesignEmailPaymentConfirmed, "Payment Confirmed"},
		{services.DesignEmailInProgress, "In Progress"},
		{services.DesignEmailCompleted, "Your Design is Ready!"},
	}

	for _, tt := range tests {
		subject := DesignEmailSubject(tt.kind, "AB12CD34")
		if !strings.Contains(subject, tt.frag) {
			t.Errorf("DesignEmailSubject(%v) = %q, missing %q", tt.kind, subject, tt.frag)
		}
	}

	if got := DesignEmailSubject(services.DesignEmailNone, "AB12CD34"); got != "" {
		t.Errorf("DesignEmailSubject(none) = %q, want empty", got)
	}
}
