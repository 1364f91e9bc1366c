// Package templates builds the HTML bodies of BizPrint's transactional
// emails as templ components.
package templates

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/Katlego909/bizprint/services"
)

// Render renders a component to an HTML string for the mailer.
func Render(c templ.Component) (string, error) {
	var b strings.Builder
	if err := c.Render(context.Background(), &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// layout wraps email content in the shared BizPrint shell.
func layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w,
			`<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;color:#333">`+
				`<div style="background:#1d3557;color:#fff;padding:16px 24px">`+
				`<h1 style="margin:0;font-size:20px">BizPrint</h1></div>`+
				`<div style="padding:24px">`+
				`<h2 style="color:#1d3557">`+templ.EscapeString(title)+`</h2>`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w,
			`</div><div style="background:#f4f4f4;padding:12px 24px;font-size:12px;color:#777">`+
				`BizPrint (Pty) Ltd · Print &amp; Design Services</div></div>`)
		return err
	})
}

func paragraph(text string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<p>`+templ.EscapeString(text)+`</p>`)
		return err
	})
}

func join(components ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, c := range components {
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// totalsTable renders a label/amount breakdown table.
func totalsTable(rows [][2]string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<table style="width:100%;border-collapse:collapse">`); err != nil {
			return err
		}
		for _, r := range rows {
			row := `<tr><td style="padding:6px;border-bottom:1px solid #eee">` +
				templ.EscapeString(r[0]) +
				`</td><td style="padding:6px;border-bottom:1px solid #eee;text-align:right">` +
				templ.EscapeString(r[1]) + `</td></tr>`
			if _, err := io.WriteString(w, row); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</table>`)
		return err
	})
}

// DesignEmailData feeds the design request lifecycle emails.
type DesignEmailData struct {
	Reference      string
	ClientName     string
	Packages       []string
	Totals         services.DesignTotals
	TurnaroundDays int
}

func (d DesignEmailData) totalsRows() [][2]string {
	rows := [][2]string{{"Subtotal", services.FormatZAR(d.Totals.Subtotal)}}
	if d.Totals.RushFee > 0 {
		rows = append(rows, [2]string{"Rush Fee (50%)", services.FormatZAR(d.Totals.RushFee)})
	}
	rows = append(rows,
		[2]string{"VAT (15%)", services.FormatZAR(d.Totals.VAT)},
		[2]string{"Total", services.FormatZAR(d.Totals.Total)},
	)
	return rows
}

// DesignEmail builds the body for a design request lifecycle email.
func DesignEmail(kind services.DesignEmailKind, data DesignEmailData) templ.Component {
	greeting := paragraph(fmt.Sprintf("Hi %s,", data.ClientName))

	switch kind {
	case services.DesignEmailQuoteReady:
		return layout("Your Quote is Ready", join(
			greeting,
			paragraph(fmt.Sprintf(
				"Thank you for your design request #%s. Your quote is below.",
				data.Reference)),
			totalsTable(data.totalsRows()),
			paragraph(fmt.Sprintf(
				"Estimated turnaround: %d business days.", data.TurnaroundDays)),
			paragraph("To proceed, please pay by EFT using the banking details on your quote and upload proof of payment."),
		))
	case services.DesignEmailPaymentConfirmed:
		return layout("Payment Confirmed", join(
			greeting,
			paragraph(fmt.Sprintf(
				"We have received your payment for design request #%s. Our designers will start shortly.",
				data.Reference)),
			totalsTable(data.totalsRows()),
		))
	case services.DesignEmailInProgress:
		return layout("Your Design is In Progress", join(
			greeting,
			paragraph(fmt.Sprintf(
				"Our designers are now working on design request #%s.", data.Reference)),
			paragraph(fmt.Sprintf(
				"Estimated turnaround: %d business days.", data.TurnaroundDays)),
		))
	case services.DesignEmailCompleted:
		return layout("Your Design is Ready!", join(
			greeting,
			paragraph(fmt.Sprintf(
				"Design request #%s is complete. Your final files are ready for download.",
				data.Reference)),
		))
	}
	return layout("BizPrint", greeting)
}

// OrderConfirmationData feeds the order confirmation email.
type OrderConfirmationData struct {
	Reference   string
	ClientName  string
	ProductName string
	Quantity    int
	Shipping    float64
	Discount    float64
	Subtotal    float64
	VAT         float64
	Total       float64
}

func (d OrderConfirmationData) totalsRows() [][2]string {
	rows := [][2]string{{"Subtotal", services.FormatZAR(d.Subtotal)}}
	if d.Discount > 0 {
		rows = append(rows, [2]string{"Discount", "-" + services.FormatZAR(d.Discount)})
	}
	rows = append(rows,
		[2]string{"Shipping", services.FormatZAR(d.Shipping)},
		[2]string{"VAT (15%)", services.FormatZAR(d.VAT)},
		[2]string{"Total", services.FormatZAR(d.Total)},
	)
	return rows
}

// OrderConfirmation builds the body of the email sent when an order is
// placed. Subtotal and VAT are back-calculated from the persisted total by
// the caller; Subtotal is pre-discount, so the rows sum to Total.
func OrderConfirmation(data OrderConfirmationData) templ.Component {
	return layout("Order Confirmation", join(
		paragraph(fmt.Sprintf("Hi %s,", data.ClientName)),
		paragraph(fmt.Sprintf(
			"Thanks for your order #%s: %d × %s.",
			data.Reference, data.Quantity, data.ProductName)),
		totalsTable(data.totalsRows()),
		paragraph("Please pay by EFT and upload your proof of payment from the order tracking page."),
	))
}

// NewsletterDiscount builds the welcome email carrying a subscriber's
// discount code.
func NewsletterDiscount(email, discountCode string) templ.Component {
	return layout("Welcome to BizPrint!", join(
		paragraph(fmt.Sprintf("Thanks for subscribing with %s.", email)),
		paragraph("Here is your 10% discount code for your next order:"),
		templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			_, err := io.WriteString(w,
				`<p style="font-size:24px;font-weight:bold;letter-spacing:2px;color:#1d3557">`+
					templ.EscapeString(discountCode)+`</p>`)
			return err
		}),
	))
}

// ContactMessage builds the internal email for a contact form submission.
func ContactMessage(name, email, subject, message string) templ.Component {
	return layout("New contact form submission", join(
		paragraph("Name: "+name),
		paragraph("Email: "+email),
		paragraph("Subject: "+subject),
		paragraph("Message:"),
		paragraph(message),
	))
}
