package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// InvoiceData carries everything needed to render an order invoice PDF.
// The monetary breakdown is back-calculated from the persisted total, so
// ProductSubtotal, Shipping, Discount and VAT are precomputed by the caller
// (see ProductSubtotalFromTotal).
type InvoiceData struct {
	InvoiceNumber   string
	Date            string
	ClientName      string
	ClientEmail     string
	ClientPhone     string
	ProductName     string
	Quantity        int
	BasePrice       float64
	Options         map[string]string
	Services        []string
	ProductSubtotal float64
	Shipping        float64
	Discount        float64
	VAT             float64
	Total           float64
	PaymentStatus   string
	PaymentMethod   string
}

// GenerateInvoicePDF renders an order invoice using maroto/v2 and returns
// the raw PDF bytes.
func GenerateInvoicePDF(data InvoiceData) ([]byte, error) {
	m := newDocument()

	addDocumentHeader(m, "INVOICE", []kv{
		{"Invoice #:", data.InvoiceNumber},
		{"Date:", data.Date},
	})
	addClientBlock(m, data.ClientName, data.ClientEmail, data.ClientPhone)
	addOrderLine(m, data)
	addInvoiceTotals(m, data)
	addPaymentBlock(m, data.PaymentStatus, data.PaymentMethod)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invoice PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// addOrderLine renders the ordered product with its configuration.
func addOrderLine(m core.Maroto, data InvoiceData) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerCell := props.Cell{BackgroundColor: headerBg}
	headerText := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerRight := headerText
	headerRight.Align = align.Right

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(text.New("Item", headerText)).WithStyle(&headerCell),
			col.New(3).Add(text.New("Qty", headerRight)).WithStyle(&headerCell),
			col.New(3).Add(text.New("Base Price", headerRight)).WithStyle(&headerCell),
		),
	)
	m.AddRows(
		row.New(7).Add(
			col.New(6).Add(text.New(data.ProductName, props.Text{Size: 9, Align: align.Left})),
			col.New(3).Add(text.New(fmt.Sprintf("%d", data.Quantity), props.Text{Size: 9, Align: align.Right})),
			col.New(3).Add(text.New(FormatZAR(data.BasePrice), props.Text{Size: 9, Align: align.Right})),
		),
	)

	detail := props.Text{
		Size:  8,
		Align: align.Left,
		Color: &props.Color{Red: 80, Green: 80, Blue: 80},
	}
	for optType, value := range data.Options {
		m.AddRows(
			row.New(5).Add(
				col.New(12).Add(text.New("  "+optType+": "+value, detail)),
			),
		)
	}
	for _, svc := range data.Services {
		m.AddRows(
			row.New(5).Add(
				col.New(12).Add(text.New("  + "+svc, detail)),
			),
		)
	}
	m.AddRows(row.New(4))
}

// addInvoiceTotals renders the back-calculated totals block. The discount
// row only appears when a discount was applied.
func addInvoiceTotals(m core.Maroto, data InvoiceData) {
	rows := []kv{
		{"Subtotal (excl. shipping):", FormatZAR(data.ProductSubtotal)},
		{"Shipping:", FormatZAR(data.Shipping)},
	}
	if data.Discount > 0 {
		rows = append(rows, kv{"Discount:", "-" + FormatZAR(data.Discount)})
	}
	rows = append(rows,
		kv{"VAT (15%):", FormatZAR(data.VAT)},
		kv{"Total:", FormatZAR(data.Total)},
	)

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}
	for _, r := range rows {
		m.AddRows(
			row.New(7).Add(
				col.New(9).Add(
					text.New(r.label, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
				).WithStyle(summaryCell),
				col.New(3).Add(
					text.New(r.value, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
				).WithStyle(summaryCell),
			),
		)
	}
}

// addPaymentBlock renders the payment status footer.
func addPaymentBlock(m core.Maroto, status, method string) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Payment Status: %s (%s)", status, method),
					props.Text{
						Size:  10,
						Style: fontstyle.Bold,
						Align: align.Left,
						Color: &props.Color{Red: 29, Green: 53, Blue: 87},
					},
				),
			),
		),
	)
}
