package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// QuoteLine is a single design package on a quote.
type QuoteLine struct {
	Title string
	Price float64
}

// QuoteData carries everything needed to render a design quote PDF.
type QuoteData struct {
	QuoteNumber    string
	Date           string
	Status         string
	ClientName     string
	ClientEmail    string
	ClientPhone    string
	Lines          []QuoteLine
	Totals         DesignTotals
	Timeline       string
	TurnaroundDays int
}

// Banking details printed on every quote so EFT customers can pay by
// reference.
const (
	bankAccountName = "BizPrint (Pty) Ltd"
	bankName        = "ABSA Bank"
	bankAccountNo   = "1234567890"
	bankBranchCode  = "632005"
)

// GenerateQuotePDF renders a design request quote using maroto/v2 and
// returns the raw PDF bytes.
func GenerateQuotePDF(data QuoteData) ([]byte, error) {
	m := newDocument()

	addDocumentHeader(m, "QUOTATION", []kv{
		{"Quote #:", data.QuoteNumber},
		{"Date:", data.Date},
		{"Status:", data.Status},
	})
	addClientBlock(m, data.ClientName, data.ClientEmail, data.ClientPhone)
	addQuoteLines(m, data.Lines)
	addQuoteTotals(m, data.Totals)
	addTurnaround(m, data.Timeline, data.TurnaroundDays)
	addBankingDetails(m, data.QuoteNumber)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate quote PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

type kv struct {
	label string
	value string
}

func newDocument() core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()
	return maroto.New(cfg)
}

// addDocumentHeader renders the document title and the key/value block
// beneath it (number, date, status).
func addDocumentHeader(m core.Maroto, title string, pairs []kv) {
	m.AddRows(
		row.New(14).Add(
			col.New(12).Add(
				text.New(title, props.Text{
					Size:  18,
					Style: fontstyle.Bold,
					Align: align.Center,
					Color: &props.Color{Red: 29, Green: 53, Blue: 87},
				}),
			),
		),
	)
	m.AddRows(row.New(3))

	for _, p := range pairs {
		m.AddRows(
			row.New(6).Add(
				col.New(3).Add(
					text.New(p.label, props.Text{
						Size:  9,
						Style: fontstyle.Bold,
						Align: align.Left,
						Color: &props.Color{Red: 29, Green: 53, Blue: 87},
					}),
				),
				col.New(9).Add(
					text.New(p.value, props.Text{Size: 9, Align: align.Left}),
				),
			),
		)
	}
	m.AddRows(row.New(4))
}

// addClientBlock renders the "Prepared For" section.
func addClientBlock(m core.Maroto, name, email, phone string) {
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New("Prepared For:", props.Text{
					Size:  12,
					Style: fontstyle.Bold,
					Align: align.Left,
					Color: &props.Color{Red: 29, Green: 53, Blue: 87},
				}),
			),
		),
	)

	lines := []string{name, email}
	if phone != "" {
		lines = append(lines, phone)
	}
	for _, line := range lines {
		m.AddRows(
			row.New(5).Add(
				col.New(12).Add(
					text.New(line, props.Text{Size: 9, Align: align.Left}),
				),
			),
		)
	}
	m.AddRows(row.New(4))
}

// addQuoteLines renders the package table.
func addQuoteLines(m core.Maroto, lines []QuoteLine) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerCell := props.Cell{BackgroundColor: headerBg}
	headerText := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextRight := headerText
	headerTextRight.Align = align.Right

	m.AddRows(
		row.New(8).Add(
			col.New(9).Add(text.New("Package", headerText)).WithStyle(&headerCell),
			col.New(3).Add(text.New("Price (R)", headerTextRight)).WithStyle(&headerCell),
		),
	)

	rowBg := &props.Color{Red: 245, Green: 245, Blue: 245}
	rowCell := &props.Cell{BackgroundColor: rowBg}
	for i, line := range lines {
		nameText := props.Text{Size: 9, Align: align.Left}
		priceText := props.Text{Size: 9, Align: align.Right}

		nameCol := col.New(9).Add(text.New(line.Title, nameText))
		priceCol := col.New(3).Add(text.New(FormatZAR(line.Price), priceText))
		if i%2 == 1 {
			nameCol = nameCol.WithStyle(rowCell)
			priceCol = priceCol.WithStyle(rowCell)
		}
		m.AddRows(row.New(7).Add(nameCol, priceCol))
	}
	m.AddRows(row.New(4))
}

// addQuoteTotals renders the totals block, including the rush fee rows only
// when a rush fee applies.
func addQuoteTotals(m core.Maroto, totals DesignTotals) {
	rows := []kv{
		{"Subtotal:", FormatZAR(totals.Subtotal)},
	}
	if totals.RushFee > 0 {
		rows = append(rows,
			kv{"Rush Fee (50%):", FormatZAR(totals.RushFee)},
			kv{"Subtotal with Rush:", FormatZAR(totals.SubtotalWithRush)},
		)
	}
	rows = append(rows,
		kv{"VAT (15%):", FormatZAR(totals.VAT)},
		kv{"Total:", FormatZAR(totals.Total)},
	)

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}
	for _, r := range rows {
		labelStyle := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
		valueStyle := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
		m.AddRows(
			row.New(7).Add(
				col.New(9).Add(text.New(r.label, labelStyle)).WithStyle(summaryCell),
				col.New(3).Add(text.New(r.value, valueStyle)).WithStyle(summaryCell),
			),
		)
	}
}

// addTurnaround renders the estimated turnaround line.
func addTurnaround(m core.Maroto, timeline string, days int) {
	line := fmt.Sprintf("Estimated Turnaround Time: %d business days", days)
	if timeline != "" {
		line += fmt.Sprintf(" (%s timeline)", timeline)
	}
	m.AddRows(row.New(4))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(line, props.Text{
					Size:  9,
					Style: fontstyle.Bold,
					Align: align.Left,
					Color: &props.Color{Red: 29, Green: 53, Blue: 87},
				}),
			),
		),
	)
}

// addBankingDetails renders the EFT banking block with the quote reference.
func addBankingDetails(m core.Maroto, reference string) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(
				text.New("Banking Details:", props.Text{
					Size:  11,
					Style: fontstyle.Bold,
					Align: align.Left,
					Color: &props.Color{Red: 29, Green: 53, Blue: 87},
				}),
			),
		),
	)

	lines := []string{
		"Account Name: " + bankAccountName,
		"Bank: " + bankName,
		"Account Number: " + bankAccountNo,
		"Branch Code: " + bankBranchCode,
		"Reference: Quote " + reference,
	}
	for _, line := range lines {
		m.AddRows(
			row.New(5).Add(
				col.New(12).Add(
					text.New(line, props.Text{Size: 9, Align: align.Left}),
				),
			),
		)
	}
}
