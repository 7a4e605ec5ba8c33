package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	pdfDark  = &props.Color{Red: 33, Green: 37, Blue: 41}
	pdfGrey  = &props.Color{Red: 100, Green: 100, Blue: 100}
	pdfWhite = &props.Color{Red: 255, Green: 255, Blue: 255}
	pdfAlt   = &props.Color{Red: 248, Green: 249, Blue: 250}
	pdfLight = &props.Color{Red: 245, Green: 245, Blue: 245}
)

// GenerateOrderPDF renders a single order as an A4 PDF.
func GenerateOrderPDF(doc OrderDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addOrderLetterhead(m, doc)
	addOrderParties(m, doc)
	addOrderItemsTable(m, doc)
	addOrderTotals(m, doc)
	addOrderRemarks(m, doc)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate order pdf: %w", err)
	}
	return out.GetBytes(), nil
}

func addOrderLetterhead(m core.Maroto, doc OrderDocument) {
	m.AddRows(
		row.New(10).Add(
			col.New(7).Add(text.New(doc.Company.Name, props.Text{Size: 14, Style: fontstyle.Bold})),
			col.New(5).Add(text.New("SALES ORDER", props.Text{
				Size:  14,
				Style: fontstyle.Bold,
				Align: align.Right,
				Color: pdfDark,
			})),
		),
	)

	contact := joinNonEmpty(" | ", doc.Company.Address, doc.Company.Email, doc.Company.Phone)
	if doc.Company.GSTIN != "" {
		contact = joinNonEmpty(" | ", contact, "GSTIN: "+doc.Company.GSTIN)
	}
	m.AddRows(
		row.New(8).Add(
			col.New(7).Add(text.New(contact, props.Text{Size: 8, Color: pdfGrey})),
			col.New(5).Add(text.New("Order #: "+doc.OrderNo, props.Text{
				Size:  10,
				Style: fontstyle.Bold,
				Align: align.Right,
			})),
		),
	)
	m.AddRows(row.New(3))
}

// addOrderParties prints the customer block on the left and the order
// details on the right, one field per row.
func addOrderParties(m core.Maroto, doc OrderDocument) {
	label := props.Text{Size: 7, Style: fontstyle.Bold, Color: pdfGrey}
	rightLabel := label
	rightLabel.Align = align.Right
	value := props.Text{Size: 8}
	rightValue := props.Text{Size: 8, Align: align.Right}

	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(text.New("CUSTOMER", label)),
			col.New(6).Add(text.New("ORDER DETAILS", rightLabel)),
		),
	)

	left := []string{doc.CustomerName}
	for _, f := range doc.Customer {
		left = append(left, f.Label+": "+f.Value)
	}
	details := append([]OrderDocumentField{{Label: "Status", Value: doc.Status}}, doc.Details...)

	for i := 0; i < max(len(left), len(details)); i++ {
		leftCol := col.New(6)
		if i < len(left) {
			style := value
			if i == 0 {
				style.Style = fontstyle.Bold
				style.Size = 9
			}
			leftCol.Add(text.New(left[i], style))
		}
		labelCol, valueCol := col.New(3), col.New(3)
		if i < len(details) {
			labelCol.Add(text.New(details[i].Label+":", rightLabel))
			valueCol.Add(text.New(details[i].Value, rightValue))
		}
		m.AddRows(row.New(6).Add(leftCol, labelCol, valueCol))
	}
	m.AddRows(row.New(3))
}

func addOrderItemsTable(m core.Maroto, doc OrderDocument) {
	head := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Center, Color: pdfWhite}
	headLeft := head
	headLeft.Align = align.Left
	headCell := &props.Cell{BackgroundColor: pdfDark}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("Sl No", head)).WithStyle(headCell),
			col.New(2).Add(text.New("Type", headLeft)).WithStyle(headCell),
			col.New(1).Add(text.New("Qty", head)).WithStyle(headCell),
			col.New(1).Add(text.New("Length", head)).WithStyle(headCell),
			col.New(1).Add(text.New("Dia", head)).WithStyle(headCell),
			col.New(1).Add(text.New("Shore", head)).WithStyle(headCell),
			col.New(1).Add(text.New("Remarks", headLeft)).WithStyle(headCell),
			col.New(2).Add(text.New("Rate (Rs.)", head)).WithStyle(headCell),
			col.New(2).Add(text.New("Amount (Rs.)", head)).WithStyle(headCell),
		),
	)

	center := props.Text{Size: 7, Align: align.Center}
	left := props.Text{Size: 7}
	right := props.Text{Size: 7, Align: align.Right}

	for i, line := range doc.Lines {
		cols := []core.Col{
			col.New(1).Add(text.New(strconv.Itoa(line.SlNo), center)),
			col.New(2).Add(text.New(line.Type, left)),
			col.New(1).Add(text.New(line.Qty, right)),
			col.New(1).Add(text.New(line.Length, center)),
			col.New(1).Add(text.New(line.Dia, center)),
			col.New(1).Add(text.New(line.Shore, center)),
			col.New(1).Add(text.New(line.Remarks, left)),
			col.New(2).Add(text.New(line.Rate, right)),
			col.New(2).Add(text.New(line.Amount, right)),
		}
		if i%2 == 1 {
			for _, c := range cols {
				c.WithStyle(&props.Cell{BackgroundColor: pdfAlt})
			}
		}
		m.AddRows(row.New(7).Add(cols...))
	}
	m.AddRows(row.New(2))
}

func addOrderTotals(m core.Maroto, doc OrderDocument) {
	summaryCell := &props.Cell{BackgroundColor: pdfLight}
	label := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}
	value := props.Text{Size: 8, Align: align.Right}

	for _, line := range []OrderDocumentField{
		{Label: "Subtotal", Value: doc.Subtotal},
		{Label: doc.GSTLabel, Value: doc.GST},
	} {
		m.AddRows(
			row.New(7).Add(
				col.New(9).Add(text.New(line.Label, label)).WithStyle(summaryCell),
				col.New(3).Add(text.New(line.Value, value)).WithStyle(summaryCell),
			),
		)
	}

	grand := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Color: pdfWhite}
	grandCell := &props.Cell{BackgroundColor: pdfDark}
	m.AddRows(
		row.New(8).Add(
			col.New(9).Add(text.New("Total", grand)).WithStyle(grandCell),
			col.New(3).Add(text.New(doc.Total, grand)).WithStyle(grandCell),
		),
	)
	m.AddRows(row.New(3))

	if doc.AmountInWords != "" {
		m.AddRows(
			row.New(8).Add(
				col.New(12).Add(text.New("Amount in Words: "+doc.AmountInWords, props.Text{
					Size:  8,
					Style: fontstyle.BoldItalic,
				})),
			),
		)
	}
}

func addOrderRemarks(m core.Maroto, doc OrderDocument) {
	if strings.TrimSpace(doc.Remarks) == "" {
		return
	}
	m.AddRows(row.New(3))
	m.AddRows(row.New(6).Add(col.New(12).Add(text.New("REMARKS", props.Text{Size: 7, Style: fontstyle.Bold, Color: pdfGrey}))))
	m.AddRows(row.New(7).Add(col.New(12).Add(text.New(doc.Remarks, props.Text{Size: 8}))))
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
