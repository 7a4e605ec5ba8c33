package services

import (
	"fmt"
	"strconv"
)

// CompanyInfo is the letterhead printed on order documents.
type CompanyInfo struct {
	Name    string
	Address string
	Email   string
	Phone   string
	GSTIN   string
}

// OrderDocumentLine is one formatted item row of a printed order.
type OrderDocumentLine struct {
	SlNo    int
	Type    string
	Qty     string
	Length  string
	Dia     string
	Shore   string
	Remarks string
	Rate    string
	Amount  string
}

// OrderDocumentField is a labelled header value; empty values are skipped
// by the renderers.
type OrderDocumentField struct {
	Label string
	Value string
}

// OrderDocument holds everything the printable HTML and the PDF show,
// already formatted for display.
type OrderDocument struct {
	Company CompanyInfo

	OrderNo      string
	Date         string
	Status       string
	CustomerName string
	Customer     []OrderDocumentField
	Details      []OrderDocumentField

	Lines []OrderDocumentLine

	Subtotal      string
	GSTLabel      string
	GST           string
	Total         string
	AmountInWords string
	Remarks       string
}

// BuildOrderDocument formats an order for printing.
func BuildOrderDocument(o Order, company CompanyInfo) OrderDocument {
	doc := OrderDocument{
		Company:      company,
		OrderNo:      o.OrderNo,
		Date:         o.Date,
		Status:       string(o.Status),
		CustomerName: o.CustomerName,
		Customer: nonEmptyFields(
			OrderDocumentField{"Contact Person", o.ContactPerson},
			OrderDocumentField{"Phone", o.Phone},
		),
		Details: nonEmptyFields(
			OrderDocumentField{"Order Date", o.Date},
			OrderDocumentField{"Machine", o.MachineName},
			OrderDocumentField{"Buyer's Order No", o.BuyerOrderNo},
			OrderDocumentField{"Buyer's Order Date", o.BuyerOrderDate},
			OrderDocumentField{"Delivery Note", o.DeliveryNote},
			OrderDocumentField{"Delivery Note Date", o.DeliveryNoteDate},
		),
		Subtotal:      FormatINR(o.Subtotal),
		GSTLabel:      fmt.Sprintf("GST %s%%", strconv.FormatFloat(o.GSTPercent, 'f', -1, 64)),
		GST:           FormatINR(o.GST),
		Total:         FormatINR(o.Total),
		AmountInWords: AmountInWords(o.Total),
		Remarks:       o.Remarks,
	}

	for _, item := range o.Items {
		qty := ""
		if item.Qty != 0 {
			qty = formatNumber(item.Qty)
		}
		doc.Lines = append(doc.Lines, OrderDocumentLine{
			SlNo:    item.SlNo,
			Type:    item.Type,
			Qty:     qty,
			Length:  item.Length,
			Dia:     item.Dia,
			Shore:   item.Shore,
			Remarks: item.Remarks,
			Rate:    FormatAmount(item.Rate),
			Amount:  FormatAmount(item.Amount),
		})
	}
	return doc
}

func nonEmptyFields(fields ...OrderDocumentField) []OrderDocumentField {
	var out []OrderDocumentField
	for _, f := range fields {
		if f.Value != "" {
			out = append(out, f)
		}
	}
	return out
}
