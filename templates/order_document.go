package templates

import (
	"net/url"
	"strings"

	"orderbook/services"
)

// companyContact joins the letterhead contact line, skipping blank parts.
func companyContact(c services.CompanyInfo) string {
	var parts []string
	for _, p := range []string{c.Address, c.Email, c.Phone} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if c.GSTIN != "" {
		parts = append(parts, "GSTIN: "+c.GSTIN)
	}
	return strings.Join(parts, " | ")
}

func detailFields(doc services.OrderDocument) []services.OrderDocumentField {
	return append([]services.OrderDocumentField{{Label: "Status", Value: doc.Status}}, doc.Details...)
}

func totalFields(doc services.OrderDocument) []services.OrderDocumentField {
	return []services.OrderDocumentField{
		{Label: "Subtotal", Value: doc.Subtotal},
		{Label: doc.GSTLabel, Value: doc.GST},
		{Label: "Total", Value: doc.Total},
	}
}

func printURL(orderNo string) string {
	return "/orders/" + url.PathEscape(orderNo) + "/print"
}
