package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"orderbook/services"
)

func TestOrderDocumentPage(t *testing.T) {
	order := services.Order{
		OrderNo:       "ORD/9",
		Date:          "2024-03-09",
		CustomerName:  "Acme Rollers",
		ContactPerson: "R. Iyer",
		Status:        services.StatusInProgress,
		MachineName:   "Calender 2",
		GSTPercent:    18,
		Remarks:       "Deliver <before> Friday",
		Items: []services.LineItem{
			{SlNo: 1, Type: "Roller", Qty: 2, Shore: "60A", Rate: 50, Amount: 100},
			{SlNo: 2, Type: "Sleeve", Rate: 150, Amount: 150},
		},
	}
	order.Recalculate()
	doc := services.BuildOrderDocument(order, services.CompanyInfo{Name: "Acme Rubber Works", Phone: "080-1234", GSTIN: "29ABC"})

	out := renderString(t, OrderDocumentPage(doc))

	assert.Contains(t, out, "<title>Order ORD/9</title>")
	assert.Contains(t, out, "SALES ORDER")
	assert.Contains(t, out, "080-1234 | GSTIN: 29ABC")
	assert.Contains(t, out, "<dt>Contact Person</dt><dd>R. Iyer</dd>")
	assert.Contains(t, out, "<dt>Status</dt><dd>In Progress</dd>")
	assert.Contains(t, out, "<dt>Machine</dt><dd>Calender 2</dd>")
	assert.Contains(t, out, "<td>60A</td>")
	assert.Contains(t, out, "<th>Amount (₹)</th>")
	assert.Contains(t, out, `<td class="num">100.00</td>`)
	assert.Contains(t, out, "₹295.00")
	assert.Contains(t, out, "GST 18%")
	assert.Contains(t, out, "Amount in Words")
	assert.Contains(t, out, "Deliver &lt;before&gt; Friday")
	assert.Contains(t, out, `action="/orders/ORD%2F9/print"`)
}

func TestCompanyContact_SkipsBlankParts(t *testing.T) {
	assert.Equal(t, "", companyContact(services.CompanyInfo{Name: "Acme"}))
	assert.Equal(t, "GSTIN: 29ABC", companyContact(services.CompanyInfo{GSTIN: "29ABC"}))
	assert.Equal(t, "12 Mill Rd | sales@acme.in | 080-1234",
		companyContact(services.CompanyInfo{Address: "12 Mill Rd", Email: "sales@acme.in", Phone: "080-1234"}))
}

func TestOrderDocumentPage_OmitsEmptySections(t *testing.T) {
	doc := services.BuildOrderDocument(services.Order{OrderNo: "ORD-1", Status: services.StatusNew}, services.CompanyInfo{Name: "Acme"})

	out := renderString(t, OrderDocumentPage(doc))

	assert.NotContains(t, out, "<h3>Remarks</h3>")
	assert.Contains(t, out, "<dt>Status</dt><dd>New</dd>")
}
