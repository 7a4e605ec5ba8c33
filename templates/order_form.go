package templates

import (
	"strconv"

	"orderbook/services"
)

// OrderFormData feeds the order entry screen. ItemsJSON is the encoded item
// list carried between editor requests.
type OrderFormData struct {
	Form             services.OrderForm
	Totals           services.OrderTotals
	ItemsJSON        string
	SubmitToken      string
	Errors           map[string]string
	ConfirmOverwrite bool
	IsEdit           bool
}

type formField struct {
	label     string
	name      string
	value     string
	errorKey  string
	inputType string
}

func orderFormTitle(data OrderFormData) string {
	if data.IsEdit {
		return "Edit Order " + data.Form.OrderNo
	}
	return "New Order"
}

func headerFields(f services.OrderForm) []formField {
	return []formField{
		{"Order No (blank to generate)", "order_no", f.OrderNo, "orderNo", "text"},
		{"Date", "date", f.Date, "date", "date"},
		{"Customer Name", "customer_name", f.CustomerName, "customerName", "text"},
		{"Contact Person", "contact_person", f.ContactPerson, "contactPerson", "text"},
		{"Phone", "phone", f.Phone, "phone", "tel"},
		{"Machine Name", "machine_name", f.MachineName, "machineName", "text"},
		{"Buyer's Order No", "buyer_order_no", f.BuyerOrderNo, "buyerOrderNo", "text"},
		{"Buyer's Order Date", "buyer_order_date", f.BuyerOrderDate, "buyerOrderDate", "date"},
		{"Delivery Note", "delivery_note", f.DeliveryNote, "deliveryNote", "text"},
		{"Delivery Note Date", "delivery_note_date", f.DeliveryNoteDate, "deliveryNoteDate", "date"},
		{"GST %", "gst_percent", formatPercent(f.GSTPercent), "gstPercent", "number"},
	}
}

// indexVals is the hx-vals payload naming the item a row button acts on.
func indexVals(index int) string {
	return `{"index":"` + strconv.Itoa(index) + `"}`
}

func formatQty(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
