package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/spf13/cast"

	"orderbook/services"
)

// parseOrderForm rebuilds the form state posted by the order entry screen.
// The form is filled as far as possible even when an error is returned, so
// it can be rendered again with the user's input.
func parseOrderForm(r *http.Request) (services.OrderForm, error) {
	f := services.OrderForm{
		OrderNo:          strings.TrimSpace(r.FormValue("order_no")),
		Date:             strings.TrimSpace(r.FormValue("date")),
		CustomerName:     r.FormValue("customer_name"),
		ContactPerson:    r.FormValue("contact_person"),
		Phone:            r.FormValue("phone"),
		MachineName:      r.FormValue("machine_name"),
		Remarks:          r.FormValue("remarks"),
		DeliveryNote:     r.FormValue("delivery_note"),
		DeliveryNoteDate: r.FormValue("delivery_note_date"),
		BuyerOrderNo:     r.FormValue("buyer_order_no"),
		BuyerOrderDate:   r.FormValue("buyer_order_date"),
		Status:           services.Status(r.FormValue("status")),
		CreatedDate:      r.FormValue("created_date"),
	}
	if f.Status == "" {
		f.Status = services.StatusNew
	}

	var items []services.LineItem
	if raw := strings.TrimSpace(r.FormValue("items_json")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			f.Editor = services.NewLineItemEditor(nil)
			return f, &services.ValidationError{Field: "items", Message: "item list could not be read, please add the items again"}
		}
	}
	f.Editor = services.NewLineItemEditor(items)
	f.Editor.Draft = services.LineItemDraft{
		Type:    r.FormValue("item_type"),
		Qty:     r.FormValue("item_qty"),
		Length:  r.FormValue("item_length"),
		Dia:     r.FormValue("item_dia"),
		Shore:   r.FormValue("item_shore"),
		Remarks: r.FormValue("item_remarks"),
		Rate:    r.FormValue("item_rate"),
	}
	f.Editor.Editing = parseEditing(r.FormValue("editing"), len(f.Editor.Items))

	gst := strings.TrimSpace(r.FormValue("gst_percent"))
	if gst == "" {
		return f, nil
	}
	pct, err := cast.ToFloat64E(gst)
	if err != nil {
		return f, &services.ValidationError{Field: "gstPercent", Message: "GST percent must be a number"}
	}
	f.GSTPercent = pct
	return f, nil
}

// parseEditing reads the index of the item being edited. A blank, malformed
// or out-of-range value means no item is being edited.
func parseEditing(raw string, count int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return services.NotEditing
	}
	editing, err := cast.ToIntE(raw)
	if err != nil || editing < 0 || editing >= count {
		return services.NotEditing
	}
	return editing
}

func encodeItems(items []services.LineItem) string {
	if len(items) == 0 {
		return "[]"
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// parseListQuery reads the list view state from the request. A change of
// the status filter (status differs from prev_status) starts again at page 1.
func parseListQuery(r *http.Request, defaultPageSize int) services.ListQuery {
	q := services.DefaultListQuery(defaultPageSize)

	if size := cast.ToInt(r.FormValue("page_size")); size > 0 {
		q.PageSize = size
	}
	if page := cast.ToInt(r.FormValue("page")); page > 0 {
		q.Page = page
	}
	q = q.WithSearch(strings.TrimSpace(r.FormValue("q")))

	if col := services.ParseSortColumn(r.FormValue("sort")); col != services.SortNone {
		q.Sort = col
		q.Dir = services.ParseSortDir(r.FormValue("dir"))
	}

	status := r.FormValue("status")
	if status == "" {
		status = services.StatusAll
	}
	prev := r.FormValue("prev_status")
	if prev != "" && prev != status {
		return q.WithStatus(status)
	}
	q.Status = status
	return q
}
