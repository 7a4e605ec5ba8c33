package templates

import (
	"net/url"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"orderbook/services"
)

// OrderListTarget is the element id the list fragments swap into.
const OrderListTarget = "order-table"

// OrderListData feeds the order list page.
type OrderListData struct {
	View services.OrderListView
	Now  time.Time
}

type listColumn struct {
	col   services.SortColumn
	label string
	num   bool
}

var listColumns = []listColumn{
	{services.SortOrderNo, "Order No", false},
	{services.SortDate, "Date", false},
	{services.SortCustomerName, "Customer", false},
	{services.SortContactPerson, "Contact", false},
	{services.SortPhone, "Phone", false},
	{services.SortMachineName, "Machine", false},
	{services.SortStatus, "Status", false},
	{services.SortItemsCount, "Items", true},
	{services.SortTotal, "Total", true},
	{services.SortCreatedDate, "Created", false},
}

// ListURL encodes q as an /orders link. Default values are left out.
func ListURL(q services.ListQuery) string {
	v := url.Values{}
	if q.Status != "" && q.Status != services.StatusAll {
		v.Set("status", q.Status)
	}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Sort != services.SortNone {
		v.Set("sort", string(q.Sort))
		v.Set("dir", string(q.Dir))
	}
	if q.Page > 1 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 && q.PageSize != services.DefaultPageSize {
		v.Set("page_size", strconv.Itoa(q.PageSize))
	}
	if len(v) == 0 {
		return "/orders"
	}
	return "/orders?" + v.Encode()
}

type hiddenField struct {
	name  string
	value string
}

// queryState is the toolbar state the table carries for the list-query form.
func queryState(view services.OrderListView) []hiddenField {
	q := view.Query
	return []hiddenField{
		{"sort", string(q.Sort)},
		{"dir", string(q.Dir)},
		{"page", strconv.Itoa(view.Page)},
		{"page_size", strconv.Itoa(q.PageSize)},
		{"prev_status", q.Status},
	}
}

func pageURL(q services.ListQuery, page int) string {
	q.Page = page
	return ListURL(q)
}

func orderURL(orderNo, suffix string) string {
	return "/orders/" + url.PathEscape(orderNo) + suffix
}

func statusFilterOptions() []string {
	out := []string{services.StatusAll}
	for _, s := range services.Statuses {
		out = append(out, string(s))
	}
	return out
}

func sortIndicator(q services.ListQuery, col services.SortColumn) string {
	if q.Sort != col {
		return ""
	}
	if q.Dir == services.SortDesc {
		return " ▼"
	}
	return " ▲"
}

func showingText(view services.OrderListView) string {
	if view.Empty {
		return "Showing 0 of " + strconv.Itoa(view.Total)
	}
	return "Showing " + strconv.Itoa(view.From) + "–" + strconv.Itoa(view.To) + " of " + strconv.Itoa(view.Total)
}

// createdAgo renders an RFC 3339 timestamp relative to now.
func createdAgo(created string, now time.Time) string {
	t, err := time.Parse(time.RFC3339, created)
	if err != nil {
		return created
	}
	if now.IsZero() {
		now = time.Now()
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
