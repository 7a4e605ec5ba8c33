package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"orderbook/services"
)

var listNow = time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)

func listOrders() []services.Order {
	return []services.Order{
		{OrderNo: "ORD-2", CustomerName: "Bravo & Sons", Status: services.StatusCompleted, Total: 1234567.8, Items: make([]services.LineItem, 2), CreatedDate: "2024-03-09T10:00:00Z"},
		{OrderNo: "ORD 1", CustomerName: "Alpha", Status: services.StatusNew, Total: 50, Items: make([]services.LineItem, 1), CreatedDate: "2024-03-01T10:00:00Z"},
	}
}

func TestListURL(t *testing.T) {
	q := services.DefaultListQuery(services.DefaultPageSize)
	assert.Equal(t, "/orders", ListURL(q))

	q = q.WithStatus("In Progress").WithSearch("acme").ToggleSort(services.SortTotal)
	q.Page = 2
	q.PageSize = 10
	assert.Equal(t, "/orders?dir=asc&page=2&page_size=10&q=acme&sort=total&status=In+Progress", ListURL(q))
}

func TestOrderTable_Rows(t *testing.T) {
	view := services.BuildOrderListView(listOrders(), services.DefaultListQuery(50),
		services.PageMeta{Page: 1, PageSize: 50, TotalOrders: 2, TotalPages: 1})
	out := renderString(t, OrderTable(OrderListData{View: view, Now: listNow}))

	assert.Contains(t, out, `<div id="order-table">`)
	assert.Contains(t, out, "Bravo &amp; Sons")
	assert.Contains(t, out, "₹12,34,567.80")
	assert.Contains(t, out, `href="/orders/ORD%201/edit"`)
	assert.Contains(t, out, `hx-post="/orders/ORD-2/status"`)
	assert.Contains(t, out, `<option value="Completed" selected>Completed</option>`)
	assert.Contains(t, out, "2 hours ago")
	assert.Contains(t, out, "Showing 1–2 of 2")
	assert.Contains(t, out, `name="prev_status" value="All"`)
	assert.NotContains(t, out, "No orders")
}

func TestOrderTable_SortIndicatorAndToggleLink(t *testing.T) {
	q := services.DefaultListQuery(50).ToggleSort(services.SortTotal)
	view := services.BuildOrderListView(listOrders(), q, services.PageMeta{Page: 1, PageSize: 50, TotalOrders: 2, TotalPages: 1})
	out := renderString(t, OrderTable(OrderListData{View: view, Now: listNow}))

	assert.Contains(t, out, "Total ▲")
	assert.Contains(t, out, `href="/orders?dir=desc&amp;sort=total"`)
}

func TestOrderTable_EmptyAndPager(t *testing.T) {
	q := services.DefaultListQuery(2)
	q.Page = 2
	view := services.BuildOrderListView(nil, q, services.PageMeta{Page: 2, PageSize: 2, TotalOrders: 5, TotalPages: 3})
	out := renderString(t, OrderTable(OrderListData{View: view, Now: listNow}))

	assert.Contains(t, out, "No orders yet.")
	assert.Contains(t, out, "Page 2 of 3")
	assert.Contains(t, out, `href="/orders?page=3&amp;page_size=2"`)
	assert.Contains(t, out, `href="/orders?page_size=2"`)
}

func TestOrderListContent_Toolbar(t *testing.T) {
	q := services.DefaultListQuery(50).WithStatus("Rejected").WithSearch(`"quoted"`)
	view := services.BuildOrderListView(nil, q, services.PageMeta{Page: 1, PageSize: 50})
	out := renderString(t, OrderListContent(OrderListData{View: view}))

	assert.Contains(t, out, `<option value="Rejected" selected>Rejected</option>`)
	assert.Contains(t, out, `value="&#34;quoted&#34;"`)
	assert.Contains(t, out, `hx-post="/orders/export"`)
}

func TestCreatedAgo(t *testing.T) {
	assert.Equal(t, "not a time", createdAgo("not a time", listNow))
	assert.Equal(t, "1 day ago", createdAgo("2024-03-08T12:00:00Z", listNow))
}
