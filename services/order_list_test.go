package services

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrders() []Order {
	return []Order{
		{OrderNo: "ORD-003", CustomerName: "Charlie Mills", Status: StatusNew, Date: "2024-03-01", Total: 300, Items: make([]LineItem, 3), CreatedDate: "2024-03-01T10:00:00Z"},
		{OrderNo: "ORD-001", CustomerName: "alpha works", Status: StatusCompleted, Date: "2024-01-15", Total: 1000, Items: make([]LineItem, 1), CreatedDate: "2024-01-15T10:00:00Z"},
		{OrderNo: "ORD-002", CustomerName: "Bravo Ltd", Status: StatusNew, Date: "2024-02-10", Total: 50, Items: make([]LineItem, 2), CreatedDate: "2024-02-10T10:00:00Z"},
	}
}

func orderNos(orders []Order) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.OrderNo
	}
	return out
}

func TestFilterByStatus(t *testing.T) {
	orders := sampleOrders()

	assert.Equal(t, []string{"ORD-003", "ORD-002"}, orderNos(FilterByStatus(orders, "New")))
	assert.Equal(t, []string{"ORD-001"}, orderNos(FilterByStatus(orders, "Completed")))
	assert.Empty(t, FilterByStatus(orders, "Rejected"))
	assert.Len(t, FilterByStatus(orders, StatusAll), 3)
	assert.Len(t, FilterByStatus(orders, ""), 3)
	// exact match only
	assert.Empty(t, FilterByStatus(orders, "new"))
}

func TestSearchOrders(t *testing.T) {
	orders := sampleOrders()

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"ORD-003", "ORD-001", "ORD-002"}},
		{"   ", []string{"ORD-003", "ORD-001", "ORD-002"}},
		{"ALPHA", []string{"ORD-001"}},
		{" bravo ", []string{"ORD-002"}},
		{"ord-00", []string{"ORD-003", "ORD-001", "ORD-002"}},
		{"003", []string{"ORD-003"}},
		{"zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, orderNos(SearchOrders(orders, tt.query)))
		})
	}
}

func TestSortOrders_Columns(t *testing.T) {
	orders := sampleOrders()

	tests := []struct {
		col  SortColumn
		dir  SortDir
		want []string
	}{
		{SortOrderNo, SortAsc, []string{"ORD-001", "ORD-002", "ORD-003"}},
		{SortOrderNo, SortDesc, []string{"ORD-003", "ORD-002", "ORD-001"}},
		{SortCustomerName, SortAsc, []string{"ORD-001", "ORD-002", "ORD-003"}},
		{SortTotal, SortAsc, []string{"ORD-002", "ORD-003", "ORD-001"}},
		{SortTotal, SortDesc, []string{"ORD-001", "ORD-003", "ORD-002"}},
		{SortItemsCount, SortAsc, []string{"ORD-001", "ORD-002", "ORD-003"}},
		{SortDate, SortAsc, []string{"ORD-001", "ORD-002", "ORD-003"}},
		{SortCreatedDate, SortDesc, []string{"ORD-003", "ORD-002", "ORD-001"}},
		{SortNone, SortAsc, []string{"ORD-003", "ORD-001", "ORD-002"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.col)+"_"+string(tt.dir), func(t *testing.T) {
			assert.Equal(t, tt.want, orderNos(SortOrders(orders, tt.col, tt.dir)))
		})
	}

	// input order is preserved
	assert.Equal(t, []string{"ORD-003", "ORD-001", "ORD-002"}, orderNos(orders))
}

func TestSortOrders_StableOnTies(t *testing.T) {
	orders := []Order{
		{OrderNo: "A", Status: StatusNew},
		{OrderNo: "B", Status: StatusCompleted},
		{OrderNo: "C", Status: StatusNew},
	}
	assert.Equal(t, []string{"B", "A", "C"}, orderNos(SortOrders(orders, SortStatus, SortAsc)))
	assert.Equal(t, []string{"C", "A", "B"}, orderNos(SortOrders(orders, SortStatus, SortDesc)))
}

func TestSortOrders_ToggleIsExactReverse(t *testing.T) {
	orders := []Order{
		{OrderNo: "A", Total: 100},
		{OrderNo: "B", Total: 50},
		{OrderNo: "C", Total: 100},
	}

	q := DefaultListQuery(50).ToggleSort(SortTotal)
	asc := orderNos(SortOrders(orders, q.Sort, q.Dir))
	q = q.ToggleSort(SortTotal)
	desc := orderNos(SortOrders(orders, q.Sort, q.Dir))

	assert.Equal(t, []string{"B", "A", "C"}, asc)
	reversed := slices.Clone(asc)
	slices.Reverse(reversed)
	assert.Equal(t, reversed, desc)
}

func TestListQuery_ToggleSort(t *testing.T) {
	q := DefaultListQuery(50)

	q = q.ToggleSort(SortTotal)
	assert.Equal(t, SortTotal, q.Sort)
	assert.Equal(t, SortAsc, q.Dir)

	q = q.ToggleSort(SortTotal)
	assert.Equal(t, SortDesc, q.Dir)

	q = q.ToggleSort(SortTotal)
	assert.Equal(t, SortAsc, q.Dir)

	q = q.ToggleSort(SortTotal).ToggleSort(SortCustomerName)
	assert.Equal(t, SortCustomerName, q.Sort)
	assert.Equal(t, SortAsc, q.Dir)
}

func TestListQuery_WithStatusResetsPage(t *testing.T) {
	q := DefaultListQuery(10)
	q.Page = 4

	assert.Equal(t, 4, q.WithSearch("acme").Page)
	assert.Equal(t, 4, q.ToggleSort(SortDate).Page)

	q = q.WithStatus("Completed")
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, "Completed", q.Status)
}

func TestDefaultListQuery(t *testing.T) {
	q := DefaultListQuery(0)
	assert.Equal(t, StatusAll, q.Status)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, DefaultPageSize, q.PageSize)
	assert.Equal(t, SortNone, q.Sort)
}

func TestParseSortColumnAndDir(t *testing.T) {
	assert.Equal(t, SortMachineName, ParseSortColumn("machineName"))
	assert.Equal(t, SortNone, ParseSortColumn("drop table"))
	assert.Equal(t, SortDesc, ParseSortDir("DESC"))
	assert.Equal(t, SortAsc, ParseSortDir("sideways"))
}

func TestBuildOrderListView_Counts(t *testing.T) {
	orders := sampleOrders()
	q := DefaultListQuery(3).ToggleSort(SortOrderNo)
	q.Page = 2

	view := BuildOrderListView(orders, q, PageMeta{Page: 2, PageSize: 3, TotalOrders: 7, TotalPages: 3})

	assert.Equal(t, []string{"ORD-001", "ORD-002", "ORD-003"}, orderNos(view.Rows))
	assert.Equal(t, 4, view.From)
	assert.Equal(t, 6, view.To)
	assert.Equal(t, 7, view.Total)
	assert.True(t, view.HasPrev)
	assert.True(t, view.HasNext)
	assert.False(t, view.Empty)
}

func TestBuildOrderListView_FilteredCounts(t *testing.T) {
	view := BuildOrderListView(sampleOrders(), DefaultListQuery(50).WithStatus("New"),
		PageMeta{Page: 1, PageSize: 50, TotalOrders: 3, TotalPages: 1})

	require.Len(t, view.Rows, 2)
	assert.Equal(t, 1, view.From)
	assert.Equal(t, 2, view.To)
	assert.False(t, view.HasPrev)
	assert.False(t, view.HasNext)
}

func TestBuildOrderListView_EmptyMessages(t *testing.T) {
	t.Run("no orders at all", func(t *testing.T) {
		view := BuildOrderListView(nil, DefaultListQuery(50), PageMeta{Page: 1, PageSize: 50})
		assert.True(t, view.Empty)
		assert.Equal(t, "No orders yet. Create your first order to see it here.", view.EmptyMessage)
		assert.Zero(t, view.From)
		assert.Zero(t, view.To)
		assert.False(t, view.HasNext)
	})

	t.Run("nothing matches", func(t *testing.T) {
		view := BuildOrderListView(sampleOrders(), DefaultListQuery(50).WithSearch("nobody"),
			PageMeta{Page: 1, PageSize: 50, TotalOrders: 3, TotalPages: 1})
		assert.True(t, view.Empty)
		assert.Equal(t, "No orders found matching the current filter or search.", view.EmptyMessage)
		assert.Zero(t, view.From)
	})
}

func TestBuildOrderListView_DoesNotMutateInput(t *testing.T) {
	orders := sampleOrders()
	_ = BuildOrderListView(orders, DefaultListQuery(50).ToggleSort(SortTotal), PageMeta{Page: 1, PageSize: 50, TotalOrders: 3, TotalPages: 1})
	assert.Equal(t, sampleOrders(), orders)
}

func TestParseOrderDate(t *testing.T) {
	want := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	assert.True(t, ParseOrderDate("2024-03-09").Equal(want))
	assert.True(t, ParseOrderDate("09-03-2024").Equal(want))
	assert.True(t, ParseOrderDate("09/03/2024").Equal(want))
	assert.True(t, ParseOrderDate("2024-03-09T00:00:00Z").Equal(want))
	assert.True(t, ParseOrderDate("not a date").IsZero())
}

func TestTotalPagesAndNormalize(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 50))
	assert.Equal(t, 1, TotalPages(50, 50))
	assert.Equal(t, 2, TotalPages(51, 50))
	assert.Equal(t, 0, TotalPages(10, 0))

	page, size := NormalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, size)
}
