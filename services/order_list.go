package services

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// StatusAll disables the status filter.
const StatusAll = "All"

// SortColumn names a sortable column of the order list.
type SortColumn string

const (
	SortNone          SortColumn = ""
	SortOrderNo       SortColumn = "orderNo"
	SortDate          SortColumn = "date"
	SortCustomerName  SortColumn = "customerName"
	SortContactPerson SortColumn = "contactPerson"
	SortPhone         SortColumn = "phone"
	SortMachineName   SortColumn = "machineName"
	SortStatus        SortColumn = "status"
	SortItemsCount    SortColumn = "itemsCount"
	SortTotal         SortColumn = "total"
	SortCreatedDate   SortColumn = "createdDate"
)

var sortColumns = []SortColumn{
	SortOrderNo, SortDate, SortCustomerName, SortContactPerson, SortPhone,
	SortMachineName, SortStatus, SortItemsCount, SortTotal, SortCreatedDate,
}

// ParseSortColumn returns the column named s, or SortNone if s is unknown.
func ParseSortColumn(s string) SortColumn {
	for _, c := range sortColumns {
		if string(c) == s {
			return c
		}
	}
	return SortNone
}

// SortDir is the sort direction.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// ParseSortDir treats anything but "desc" as ascending.
func ParseSortDir(s string) SortDir {
	if strings.EqualFold(s, string(SortDesc)) {
		return SortDesc
	}
	return SortAsc
}

// ListQuery is everything the user controls on the order list.
type ListQuery struct {
	Status   string
	Search   string
	Sort     SortColumn
	Dir      SortDir
	Page     int
	PageSize int
}

// DefaultListQuery shows the first page of all orders, unsorted.
func DefaultListQuery(pageSize int) ListQuery {
	_, pageSize = NormalizePage(1, pageSize)
	return ListQuery{Status: StatusAll, Dir: SortAsc, Page: 1, PageSize: pageSize}
}

// WithStatus changes the status filter and goes back to the first page.
func (q ListQuery) WithStatus(status string) ListQuery {
	q.Status = status
	q.Page = 1
	return q
}

// WithSearch changes the search text. The page is kept.
func (q ListQuery) WithSearch(search string) ListQuery {
	q.Search = search
	return q
}

// ToggleSort is a click on a column header: the same column flips
// direction, another column starts ascending. The page is kept.
func (q ListQuery) ToggleSort(col SortColumn) ListQuery {
	if q.Sort == col && col != SortNone {
		if q.Dir == SortAsc {
			q.Dir = SortDesc
		} else {
			q.Dir = SortAsc
		}
		return q
	}
	q.Sort = col
	q.Dir = SortAsc
	return q
}

// PageMeta is the pagination state reported by the storage boundary for the
// unfiltered order set.
type PageMeta struct {
	Page        int
	PageSize    int
	TotalOrders int
	TotalPages  int
}

const (
	emptyNoOrders    = "No orders yet. Create your first order to see it here."
	emptyNoneMatches = "No orders found matching the current filter or search."
)

// OrderListView is the render-ready result of the list pipeline.
type OrderListView struct {
	Rows  []Order
	Query ListQuery

	// From and To are the 1-based positions of the first and last shown row
	// within the whole order set; both are 0 when nothing is shown.
	From       int
	To         int
	Total      int
	Page       int
	TotalPages int
	HasPrev    bool
	HasNext    bool

	Empty        bool
	EmptyMessage string
}

// BuildOrderListView runs status filter, search, sort and pagination
// bookkeeping over one loaded page. It does not modify orders.
func BuildOrderListView(orders []Order, q ListQuery, meta PageMeta) OrderListView {
	rows := FilterByStatus(orders, q.Status)
	rows = SearchOrders(rows, q.Search)
	rows = SortOrders(rows, q.Sort, q.Dir)

	page, pageSize := NormalizePage(meta.Page, meta.PageSize)

	view := OrderListView{
		Rows:       rows,
		Query:      q,
		Total:      meta.TotalOrders,
		Page:       page,
		TotalPages: meta.TotalPages,
		HasPrev:    page > 1,
		HasNext:    page < meta.TotalPages,
	}

	if len(rows) == 0 {
		view.Empty = true
		if len(orders) == 0 {
			view.EmptyMessage = emptyNoOrders
		} else {
			view.EmptyMessage = emptyNoneMatches
		}
		return view
	}

	view.From = (page-1)*pageSize + 1
	view.To = view.From + len(rows) - 1
	return view
}

// FilterByStatus keeps orders whose status equals status exactly. An empty
// status or StatusAll keeps everything. The result is always a new slice.
func FilterByStatus(orders []Order, status string) []Order {
	if status == "" || status == StatusAll {
		return slices.Clone(orders)
	}
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if string(o.Status) == status {
			out = append(out, o)
		}
	}
	return out
}

// SearchOrders keeps orders whose number or customer name contains the
// trimmed query, ignoring case. An empty query keeps everything.
func SearchOrders(orders []Order, query string) []Order {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return slices.Clone(orders)
	}
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if strings.Contains(strings.ToLower(o.OrderNo), query) ||
			strings.Contains(strings.ToLower(o.CustomerName), query) {
			out = append(out, o)
		}
	}
	return out
}

// SortOrders returns a sorted copy of orders. SortNone keeps the input order.
// Descending is the exact reverse of ascending, ties included, so toggling a
// column header flips the rows.
func SortOrders(orders []Order, col SortColumn, dir SortDir) []Order {
	out := slices.Clone(orders)
	if col == SortNone {
		return out
	}
	slices.SortStableFunc(out, columnComparator(col))
	if dir == SortDesc {
		slices.Reverse(out)
	}
	return out
}

func columnComparator(col SortColumn) func(a, b Order) int {
	switch col {
	case SortItemsCount:
		return func(a, b Order) int { return cmp.Compare(len(a.Items), len(b.Items)) }
	case SortTotal:
		return func(a, b Order) int { return cmp.Compare(a.Total, b.Total) }
	case SortDate:
		return func(a, b Order) int { return ParseOrderDate(a.Date).Compare(ParseOrderDate(b.Date)) }
	case SortCreatedDate:
		return func(a, b Order) int { return ParseOrderDate(a.CreatedDate).Compare(ParseOrderDate(b.CreatedDate)) }
	}
	return func(a, b Order) int {
		return strings.Compare(strings.ToLower(stringColumn(a, col)), strings.ToLower(stringColumn(b, col)))
	}
}

func stringColumn(o Order, col SortColumn) string {
	switch col {
	case SortOrderNo:
		return o.OrderNo
	case SortCustomerName:
		return o.CustomerName
	case SortContactPerson:
		return o.ContactPerson
	case SortPhone:
		return o.Phone
	case SortMachineName:
		return o.MachineName
	case SortStatus:
		return string(o.Status)
	}
	return ""
}

var orderDateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"02-01-2006",
	"02/01/2006",
}

// ParseOrderDate reads a calendar date in any of the accepted layouts.
// Unreadable values become the zero time, which sorts first.
func ParseOrderDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range orderDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
