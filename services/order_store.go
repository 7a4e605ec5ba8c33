package services

import "context"

// DefaultPageSize is the list page size when none is configured.
const DefaultPageSize = 50

// OrderPage is one page of orders plus the counts of the whole, unfiltered set.
type OrderPage struct {
	Orders     []Order
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// Meta returns the pagination metadata the list view needs.
func (p OrderPage) Meta() PageMeta {
	return PageMeta{
		Page:        p.Page,
		PageSize:    p.PageSize,
		TotalOrders: p.Total,
		TotalPages:  p.TotalPages,
	}
}

// OrderStore is the durable side of the application. Implementations return
// *NotFoundError for missing orders and *BoundaryError for storage failures.
type OrderStore interface {
	OrderSaver
	LoadPage(ctx context.Context, page, pageSize int) (OrderPage, error)
	LoadAll(ctx context.Context) ([]Order, error)
	UpdateStatus(ctx context.Context, orderNo string, status Status) error
	Delete(ctx context.Context, orderNo string) error
}

// TotalPages is ceil(total / pageSize).
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// NormalizePage clamps page and pageSize to usable values.
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return page, pageSize
}
