package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"orderbook/services"
	"orderbook/templates"
)

// loadListData runs the list pipeline for q: one page from the store, then
// filter, search and sort over it. A page past the end falls back to the
// last page.
func loadListData(e *core.RequestEvent, app *pocketbase.PocketBase, opts Options, q services.ListQuery) (templates.OrderListData, error) {
	st := opts.orders(app)
	ctx := e.Request.Context()

	page, err := st.LoadPage(ctx, q.Page, q.PageSize)
	if err != nil {
		return templates.OrderListData{}, err
	}
	if page.TotalPages > 0 && q.Page > page.TotalPages {
		q.Page = page.TotalPages
		if page, err = st.LoadPage(ctx, q.Page, q.PageSize); err != nil {
			return templates.OrderListData{}, err
		}
	}

	return templates.OrderListData{
		View: services.BuildOrderListView(page.Orders, q, page.Meta()),
		Now:  opts.now(),
	}, nil
}

// HandleOrderList returns a handler that renders the order list. HTMX
// requests aimed at the table get only the table; other HTMX requests get
// the list content without the layout.
func HandleOrderList(app *pocketbase.PocketBase, opts Options) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		q := parseListQuery(e.Request, opts.PageSize)
		data, err := loadListData(e, app, opts, q)
		if err != nil {
			return respondError(e, "list orders", err)
		}

		component := templates.OrderListPage(data, GetHeaderData(e.Request))
		if isHTMX(e) {
			if e.Request.Header.Get("HX-Target") == templates.OrderListTarget {
				component = templates.OrderTable(data)
			} else {
				component = templates.OrderListContent(data)
			}
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// renderOrderTable re-renders the table for the list state posted along with
// a row action.
func renderOrderTable(e *core.RequestEvent, app *pocketbase.PocketBase, opts Options) error {
	data, err := loadListData(e, app, opts, parseListQuery(e.Request, opts.PageSize))
	if err != nil {
		return respondError(e, "list orders", err)
	}
	return templates.OrderTable(data).Render(e.Request.Context(), e.Response)
}

// HandleOrderStatus returns a handler that changes the status of one order.
// The new status is stored first; only then is the table re-rendered.
func HandleOrderStatus(app *pocketbase.PocketBase, opts Options) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		orderNo := e.Request.PathValue("orderNo")
		if orderNo == "" {
			return e.String(http.StatusBadRequest, "Missing order number")
		}

		status, err := services.ParseStatus(e.Request.FormValue("new_status"))
		if err != nil {
			return respondError(e, "update status", err)
		}
		if err := opts.orders(app).UpdateStatus(e.Request.Context(), orderNo, status); err != nil {
			return respondError(e, "update status", err)
		}

		SetToast(e, ToastSuccess, "Order "+orderNo+" marked "+string(status))
		if !isHTMX(e) {
			return e.Redirect(http.StatusSeeOther, "/orders")
		}
		return renderOrderTable(e, app, opts)
	}
}

// HandleOrderDelete returns a handler that deletes an order with its items.
func HandleOrderDelete(app *pocketbase.PocketBase, opts Options) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		orderNo := e.Request.PathValue("orderNo")
		if orderNo == "" {
			return e.String(http.StatusBadRequest, "Missing order number")
		}

		if err := opts.orders(app).Delete(e.Request.Context(), orderNo); err != nil {
			return respondError(e, "delete order", err)
		}

		SetToast(e, ToastSuccess, "Order "+orderNo+" deleted")
		if !isHTMX(e) {
			return e.Redirect(http.StatusSeeOther, "/orders")
		}
		return renderOrderTable(e, app, opts)
	}
}
