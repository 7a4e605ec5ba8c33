package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"orderbook/templates"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		return r
	}, s)
	if s == "" {
		return "order"
	}
	return s
}

// destination resolves a user supplied export path. Relative paths live
// under the export directory; an empty path is replaced by fallback.
func destination(opts Options, path, fallback string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = fallback
	}
	if filepath.IsAbs(path) || opts.ExportDir == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(opts.ExportDir, path)
}

// HandleOrdersExcel returns a handler that downloads every order as xlsx.
func HandleOrdersExcel(app *pocketbase.PocketBase, opts Options) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, _, err := opts.exporter(app).OrdersExcel(e.Request.Context())
		if err != nil {
			return respondError(e, "export orders", err)
		}

		filename := fmt.Sprintf("orders-%s.xlsx", opts.now().Format("20060102-150405"))
		e.Response.Header().Set("Content-Type", xlsxContentType)
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		_, err = e.Response.Write(data)
		return err
	}
}

// HandleOrdersExport returns a handler that writes the spreadsheet of every
// order to a path on the server.
func HandleOrdersExport(app *pocketbase.PocketBase, opts Options) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		fallback := fmt.Sprintf("orders-%s.xlsx", opts.now().Format("20060102-150405"))
		path := destination(opts, e.Request.FormValue("path"), fallback)

		if err := opts.exporter(app).ExportAll(e.Request.Context(), path); err != nil {
			return respondError(e, "export orders", err)
		}
		SetToast(e, ToastSuccess, "Orders exported to "+path)
		if !isHTMX(e) {
			return e.Redirect(http.StatusSeeOther, "/orders")
		}
		return e.NoContent(http.StatusNoContent)
	}
}

// HandleOrderPDF returns a handler that downloads one order as a PDF.
func HandleOrderPDF(app *pocketbase.PocketBase, opts Options) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		orderNo := e.Request.PathValue("orderNo")
		if orderNo == "" {
			return e.String(http.StatusBadRequest, "Missing order number")
		}

		data, err := opts.exporter(app).ExportOrderPDF(e.Request.Context(), orderNo)
		if err != nil {
			return respondError(e, "export pdf", err)
		}

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s.pdf"`, sanitizeFilename(orderNo)))
		_, err = e.Response.Write(data)
		return err
	}
}

// HandleOrderPrint returns a handler that shows the printable document of
// one order.
func HandleOrderPrint(app *pocketbase.PocketBase, opts Options) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		orderNo := e.Request.PathValue("orderNo")
		if orderNo == "" {
			return e.String(http.StatusBadRequest, "Missing order number")
		}

		doc, err := opts.exporter(app).OrderDocument(e.Request.Context(), orderNo)
		if err != nil {
			return respondError(e, "print order", err)
		}
		return templates.OrderDocumentPage(doc).Render(e.Request.Context(), e.Response)
	}
}

// HandleOrderPrintSave returns a handler that renders the printable document
// and saves it as an HTML file.
func HandleOrderPrintSave(app *pocketbase.PocketBase, opts Options) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		orderNo := e.Request.PathValue("orderNo")
		if orderNo == "" {
			return e.String(http.StatusBadRequest, "Missing order number")
		}

		exp := opts.exporter(app)
		doc, err := exp.OrderDocument(e.Request.Context(), orderNo)
		if err != nil {
			return respondError(e, "print order", err)
		}
		content, err := templates.RenderString(e.Request.Context(), templates.OrderDocumentPage(doc))
		if err != nil {
			return respondError(e, "print order", err)
		}

		path := destination(opts, e.Request.FormValue("path"), "order-"+sanitizeFilename(orderNo)+".html")
		if err := exp.SaveRenderedDocument(path, content); err != nil {
			return respondError(e, "save document", err)
		}

		SetToast(e, ToastSuccess, "Order document saved to "+path)
		if !isHTMX(e) {
			return e.Redirect(http.StatusSeeOther, "/orders/"+url.PathEscape(orderNo)+"/print")
		}
		return e.NoContent(http.StatusNoContent)
	}
}
