package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog/log"

	"orderbook/services"
	"orderbook/templates"
)

type contextKey string

const HeaderDataKey contextKey = "headerData"

// GetHeaderData extracts the pre-built HeaderData from the request context.
func GetHeaderData(r *http.Request) templates.HeaderData {
	if val, ok := r.Context().Value(HeaderDataKey).(templates.HeaderData); ok {
		return val
	}
	return templates.HeaderData{}
}

// HeaderMiddleware builds the page header (company name, per-status order
// counts, active nav entry) and stores it in the request context. HTMX
// fragment requests skip the counts since they never render the header.
func HeaderMiddleware(app *pocketbase.PocketBase, opts Options) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		header := templates.HeaderData{
			CompanyName: opts.Company.Name,
			ActiveNav:   activeNav(e.Request.URL.Path),
		}

		if !isHTMX(e) {
			counts, err := opts.orders(app).CountByStatus(e.Request.Context())
			if err != nil {
				log.Warn().Err(err).Msg("middleware: could not count orders")
			} else {
				header.Counts = statusCounts(counts, e.Request.URL.Query().Get("status"), opts.PageSize)
			}
		}

		ctx := context.WithValue(e.Request.Context(), HeaderDataKey, header)
		e.Request = e.Request.WithContext(ctx)
		return e.Next()
	}
}

func statusCounts(counts map[string]int, current string, pageSize int) []templates.StatusCount {
	if current == "" {
		current = services.StatusAll
	}
	labels := []string{services.StatusAll}
	for _, s := range services.Statuses {
		labels = append(labels, string(s))
	}

	out := make([]templates.StatusCount, 0, len(labels))
	for _, label := range labels {
		out = append(out, templates.StatusCount{
			Label:  label,
			Count:  counts[label],
			Href:   templates.ListURL(services.DefaultListQuery(pageSize).WithStatus(label)),
			Active: label == current,
		})
	}
	return out
}

func activeNav(path string) string {
	switch {
	case path == "/orders/new":
		return "new"
	case strings.HasPrefix(path, "/orders"):
		return "orders"
	default:
		return ""
	}
}
