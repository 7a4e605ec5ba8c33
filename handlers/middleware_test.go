package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"orderbook/services"
	"orderbook/templates"
	"orderbook/testhelpers"
)

func TestGetHeaderData_FromContext(t *testing.T) {
	expected := templates.HeaderData{CompanyName: "Acme"}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), HeaderDataKey, expected))

	if got := GetHeaderData(req); got.CompanyName != "Acme" {
		t.Errorf("expected company Acme, got %q", got.CompanyName)
	}
}

func TestGetHeaderData_NotInContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetHeaderData(req); got.CompanyName != "" || got.Counts != nil {
		t.Errorf("expected zero HeaderData, got %+v", got)
	}
}

func TestHeaderMiddleware_CountsByStatus(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestOrder(t, app, testhelpers.NewOrder("ORD-1", "Acme", "2024-03-01T10:00:00Z"))
	done := testhelpers.NewOrder("ORD-2", "Beta", "2024-03-02T10:00:00Z")
	done.Status = services.StatusCompleted
	testhelpers.CreateTestOrder(t, app, done)

	req := httptest.NewRequest(http.MethodGet, "/orders?status=Completed", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := HeaderMiddleware(app, testOptions(t))(e); err != nil {
		t.Fatalf("middleware error: %v", err)
	}

	header := GetHeaderData(e.Request)
	if header.CompanyName != "Acme Rubber Works" {
		t.Errorf("unexpected company %q", header.CompanyName)
	}
	if header.ActiveNav != "orders" {
		t.Errorf("expected active nav orders, got %q", header.ActiveNav)
	}

	got := map[string]templates.StatusCount{}
	for _, c := range header.Counts {
		got[c.Label] = c
	}
	if got[services.StatusAll].Count != 2 {
		t.Errorf("expected 2 orders in total, got %d", got[services.StatusAll].Count)
	}
	if got["Completed"].Count != 1 || !got["Completed"].Active {
		t.Errorf("unexpected Completed entry %+v", got["Completed"])
	}
	if got["Completed"].Href != "/orders?status=Completed" {
		t.Errorf("unexpected href %q", got["Completed"].Href)
	}
}

func TestHeaderMiddleware_SkipsCountsForHTMX(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/orders/new", nil)
	req.Header.Set("HX-Request", "true")
	e := newTestRequestEvent(app, req, httptest.NewRecorder())

	if err := HeaderMiddleware(app, testOptions(t))(e); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	header := GetHeaderData(e.Request)
	if header.Counts != nil {
		t.Errorf("expected no counts, got %+v", header.Counts)
	}
	if header.ActiveNav != "new" {
		t.Errorf("expected active nav new, got %q", header.ActiveNav)
	}
}
