package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"orderbook/services"
)

var testNow = time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

func testOptions(t *testing.T) Options {
	t.Helper()
	return Options{
		Company:    services.CompanyInfo{Name: "Acme Rubber Works", GSTIN: "29ABCDE1234F1Z5"},
		PageSize:   50,
		GSTPercent: 18,
		ExportDir:  t.TempDir(),
		Guard:      NewSubmitGuard(),
		Now:        func() time.Time { return testNow },
	}
}

// newFormRequest builds a urlencoded POST request.
func newFormRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// orderFormValues is a filled-in order form with two items already added.
func orderFormValues(orderNo, customer string) url.Values {
	return url.Values{
		"order_no":      {orderNo},
		"date":          {"2024-03-09"},
		"customer_name": {customer},
		"status":        {"New"},
		"gst_percent":   {"18"},
		"items_json":    {`[{"type":"Roller","qty":2,"rate":50,"amount":100},{"type":"Sleeve","rate":150,"amount":150}]`},
		"editing":       {"-1"},
	}
}
