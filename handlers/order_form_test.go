package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"orderbook/services"
	"orderbook/store"
	"orderbook/testhelpers"
)

func TestHandleOrderNew(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	opts := testOptions(t)
	opts.GSTPercent = 12

	req := httptest.NewRequest(http.MethodGet, "/orders/new", nil)
	rec := httptest.NewRecorder()
	if err := HandleOrderNew(app, opts)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body,
		"<!doctype html>",
		`id="order-form-container"`,
		`name="submit_token"`,
		`name="date" value="2024-03-09"`,
		`name="gst_percent" value="12"`,
		`name="items_json" value="[]"`,
		"Add Item",
	)
}

func TestHandleOrderEdit(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestOrder(t, app, testhelpers.NewOrder("ORD-7", "Acme Rollers", "2024-03-01T10:00:00Z"))

	req := httptest.NewRequest(http.MethodGet, "/orders/ORD-7/edit", nil)
	req.SetPathValue("orderNo", "ORD-7")
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	if err := HandleOrderEdit(app, testOptions(t))(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body, "Edit Order ORD-7", `value="Acme Rollers"`, "Roller", "Sleeve", "₹295.00")
	testhelpers.AssertHTMLNotContains(t, body, "<!doctype html>")
}

func TestHandleOrderEdit_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/orders/ORD-404/edit", nil)
	req.SetPathValue("orderNo", "ORD-404")
	rec := httptest.NewRecorder()
	if err := HandleOrderEdit(app, testOptions(t))(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleOrderFormItems(t *testing.T) {
	tests := []struct {
		name   string
		form   url.Values
		want   []string
		absent []string
	}{
		{
			name: "add computes amount",
			form: url.Values{
				"action":    {"add"},
				"item_type": {"Roller"},
				"item_qty":  {"2"},
				"item_rate": {"50"},
			},
			want: []string{"<td>3</td>", "₹100.00", `&#34;amount&#34;:100`},
		},
		{
			name:   "add with bad rate keeps items",
			form:   url.Values{"action": {"add"}, "item_type": {"Bad"}, "item_rate": {"abc"}},
			want:   []string{"invalid rate", `name="item_rate" value="abc"`},
			absent: []string{"<td>Bad</td>"},
		},
		{
			name:   "remove renumbers",
			form:   url.Values{"action": {"remove"}, "index": {"0"}},
			want:   []string{"Sleeve", `&#34;slNo&#34;:1`},
			absent: []string{"<td>Roller</td>"},
		},
		{
			name: "edit loads draft",
			form: url.Values{"action": {"edit"}, "index": {"1"}},
			want: []string{`name="item_type" value="Sleeve"`, `name="editing" value="1"`, "Update Item"},
		},
		{
			name: "edit out of range",
			form: url.Values{"action": {"edit"}, "index": {"7"}},
			want: []string{"Add Item", `class="error"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testhelpers.NewTestApp(t)

			form := orderFormValues("", "Acme")
			for k, v := range tt.form {
				form[k] = v
			}
			req := newFormRequest(http.MethodPost, "/orders/form/items", form)
			req.Header.Set("HX-Request", "true")
			rec := httptest.NewRecorder()

			if err := HandleOrderFormItems(app, testOptions(t))(newTestRequestEvent(app, req, rec)); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			body := rec.Body.String()
			testhelpers.AssertHTMLContains(t, body, tt.want...)
			testhelpers.AssertHTMLNotContains(t, body, tt.absent...)
		})
	}
}

func TestHandleOrderFormItems_UnknownAction(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	req := newFormRequest(http.MethodPost, "/orders/form/items", url.Values{"action": {"explode"}})
	rec := httptest.NewRecorder()

	if err := HandleOrderFormItems(app, testOptions(t))(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleOrderSave_GeneratesNumber(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	form := orderFormValues("", "Acme Rollers")
	form.Set("submit_token", "tok-1")
	req := newFormRequest(http.MethodPost, "/orders", form)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	if err := HandleOrderSave(app, testOptions(t))(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/orders")

	order, err := store.NewOrderStore(app).FindByNumber(context.Background(), "ORD-20240309140507")
	if err != nil {
		t.Fatalf("expected generated order to be saved: %v", err)
	}
	if order.Total != 295 || order.GST != 45 || order.Subtotal != 250 {
		t.Errorf("unexpected totals %v/%v/%v", order.Subtotal, order.GST, order.Total)
	}
	if len(order.Items) != 2 || order.Items[1].SlNo != 2 {
		t.Errorf("unexpected items %+v", order.Items)
	}
}

func TestHandleOrderSave_RecomputesPostedAmounts(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	form := orderFormValues("ORD-AMT", "Acme Rollers")
	form.Set("items_json", `[{"type":"Roller","qty":2,"rate":100,"amount":5}]`)
	form.Set("submit_token", "tok-amt")
	req := newFormRequest(http.MethodPost, "/orders", form)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	if err := HandleOrderSave(app, testOptions(t))(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	order, err := store.NewOrderStore(app).FindByNumber(context.Background(), "ORD-AMT")
	if err != nil {
		t.Fatalf("expected order to be saved: %v", err)
	}
	if len(order.Items) != 1 || order.Items[0].Amount != 200 {
		t.Fatalf("expected amount 200 from qty*rate, got %+v", order.Items)
	}
	if order.Subtotal != 200 || order.GST != 36 || order.Total != 236 {
		t.Errorf("unexpected totals %v/%v/%v", order.Subtotal, order.GST, order.Total)
	}
}

func TestHandleOrderSave_BlankCustomer(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := newFormRequest(http.MethodPost, "/orders", orderFormValues("ORD-1", "   "))
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	if err := HandleOrderSave(app, testOptions(t))(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Header().Get("HX-Redirect") != "" {
		t.Error("should not redirect on validation error")
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), `class="error"`, "Roller", "Sleeve")

	if exists, _ := store.NewOrderStore(app).Exists(context.Background(), "ORD-1"); exists {
		t.Error("order should not have been saved")
	}
}

func TestHandleOrderSave_BadGST(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	form := orderFormValues("ORD-1", "Acme")
	form.Set("gst_percent", "eighteen")
	req := newFormRequest(http.MethodPost, "/orders", form)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	if err := HandleOrderSave(app, testOptions(t))(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "GST percent must be a number")
}

func TestHandleOrderSave_OverwriteNeedsConfirmation(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestOrder(t, app, testhelpers.NewOrder("ORD-7", "Old Customer", "2023-01-01T00:00:00Z"))
	opts := testOptions(t)
	st := store.NewOrderStore(app)

	req := newFormRequest(http.MethodPost, "/orders", orderFormValues("ORD-7", "New Customer"))
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	if err := HandleOrderSave(app, opts)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), `id="confirm-overwrite"`, "ORD-7 already exists")

	got, _ := st.FindByNumber(context.Background(), "ORD-7")
	if got.CustomerName != "Old Customer" {
		t.Fatalf("order overwritten without confirmation: %q", got.CustomerName)
	}

	form := orderFormValues("ORD-7", "New Customer")
	form.Set("confirm", "true")
	req = newFormRequest(http.MethodPost, "/orders", form)
	req.Header.Set("HX-Request", "true")
	rec = httptest.NewRecorder()
	if err := HandleOrderSave(app, opts)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/orders")

	got, _ = st.FindByNumber(context.Background(), "ORD-7")
	if got.CustomerName != "New Customer" {
		t.Errorf("expected overwrite, got %q", got.CustomerName)
	}
	if got.CreatedDate != "2023-01-01T00:00:00Z" {
		t.Errorf("created date changed to %q", got.CreatedDate)
	}
}

func TestHandleOrderSave_DuplicateTokenSavesOnce(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	opts := testOptions(t)

	submit := func(customer string) *httptest.ResponseRecorder {
		form := orderFormValues("ORD-DUP", customer)
		form.Set("submit_token", "same-token")
		req := newFormRequest(http.MethodPost, "/orders", form)
		rec := httptest.NewRecorder()
		if err := HandleOrderSave(app, opts)(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		return rec
	}

	if rec := submit("First"); rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	rec := submit("Second")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 for duplicate, got %d", rec.Code)
	}
	if strings.Contains(rec.Header().Get("HX-Trigger"), "saved") {
		t.Error("duplicate submit should not report a save")
	}

	got, _ := store.NewOrderStore(app).FindByNumber(context.Background(), "ORD-DUP")
	if got.CustomerName != "First" {
		t.Errorf("duplicate submit changed the order to %q", got.CustomerName)
	}
}

func TestSubmitGuard_ReleaseAllowsRetry(t *testing.T) {
	g := NewSubmitGuard()
	if !g.Claim("a") {
		t.Fatal("first claim should succeed")
	}
	if g.Claim("a") {
		t.Fatal("second claim should fail")
	}
	g.Release("a")
	if !g.Claim("a") {
		t.Error("claim after release should succeed")
	}
	if !g.Claim("") || !g.Claim("") {
		t.Error("empty tokens are never tracked")
	}
	if g.NewToken() == g.NewToken() {
		t.Error("tokens should be unique")
	}
}

func TestSubmitGuard_ExpiredClaimsAreSwept(t *testing.T) {
	now := testNow
	g := newSubmitGuard(time.Hour, func() time.Time { return now })

	g.Claim("a")
	g.Claim("b")
	if len(g.claims) != 2 {
		t.Fatalf("expected 2 claims, got %d", len(g.claims))
	}

	now = now.Add(2 * time.Hour)
	if !g.Claim("c") {
		t.Fatal("expected fresh token to be claimable")
	}
	if len(g.claims) != 1 {
		t.Errorf("expected expired claims to be swept, got %d left", len(g.claims))
	}
	if !g.Claim("a") {
		t.Error("expected expired token to be claimable again")
	}
	if g.Claim("c") {
		t.Error("expected live token to stay claimed")
	}
}

func TestParseOrderForm(t *testing.T) {
	form := orderFormValues("  ORD-5 ", "Acme")
	form.Set("editing", "1")
	form.Set("item_type", "Sleeve")
	req := newFormRequest(http.MethodPost, "/orders", form)

	f, err := parseOrderForm(req)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if f.OrderNo != "ORD-5" {
		t.Errorf("expected trimmed order number, got %q", f.OrderNo)
	}
	if f.GSTPercent != 18 || f.Status != services.StatusNew {
		t.Errorf("unexpected gst/status %v %q", f.GSTPercent, f.Status)
	}
	if len(f.Editor.Items) != 2 || f.Editor.Editing != 1 || f.Editor.Draft.Type != "Sleeve" {
		t.Errorf("unexpected editor state %+v", f.Editor)
	}
}

func TestParseOrderForm_MissingEditingMeansNotEditing(t *testing.T) {
	for _, value := range []string{"", "  ", "abc", "9"} {
		form := orderFormValues("ORD-5", "Acme")
		form.Set("editing", value)
		if value == "" {
			form.Del("editing")
		}
		f, err := parseOrderForm(newFormRequest(http.MethodPost, "/orders", form))
		if err != nil {
			t.Fatalf("parse error: %v", err)
		}
		if f.Editor.Editing != services.NotEditing {
			t.Errorf("editing=%q: expected not editing, got %d", value, f.Editor.Editing)
		}
	}
}

func TestHandleOrderFormItems_AddWithoutEditingAppends(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	form := orderFormValues("", "Acme")
	form.Del("editing")
	form.Set("action", "add")
	form.Set("item_type", "Core")
	form.Set("item_rate", "75")
	req := newFormRequest(http.MethodPost, "/orders/form/items", form)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	if err := HandleOrderFormItems(app, testOptions(t))(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "<td>Roller</td>", "<td>Sleeve</td>", "<td>Core</td>", "<td>3</td>")
}

func TestParseOrderForm_BrokenItems(t *testing.T) {
	form := orderFormValues("ORD-5", "Acme")
	form.Set("items_json", "{not json")
	f, err := parseOrderForm(newFormRequest(http.MethodPost, "/orders", form))
	if err == nil {
		t.Fatal("expected error for broken items")
	}
	if f.CustomerName != "Acme" || len(f.Editor.Items) != 0 {
		t.Errorf("unexpected form %+v", f)
	}
}

func TestParseListQuery(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantPage int
		wantStat string
		wantSort services.SortColumn
	}{
		{"defaults", "", 1, services.StatusAll, services.SortNone},
		{"page kept for search", "q=acme&page=3", 3, services.StatusAll, services.SortNone},
		{"status change resets page", "status=Completed&prev_status=All&page=3", 1, "Completed", services.SortNone},
		{"same status keeps page", "status=Completed&prev_status=Completed&page=3", 3, "Completed", services.SortNone},
		{"sort column", "sort=total&dir=desc", 1, services.StatusAll, services.SortTotal},
		{"bad page", "page=abc", 1, services.StatusAll, services.SortNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/orders?"+tt.query, nil)
			q := parseListQuery(req, 50)
			if q.Page != tt.wantPage {
				t.Errorf("page: expected %d, got %d", tt.wantPage, q.Page)
			}
			if q.Status != tt.wantStat {
				t.Errorf("status: expected %q, got %q", tt.wantStat, q.Status)
			}
			if q.Sort != tt.wantSort {
				t.Errorf("sort: expected %q, got %q", tt.wantSort, q.Sort)
			}
		})
	}
}
