// Package testhelpers provides utilities for testing the order book against
// a real, throwaway PocketBase instance.
package testhelpers

import (
	"context"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"

	"orderbook/collections"
	"orderbook/services"
	"orderbook/store"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: t.TempDir(),
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}
	t.Cleanup(func() { _ = app.ResetBootstrapState() })

	if err := collections.Setup(app); err != nil {
		t.Fatalf("failed to set up collections: %v", err)
	}

	return app
}

// NewOrder returns a valid order with two items and computed totals
// (250 + 18% GST = 295).
func NewOrder(orderNo, customer, createdDate string) services.Order {
	o := services.Order{
		OrderNo:      orderNo,
		Date:         "2024-03-09",
		CustomerName: customer,
		Status:       services.StatusNew,
		MachineName:  "Calender 2",
		GSTPercent:   18,
		Items: []services.LineItem{
			{SlNo: 1, Type: "Roller", Qty: 2, Length: "1200", Dia: "80", Shore: "60A", Rate: 50, Amount: 100},
			{SlNo: 2, Type: "Sleeve", Rate: 150, Amount: 150},
		},
		CreatedDate: createdDate,
	}
	o.Recalculate()
	return o
}

// CreateTestOrder saves o through the PocketBase store and returns it.
func CreateTestOrder(t *testing.T, app *pocketbase.PocketBase, o services.Order) services.Order {
	t.Helper()

	if err := store.NewOrderStore(app).Save(context.Background(), o); err != nil {
		t.Fatalf("failed to save test order %s: %v", o.OrderNo, err)
	}
	return o
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHTMLNotContains checks that body contains none of the fragments.
func AssertHTMLNotContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if strings.Contains(body, frag) {
			t.Errorf("expected HTML not to contain %q\nbody (first 500 chars): %s", frag, truncate(body, 500))
		}
	}
}

// AssertHXRedirect checks that the response has an HX-Redirect header with the expected URL.
func AssertHXRedirect(t *testing.T, headerVal, expectedURL string) {
	t.Helper()

	if headerVal != expectedURL {
		t.Errorf("expected HX-Redirect %q, got %q", expectedURL, headerVal)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
