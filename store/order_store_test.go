package store_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderbook/services"
	"orderbook/store"
	"orderbook/testhelpers"
)

func TestOrderStore_SaveAndFind(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	s := store.NewOrderStore(app)
	ctx := context.Background()

	o := testhelpers.NewOrder("ORD-1", "Acme Rollers", "2024-03-09T10:00:00Z")
	o.DeliveryNote = "DN-7"
	o.BuyerOrderDate = "2024-03-01"
	require.NoError(t, s.Save(ctx, o))

	got, err := s.FindByNumber(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, o, got)
}

func TestOrderStore_SaveReplacesItems(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	s := store.NewOrderStore(app)
	ctx := context.Background()

	o := testhelpers.CreateTestOrder(t, app, testhelpers.NewOrder("ORD-1", "Acme", "2024-03-09T10:00:00Z"))

	o.CustomerName = "Acme Renamed"
	o.Items = o.Items[:1]
	o.Recalculate()
	require.NoError(t, s.Save(ctx, o))

	got, err := s.FindByNumber(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, "Acme Renamed", got.CustomerName)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 118.0, got.Total)

	items, err := app.FindAllRecords("order_items")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	n, err := app.CountRecords("orders")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestOrderStore_Exists(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	s := store.NewOrderStore(app)
	ctx := context.Background()

	testhelpers.CreateTestOrder(t, app, testhelpers.NewOrder("ORD-1", "Acme", "2024-03-09T10:00:00Z"))

	ok, err := s.Exists(ctx, "ORD-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Exists(ctx, "ORD-2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOrderStore_FindMissing(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	s := store.NewOrderStore(app)

	_, err := s.FindByNumber(context.Background(), "nope")
	var nf *services.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "nope", nf.OrderNo)
}

func TestOrderStore_LoadPage(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	s := store.NewOrderStore(app)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		created := fmt.Sprintf("2024-03-0%dT10:00:00Z", i)
		testhelpers.CreateTestOrder(t, app, testhelpers.NewOrder(fmt.Sprintf("ORD-%d", i), "Customer", created))
	}

	page, err := s.LoadPage(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 1, page.Page)
	require.Len(t, page.Orders, 2)
	assert.Equal(t, "ORD-5", page.Orders[0].OrderNo)
	assert.Equal(t, "ORD-4", page.Orders[1].OrderNo)
	assert.Len(t, page.Orders[0].Items, 2)

	last, err := s.LoadPage(ctx, 3, 2)
	require.NoError(t, err)
	require.Len(t, last.Orders, 1)
	assert.Equal(t, "ORD-1", last.Orders[0].OrderNo)

	meta := last.Meta()
	assert.Equal(t, 5, meta.TotalOrders)
	assert.Equal(t, 3, meta.Page)
}

func TestOrderStore_LoadPageNormalizes(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	s := store.NewOrderStore(app)

	page, err := s.LoadPage(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, services.DefaultPageSize, page.PageSize)
	assert.Equal(t, 0, page.Total)
	assert.Equal(t, 0, page.TotalPages)
	assert.Empty(t, page.Orders)
}

func TestOrderStore_UpdateStatus(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	s := store.NewOrderStore(app)
	ctx := context.Background()

	testhelpers.CreateTestOrder(t, app, testhelpers.NewOrder("ORD-1", "Acme", "2024-03-09T10:00:00Z"))

	require.NoError(t, s.UpdateStatus(ctx, "ORD-1", services.StatusCompleted))
	got, err := s.FindByNumber(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, services.StatusCompleted, got.Status)
	assert.Len(t, got.Items, 2)

	var ve *services.ValidationError
	require.True(t, errors.As(s.UpdateStatus(ctx, "ORD-1", "Shipped"), &ve))

	var nf *services.NotFoundError
	require.True(t, errors.As(s.UpdateStatus(ctx, "ORD-404", services.StatusNew), &nf))
}

func TestOrderStore_DeleteCascadesItems(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	s := store.NewOrderStore(app)
	ctx := context.Background()

	testhelpers.CreateTestOrder(t, app, testhelpers.NewOrder("ORD-1", "Acme", "2024-03-09T10:00:00Z"))
	testhelpers.CreateTestOrder(t, app, testhelpers.NewOrder("ORD-2", "Beta", "2024-03-10T10:00:00Z"))

	require.NoError(t, s.Delete(ctx, "ORD-1"))

	ok, err := s.Exists(ctx, "ORD-1")
	require.NoError(t, err)
	assert.False(t, ok)

	items, err := app.FindAllRecords("order_items")
	require.NoError(t, err)
	assert.Len(t, items, 2, "only ORD-2 items should remain")

	var nf *services.NotFoundError
	require.True(t, errors.As(s.Delete(ctx, "ORD-1"), &nf))
}

func TestOrderStore_LoadAllAndCounts(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	s := store.NewOrderStore(app)
	ctx := context.Background()

	a := testhelpers.NewOrder("ORD-A", "Acme", "2024-03-01T10:00:00Z")
	b := testhelpers.NewOrder("ORD-B", "Beta", "2024-03-02T10:00:00Z")
	b.Status = services.StatusCompleted
	testhelpers.CreateTestOrder(t, app, a)
	testhelpers.CreateTestOrder(t, app, b)

	all, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "ORD-B", all[0].OrderNo)

	counts, err := s.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[services.StatusAll])
	assert.Equal(t, 1, counts["New"])
	assert.Equal(t, 1, counts["Completed"])
	assert.Equal(t, 0, counts["Rejected"])
}

func TestOrderStore_FormSubmitRoundTrip(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	s := store.NewOrderStore(app)
	ctx := context.Background()

	form := services.NewOrderForm(testNow)
	form.CustomerName = "Acme"
	require.NoError(t, form.Editor.AddOrUpdate(services.LineItemDraft{Type: "Roller", Qty: "2", Rate: "100"}))
	require.NoError(t, form.Editor.AddOrUpdate(services.LineItemDraft{Type: "Sleeve", Rate: "50"}))

	saved, err := form.Submit(ctx, s, testNow, false)
	require.NoError(t, err)
	assert.Equal(t, 295.0, saved.Total)

	got, err := s.FindByNumber(ctx, saved.OrderNo)
	require.NoError(t, err)
	assert.Equal(t, saved, got)

	// same number again needs confirmation
	again := services.FormFromOrder(got)
	_, err = again.Submit(ctx, s, testNow, false)
	var ce *services.ConfirmationRequiredError
	require.True(t, errors.As(err, &ce))
}
