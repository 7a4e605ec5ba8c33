package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memSaver is an in-memory OrderSaver.
type memSaver struct {
	orders  map[string]Order
	saves   int
	failErr error
}

func newMemSaver(orders ...Order) *memSaver {
	s := &memSaver{orders: map[string]Order{}}
	for _, o := range orders {
		s.orders[o.OrderNo] = o
	}
	return s
}

func (s *memSaver) Exists(_ context.Context, orderNo string) (bool, error) {
	if s.failErr != nil {
		return false, s.failErr
	}
	_, ok := s.orders[orderNo]
	return ok, nil
}

func (s *memSaver) FindByNumber(_ context.Context, orderNo string) (Order, error) {
	o, ok := s.orders[orderNo]
	if !ok {
		return Order{}, &NotFoundError{OrderNo: orderNo}
	}
	return o, nil
}

func (s *memSaver) Save(_ context.Context, o Order) error {
	s.saves++
	s.orders[o.OrderNo] = o
	return nil
}

var formNow = time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

func filledForm(t *testing.T) OrderForm {
	t.Helper()
	f := NewOrderForm(formNow)
	f.CustomerName = "  Acme Rollers  "
	f.ContactPerson = "R. Iyer"
	require.NoError(t, f.Editor.AddOrUpdate(LineItemDraft{Type: "Roller", Qty: "2", Rate: "50"}))
	require.NoError(t, f.Editor.AddOrUpdate(LineItemDraft{Type: "Sleeve", Rate: "150"}))
	return f
}

func TestNewOrderForm_Defaults(t *testing.T) {
	f := NewOrderForm(formNow)
	assert.Equal(t, "2024-03-09", f.Date)
	assert.Equal(t, StatusNew, f.Status)
	assert.Equal(t, DefaultGSTPercent, f.GSTPercent)
	assert.Empty(t, f.Editor.Items)
	assert.False(t, f.Editor.IsEditing())
}

func TestOrderForm_ClearResetsEverything(t *testing.T) {
	f := filledForm(t)
	f.OrderNo = "ORD-1"
	require.NoError(t, f.Editor.BeginEdit(0))

	f.Clear(formNow)
	assert.Equal(t, NewOrderForm(formNow), f)
}

func TestOrderForm_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*OrderForm)
		wantField string
	}{
		{"blank customer", func(f *OrderForm) { f.CustomerName = "   " }, "customerName"},
		{"negative gst", func(f *OrderForm) { f.GSTPercent = -1 }, "gstPercent"},
		{"gst above 100", func(f *OrderForm) { f.GSTPercent = 101 }, "gstPercent"},
		{"unknown status", func(f *OrderForm) { f.Status = "Shipped" }, "status"},
		{"valid", func(f *OrderForm) {}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := filledForm(t)
			tt.mutate(&f)
			err := f.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestOrderForm_SubmitGeneratesNumberAndTotals(t *testing.T) {
	store := newMemSaver()
	f := filledForm(t)

	order, err := f.Submit(context.Background(), store, formNow, false)
	require.NoError(t, err)

	assert.Equal(t, "ORD-20240309140507", order.OrderNo)
	assert.Equal(t, "Acme Rollers", order.CustomerName)
	assert.Equal(t, "2024-03-09", order.Date)
	assert.Equal(t, "2024-03-09T14:05:07Z", order.CreatedDate)
	assert.Equal(t, StatusNew, order.Status)
	assert.Equal(t, 250.0, order.Subtotal)
	assert.Equal(t, 45.0, order.GST)
	assert.Equal(t, 295.0, order.Total)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 2, order.Items[1].SlNo)

	assert.Equal(t, 1, store.saves)
	assert.Equal(t, order, store.orders[order.OrderNo])

	// the form is untouched
	assert.Empty(t, f.OrderNo)
	assert.Len(t, f.Editor.Items, 2)
}

func TestOrderForm_SubmitAvoidsGeneratedCollision(t *testing.T) {
	store := newMemSaver(Order{OrderNo: "ORD-20240309140507"})
	f := filledForm(t)

	order, err := f.Submit(context.Background(), store, formNow, false)
	require.NoError(t, err)
	assert.Equal(t, "ORD-20240309140507-2", order.OrderNo)
}

func TestOrderForm_SubmitRejectsWithoutItems(t *testing.T) {
	store := newMemSaver()
	f := NewOrderForm(formNow)
	f.CustomerName = "Acme"

	_, err := f.Submit(context.Background(), store, formNow, false)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "items", ve.Field)
	assert.Zero(t, store.saves)
}

func TestOrderForm_SubmitRejectsBlankCustomer(t *testing.T) {
	store := newMemSaver()
	f := filledForm(t)
	f.CustomerName = ""

	_, err := f.Submit(context.Background(), store, formNow, false)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "customerName", ve.Field)
	assert.Zero(t, store.saves)
}

func TestOrderForm_SubmitExistingNeedsConfirmation(t *testing.T) {
	existing := Order{OrderNo: "ORD-7", CustomerName: "Old", CreatedDate: "2023-01-01T00:00:00Z"}
	store := newMemSaver(existing)

	f := filledForm(t)
	f.OrderNo = "ORD-7"

	_, err := f.Submit(context.Background(), store, formNow, false)
	var ce *ConfirmationRequiredError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "ORD-7", ce.OrderNo)
	assert.Zero(t, store.saves)
	assert.Equal(t, "Old", store.orders["ORD-7"].CustomerName)

	order, err := f.Submit(context.Background(), store, formNow, true)
	require.NoError(t, err)
	assert.Equal(t, "ORD-7", order.OrderNo)
	assert.Equal(t, "Acme Rollers", store.orders["ORD-7"].CustomerName)
	assert.Equal(t, "2023-01-01T00:00:00Z", order.CreatedDate)
}

func TestOrderForm_SubmitEditedOrderKeepsCreatedDate(t *testing.T) {
	existing := Order{
		OrderNo:      "ORD-9",
		Date:         "2024-01-02",
		CustomerName: "Beta",
		Status:       StatusInProgress,
		GSTPercent:   12,
		Items:        []LineItem{{SlNo: 1, Type: "x", Rate: 10, Amount: 10}},
		CreatedDate:  "2024-01-02T08:00:00Z",
	}
	store := newMemSaver(existing)

	f := FormFromOrder(existing)
	order, err := f.Submit(context.Background(), store, formNow, true)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02T08:00:00Z", order.CreatedDate)
	assert.Equal(t, StatusInProgress, order.Status)
	assert.Equal(t, 1.2, order.GST)
}

func TestOrderForm_SubmitWrapsStoreFailure(t *testing.T) {
	store := newMemSaver()
	store.failErr = errors.New("disk full")

	f := filledForm(t)
	_, err := f.Submit(context.Background(), store, formNow, false)

	var be *BoundaryError
	require.True(t, errors.As(err, &be))
	assert.Zero(t, store.saves)
}

func TestOrderForm_Totals(t *testing.T) {
	f := filledForm(t)
	f.GSTPercent = 0
	assert.Equal(t, OrderTotals{Subtotal: 250, GST: 0, Total: 250}, f.Totals())
}

func TestFormFromOrder(t *testing.T) {
	o := Order{
		OrderNo:      "ORD-1",
		CustomerName: "Acme",
		Status:       StatusCompleted,
		GSTPercent:   5,
		Items:        []LineItem{{Type: "a", Amount: 5}},
	}
	f := FormFromOrder(o)
	assert.Equal(t, "ORD-1", f.OrderNo)
	assert.Equal(t, StatusCompleted, f.Status)
	assert.Equal(t, 5.0, f.GSTPercent)
	require.Len(t, f.Editor.Items, 1)
	assert.Equal(t, 1, f.Editor.Items[0].SlNo)
}
