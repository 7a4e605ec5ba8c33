package store_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"orderbook/services"
	"orderbook/store"
	"orderbook/testhelpers"
)

var testNow = time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

func newExporter(t *testing.T) (*store.Exporter, *store.OrderStore) {
	t.Helper()
	app := testhelpers.NewTestApp(t)
	s := store.NewOrderStore(app)
	testhelpers.CreateTestOrder(t, app, testhelpers.NewOrder("ORD-1", "Acme", "2024-03-01T10:00:00Z"))
	testhelpers.CreateTestOrder(t, app, testhelpers.NewOrder("ORD-2", "Beta", "2024-03-02T10:00:00Z"))
	return store.NewExporter(s, services.CompanyInfo{Name: "Rubber Works"}), s
}

func TestExporter_ExportAll(t *testing.T) {
	e, _ := newExporter(t)
	path := filepath.Join(t.TempDir(), "nested", "orders.xlsx")

	require.NoError(t, e.ExportAll(context.Background(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Orders")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Order No", rows[0][0])
	assert.Equal(t, "ORD-2", rows[1][0])
	assert.Equal(t, "ORD-1", rows[2][0])

	items, err := f.GetRows("Items")
	require.NoError(t, err)
	assert.Len(t, items, 5)
}

func TestExporter_ExportAllNeedsPath(t *testing.T) {
	e, _ := newExporter(t)
	var ve *services.ValidationError
	assert.True(t, errors.As(e.ExportAll(context.Background(), ""), &ve))
}

func TestExporter_ExportOrderPDF(t *testing.T) {
	e, _ := newExporter(t)

	data, err := e.ExportOrderPDF(context.Background(), "ORD-1")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	_, err = e.ExportOrderPDF(context.Background(), "ORD-404")
	var nf *services.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestExporter_OrderDocument(t *testing.T) {
	e, _ := newExporter(t)

	doc, err := e.OrderDocument(context.Background(), "ORD-2")
	require.NoError(t, err)
	assert.Equal(t, "Rubber Works", doc.Company.Name)
	assert.Equal(t, "Beta", doc.CustomerName)
	assert.Equal(t, "₹295.00", doc.Total)
}

func TestExporter_SaveRenderedDocument(t *testing.T) {
	e, _ := newExporter(t)
	path := filepath.Join(t.TempDir(), "docs", "ORD-1.html")

	require.NoError(t, e.SaveRenderedDocument(path, "<html>ORD-1</html>"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<html>ORD-1</html>", string(content))
}
