package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderbook/services"
)

func sampleFormData(t *testing.T) OrderFormData {
	t.Helper()
	f := services.NewOrderForm(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC))
	f.CustomerName = "Acme <Rollers>"
	require.NoError(t, f.Editor.AddOrUpdate(services.LineItemDraft{Type: "Roller", Qty: "2", Rate: "50"}))
	require.NoError(t, f.Editor.AddOrUpdate(services.LineItemDraft{Type: "Sleeve", Rate: "150"}))
	return OrderFormData{
		Form:        f,
		Totals:      f.Totals(),
		ItemsJSON:   `[{"type":"Roller"}]`,
		SubmitToken: "tok",
		Errors:      map[string]string{},
	}
}

func TestOrderFormContent_NewOrder(t *testing.T) {
	out := renderString(t, OrderFormContent(sampleFormData(t)))

	assert.Contains(t, out, "<h1>New Order</h1>")
	assert.Contains(t, out, `value="Acme &lt;Rollers&gt;"`)
	assert.Contains(t, out, `name="items_json" value="[{&#34;type&#34;:&#34;Roller&#34;}]"`)
	assert.Contains(t, out, `name="submit_token" value="tok"`)
	assert.Contains(t, out, `name="editing" value="-1"`)
	assert.Contains(t, out, `<option value="New" selected>New</option>`)
	assert.Contains(t, out, "₹250.00")
	assert.Contains(t, out, "GST 18%")
	assert.Contains(t, out, "₹45.00")
	assert.Contains(t, out, "₹295.00")
	assert.Contains(t, out, `list="gst-slabs"`)
	assert.Contains(t, out, `<option value="28">`)
	assert.Contains(t, out, "Add Item")
	assert.NotContains(t, out, "Update Item")
	assert.NotContains(t, out, "confirm-overwrite")
}

func TestOrderFormContent_EditingItem(t *testing.T) {
	data := sampleFormData(t)
	require.NoError(t, data.Form.Editor.BeginEdit(1))
	out := renderString(t, OrderFormContent(data))

	assert.Contains(t, out, `<tr class="editing">`)
	assert.Contains(t, out, `name="item_type" value="Sleeve"`)
	assert.Contains(t, out, "Update Item")
	assert.Contains(t, out, "Cancel")
	assert.Contains(t, out, `hx-vals="{&#34;index&#34;:&#34;1&#34;}"`)
}

func TestOrderFormContent_ErrorsAndConfirmation(t *testing.T) {
	data := sampleFormData(t)
	data.Form.OrderNo = "ORD-7"
	data.Form.CreatedDate = "2024-01-01T00:00:00Z"
	data.IsEdit = true
	data.ConfirmOverwrite = true
	data.Errors["customerName"] = "customer name is required"
	data.Errors["rate"] = "invalid rate"

	out := renderString(t, OrderFormContent(data))
	assert.Contains(t, out, "<h1>Edit Order ORD-7</h1>")
	assert.Contains(t, out, `id="confirm-overwrite"`)
	assert.Contains(t, out, `hx-vals='{"confirm":"true"}'`)
	assert.Contains(t, out, `<span class="error">customer name is required</span>`)
	assert.Contains(t, out, `<span class="error">invalid rate</span>`)
	assert.Contains(t, out, `name="created_date" value="2024-01-01T00:00:00Z"`)
}

func TestOrderFormPage_WrapsContainer(t *testing.T) {
	out := renderString(t, OrderFormPage(sampleFormData(t), HeaderData{CompanyName: "Acme", ActiveNav: "new"}))
	assert.Contains(t, out, "<!doctype html>")
	assert.Contains(t, out, `<div id="order-form-container">`)
	assert.Contains(t, out, `<a href="/orders/new" class="active">New Order</a>`)
}
