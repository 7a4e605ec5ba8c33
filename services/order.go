// Package services holds the order domain: the order and line-item model,
// the line-item editor, the order form, the list view pipeline and the
// spreadsheet/PDF renderers used by the export boundary.
package services

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Status is the workflow state of an order.
type Status string

const (
	StatusNew        Status = "New"
	StatusInProgress Status = "In Progress"
	StatusRejected   Status = "Rejected"
	StatusCompleted  Status = "Completed"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusNew, StatusInProgress, StatusRejected, StatusCompleted}

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseStatus matches s against the known statuses, ignoring surrounding
// whitespace and letter case.
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	for _, known := range Statuses {
		if strings.EqualFold(s, string(known)) {
			return known, nil
		}
	}
	return "", &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", s)}
}

// DefaultGSTPercent is applied to every new order form.
const DefaultGSTPercent = 18.0

// LineItem is one row of an order. SlNo mirrors the row position and is
// reassigned after every change to the item list.
type LineItem struct {
	SlNo    int     `json:"slNo"`
	Type    string  `json:"type"`
	Qty     float64 `json:"qty"`
	Length  string  `json:"length"`
	Dia     string  `json:"dia"`
	Shore   string  `json:"shore"`
	Remarks string  `json:"remarks"`
	Rate    float64 `json:"rate"`
	Amount  float64 `json:"amount"`
}

// Order is a customer work order or quotation.
type Order struct {
	OrderNo          string     `json:"orderNo"`
	Date             string     `json:"date"`
	CustomerName     string     `json:"customerName"`
	ContactPerson    string     `json:"contactPerson"`
	Phone            string     `json:"phone"`
	Status           Status     `json:"status"`
	MachineName      string     `json:"machineName"`
	Items            []LineItem `json:"items"`
	Subtotal         float64    `json:"subtotal"`
	GSTPercent       float64    `json:"gstPercent"`
	GST              float64    `json:"gst"`
	Total            float64    `json:"total"`
	Remarks          string     `json:"remarks"`
	DeliveryNote     string     `json:"deliveryNote"`
	DeliveryNoteDate string     `json:"deliveryNoteDate"`
	BuyerOrderNo     string     `json:"buyerOrderNo"`
	BuyerOrderDate   string     `json:"buyerOrderDate"`
	CreatedDate      string     `json:"createdDate"`
}

// OrderTotals holds the derived money fields of an order.
type OrderTotals struct {
	Subtotal float64
	GST      float64
	Total    float64
}

// CalcLineAmount returns qty * rate, or the bare rate when no quantity was given.
func CalcLineAmount(qty, rate float64) float64 {
	if qty == 0 {
		return rate
	}
	return decimal.NewFromFloat(qty).Mul(decimal.NewFromFloat(rate)).InexactFloat64()
}

// CalcOrderTotals sums the item amounts and applies GST. The GST amount is
// rounded to paise; the total is the subtotal plus the rounded GST.
func CalcOrderTotals(items []LineItem, gstPercent float64) OrderTotals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(decimal.NewFromFloat(item.Amount))
	}
	gst := subtotal.Mul(decimal.NewFromFloat(gstPercent)).Div(decimal.NewFromInt(100)).Round(2)

	return OrderTotals{
		Subtotal: subtotal.InexactFloat64(),
		GST:      gst.InexactFloat64(),
		Total:    subtotal.Add(gst).InexactFloat64(),
	}
}

// Recalculate refreshes Subtotal, GST and Total from the current items.
func (o *Order) Recalculate() {
	totals := CalcOrderTotals(o.Items, o.GSTPercent)
	o.Subtotal = totals.Subtotal
	o.GST = totals.GST
	o.Total = totals.Total
}

// ValidLineItem reports whether an item survives the defensive filter.
func ValidLineItem(item LineItem) bool {
	if math.IsNaN(item.Amount) || math.IsInf(item.Amount, 0) || item.Amount < 0 {
		return false
	}
	return item.Rate >= 0 && item.Qty >= 0
}

// RecalculateAmounts returns a copy of items with every Amount derived again
// from Qty and Rate. Items with a negative or non-finite qty or rate keep
// their amount; ValidLineItem rejects them.
func RecalculateAmounts(items []LineItem) []LineItem {
	out := slices.Clone(items)
	for i, item := range out {
		if priceable(item.Qty) && priceable(item.Rate) {
			out[i].Amount = CalcLineAmount(item.Qty, item.Rate)
		}
	}
	return out
}

func priceable(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// SanitizeItems drops items that fail ValidLineItem and renumbers the rest.
// Dropped items are not reported. The input slice is not modified.
func SanitizeItems(items []LineItem) []LineItem {
	kept := make([]LineItem, 0, len(items))
	for _, item := range items {
		if ValidLineItem(item) {
			kept = append(kept, item)
		}
	}
	RenumberItems(kept)
	return kept
}

// RenumberItems sets SlNo to the 1-based position of every item.
func RenumberItems(items []LineItem) {
	for i := range items {
		items[i].SlNo = i + 1
	}
}
