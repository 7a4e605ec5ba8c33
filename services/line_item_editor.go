package services

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// NotEditing is the Editing value of an idle editor.
const NotEditing = -1

// LineItemDraft is the raw, unparsed content of the line-item input row.
type LineItemDraft struct {
	Type    string `json:"type"`
	Qty     string `json:"qty"`
	Length  string `json:"length"`
	Dia     string `json:"dia"`
	Shore   string `json:"shore"`
	Remarks string `json:"remarks"`
	Rate    string `json:"rate"`
}

// IsBlank reports whether nothing has been typed into the draft.
func (d LineItemDraft) IsBlank() bool {
	return d == LineItemDraft{}
}

// LineItemEditor builds the item list of an order. Editing holds the index
// of the item loaded into the draft, or NotEditing.
type LineItemEditor struct {
	Items   []LineItem
	Draft   LineItemDraft
	Editing int
}

// NewLineItemEditor returns an idle editor over a sanitized copy of items.
// Amounts are recomputed from qty and rate; a posted amount is never trusted.
func NewLineItemEditor(items []LineItem) LineItemEditor {
	return LineItemEditor{
		Items:   SanitizeItems(RecalculateAmounts(items)),
		Editing: NotEditing,
	}
}

// IsEditing reports whether an existing item is loaded into the draft.
func (e LineItemEditor) IsEditing() bool {
	return e.Editing >= 0
}

// Totals derives the order totals from the current items.
func (e LineItemEditor) Totals(gstPercent float64) OrderTotals {
	return CalcOrderTotals(e.Items, gstPercent)
}

// AddOrUpdate parses draft into a line item. While editing it replaces the
// edited item in place, otherwise it appends. On success the draft is
// cleared and the editor is idle; on failure nothing changes.
func (e *LineItemEditor) AddOrUpdate(draft LineItemDraft) error {
	item, err := ParseLineItemDraft(draft)
	if err != nil {
		return err
	}

	items := slices.Clone(e.Items)
	if e.IsEditing() && e.Editing < len(items) {
		items[e.Editing] = item
	} else {
		items = append(items, item)
	}
	RenumberItems(items)

	e.Items = items
	e.Draft = LineItemDraft{}
	e.Editing = NotEditing
	return nil
}

// BeginEdit loads item i into the draft. A pending edit of another item is
// dropped without saving it.
func (e *LineItemEditor) BeginEdit(i int) error {
	if i < 0 || i >= len(e.Items) {
		return &ValidationError{Field: "item", Message: fmt.Sprintf("no item at position %d", i+1)}
	}
	e.Draft = DraftFromItem(e.Items[i])
	e.Editing = i
	return nil
}

// CancelEdit clears the draft and leaves the item list untouched.
func (e *LineItemEditor) CancelEdit() {
	e.Draft = LineItemDraft{}
	e.Editing = NotEditing
}

// Remove deletes item i and renumbers the remainder. The edit marker keeps
// following the item it pointed at; removing the edited item ends the edit.
func (e *LineItemEditor) Remove(i int) error {
	if i < 0 || i >= len(e.Items) {
		return &ValidationError{Field: "item", Message: fmt.Sprintf("no item at position %d", i+1)}
	}

	items := slices.Delete(slices.Clone(e.Items), i, i+1)
	RenumberItems(items)
	e.Items = items

	switch {
	case e.Editing == i:
		e.CancelEdit()
	case e.Editing > i:
		e.Editing--
	}
	return nil
}

// ParseLineItemDraft validates the numeric fields of a draft and computes
// the amount. Rate must be a non-negative number; a blank quantity means 0.
func ParseLineItemDraft(d LineItemDraft) (LineItem, error) {
	rate, err := parseAmountField(d.Rate)
	if err != nil || rate < 0 {
		return LineItem{}, &ValidationError{Field: "rate", Message: "invalid rate"}
	}

	var qty float64
	if strings.TrimSpace(d.Qty) != "" {
		qty, err = parseAmountField(d.Qty)
		if err != nil {
			return LineItem{}, &ValidationError{Field: "qty", Message: "invalid quantity"}
		}
		if qty < 0 {
			return LineItem{}, &ValidationError{Field: "qty", Message: "quantity cannot be negative"}
		}
	}

	return LineItem{
		Type:    strings.TrimSpace(d.Type),
		Qty:     qty,
		Length:  strings.TrimSpace(d.Length),
		Dia:     strings.TrimSpace(d.Dia),
		Shore:   strings.TrimSpace(d.Shore),
		Remarks: strings.TrimSpace(d.Remarks),
		Rate:    rate,
		Amount:  CalcLineAmount(qty, rate),
	}, nil
}

// DraftFromItem renders an item back into editable text fields.
func DraftFromItem(item LineItem) LineItemDraft {
	return LineItemDraft{
		Type:    item.Type,
		Qty:     formatNumber(item.Qty),
		Length:  item.Length,
		Dia:     item.Dia,
		Shore:   item.Shore,
		Remarks: item.Remarks,
		Rate:    formatNumber(item.Rate),
	}
}

// parseAmountField accepts plain decimal numbers only.
func parseAmountField(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	v, err := cast.ToFloat64E(s)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
