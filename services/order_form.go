package services

import (
	"context"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DateLayout is the calendar date format used by the form and the store.
const DateLayout = "2006-01-02"

// OrderForm is the editable state behind the order entry screen.
type OrderForm struct {
	OrderNo          string  `json:"orderNo"`
	Date             string  `json:"date"`
	CustomerName     string  `json:"customerName"`
	ContactPerson    string  `json:"contactPerson"`
	Phone            string  `json:"phone"`
	MachineName      string  `json:"machineName"`
	Remarks          string  `json:"remarks"`
	DeliveryNote     string  `json:"deliveryNote"`
	DeliveryNoteDate string  `json:"deliveryNoteDate"`
	BuyerOrderNo     string  `json:"buyerOrderNo"`
	BuyerOrderDate   string  `json:"buyerOrderDate"`
	Status           Status  `json:"status"`
	GSTPercent       float64 `json:"gstPercent"`
	CreatedDate      string  `json:"createdDate"`

	Editor LineItemEditor `json:"-"`
}

// NewOrderForm returns a cleared form dated today.
func NewOrderForm(today time.Time) OrderForm {
	var f OrderForm
	f.Clear(today)
	return f
}

// Clear resets every field: today's date, default GST, no items, no edit.
func (f *OrderForm) Clear(today time.Time) {
	*f = OrderForm{
		Date:       today.Format(DateLayout),
		Status:     StatusNew,
		GSTPercent: DefaultGSTPercent,
		Editor:     NewLineItemEditor(nil),
	}
}

// FormFromOrder loads a stored order back into an editable form.
func FormFromOrder(o Order) OrderForm {
	return OrderForm{
		OrderNo:          o.OrderNo,
		Date:             o.Date,
		CustomerName:     o.CustomerName,
		ContactPerson:    o.ContactPerson,
		Phone:            o.Phone,
		MachineName:      o.MachineName,
		Remarks:          o.Remarks,
		DeliveryNote:     o.DeliveryNote,
		DeliveryNoteDate: o.DeliveryNoteDate,
		BuyerOrderNo:     o.BuyerOrderNo,
		BuyerOrderDate:   o.BuyerOrderDate,
		Status:           o.Status,
		GSTPercent:       o.GSTPercent,
		CreatedDate:      o.CreatedDate,
		Editor:           NewLineItemEditor(o.Items),
	}
}

// Totals derives subtotal, GST and total from the items currently on the form.
func (f OrderForm) Totals() OrderTotals {
	return CalcOrderTotals(SanitizeItems(f.Editor.Items), f.GSTPercent)
}

// Validate checks the header fields. Item checks happen in Submit.
func (f OrderForm) Validate() error {
	trimmed := f
	trimmed.CustomerName = strings.TrimSpace(f.CustomerName)

	err := validation.ValidateStruct(&trimmed,
		validation.Field(&trimmed.CustomerName, validation.Required.Error("customer name is required")),
		validation.Field(&trimmed.GSTPercent,
			validation.Min(0.0).Error("GST percent cannot be negative"),
			validation.Max(100.0).Error("GST percent cannot exceed 100"),
		),
		validation.Field(&trimmed.Status, validation.By(func(value any) error {
			s, _ := value.(Status)
			if s != "" && !s.Valid() {
				return validation.NewError("validation_status", "unknown status")
			}
			return nil
		})),
	)
	return firstValidationError(err)
}

// OrderSaver is the part of the storage boundary the form needs.
type OrderSaver interface {
	Exists(ctx context.Context, orderNo string) (bool, error)
	FindByNumber(ctx context.Context, orderNo string) (Order, error)
	Save(ctx context.Context, order Order) error
}

// Submit validates the form, resolves the order number and hands the whole
// order to store. Saving over an existing order number needs confirmed;
// without it a ConfirmationRequiredError is returned and nothing is saved.
// The form itself is never modified; clearing it after success is up to
// the caller.
func (f OrderForm) Submit(ctx context.Context, store OrderSaver, now time.Time, confirmed bool) (Order, error) {
	if err := f.Validate(); err != nil {
		return Order{}, err
	}

	items := SanitizeItems(f.Editor.Items)
	if len(items) == 0 {
		return Order{}, &ValidationError{Field: "items", Message: "add at least one valid line item"}
	}

	orderNo := strings.TrimSpace(f.OrderNo)
	createdDate := f.CreatedDate

	if orderNo == "" {
		generated, err := NextOrderNumber(ctx, store.Exists, now)
		if err != nil {
			return Order{}, WrapBoundary("generate order number", err)
		}
		orderNo = generated
	} else {
		exists, err := store.Exists(ctx, orderNo)
		if err != nil {
			return Order{}, WrapBoundary("check order number", err)
		}
		if exists {
			if !confirmed {
				return Order{}, &ConfirmationRequiredError{OrderNo: orderNo}
			}
			if createdDate == "" {
				existing, err := store.FindByNumber(ctx, orderNo)
				if err != nil {
					return Order{}, WrapBoundary("load existing order", err)
				}
				createdDate = existing.CreatedDate
			}
		}
	}
	if createdDate == "" {
		createdDate = now.UTC().Format(time.RFC3339)
	}

	order := f.buildOrder(orderNo, items, createdDate, now)
	if err := store.Save(ctx, order); err != nil {
		return Order{}, WrapBoundary("save order", err)
	}
	return order, nil
}

func (f OrderForm) buildOrder(orderNo string, items []LineItem, createdDate string, now time.Time) Order {
	status := f.Status
	if status == "" {
		status = StatusNew
	}
	date := strings.TrimSpace(f.Date)
	if date == "" {
		date = now.Format(DateLayout)
	}

	order := Order{
		OrderNo:          orderNo,
		Date:             date,
		CustomerName:     strings.TrimSpace(f.CustomerName),
		ContactPerson:    strings.TrimSpace(f.ContactPerson),
		Phone:            strings.TrimSpace(f.Phone),
		Status:           status,
		MachineName:      strings.TrimSpace(f.MachineName),
		Items:            items,
		GSTPercent:       f.GSTPercent,
		Remarks:          strings.TrimSpace(f.Remarks),
		DeliveryNote:     strings.TrimSpace(f.DeliveryNote),
		DeliveryNoteDate: strings.TrimSpace(f.DeliveryNoteDate),
		BuyerOrderNo:     strings.TrimSpace(f.BuyerOrderNo),
		BuyerOrderDate:   strings.TrimSpace(f.BuyerOrderDate),
		CreatedDate:      createdDate,
	}
	order.Recalculate()
	return order
}

// firstValidationError turns ozzo's field map into a single ValidationError,
// picking fields in name order so the result is stable.
func firstValidationError(err error) error {
	if err == nil {
		return nil
	}
	errs, ok := err.(validation.Errors)
	if !ok {
		return err
	}
	fields := make([]string, 0, len(errs))
	for field, fieldErr := range errs {
		if fieldErr != nil {
			fields = append(fields, field)
		}
	}
	if len(fields) == 0 {
		return nil
	}
	sort.Strings(fields)
	return &ValidationError{Field: fields[0], Message: errs[fields[0]].Error()}
}
