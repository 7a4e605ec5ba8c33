// Package store persists orders in PocketBase and produces the exports.
package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"orderbook/collections"
	"orderbook/services"
)

// OrderStore implements services.OrderStore on top of a PocketBase app.
type OrderStore struct {
	app core.App
}

var _ services.OrderStore = (*OrderStore)(nil)

// NewOrderStore returns a store backed by app. The collections must already
// exist (see collections.Setup).
func NewOrderStore(app core.App) *OrderStore {
	return &OrderStore{app: app}
}

// Save inserts or replaces the order with o.OrderNo. The header and the
// complete item list are written in one transaction.
func (s *OrderStore) Save(ctx context.Context, o services.Order) error {
	if err := ctx.Err(); err != nil {
		return services.WrapBoundary("save order", err)
	}

	err := s.app.RunInTransaction(func(txApp core.App) error {
		ordersCol, err := txApp.FindCollectionByNameOrId(collections.Orders)
		if err != nil {
			return err
		}
		itemsCol, err := txApp.FindCollectionByNameOrId(collections.OrderItems)
		if err != nil {
			return err
		}

		rec, err := txApp.FindFirstRecordByData(ordersCol, "order_no", o.OrderNo)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			rec = core.NewRecord(ordersCol)
		case err != nil:
			return err
		}

		setOrderFields(rec, o)
		if err := txApp.Save(rec); err != nil {
			return err
		}

		oldItems, err := txApp.FindAllRecords(itemsCol, dbx.HashExp{collections.OrderRelationField: rec.Id})
		if err != nil {
			return err
		}
		for _, old := range oldItems {
			if err := txApp.Delete(old); err != nil {
				return err
			}
		}

		for _, item := range o.Items {
			itemRec := core.NewRecord(itemsCol)
			itemRec.Set(collections.OrderRelationField, rec.Id)
			setItemFields(itemRec, item)
			if err := txApp.Save(itemRec); err != nil {
				return err
			}
		}
		return nil
	})
	return services.WrapBoundary("save order "+o.OrderNo, err)
}

// LoadPage returns one page of orders, newest created first, together with
// the counts of the whole collection.
func (s *OrderStore) LoadPage(ctx context.Context, page, pageSize int) (services.OrderPage, error) {
	page, pageSize = services.NormalizePage(page, pageSize)

	total, err := s.app.CountRecords(collections.Orders)
	if err != nil {
		return services.OrderPage{}, services.WrapBoundary("count orders", err)
	}

	records := []*core.Record{}
	err = s.app.RecordQuery(collections.Orders).
		WithContext(ctx).
		OrderBy("created_date DESC", "id DESC").
		Limit(int64(pageSize)).
		Offset(int64((page - 1) * pageSize)).
		All(&records)
	if err != nil {
		return services.OrderPage{}, services.WrapBoundary("load orders", err)
	}

	orders, err := s.withItems(ctx, records)
	if err != nil {
		return services.OrderPage{}, err
	}

	return services.OrderPage{
		Orders:     orders,
		Total:      int(total),
		Page:       page,
		PageSize:   pageSize,
		TotalPages: services.TotalPages(int(total), pageSize),
	}, nil
}

// LoadAll returns every order, newest created first.
func (s *OrderStore) LoadAll(ctx context.Context) ([]services.Order, error) {
	records := []*core.Record{}
	err := s.app.RecordQuery(collections.Orders).
		WithContext(ctx).
		OrderBy("created_date DESC", "id DESC").
		All(&records)
	if err != nil {
		return nil, services.WrapBoundary("load all orders", err)
	}
	return s.withItems(ctx, records)
}

// FindByNumber returns the order with orderNo or a *services.NotFoundError.
func (s *OrderStore) FindByNumber(ctx context.Context, orderNo string) (services.Order, error) {
	rec, err := s.findRecord(orderNo)
	if err != nil {
		return services.Order{}, err
	}
	orders, err := s.withItems(ctx, []*core.Record{rec})
	if err != nil {
		return services.Order{}, err
	}
	return orders[0], nil
}

// Exists reports whether an order with orderNo is stored.
func (s *OrderStore) Exists(ctx context.Context, orderNo string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	n, err := s.app.CountRecords(collections.Orders, dbx.HashExp{"order_no": orderNo})
	if err != nil {
		return false, services.WrapBoundary("check order "+orderNo, err)
	}
	return n > 0, nil
}

// UpdateStatus changes only the status of an existing order.
func (s *OrderStore) UpdateStatus(ctx context.Context, orderNo string, status services.Status) error {
	if !status.Valid() {
		return &services.ValidationError{Field: "status", Message: "unknown status " + string(status)}
	}
	if err := ctx.Err(); err != nil {
		return services.WrapBoundary("update status", err)
	}
	rec, err := s.findRecord(orderNo)
	if err != nil {
		return err
	}
	rec.Set("status", string(status))
	return services.WrapBoundary("update status of "+orderNo, s.app.Save(rec))
}

// Delete removes an order; its items go with it.
func (s *OrderStore) Delete(ctx context.Context, orderNo string) error {
	if err := ctx.Err(); err != nil {
		return services.WrapBoundary("delete order", err)
	}
	rec, err := s.findRecord(orderNo)
	if err != nil {
		return err
	}
	return services.WrapBoundary("delete order "+orderNo, s.app.Delete(rec))
}

// CountByStatus returns how many orders are in each status, plus the total
// under services.StatusAll.
func (s *OrderStore) CountByStatus(ctx context.Context) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(services.Statuses)+1)
	total := 0
	for _, status := range services.Statuses {
		n, err := s.app.CountRecords(collections.Orders, dbx.HashExp{"status": string(status)})
		if err != nil {
			return nil, services.WrapBoundary("count orders by status", err)
		}
		counts[string(status)] = int(n)
		total += int(n)
	}
	counts[services.StatusAll] = total
	return counts, nil
}

func (s *OrderStore) findRecord(orderNo string) (*core.Record, error) {
	rec, err := s.app.FindFirstRecordByData(collections.Orders, "order_no", orderNo)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &services.NotFoundError{OrderNo: orderNo}
	}
	if err != nil {
		return nil, services.WrapBoundary("find order "+orderNo, err)
	}
	return rec, nil
}

// withItems converts order records and attaches their items, fetched with a
// single query.
func (s *OrderStore) withItems(ctx context.Context, records []*core.Record) ([]services.Order, error) {
	orders := make([]services.Order, len(records))
	if len(records) == 0 {
		return orders, nil
	}

	ids := make([]any, len(records))
	index := make(map[string]int, len(records))
	for i, rec := range records {
		orders[i] = orderFromRecord(rec)
		ids[i] = rec.Id
		index[rec.Id] = i
	}

	itemRecords := []*core.Record{}
	err := s.app.RecordQuery(collections.OrderItems).
		WithContext(ctx).
		AndWhere(dbx.In(collections.OrderRelationField, ids...)).
		OrderBy("sl_no ASC", "id ASC").
		All(&itemRecords)
	if err != nil {
		return nil, services.WrapBoundary("load order items", err)
	}

	for _, rec := range itemRecords {
		i, ok := index[rec.GetString(collections.OrderRelationField)]
		if !ok {
			continue
		}
		orders[i].Items = append(orders[i].Items, itemFromRecord(rec))
	}
	for i := range orders {
		if orders[i].Items == nil {
			orders[i].Items = []services.LineItem{}
		}
	}
	return orders, nil
}

func setOrderFields(rec *core.Record, o services.Order) {
	rec.Set("order_no", o.OrderNo)
	rec.Set("date", o.Date)
	rec.Set("customer_name", o.CustomerName)
	rec.Set("contact_person", o.ContactPerson)
	rec.Set("phone", o.Phone)
	rec.Set("status", string(o.Status))
	rec.Set("machine_name", o.MachineName)
	rec.Set("subtotal", o.Subtotal)
	rec.Set("gst_percent", o.GSTPercent)
	rec.Set("gst", o.GST)
	rec.Set("total", o.Total)
	rec.Set("remarks", o.Remarks)
	rec.Set("delivery_note", o.DeliveryNote)
	rec.Set("delivery_note_date", o.DeliveryNoteDate)
	rec.Set("buyer_order_no", o.BuyerOrderNo)
	rec.Set("buyer_order_date", o.BuyerOrderDate)
	rec.Set("created_date", o.CreatedDate)
}

func orderFromRecord(rec *core.Record) services.Order {
	return services.Order{
		OrderNo:          rec.GetString("order_no"),
		Date:             rec.GetString("date"),
		CustomerName:     rec.GetString("customer_name"),
		ContactPerson:    rec.GetString("contact_person"),
		Phone:            rec.GetString("phone"),
		Status:           services.Status(rec.GetString("status")),
		MachineName:      rec.GetString("machine_name"),
		Subtotal:         rec.GetFloat("subtotal"),
		GSTPercent:       rec.GetFloat("gst_percent"),
		GST:              rec.GetFloat("gst"),
		Total:            rec.GetFloat("total"),
		Remarks:          rec.GetString("remarks"),
		DeliveryNote:     rec.GetString("delivery_note"),
		DeliveryNoteDate: rec.GetString("delivery_note_date"),
		BuyerOrderNo:     rec.GetString("buyer_order_no"),
		BuyerOrderDate:   rec.GetString("buyer_order_date"),
		CreatedDate:      rec.GetString("created_date"),
	}
}

func setItemFields(rec *core.Record, item services.LineItem) {
	rec.Set("sl_no", item.SlNo)
	rec.Set("type", item.Type)
	rec.Set("qty", item.Qty)
	rec.Set("length", item.Length)
	rec.Set("dia", item.Dia)
	rec.Set("shore", item.Shore)
	rec.Set("remarks", item.Remarks)
	rec.Set("rate", item.Rate)
	rec.Set("amount", item.Amount)
}

func itemFromRecord(rec *core.Record) services.LineItem {
	return services.LineItem{
		SlNo:    rec.GetInt("sl_no"),
		Type:    rec.GetString("type"),
		Qty:     rec.GetFloat("qty"),
		Length:  rec.GetString("length"),
		Dia:     rec.GetString("dia"),
		Shore:   rec.GetString("shore"),
		Remarks: rec.GetString("remarks"),
		Rate:    rec.GetFloat("rate"),
		Amount:  rec.GetFloat("amount"),
	}
}
