// Package collections owns the PocketBase schema of the order book.
package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog/log"

	"orderbook/services"
)

// Collection names.
const (
	Orders     = "orders"
	OrderItems = "order_items"
)

// OrderRelationField links an item to its order. It is not called "order"
// because that is an SQL keyword.
const OrderRelationField = "order_record"

// Setup creates the orders and order_items collections when they are missing
// and brings an existing orders collection up to date. It is safe to call on
// every start.
func Setup(app core.App) error {
	orders, err := ensureCollection(app, Orders, func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "order_no", Required: true, Max: 100})
		c.Fields.Add(&core.TextField{Name: "date"})
		c.Fields.Add(&core.TextField{Name: "customer_name", Required: true})
		c.Fields.Add(&core.TextField{Name: "contact_person"})
		c.Fields.Add(&core.TextField{Name: "phone"})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    statusValues(),
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "machine_name"})
		// numbers are not Required: PocketBase treats 0 as blank
		c.Fields.Add(&core.NumberField{Name: "subtotal"})
		c.Fields.Add(&core.NumberField{Name: "gst"})
		c.Fields.Add(&core.NumberField{Name: "total"})
		c.Fields.Add(&core.TextField{Name: "remarks"})
		c.Fields.Add(&core.TextField{Name: "created_date"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_orders_order_no", true, "order_no", "")
		c.AddIndex("idx_orders_created_date", false, "created_date", "")
	})
	if err != nil {
		return err
	}

	if err := EnsureOrderFields(app); err != nil {
		return err
	}

	_, err = ensureCollection(app, OrderItems, func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          OrderRelationField,
			Required:      true,
			CollectionId:  orders.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sl_no", OnlyInt: true})
		c.Fields.Add(&core.TextField{Name: "type"})
		c.Fields.Add(&core.NumberField{Name: "qty"})
		c.Fields.Add(&core.TextField{Name: "length"})
		c.Fields.Add(&core.TextField{Name: "dia"})
		c.Fields.Add(&core.TextField{Name: "shore"})
		c.Fields.Add(&core.TextField{Name: "remarks"})
		c.Fields.Add(&core.NumberField{Name: "rate"})
		c.Fields.Add(&core.NumberField{Name: "amount"})
		c.AddIndex("idx_order_items_order", false, OrderRelationField, "")
	})
	return err
}

func statusValues() []string {
	values := make([]string, len(services.Statuses))
	for i, s := range services.Statuses {
		values[i] = string(s)
	}
	return values
}

// ensureCollection returns the named collection, creating it with the fields
// added by addFields when it does not exist yet.
func ensureCollection(app core.App, name string, addFields func(*core.Collection)) (*core.Collection, error) {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Debug().Str("collection", name).Msg("collection already exists")
		return existing, nil
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		return nil, fmt.Errorf("create collection %q: %w", name, err)
	}

	log.Info().Str("collection", name).Str("id", collection.Id).Msg("created collection")
	return collection, nil
}
