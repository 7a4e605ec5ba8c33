package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog/log"
)

// laterOrderFields were added to orders after the first release. Databases
// created before that get them on the next start.
func laterOrderFields() []core.Field {
	return []core.Field{
		&core.TextField{Name: "delivery_note"},
		&core.TextField{Name: "delivery_note_date"},
		&core.TextField{Name: "buyer_order_no"},
		&core.TextField{Name: "buyer_order_date"},
		&core.NumberField{Name: "gst_percent", Min: floatPtr(0), Max: floatPtr(100)},
	}
}

// EnsureOrderFields adds any missing laterOrderFields to the orders
// collection. Existing fields are left alone, so it is safe to call on every
// start.
func EnsureOrderFields(app core.App) error {
	col, err := app.FindCollectionByNameOrId(Orders)
	if err != nil {
		return fmt.Errorf("ensure order fields: could not find %s collection: %w", Orders, err)
	}

	var added []string
	for _, field := range laterOrderFields() {
		if col.Fields.GetByName(field.GetName()) != nil {
			continue
		}
		col.Fields.Add(field)
		added = append(added, field.GetName())
	}
	if len(added) == 0 {
		return nil
	}

	if err := app.Save(col); err != nil {
		return fmt.Errorf("ensure order fields: save %s collection: %w", Orders, err)
	}
	log.Info().Strs("fields", added).Msg("added order fields")
	return nil
}

func floatPtr(v float64) *float64 {
	return &v
}
