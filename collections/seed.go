package collections

import (
	"context"
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog/log"

	"orderbook/services"
)

type seedItem struct {
	itemType string
	qty      float64
	length   string
	dia      string
	shore    string
	remarks  string
	rate     float64
}

type seedOrder struct {
	orderNo      string
	daysAgo      int
	customer     string
	contact      string
	phone        string
	machine      string
	status       services.Status
	remarks      string
	buyerOrderNo string
	deliveryNote string
	items        []seedItem
}

var demoOrders = []seedOrder{
	{
		orderNo:      "ORD-DEMO-001",
		daysAgo:      12,
		customer:     "Sri Lakshmi Textiles",
		contact:      "K. Ramesh",
		phone:        "98400 11223",
		machine:      "Sizing Machine 3",
		status:       services.StatusCompleted,
		buyerOrderNo: "SLT/PO/2291",
		deliveryNote: "DN-4410",
		items: []seedItem{
			{itemType: "Squeeze Roller", qty: 2, length: "1800", dia: "150", shore: "75A", rate: 18500},
			{itemType: "Regrinding", rate: 2400, remarks: "old rollers"},
		},
	},
	{
		orderNo:  "ORD-DEMO-002",
		daysAgo:  5,
		customer: "Coastal Paper Mills",
		contact:  "Anita Menon",
		machine:  "Press Section",
		status:   services.StatusInProgress,
		remarks:  "Dispatch in two lots",
		items: []seedItem{
			{itemType: "Press Roll Cover", qty: 1, length: "3200", dia: "600", shore: "P&J 12", rate: 142000},
			{itemType: "Dynamic Balancing", qty: 1, rate: 9500},
		},
	},
	{
		orderNo:  "ORD-DEMO-003",
		daysAgo:  1,
		customer: "Vel Printing Works",
		phone:    "94432 55667",
		machine:  "Offset Press",
		status:   services.StatusNew,
		items: []seedItem{
			{itemType: "Ink Roller", qty: 6, length: "720", dia: "65", shore: "30A", rate: 3200},
		},
	},
}

// Seed saves a few demo orders through saver when the orders collection is
// empty. It does nothing on a database that already has orders.
func Seed(ctx context.Context, app core.App, saver services.OrderSaver, now time.Time) error {
	count, err := app.CountRecords(Orders)
	if err != nil {
		return fmt.Errorf("seed: could not count orders: %w", err)
	}
	if count > 0 {
		return nil
	}

	log.Info().Int("orders", len(demoOrders)).Msg("seed: orders collection is empty, inserting demo orders")

	for _, d := range demoOrders {
		created := now.AddDate(0, 0, -d.daysAgo)
		order := services.Order{
			OrderNo:       d.orderNo,
			Date:          created.Format(services.DateLayout),
			CustomerName:  d.customer,
			ContactPerson: d.contact,
			Phone:         d.phone,
			Status:        d.status,
			MachineName:   d.machine,
			GSTPercent:    services.DefaultGSTPercent,
			Remarks:       d.remarks,
			BuyerOrderNo:  d.buyerOrderNo,
			DeliveryNote:  d.deliveryNote,
			CreatedDate:   created.UTC().Format(time.RFC3339),
		}
		for _, si := range d.items {
			order.Items = append(order.Items, services.LineItem{
				Type:    si.itemType,
				Qty:     si.qty,
				Length:  si.length,
				Dia:     si.dia,
				Shore:   si.shore,
				Remarks: si.remarks,
				Rate:    si.rate,
				Amount:  services.CalcLineAmount(si.qty, si.rate),
			})
		}
		services.RenumberItems(order.Items)
		order.Recalculate()

		if err := saver.Save(ctx, order); err != nil {
			return fmt.Errorf("seed: save %s: %w", d.orderNo, err)
		}
	}
	return nil
}
