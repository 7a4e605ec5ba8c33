package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	ordersSheet = "Orders"
	itemsSheet  = "Items"
)

// OrderExportHeaders are the column titles of the Orders sheet, in order.
var OrderExportHeaders = []string{
	"Order No", "Date", "Customer Name", "Contact Person", "Phone", "Status",
	"Machine Name", "Subtotal", "GST", "Total", "Remarks", "Delivery Note",
	"Delivery Note Date", "Buyer's Order Number", "Buyer's Order Date", "Created Date",
}

// ItemExportHeaders are the column titles of the Items sheet.
var ItemExportHeaders = []string{
	"Order No", "Sl No", "Type", "Qty", "Length", "Dia", "Shore", "Remarks", "Rate", "Amount",
}

// GenerateOrdersExcel writes every order as one row of the Orders sheet and
// every line item as one row of the Items sheet, keyed by order number.
func GenerateOrdersExcel(orders []Order) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ordersSheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	if _, err := f.NewSheet(itemsSheet); err != nil {
		return nil, fmt.Errorf("add items sheet: %w", err)
	}

	styles, err := newSheetStyles(f)
	if err != nil {
		return nil, err
	}

	if err := writeHeaderRow(f, ordersSheet, OrderExportHeaders, styles.header); err != nil {
		return nil, err
	}
	if err := writeHeaderRow(f, itemsSheet, ItemExportHeaders, styles.header); err != nil {
		return nil, err
	}

	orderWidths := []float64{22, 12, 28, 20, 16, 12, 20, 14, 12, 14, 30, 16, 16, 20, 16, 24}
	if err := setColumnWidths(f, ordersSheet, orderWidths); err != nil {
		return nil, err
	}
	itemWidths := []float64{22, 7, 24, 8, 10, 10, 10, 30, 14, 14}
	if err := setColumnWidths(f, itemsSheet, itemWidths); err != nil {
		return nil, err
	}

	itemRow := 2
	for i, o := range orders {
		row := i + 2
		values := []any{
			sanitizeExcelCell(o.OrderNo),
			sanitizeExcelCell(o.Date),
			sanitizeExcelCell(o.CustomerName),
			sanitizeExcelCell(o.ContactPerson),
			sanitizeExcelCell(o.Phone),
			string(o.Status),
			sanitizeExcelCell(o.MachineName),
			o.Subtotal,
			o.GST,
			o.Total,
			sanitizeExcelCell(o.Remarks),
			sanitizeExcelCell(o.DeliveryNote),
			sanitizeExcelCell(o.DeliveryNoteDate),
			sanitizeExcelCell(o.BuyerOrderNo),
			sanitizeExcelCell(o.BuyerOrderDate),
			o.CreatedDate,
		}
		if err := writeRow(f, ordersSheet, row, values); err != nil {
			return nil, err
		}
		if err := styleRow(f, ordersSheet, row, len(values), styles.cell); err != nil {
			return nil, err
		}
		// Subtotal, GST and Total are H, I and J.
		if err := f.SetCellStyle(ordersSheet, cellName(8, row), cellName(10, row), styles.money); err != nil {
			return nil, fmt.Errorf("style money cells: %w", err)
		}

		for _, item := range o.Items {
			itemValues := []any{
				sanitizeExcelCell(o.OrderNo),
				item.SlNo,
				sanitizeExcelCell(item.Type),
				item.Qty,
				sanitizeExcelCell(item.Length),
				sanitizeExcelCell(item.Dia),
				sanitizeExcelCell(item.Shore),
				sanitizeExcelCell(item.Remarks),
				item.Rate,
				item.Amount,
			}
			if err := writeRow(f, itemsSheet, itemRow, itemValues); err != nil {
				return nil, err
			}
			if err := styleRow(f, itemsSheet, itemRow, len(itemValues), styles.cell); err != nil {
				return nil, err
			}
			if err := f.SetCellStyle(itemsSheet, cellName(9, itemRow), cellName(10, itemRow), styles.money); err != nil {
				return nil, fmt.Errorf("style money cells: %w", err)
			}
			itemRow++
		}
	}

	if err := f.SetPanes(ordersSheet, frozenHeader()); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

type sheetStyles struct {
	header int
	cell   int
	money  int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error

	s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   true,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return s, fmt.Errorf("create header style: %w", err)
	}

	s.cell, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return s, fmt.Errorf("create cell style: %w", err)
	}

	s.money, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
		NumFmt: 4, // #,##0.00
	})
	if err != nil {
		return s, fmt.Errorf("create money style: %w", err)
	}
	return s, nil
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string, style int) error {
	values := make([]any, len(headers))
	for i, h := range headers {
		values[i] = h
	}
	if err := writeRow(f, sheet, 1, values); err != nil {
		return err
	}
	return styleRow(f, sheet, 1, len(headers), style)
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	if err := f.SetSheetRow(sheet, cellName(1, row), &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func styleRow(f *excelize.File, sheet string, row, cols, style int) error {
	if err := f.SetCellStyle(sheet, cellName(1, row), cellName(cols, row), style); err != nil {
		return fmt.Errorf("style %s row %d: %w", sheet, row, err)
	}
	return nil
}

func setColumnWidths(f *excelize.File, sheet string, widths []float64) error {
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return fmt.Errorf("set col width %s: %w", col, err)
		}
	}
	return nil
}

func frozenHeader() *excelize.Panes {
	return &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}
}

// cellName never fails for the small positive coordinates used here.
func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// sanitizeExcelCell quotes values that a spreadsheet would otherwise run as
// a formula.
func sanitizeExcelCell(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

func thinBorders() []excelize.Border {
	var borders []excelize.Border
	for _, side := range []string{"left", "top", "bottom", "right"} {
		borders = append(borders, excelize.Border{Type: side, Color: "#000000", Style: 1})
	}
	return borders
}
