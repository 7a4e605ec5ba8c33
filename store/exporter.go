package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"

	"orderbook/services"
)

// Exporter writes orders out of the application: the full spreadsheet, a
// saved printable document, or the PDF of one order.
type Exporter struct {
	orders  services.OrderStore
	company services.CompanyInfo
}

// NewExporter returns an exporter reading from orders. company is printed on
// every order document.
func NewExporter(orders services.OrderStore, company services.CompanyInfo) *Exporter {
	return &Exporter{orders: orders, company: company}
}

// Company returns the letterhead used on documents.
func (e *Exporter) Company() services.CompanyInfo {
	return e.company
}

// OrdersExcel builds the spreadsheet of every stored order, ignoring any
// list filter or page.
func (e *Exporter) OrdersExcel(ctx context.Context) ([]byte, int, error) {
	orders, err := e.orders.LoadAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	data, err := services.GenerateOrdersExcel(orders)
	if err != nil {
		return nil, 0, services.WrapBoundary("build spreadsheet", err)
	}
	return data, len(orders), nil
}

// ExportAll writes the spreadsheet of every order to destinationPath,
// creating missing parent directories.
func (e *Exporter) ExportAll(ctx context.Context, destinationPath string) error {
	if destinationPath == "" {
		return &services.ValidationError{Field: "path", Message: "destination path is required"}
	}
	data, count, err := e.OrdersExcel(ctx)
	if err != nil {
		return err
	}
	if err := writeFile(destinationPath, data); err != nil {
		return services.WrapBoundary("export orders", err)
	}
	log.Info().
		Str("path", destinationPath).
		Int("orders", count).
		Str("size", humanize.Bytes(uint64(len(data)))).
		Msg("exported orders")
	return nil
}

// OrderDocument loads an order and formats it for printing.
func (e *Exporter) OrderDocument(ctx context.Context, orderNo string) (services.OrderDocument, error) {
	order, err := e.orders.FindByNumber(ctx, orderNo)
	if err != nil {
		return services.OrderDocument{}, err
	}
	return services.BuildOrderDocument(order, e.company), nil
}

// ExportOrderPDF renders one order as a PDF.
func (e *Exporter) ExportOrderPDF(ctx context.Context, orderNo string) ([]byte, error) {
	doc, err := e.OrderDocument(ctx, orderNo)
	if err != nil {
		return nil, err
	}
	data, err := services.GenerateOrderPDF(doc)
	if err != nil {
		return nil, services.WrapBoundary("render pdf for "+orderNo, err)
	}
	return data, nil
}

// SaveRenderedDocument writes an already rendered printable document to path.
func (e *Exporter) SaveRenderedDocument(path, content string) error {
	if path == "" {
		return &services.ValidationError{Field: "path", Message: "destination path is required"}
	}
	if err := writeFile(path, []byte(content)); err != nil {
		return services.WrapBoundary("save document", err)
	}
	log.Info().Str("path", path).Str("size", humanize.Bytes(uint64(len(content)))).Msg("saved order document")
	return nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
