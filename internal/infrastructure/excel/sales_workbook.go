// Package excel genera libros XLSX con excelize.
package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Inventario-ventas/internal/application/reports"
)

var _ reports.WorkbookWriter = (*SalesWorkbookWriter)(nil)

// Nombres de las hojas del libro de ventas.
const (
	SheetSales   = "Ventas"
	SheetSummary = "Resumen"
)

var salesHeader = []any{"N° Venta", "Fecha", "Cliente", "Líneas", "Unidades", "Subtotal", "Descuento", "Total", "Ganancia"}

// SalesWorkbookWriter implementa reports.WorkbookWriter.
type SalesWorkbookWriter struct{}

// NewSalesWorkbookWriter construye el generador.
func NewSalesWorkbookWriter() *SalesWorkbookWriter { return &SalesWorkbookWriter{} }

// WriteSalesWorkbook arma la hoja Ventas (una fila por venta) y la hoja Resumen.
func (w *SalesWorkbookWriter) WriteSalesWorkbook(_ context.Context, data reports.SalesExport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSales); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}

	// ── Ventas ────────────────────────────────────────────────────────────────
	if err := f.SetSheetRow(SheetSales, "A1", &salesHeader); err != nil {
		return nil, fmt.Errorf("excel: cabecera: %w", err)
	}
	if err := f.SetCellStyle(SheetSales, "A1", "I1", bold); err != nil {
		return nil, fmt.Errorf("excel: estilo cabecera: %w", err)
	}
	for i, r := range data.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		s := r.Sale
		values := []any{
			s.SaleNumber,
			s.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			s.CustomerID,
			r.Lines,
			r.Units,
			s.Subtotal.InexactFloat64(),
			s.DiscountAmount.InexactFloat64(),
			s.Total.InexactFloat64(),
			s.Profit.InexactFloat64(),
		}
		if err := f.SetSheetRow(SheetSales, cell, &values); err != nil {
			return nil, fmt.Errorf("excel: fila %s: %w", s.SaleNumber, err)
		}
	}
	_ = f.SetColWidth(SheetSales, "A", "C", 22)

	// ── Resumen ───────────────────────────────────────────────────────────────
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return nil, fmt.Errorf("excel: hoja resumen: %w", err)
	}
	summaryRows := [][]any{
		{"Desde", data.From.UTC().Format("2006-01-02")},
		{"Hasta (exclusivo)", data.To.UTC().Format("2006-01-02")},
	}
	if sm := data.Summary; sm != nil {
		summaryRows = append(summaryRows,
			[]any{"Ventas", sm.SaleCount},
			[]any{"Ingresos", sm.Revenue.InexactFloat64()},
			[]any{"Descuentos", sm.Discounts.InexactFloat64()},
			[]any{"Ganancia bruta", sm.GrossProfit.InexactFloat64()},
			[]any{"Unidades vendidas", sm.UnitsSold},
		)
		if len(sm.TopProducts) > 0 {
			summaryRows = append(summaryRows, []any{}, []any{"SKU", "Producto", "Unidades", "Ingresos", "Ganancia"})
			for _, p := range sm.TopProducts {
				summaryRows = append(summaryRows, []any{p.SKU, p.Name, p.UnitsSold, p.Revenue.InexactFloat64(), p.Profit.InexactFloat64()})
			}
		}
	}
	for i := range summaryRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetSummary, cell, &summaryRows[i]); err != nil {
			return nil, fmt.Errorf("excel: resumen: %w", err)
		}
	}
	_ = f.SetColWidth(SheetSummary, "A", "B", 20)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}
