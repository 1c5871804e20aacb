package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Inventario-ventas/internal/application/dto"
	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/Inventario-ventas/internal/domain/repository"
)

// exportPageSize tamaño de página al recorrer las ventas a exportar.
const exportPageSize = 500

// SalesExportRow venta a exportar con sus unidades.
type SalesExportRow struct {
	Sale  *entity.Sale
	Units int
	Lines int
}

// SalesExport datos del libro de ventas.
type SalesExport struct {
	From    time.Time
	To      time.Time
	Rows    []SalesExportRow
	Summary *dto.SalesSummaryResponse
}

// WorkbookWriter genera el archivo XLSX.
type WorkbookWriter interface {
	WriteSalesWorkbook(ctx context.Context, data SalesExport) ([]byte, error)
}

// ExportUseCase exporta las ventas de un período a XLSX.
type ExportUseCase struct {
	saleRepo repository.SaleRepository
	summary  *SummaryUseCase
	writer   WorkbookWriter
	now      func() time.Time
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(saleRepo repository.SaleRepository, summary *SummaryUseCase, writer WorkbookWriter) *ExportUseCase {
	return &ExportUseCase{saleRepo: saleRepo, summary: summary, writer: writer, now: time.Now}
}

// ExportSales devuelve el XLSX (hojas Ventas y Resumen) y el nombre de archivo sugerido.
func (uc *ExportUseCase) ExportSales(ctx context.Context, sellerID string, from, to time.Time) ([]byte, string, error) {
	from, to, err := ResolveRange(from, to, uc.now())
	if err != nil {
		return nil, "", err
	}
	summary, err := uc.summary.GetSummary(ctx, sellerID, from, to)
	if err != nil {
		return nil, "", err
	}

	rows := make([]SalesExportRow, 0)
	for offset := 0; ; offset += exportPageSize {
		page, err := uc.saleRepo.ListBySeller(ctx, sellerID, repository.SaleFilter{
			From: from, To: to, Limit: exportPageSize, Offset: offset,
		})
		if err != nil {
			return nil, "", fmt.Errorf("export: listar ventas: %w", err)
		}
		for _, s := range page {
			items, err := uc.saleRepo.GetItems(ctx, s.ID)
			if err != nil {
				return nil, "", fmt.Errorf("export: líneas de %s: %w", s.SaleNumber, err)
			}
			units := 0
			for _, it := range items {
				units += it.Quantity
			}
			rows = append(rows, SalesExportRow{Sale: s, Units: units, Lines: len(items)})
		}
		if len(page) < exportPageSize {
			break
		}
	}

	data, err := uc.writer.WriteSalesWorkbook(ctx, SalesExport{From: from, To: to, Rows: rows, Summary: summary})
	if err != nil {
		return nil, "", fmt.Errorf("export: generar xlsx: %w", err)
	}
	name := fmt.Sprintf("ventas_%s_%s.xlsx", from.Format("20060102"), to.AddDate(0, 0, -1).Format("20060102"))
	return data, name, nil
}
