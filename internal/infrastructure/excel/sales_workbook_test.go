package excel

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Inventario-ventas/internal/application/dto"
	"github.com/jhoicas/Inventario-ventas/internal/application/reports"
	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
)

func TestWriteSalesWorkbook_HojasYFilas(t *testing.T) {
	from := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	data := reports.SalesExport{
		From: from,
		To:   to,
		Rows: []reports.SalesExportRow{{
			Sale: &entity.Sale{
				SaleNumber: "V-20261014-000001", CreatedAt: from.AddDate(0, 0, 13),
				Subtotal: decimal.NewFromInt(250), DiscountAmount: decimal.NewFromInt(25),
				Total: decimal.NewFromInt(225), Profit: decimal.NewFromInt(110),
			},
			Units: 7, Lines: 2,
		}},
		Summary: &dto.SalesSummaryResponse{
			SaleCount: 1, Revenue: decimal.NewFromInt(225), UnitsSold: 7,
			TopProducts: []dto.TopProductDTO{{SKU: "A", Name: "Producto A", UnitsSold: 2, Revenue: decimal.NewFromInt(200)}},
		},
	}

	out, err := NewSalesWorkbookWriter().WriteSalesWorkbook(context.Background(), data)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSales, SheetSummary}, f.GetSheetList())

	rows, err := f.GetRows(SheetSales)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "N° Venta", rows[0][0])
	assert.Equal(t, "V-20261014-000001", rows[1][0])
	assert.Equal(t, "7", rows[1][4])
	assert.Equal(t, "225", rows[1][7])

	summary, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	assert.Equal(t, []string{"Desde", "2026-10-01"}, summary[0])
	assert.Equal(t, []string{"Ventas", "1"}, summary[2])
	assert.Equal(t, "Producto A", summary[len(summary)-1][1])
}
