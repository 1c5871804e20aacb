// Package reports contiene los casos de uso de reportes de ventas y exportaciones.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Inventario-ventas/internal/application/dto"
	"github.com/jhoicas/Inventario-ventas/internal/domain"
	"github.com/jhoicas/Inventario-ventas/internal/domain/repository"
)

const summaryTopProducts = 5 // productos en el ranking del resumen

// SummaryUseCase genera el resumen de ventas de un período.
// Solo lectura: delega las consultas en ReportRepository.
type SummaryUseCase struct {
	reportRepo repository.ReportRepository
	now        func() time.Time
}

// NewSummaryUseCase construye el caso de uso.
func NewSummaryUseCase(reportRepo repository.ReportRepository) *SummaryUseCase {
	return &SummaryUseCase{reportRepo: reportRepo, now: time.Now}
}

// ResolveRange completa el período: sin from se usa el inicio del mes en curso,
// sin to el inicio del día siguiente. El rango es [from, to).
func ResolveRange(from, to, now time.Time) (time.Time, time.Time, error) {
	now = now.UTC()
	if to.IsZero() {
		to = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	}
	if from.IsZero() {
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	if !to.After(from) {
		return time.Time{}, time.Time{}, domain.Invalid("el rango de fechas es inválido")
	}
	return from, to, nil
}

// GetSummary ejecuta en paralelo:
//  1. GetSalesTotals  → conteo, ingresos, descuentos, ganancia
//  2. GetUnitsSold    → unidades
//  3. GetTopProducts  → top 5 por ingreso
func (uc *SummaryUseCase) GetSummary(ctx context.Context, sellerID string, from, to time.Time) (*dto.SalesSummaryResponse, error) {
	from, to, err := ResolveRange(from, to, uc.now())
	if err != nil {
		return nil, err
	}

	type totalsResult struct {
		totals repository.SalesTotals
		err    error
	}
	type unitsResult struct {
		units int
		err   error
	}
	type topResult struct {
		top []repository.ProductSales
		err error
	}

	totalsCh := make(chan totalsResult, 1)
	unitsCh := make(chan unitsResult, 1)
	topCh := make(chan topResult, 1)

	go func() {
		t, err := uc.reportRepo.GetSalesTotals(ctx, sellerID, from, to)
		totalsCh <- totalsResult{t, err}
	}()
	go func() {
		u, err := uc.reportRepo.GetUnitsSold(ctx, sellerID, from, to)
		unitsCh <- unitsResult{u, err}
	}()
	go func() {
		top, err := uc.reportRepo.GetTopProducts(ctx, sellerID, from, to, summaryTopProducts)
		topCh <- topResult{top, err}
	}()

	totals := <-totalsCh
	units := <-unitsCh
	top := <-topCh

	if totals.err != nil {
		return nil, fmt.Errorf("reports: totales: %w", totals.err)
	}
	if units.err != nil {
		return nil, fmt.Errorf("reports: unidades: %w", units.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("reports: top productos: %w", top.err)
	}

	topDTO := make([]dto.TopProductDTO, 0, len(top.top))
	for _, p := range top.top {
		topDTO = append(topDTO, dto.TopProductDTO{
			ProductID: p.ProductID,
			SKU:       p.SKU,
			Name:      p.Name,
			UnitsSold: p.UnitsSold,
			Revenue:   p.Revenue.Round(2),
			Profit:    p.Profit.Round(2),
		})
	}
	return &dto.SalesSummaryResponse{
		From:        from,
		To:          to,
		SaleCount:   totals.totals.SaleCount,
		Revenue:     totals.totals.Revenue.Round(2),
		Discounts:   totals.totals.Discounts.Round(2),
		GrossProfit: totals.totals.Profit.Round(2),
		UnitsSold:   units.units,
		TopProducts: topDTO,
	}, nil
}
