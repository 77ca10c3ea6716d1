package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

// StockReport datos que recibe el generador del informe.
type StockReport struct {
	Title       string
	GeneratedAt time.Time
	GeneratedBy string
	Stats       *dto.StatsResponse
	Products    []*entity.Product // activos, ordenados por nombre
}

// StockReportGenerator port de salida para renderizar el informe (PDF).
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, report *StockReport) ([]byte, error)
}

// ReportUseCase arma el informe de stock con las mismas cifras que GetStats.
type ReportUseCase struct {
	stats     *StatsUseCase
	products  repository.ProductRepository
	generator StockReportGenerator
	title     string
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(stats *StatsUseCase, products repository.ProductRepository, generator StockReportGenerator, title string) *ReportUseCase {
	return &ReportUseCase{stats: stats, products: products, generator: generator, title: title}
}

// StockReportPDF devuelve los bytes del PDF y el nombre de archivo sugerido.
func (uc *ReportUseCase) StockReportPDF(ctx context.Context, actor entity.Actor) ([]byte, string, error) {
	s, err := uc.stats.GetStats(ctx)
	if err != nil {
		return nil, "", err
	}
	active := true
	products, _, err := uc.products.List(ctx,
		repository.ProductFilter{IsActive: &active},
		repository.Sort{Field: repository.ProductSortName},
		repository.Page{}, // sin límite
	)
	if err != nil {
		return nil, "", fmt.Errorf("report: productos: %w", err)
	}

	now := uc.stats.now()
	report := &StockReport{
		Title:       uc.title,
		GeneratedAt: now,
		GeneratedBy: actor.Username,
		Stats:       s,
		Products:    products,
	}
	pdfBytes, err := uc.generator.GenerateStockReport(ctx, report)
	if err != nil {
		return nil, "", err
	}
	return pdfBytes, fmt.Sprintf("stock-report-%s.pdf", now.Format("20060102-1504")), nil
}
