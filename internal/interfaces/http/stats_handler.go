package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockroom-api/internal/application/analytics"
)

// StatsHandler estadísticas e informe PDF (admin).
type StatsHandler struct {
	stats  *analytics.StatsUseCase
	report *analytics.ReportUseCase
}

// NewStatsHandler construye el handler.
func NewStatsHandler(stats *analytics.StatsUseCase, report *analytics.ReportUseCase) *StatsHandler {
	return &StatsHandler{stats: stats, report: report}
}

// GetStats godoc
// @Summary      Resumen de inventario y actividad
// @Description  Totales de productos activos, movimientos no revertidos de los últimos 30 días por tipo y los 5 productos con más movimientos.
// @Tags         stats
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StatsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/stats [get]
func (h *StatsHandler) GetStats(c *fiber.Ctx) error {
	out, err := h.stats.GetStats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ReportPDF godoc
// @Summary      Informe de stock en PDF
// @Tags         stats
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/stats/report.pdf [get]
func (h *StatsHandler) ReportPDF(c *fiber.Ctx) error {
	actor, _ := GetActor(c)
	pdf, filename, err := h.report.StockReportPDF(c.UserContext(), actor)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
