package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sawaid25/aixosfire-api/internal/application/analytics"
	"github.com/sawaid25/aixosfire-api/internal/application/dto"
)

// DashboardHandler expone los paneles de admin y agente y el mapa en vivo.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler de dashboards.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// AdminSummary godoc
// @Summary      Panel del admin
// @Description  Totales de agentes, clientes y servicios, más la serie mensual de ingresos estimados.
// @Tags         dashboards
// @Produce      json
// @Success      200  {object}  dto.AdminSummaryDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/dashboards/admin [get]
func (h *DashboardHandler) AdminSummary(c *fiber.Ctx) error {
	out, err := h.uc.AdminSummary(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// AgentSummary godoc
// @Summary      Panel del agente autenticado
// @Description  Visitas, conversiones y ganancias estimadas con su serie mensual.
// @Tags         dashboards
// @Produce      json
// @Success      200  {object}  dto.AgentSummaryDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/dashboards/agent [get]
func (h *DashboardHandler) AgentSummary(c *fiber.Ctx) error {
	out, err := h.uc.AgentSummary(c.Context(), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// MapFeed godoc
// @Summary      Mapa en vivo (admin)
// @Description  Posiciones de agentes activos y clientes; la caché fresca tiene prioridad sobre la posición persistida.
// @Tags         dashboards
// @Produce      json
// @Success      200  {object}  dto.MapFeedDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/dashboards/map [get]
func (h *DashboardHandler) MapFeed(c *fiber.Ctx) error {
	out, err := h.uc.MapFeed(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
