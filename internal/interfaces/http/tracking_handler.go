package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/sawaid25/aixosfire-api/internal/application/dto"
	"github.com/sawaid25/aixosfire-api/internal/application/tracking"
	"github.com/sawaid25/aixosfire-api/internal/domain"
)

// TrackingHandler recibe los reportes de posición de agentes y clientes.
type TrackingHandler struct {
	uc *tracking.TrackingUseCase
}

// NewTrackingHandler construye el handler de tracking.
func NewTrackingHandler(uc *tracking.TrackingUseCase) *TrackingHandler {
	return &TrackingHandler{uc: uc}
}

// Report godoc
// @Summary      Reportar posición
// @Description  El emisor se toma del token. Un reporte dentro de la ventana de throttle se acepta y descarta (stored=false).
// @Tags         tracking
// @Accept       json
// @Produce      json
// @Param        body  body      dto.PositionUpdateRequest  true  "lat, lng"
// @Success      200   {object}  dto.PositionUpdateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tracking/position [post]
func (h *TrackingHandler) Report(c *fiber.Ctx) error {
	var in dto.PositionUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Report(c.Context(), GetRole(c), GetUserID(c), GetName(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, domain.ErrNotFound):
			return notFound(c, "emisor no encontrado")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
