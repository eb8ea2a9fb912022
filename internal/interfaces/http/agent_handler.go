package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/sawaid25/aixosfire-api/internal/application/dto"
	"github.com/sawaid25/aixosfire-api/internal/application/usecase"
	"github.com/sawaid25/aixosfire-api/internal/domain"
)

// AgentHandler expone el historial del agente autenticado y la gestión de
// aprobación de agentes por el admin.
type AgentHandler struct {
	uc *usecase.AgentUseCase
}

// NewAgentHandler construye el handler de agentes.
func NewAgentHandler(uc *usecase.AgentUseCase) *AgentHandler {
	return &AgentHandler{uc: uc}
}

// VisitedCustomers godoc
// @Summary      Clientes visitados por el agente autenticado
// @Description  Agrupados por cliente, con fecha de última visita y total de visitas.
// @Tags         agents
// @Produce      json
// @Success      200  {array}  dto.VisitedCustomerResponse
// @Router       /api/agents/me/customers [get]
func (h *AgentHandler) VisitedCustomers(c *fiber.Ctx) error {
	out, err := h.uc.VisitedCustomers(GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Visits godoc
// @Summary      Visitas registradas por el agente autenticado
// @Tags         agents
// @Produce      json
// @Param        limit   query    int  false  "tamaño de página"
// @Param        offset  query    int  false  "desplazamiento"
// @Success      200     {array}  dto.VisitResponse
// @Router       /api/agents/me/visits [get]
func (h *AgentHandler) Visits(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.Visits(GetUserID(c), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar agentes (admin)
// @Tags         agents
// @Produce      json
// @Param        status  query     string  false  "Pending, Active o Rejected"
// @Param        limit   query     int     false  "tamaño de página"
// @Param        offset  query     int     false  "desplazamiento"
// @Success      200     {array}   dto.SessionUser
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/agents [get]
func (h *AgentHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.ListByStatus(c.Query("status"), page)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar agente pendiente (admin)
// @Tags         agents
// @Param        id   path  string  true  "id del agente"
// @Success      204  "aprobado"
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/agents/{id}/approve [post]
func (h *AgentHandler) Approve(c *fiber.Ctx) error {
	return h.statusChange(c, h.uc.Approve)
}

// Reject godoc
// @Summary      Rechazar agente pendiente (admin)
// @Tags         agents
// @Param        id   path  string  true  "id del agente"
// @Success      204  "rechazado"
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/agents/{id}/reject [post]
func (h *AgentHandler) Reject(c *fiber.Ctx) error {
	return h.statusChange(c, h.uc.Reject)
}

func (h *AgentHandler) statusChange(c *fiber.Ctx, fn func(agentID string) error) error {
	if err := fn(c.Params("id")); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return notFound(c, "agente no encontrado")
		case errors.Is(err, domain.ErrConflict):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
