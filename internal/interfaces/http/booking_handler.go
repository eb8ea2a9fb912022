package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/sawaid25/aixosfire-api/internal/application/auth"
	"github.com/sawaid25/aixosfire-api/internal/application/booking"
	"github.com/sawaid25/aixosfire-api/internal/application/dto"
	"github.com/sawaid25/aixosfire-api/internal/domain"
)

// BookingHandler maneja reservas de servicio y su ciclo de vida.
type BookingHandler struct {
	uc *booking.BookingUseCase
}

// NewBookingHandler construye el handler de reservas.
func NewBookingHandler(uc *booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{uc: uc}
}

// Create godoc
// @Summary      Crear reserva de servicio
// @Description  El cliente autenticado reserva inspección, recarga o instalación. Para recargas puede adjuntar extintores propios.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateBookingRequest  true  "tipo, fecha y notas"
// @Success      201   {object}  dto.ServiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/bookings [post]
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBookingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return h.bookingError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar reservas (admin)
// @Tags         bookings
// @Produce      json
// @Param        status  query     string  false  "filtrar por estado"
// @Param        limit   query     int     false  "tamaño de página"
// @Param        offset  query     int     false  "desplazamiento"
// @Success      200     {array}   dto.ServiceResponse
// @Router       /api/bookings [get]
func (h *BookingHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.List(c.Query("status"), page)
	if err != nil {
		return h.bookingError(c, err)
	}
	return c.JSON(out)
}

// ListMine godoc
// @Summary      Reservas del cliente autenticado
// @Tags         bookings
// @Produce      json
// @Success      200  {array}  dto.ServiceResponse
// @Router       /api/bookings/mine [get]
func (h *BookingHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.uc.ListByCustomer(GetUserID(c))
	if err != nil {
		return h.bookingError(c, err)
	}
	return c.JSON(out)
}

// ListAssigned godoc
// @Summary      Reservas asignadas al agente autenticado
// @Tags         bookings
// @Produce      json
// @Success      200  {array}  dto.ServiceResponse
// @Router       /api/bookings/assigned [get]
func (h *BookingHandler) ListAssigned(c *fiber.Ctx) error {
	out, err := h.uc.ListByAgent(GetUserID(c))
	if err != nil {
		return h.bookingError(c, err)
	}
	return c.JSON(out)
}

// Assign godoc
// @Summary      Asignar agente a una reserva (admin)
// @Description  Solo reservas en Requested; el agente debe estar Active. La reserva pasa a Scheduled.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "id de la reserva"
// @Param        body  body      dto.AssignAgentRequest  true  "id del agente"
// @Success      204   "asignado"
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/bookings/{id}/assign [post]
func (h *BookingHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignAgentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Assign(c.Params("id"), in); err != nil {
		return h.bookingError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Start godoc
// @Summary      Iniciar servicio (agente asignado)
// @Tags         bookings
// @Param        id   path  string  true  "id de la reserva"
// @Success      204  "en progreso"
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/bookings/{id}/start [post]
func (h *BookingHandler) Start(c *fiber.Ctx) error {
	if err := h.uc.Start(c.Params("id"), GetUserID(c)); err != nil {
		return h.bookingError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Complete godoc
// @Summary      Completar servicio (agente asignado)
// @Tags         bookings
// @Param        id   path  string  true  "id de la reserva"
// @Success      204  "completado"
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/bookings/{id}/complete [post]
func (h *BookingHandler) Complete(c *fiber.Ctx) error {
	if err := h.uc.Complete(c.Params("id"), GetUserID(c)); err != nil {
		return h.bookingError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Cancel godoc
// @Summary      Cancelar reserva
// @Description  El cliente dueño cancela mientras no esté In Progress; el admin puede cancelar cualquiera.
// @Tags         bookings
// @Param        id   path  string  true  "id de la reserva"
// @Success      204  "cancelada"
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *fiber.Ctx) error {
	requester := GetUserID(c)
	if GetRole(c) == auth.RoleAdmin {
		// Cadena vacía señala cancelación administrativa sin chequeo de dueño.
		requester = ""
	}
	if err := h.uc.Cancel(c.Params("id"), requester); err != nil {
		return h.bookingError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *BookingHandler) bookingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return notFound(c, "reserva no encontrada")
	case errors.Is(err, domain.ErrForbidden):
		return forbidden(c)
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
