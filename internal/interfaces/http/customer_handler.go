package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/sawaid25/aixosfire-api/internal/application/auth"
	"github.com/sawaid25/aixosfire-api/internal/application/dto"
	"github.com/sawaid25/aixosfire-api/internal/application/usecase"
	"github.com/sawaid25/aixosfire-api/internal/domain"
)

// CustomerHandler expone los clientes: listado para admin, detalle,
// inventario de extintores y QR de identidad.
type CustomerHandler struct {
	uc *usecase.CustomerUseCase
}

// NewCustomerHandler construye el handler de clientes.
func NewCustomerHandler(uc *usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// List godoc
// @Summary      Listar clientes
// @Tags         customers
// @Produce      json
// @Param        limit   query     int  false  "tamaño de página (default 20)"
// @Param        offset  query     int  false  "desplazamiento"
// @Success      200     {array}   dto.CustomerResponse
// @Failure      401     {object}  dto.ErrorResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.List(page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Perfil del cliente autenticado
// @Tags         customers
// @Produce      json
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/me [get]
func (h *CustomerHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Get(GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c, "cliente no encontrado")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Detail godoc
// @Summary      Detalle de cliente con visitas e inventario
// @Tags         customers
// @Produce      json
// @Param        id   path      string  true  "id del cliente"
// @Success      200  {object}  dto.CustomerDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) Detail(c *fiber.Ctx) error {
	id := c.Params("id")
	if !h.canAccess(c, id) {
		return forbidden(c)
	}
	out, err := h.uc.Detail(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c, "cliente no encontrado")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Inventory godoc
// @Summary      Inventario de extintores del cliente
// @Tags         customers
// @Produce      json
// @Param        id   path      string  true  "id del cliente"
// @Success      200  {array}   dto.ExtinguisherResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/extinguishers [get]
func (h *CustomerHandler) Inventory(c *fiber.Ctx) error {
	id := c.Params("id")
	if !h.canAccess(c, id) {
		return forbidden(c)
	}
	out, err := h.uc.Inventory(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c, "cliente no encontrado")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// EnsureQR godoc
// @Summary      QR de identidad del cliente
// @Description  Genera el QR si el cliente aún no tiene uno y devuelve la imagen como data URL.
// @Tags         customers
// @Produce      json
// @Param        id   path      string  true  "id del cliente"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/qr [get]
func (h *CustomerHandler) EnsureQR(c *fiber.Ctx) error {
	id := c.Params("id")
	if !h.canAccess(c, id) {
		return forbidden(c)
	}
	dataURL, err := h.uc.EnsureQR(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c, "cliente no encontrado")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"qr_code_url": dataURL})
}

// canAccess permite admin y agentes sobre cualquier cliente; un cliente solo
// sobre su propio registro.
func (h *CustomerHandler) canAccess(c *fiber.Ctx, customerID string) bool {
	if GetRole(c) != auth.RoleCustomer {
		return true
	}
	return GetUserID(c) == customerID
}

func forbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sin permiso sobre este recurso"})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: msg})
}
