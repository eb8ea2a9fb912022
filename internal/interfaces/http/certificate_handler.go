package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/sawaid25/aixosfire-api/internal/application/auth"
	"github.com/sawaid25/aixosfire-api/internal/application/certificate"
	"github.com/sawaid25/aixosfire-api/internal/application/dto"
	"github.com/sawaid25/aixosfire-api/internal/domain"
)

// CertificateHandler genera certificados de conformidad en PDF por extintor.
type CertificateHandler struct {
	uc *certificate.CertificateUseCase
}

// NewCertificateHandler construye el handler de certificados.
func NewCertificateHandler(uc *certificate.CertificateUseCase) *CertificateHandler {
	return &CertificateHandler{uc: uc}
}

// Generate godoc
// @Summary      Certificado PDF de un extintor
// @Description  Un cliente solo puede certificar unidades propias; el admin cualquiera.
// @Tags         certificates
// @Produce      application/pdf
// @Param        id   path      string  true  "id del extintor"
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/certificates/extinguishers/{id} [get]
func (h *CertificateHandler) Generate(c *fiber.Ctx) error {
	requester := GetUserID(c)
	if GetRole(c) == auth.RoleAdmin {
		// Cadena vacía omite el chequeo de dueño.
		requester = ""
	}

	pdf, err := h.uc.Generate(c.Context(), c.Params("id"), requester)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return notFound(c, "extintor no encontrado")
		case errors.Is(err, domain.ErrForbidden):
			return forbidden(c)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="certificado-%s.pdf"`, c.Params("id")))
	return c.Send(pdf)
}
