package http

import (
	"errors"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/sawaid25/aixosfire-api/internal/application/dto"
	"github.com/sawaid25/aixosfire-api/internal/application/visit"
	"github.com/sawaid25/aixosfire-api/internal/domain"
)

// VisitHandler maneja el wizard de visita del agente: borradores, búsqueda
// de clientes, vista previa de QR, adjuntos y envío final.
type VisitHandler struct {
	wizard *visit.WizardUseCase
	submit *visit.SubmitUseCase
	media  visit.MediaStore
}

// NewVisitHandler construye el handler del wizard de visita.
func NewVisitHandler(wizard *visit.WizardUseCase, submit *visit.SubmitUseCase, media visit.MediaStore) *VisitHandler {
	return &VisitHandler{wizard: wizard, submit: submit, media: media}
}

// CreateDraft godoc
// @Summary      Crear borrador de visita
// @Description  Abre un borrador en el paso 1 con una línea de inventario por defecto.
// @Tags         visits
// @Produce      json
// @Success      201  {object}  visit.Draft
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/visits/drafts [post]
func (h *VisitHandler) CreateDraft(c *fiber.Ctx) error {
	d, err := h.wizard.CreateDraft(c.Context(), GetUserID(c))
	if err != nil {
		return h.draftError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(d)
}

// GetDraft godoc
// @Summary      Obtener borrador
// @Tags         visits
// @Produce      json
// @Param        id   path      string  true  "id del borrador"
// @Success      200  {object}  visit.Draft
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/visits/drafts/{id} [get]
func (h *VisitHandler) GetDraft(c *fiber.Ctx) error {
	d, err := h.wizard.GetDraft(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return h.draftError(c, err)
	}
	return c.JSON(d)
}

// UpdateIdentification godoc
// @Summary      Actualizar identificación (paso 1)
// @Description  Con customer_id se copian los datos del cliente existente; sin él, el borrador describe un lead nuevo.
// @Tags         visits
// @Accept       json
// @Produce      json
// @Param        id    path      string                           true  "id del borrador"
// @Param        body  body      dto.UpdateIdentificationRequest  true  "datos del negocio"
// @Success      200   {object}  visit.Draft
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/visits/drafts/{id}/identification [put]
func (h *VisitHandler) UpdateIdentification(c *fiber.Ctx) error {
	var in dto.UpdateIdentificationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	d, err := h.wizard.UpdateIdentification(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return h.draftError(c, err)
	}
	return c.JSON(d)
}

// UpdateAssessment godoc
// @Summary      Actualizar evaluación (paso 3)
// @Tags         visits
// @Accept       json
// @Produce      json
// @Param        id    path      string                       true  "id del borrador"
// @Param        body  body      dto.UpdateAssessmentRequest  true  "notas y evaluación"
// @Success      200   {object}  visit.Draft
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/visits/drafts/{id}/assessment [put]
func (h *VisitHandler) UpdateAssessment(c *fiber.Ctx) error {
	var in dto.UpdateAssessmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	d, err := h.wizard.UpdateAssessment(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return h.draftError(c, err)
	}
	return c.JSON(d)
}

// Advance godoc
// @Summary      Avanzar de paso
// @Description  Si el paso actual está incompleto la respuesta lista los campos faltantes y el paso no cambia.
// @Tags         visits
// @Produce      json
// @Param        id   path      string  true  "id del borrador"
// @Success      200  {object}  dto.AdvanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/visits/drafts/{id}/advance [post]
func (h *VisitHandler) Advance(c *fiber.Ctx) error {
	out, err := h.wizard.Advance(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return h.draftError(c, err)
	}
	return c.JSON(out)
}

// Retreat godoc
// @Summary      Retroceder de paso
// @Description  Retroceder nunca descarta lo capturado en pasos posteriores.
// @Tags         visits
// @Produce      json
// @Param        id   path      string  true  "id del borrador"
// @Success      200  {object}  visit.Draft
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/visits/drafts/{id}/retreat [post]
func (h *VisitHandler) Retreat(c *fiber.Ctx) error {
	d, err := h.wizard.Retreat(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return h.draftError(c, err)
	}
	return c.JSON(d)
}

// AddLine godoc
// @Summary      Agregar línea de inventario (paso 2)
// @Tags         visits
// @Produce      json
// @Param        id   path      string  true  "id del borrador"
// @Success      200  {object}  visit.Draft
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/visits/drafts/{id}/lines [post]
func (h *VisitHandler) AddLine(c *fiber.Ctx) error {
	d, err := h.wizard.AddLine(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return h.draftError(c, err)
	}
	return c.JSON(d)
}

// RemoveLine godoc
// @Summary      Eliminar línea de inventario
// @Description  Eliminar una línea nunca afecta a las demás; se permite quitar la última.
// @Tags         visits
// @Produce      json
// @Param        id     path      string  true  "id del borrador"
// @Param        index  path      int     true  "índice de la línea"
// @Success      200    {object}  visit.Draft
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/visits/drafts/{id}/lines/{index} [delete]
func (h *VisitHandler) RemoveLine(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "índice de línea inválido"})
	}
	d, err := h.wizard.RemoveLine(c.Context(), GetUserID(c), c.Params("id"), index)
	if err != nil {
		return h.draftError(c, err)
	}
	return c.JSON(d)
}

// UpdateLine godoc
// @Summary      Actualizar línea de inventario
// @Description  Actualización parcial. Cambiar el modo a New Unit restaura el precio unitario por defecto.
// @Tags         visits
// @Accept       json
// @Produce      json
// @Param        id     path      string                 true  "id del borrador"
// @Param        index  path      int                    true  "índice de la línea"
// @Param        body   body      dto.UpdateLineRequest  true  "campos a modificar"
// @Success      200    {object}  visit.Draft
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/visits/drafts/{id}/lines/{index} [patch]
func (h *VisitHandler) UpdateLine(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "índice de línea inválido"})
	}
	var in dto.UpdateLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	d, err := h.wizard.UpdateLine(c.Context(), GetUserID(c), c.Params("id"), index, in)
	if err != nil {
		return h.draftError(c, err)
	}
	return c.JSON(d)
}

// SearchCustomers godoc
// @Summary      Buscar clientes por nombre o teléfono
// @Description  Con menos de 3 caracteres la respuesta es una lista vacía. Un fallo del repositorio nunca bloquea el wizard.
// @Tags         visits
// @Produce      json
// @Param        q    query     string  true  "término de búsqueda (mínimo 3 caracteres)"
// @Success      200  {array}   dto.CustomerCandidate
// @Router       /api/visits/customers/search [get]
func (h *VisitHandler) SearchCustomers(c *fiber.Ctx) error {
	return c.JSON(h.wizard.Search(c.Context(), c.Query("q")))
}

// QRPreview godoc
// @Summary      Vista previa del QR de identidad
// @Description  Para leads aún sin id el QR codifica un id provisional (temp_id=true).
// @Tags         visits
// @Produce      json
// @Param        id   path      string  true  "id del borrador"
// @Success      200  {object}  dto.QRPreviewResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/visits/drafts/{id}/qr-preview [get]
func (h *VisitHandler) QRPreview(c *fiber.Ctx) error {
	out, err := h.wizard.QRPreview(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return h.draftError(c, err)
	}
	return c.JSON(out)
}

// UploadMedia godoc
// @Summary      Subir adjunto de visita
// @Description  Acepta multipart con un campo file. kind debe ser photo o voice. La clave devuelta va en el paso 3.
// @Tags         visits
// @Accept       multipart/form-data
// @Produce      json
// @Param        kind  path      string  true  "photo o voice"
// @Param        file  formData  file    true  "adjunto"
// @Success      201   {object}  dto.MediaUploadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/visits/media/{kind} [post]
func (h *VisitHandler) UploadMedia(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "campo file requerido"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "no se pudo leer el adjunto"})
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "no se pudo leer el adjunto"})
	}

	key, err := h.media.Save(c.Context(), c.Params("kind"), fileHeader.Filename, data)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MediaUploadResponse{Key: key})
}

// GetMedia godoc
// @Summary      Descargar adjunto de visita
// @Tags         visits
// @Produce      octet-stream
// @Param        key  path  string  true  "clave del adjunto"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/visits/media/{key} [get]
func (h *VisitHandler) GetMedia(c *fiber.Ctx) error {
	data, contentType, err := h.media.Open(c.Context(), c.Params("*"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "adjunto no encontrado"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(data)
}

// Submit godoc
// @Summary      Enviar visita
// @Description  Crea lead si aplica, persiste el QR, registra la visita y su inventario. Un doble envío del mismo borrador retorna 409.
// @Tags         visits
// @Produce      json
// @Param        id   path      string  true  "id del borrador"
// @Success      201  {object}  dto.SubmitVisitResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/visits/drafts/{id}/submit [post]
func (h *VisitHandler) Submit(c *fiber.Ctx) error {
	out, err := h.submit.Submit(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSubmitInFlight):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SUBMIT_IN_FLIGHT", Message: "ya hay un envío en curso para este borrador"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INCOMPLETE_DRAFT", Message: err.Error()})
		}
		return h.draftError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// draftError mapea los errores comunes de borrador a HTTP.
func (h *VisitHandler) draftError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "borrador no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el borrador pertenece a otro agente"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
