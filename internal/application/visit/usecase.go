package visit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sawaid25/aixosfire-api/internal/application/dto"
	"github.com/sawaid25/aixosfire-api/internal/domain"
	"github.com/sawaid25/aixosfire-api/internal/domain/repository"
	"github.com/sawaid25/aixosfire-api/pkg/logger"
	"github.com/sawaid25/aixosfire-api/pkg/qr"
)

// Umbral mínimo de caracteres para buscar clientes existentes.
const searchMinLen = 3

const searchLimit = 10

// WizardUseCase orquesta los borradores del wizard: creación, navegación por
// pasos, resolución de clientes existentes y vista previa del código QR.
type WizardUseCase struct {
	drafts    DraftStore
	customers repository.CustomerRepository
	log       *logger.Logger
}

// NewWizardUseCase crea el caso de uso del wizard.
func NewWizardUseCase(drafts DraftStore, customers repository.CustomerRepository, log *logger.Logger) *WizardUseCase {
	return &WizardUseCase{drafts: drafts, customers: customers, log: log}
}

// CreateDraft inicia un borrador nuevo para el agente.
func (uc *WizardUseCase) CreateDraft(ctx context.Context, agentID string) (*Draft, error) {
	d := NewDraft(uuid.New().String(), agentID, time.Now())
	if err := uc.drafts.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("guardar borrador: %w", err)
	}
	return d, nil
}

// GetDraft carga un borrador verificando que pertenezca al agente.
func (uc *WizardUseCase) GetDraft(ctx context.Context, agentID, draftID string) (*Draft, error) {
	d, err := uc.drafts.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if d.AgentID != agentID {
		return nil, domain.ErrForbidden
	}
	return d, nil
}

// UpdateIdentification actualiza el paso 1. Si se selecciona un cliente
// existente, sus datos se copian al borrador; la selección no tiene efectos
// fuera del estado del wizard y es idempotente.
func (uc *WizardUseCase) UpdateIdentification(ctx context.Context, agentID, draftID string, in dto.UpdateIdentificationRequest) (*Draft, error) {
	d, err := uc.GetDraft(ctx, agentID, draftID)
	if err != nil {
		return nil, err
	}

	id := Identification{
		CustomerID:   in.CustomerID,
		BusinessName: in.BusinessName,
		OwnerName:    in.OwnerName,
		Phone:        in.Phone,
		Email:        in.Email,
		Address:      in.Address,
		BusinessType: in.BusinessType,
	}
	if in.CustomerID != "" {
		c, err := uc.customers.GetByID(in.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("cargar cliente seleccionado: %w", err)
		}
		id.BusinessName = c.BusinessName
		id.OwnerName = c.OwnerName
		id.Phone = c.Phone
		id.Email = c.Email
		id.Address = c.Address
		id.BusinessType = c.BusinessType
	}
	d.SetIdentification(id)

	return d, uc.save(ctx, d)
}

// UpdateAssessment actualiza el paso 3.
func (uc *WizardUseCase) UpdateAssessment(ctx context.Context, agentID, draftID string, in dto.UpdateAssessmentRequest) (*Draft, error) {
	d, err := uc.GetDraft(ctx, agentID, draftID)
	if err != nil {
		return nil, err
	}
	d.SetAssessment(Assessment{
		Notes:                  in.Notes,
		RiskAssessment:         in.RiskAssessment,
		ServiceRecommendations: in.ServiceRecommendations,
		FollowUpDate:           in.FollowUpDate,
		PhotoKey:               in.PhotoKey,
		VoiceNoteKey:           in.VoiceNoteKey,
	})
	return d, uc.save(ctx, d)
}

// Advance avanza de paso si el paso actual está completo; si no, devuelve los
// campos faltantes sin modificar el borrador.
func (uc *WizardUseCase) Advance(ctx context.Context, agentID, draftID string) (*dto.AdvanceResponse, error) {
	d, err := uc.GetDraft(ctx, agentID, draftID)
	if err != nil {
		return nil, err
	}
	missing := d.Advance()
	if len(missing) == 0 {
		if err := uc.save(ctx, d); err != nil {
			return nil, err
		}
	}
	return &dto.AdvanceResponse{Step: d.Step, Missing: missing}, nil
}

// Retreat retrocede un paso conservando todo el estado.
func (uc *WizardUseCase) Retreat(ctx context.Context, agentID, draftID string) (*Draft, error) {
	d, err := uc.GetDraft(ctx, agentID, draftID)
	if err != nil {
		return nil, err
	}
	d.Retreat()
	return d, uc.save(ctx, d)
}

// AddLine agrega una línea de inventario con defaults.
func (uc *WizardUseCase) AddLine(ctx context.Context, agentID, draftID string) (*Draft, error) {
	d, err := uc.GetDraft(ctx, agentID, draftID)
	if err != nil {
		return nil, err
	}
	d.AddLine()
	return d, uc.save(ctx, d)
}

// RemoveLine elimina la línea en el índice dado.
func (uc *WizardUseCase) RemoveLine(ctx context.Context, agentID, draftID string, index int) (*Draft, error) {
	d, err := uc.GetDraft(ctx, agentID, draftID)
	if err != nil {
		return nil, err
	}
	if err := d.RemoveLine(index); err != nil {
		return nil, err
	}
	return d, uc.save(ctx, d)
}

// UpdateLine aplica una actualización parcial a la línea en el índice dado.
func (uc *WizardUseCase) UpdateLine(ctx context.Context, agentID, draftID string, index int, in dto.UpdateLineRequest) (*Draft, error) {
	d, err := uc.GetDraft(ctx, agentID, draftID)
	if err != nil {
		return nil, err
	}
	if err := d.UpdateLine(index, in); err != nil {
		return nil, err
	}
	return d, uc.save(ctx, d)
}

// Search busca clientes existentes por nombre de negocio o teléfono. Con menos
// de 3 caracteres no consulta y devuelve vacío; los errores de lectura se
// registran y degradan a lista vacía, nunca bloquean el wizard.
func (uc *WizardUseCase) Search(ctx context.Context, query string) []dto.CustomerCandidate {
	query = strings.TrimSpace(query)
	if len(query) < searchMinLen {
		return []dto.CustomerCandidate{}
	}

	customers, err := uc.customers.Search(query, searchLimit)
	if err != nil {
		uc.log.Warn().Err(err).Str("query", query).Msg("búsqueda de clientes falló, se devuelve vacío")
		return []dto.CustomerCandidate{}
	}

	out := make([]dto.CustomerCandidate, 0, len(customers))
	for _, c := range customers {
		out = append(out, dto.CustomerCandidate{
			ID:           c.ID,
			BusinessName: c.BusinessName,
			OwnerName:    c.OwnerName,
			Phone:        c.Phone,
			Address:      c.Address,
			BusinessType: c.BusinessType,
		})
	}
	return out
}

// QRPreview genera la vista previa del QR del borrador. Si aún no hay cliente
// real usa un identificador temporal; el definitivo se genera al enviar.
func (uc *WizardUseCase) QRPreview(ctx context.Context, agentID, draftID string) (*dto.QRPreviewResponse, error) {
	d, err := uc.GetDraft(ctx, agentID, draftID)
	if err != nil {
		return nil, err
	}

	id := d.Identification.CustomerID
	temp := id == ""
	if temp {
		id = fmt.Sprintf("temp-id-%d", time.Now().UnixMilli())
	}
	dataURL, err := qr.DataURL(qr.Payload{ID: id, Type: "customer", Name: d.Identification.BusinessName})
	if err != nil {
		return nil, fmt.Errorf("generar QR: %w", err)
	}
	return &dto.QRPreviewResponse{DataURL: dataURL, TempID: temp}, nil
}

func (uc *WizardUseCase) save(ctx context.Context, d *Draft) error {
	d.UpdatedAt = time.Now()
	if err := uc.drafts.Save(ctx, d); err != nil {
		return fmt.Errorf("guardar borrador: %w", err)
	}
	return nil
}
