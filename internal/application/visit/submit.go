package visit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sawaid25/aixosfire-api/internal/application/dto"
	"github.com/sawaid25/aixosfire-api/internal/domain"
	"github.com/sawaid25/aixosfire-api/internal/domain/entity"
	"github.com/sawaid25/aixosfire-api/internal/domain/repository"
	"github.com/sawaid25/aixosfire-api/pkg/logger"
	"github.com/sawaid25/aixosfire-api/pkg/qr"
)

// SubmitUseCase materializa un borrador completo como registros persistentes.
// El envío es una secuencia de escrituras independientes sin rollback: cliente
// lead (si aplica), QR, visita y extintores, en ese orden. Un fallo aborta la
// secuencia dejando en pie lo ya escrito; los pasos de QR y limpieza del
// borrador son best-effort y nunca abortan.
type SubmitUseCase struct {
	drafts        DraftStore
	lock          SubmitLock
	customers     repository.CustomerRepository
	visits        repository.VisitRepository
	extinguishers repository.ExtinguisherRepository
	log           *logger.Logger
}

// NewSubmitUseCase crea el caso de uso de envío de visitas.
func NewSubmitUseCase(
	drafts DraftStore,
	lock SubmitLock,
	customers repository.CustomerRepository,
	visits repository.VisitRepository,
	extinguishers repository.ExtinguisherRepository,
	log *logger.Logger,
) *SubmitUseCase {
	return &SubmitUseCase{
		drafts:        drafts,
		lock:          lock,
		customers:     customers,
		visits:        visits,
		extinguishers: extinguishers,
		log:           log,
	}
}

// Submit valida el borrador completo y ejecuta la secuencia de persistencia.
// Mientras un envío del mismo borrador está en curso, los reintentos reciben
// ErrSubmitInFlight. El candado se libera al terminar, con o sin éxito.
func (uc *SubmitUseCase) Submit(ctx context.Context, agentID, draftID string) (*dto.SubmitVisitResponse, error) {
	d, err := uc.drafts.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if d.AgentID != agentID {
		return nil, domain.ErrForbidden
	}
	if missing := d.MissingAll(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: faltan campos %v", domain.ErrInvalidInput, missing)
	}

	acquired, err := uc.lock.Acquire(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("adquirir candado de envío: %w", err)
	}
	if !acquired {
		return nil, domain.ErrSubmitInFlight
	}
	defer func() {
		if err := uc.lock.Release(ctx, draftID); err != nil {
			uc.log.Warn().Err(err).Str("draft_id", draftID).Msg("no se pudo liberar el candado de envío")
		}
	}()

	now := time.Now()

	// Paso 1: resolver o crear el cliente. Un lead nuevo se inserta con email
	// sintético y credencial placeholder; nunca se escribe un hash derivable.
	customerID := d.Identification.CustomerID
	if customerID == "" {
		customerID = uuid.New().String()
		lead := &entity.Customer{
			ID:           customerID,
			BusinessName: d.Identification.BusinessName,
			OwnerName:    d.Identification.OwnerName,
			Email:        fmt.Sprintf("lead-%d@temp.com", now.UnixMilli()),
			PasswordHash: entity.LeadPasswordPlaceholder,
			Phone:        d.Identification.Phone,
			Address:      d.Identification.Address,
			BusinessType: d.Identification.BusinessType,
			Status:       entity.CustomerStatusLead,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := uc.customers.Create(lead); err != nil {
			return nil, fmt.Errorf("crear cliente lead: %w", err)
		}

		// Paso 2: QR con el id ya definitivo. Su persistencia es best-effort;
		// un fallo se registra y el envío continúa.
		uc.persistQR(customerID, d.Identification.BusinessName)
	}

	// Paso 3: la visita, siempre en estado Completed.
	visit := &entity.Visit{
		ID:                     uuid.New().String(),
		AgentID:                agentID,
		CustomerID:             customerID,
		CustomerName:           d.Identification.BusinessName,
		BusinessType:           d.Identification.BusinessType,
		Notes:                  d.Assessment.Notes,
		RiskAssessment:         d.Assessment.RiskAssessment,
		ServiceRecommendations: d.Assessment.ServiceRecommendations,
		FollowUpDate:           parseDate(d.Assessment.FollowUpDate),
		Status:                 entity.VisitStatusCompleted,
		TaskTypes:              d.TaskTypes(),
		PhotoKey:               d.Assessment.PhotoKey,
		VoiceNoteKey:           d.Assessment.VoiceNoteKey,
		CreatedAt:              now,
	}
	if err := uc.visits.Create(visit); err != nil {
		return nil, fmt.Errorf("registrar visita: %w", err)
	}

	// Paso 4: una fila de extintor por línea, ligada a cliente y visita.
	rows := make([]*entity.Extinguisher, 0, len(d.Lines))
	for _, l := range d.Lines {
		rows = append(rows, l.ToEntity(uuid.New().String(), customerID, visit.ID, now))
	}
	if err := uc.extinguishers.CreateBatch(rows); err != nil {
		return nil, fmt.Errorf("registrar extintores: %w", err)
	}

	if err := uc.drafts.Delete(ctx, draftID); err != nil {
		uc.log.Warn().Err(err).Str("draft_id", draftID).Msg("no se pudo eliminar el borrador enviado")
	}

	uc.log.Info().
		Str("visit_id", visit.ID).
		Str("customer_id", customerID).
		Int("lines", len(rows)).
		Msg("visita registrada")

	return &dto.SubmitVisitResponse{VisitID: visit.ID, CustomerID: customerID, Lines: len(rows)}, nil
}

func (uc *SubmitUseCase) persistQR(customerID, name string) {
	dataURL, err := qr.DataURL(qr.Payload{ID: customerID, Type: "customer", Name: name})
	if err != nil {
		uc.log.Warn().Err(err).Str("customer_id", customerID).Msg("no se pudo generar el QR del cliente")
		return
	}
	if err := uc.customers.UpdateQRCodeURL(customerID, dataURL); err != nil {
		uc.log.Warn().Err(err).Str("customer_id", customerID).Msg("no se pudo guardar el QR del cliente")
	}
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
