package booking_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawaid25/aixosfire-api/internal/application/booking"
	"github.com/sawaid25/aixosfire-api/internal/application/dto"
	"github.com/sawaid25/aixosfire-api/internal/domain"
	"github.com/sawaid25/aixosfire-api/internal/domain/entity"
	"github.com/sawaid25/aixosfire-api/internal/domain/repository"
	"github.com/sawaid25/aixosfire-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de reservas: atomicidad de servicio + ítems, asignación de agentes
// activos y transiciones de estado permitidas.
// ──────────────────────────────────────────────────────────────────────────────

type fakeServiceRepo struct {
	byID      map[string]*entity.Service
	items     []*entity.ServiceItem
	itemErr   error
	createErr error
	updates   []string // "id:agentID:status" de UpdateAssignment/UpdateStatus
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{byID: make(map[string]*entity.Service)}
}

func (r *fakeServiceRepo) Create(s *entity.Service) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.byID[s.ID] = s
	return nil
}

func (r *fakeServiceRepo) CreateItem(item *entity.ServiceItem) error {
	if r.itemErr != nil {
		return r.itemErr
	}
	r.items = append(r.items, item)
	return nil
}

func (r *fakeServiceRepo) GetByID(id string) (*entity.Service, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (r *fakeServiceRepo) ListWithDetails(status string, limit, offset int) ([]repository.ServiceWithDetails, error) {
	var out []repository.ServiceWithDetails
	for _, s := range r.byID {
		if status == "" || s.Status == status {
			out = append(out, repository.ServiceWithDetails{Service: *s})
		}
	}
	return out, nil
}

func (r *fakeServiceRepo) ListByCustomer(customerID string) ([]*entity.Service, error) {
	var out []*entity.Service
	for _, s := range r.byID {
		if s.CustomerID == customerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeServiceRepo) ListByAgent(agentID string) ([]repository.ServiceWithDetails, error) {
	var out []repository.ServiceWithDetails
	for _, s := range r.byID {
		if s.AgentID == agentID {
			out = append(out, repository.ServiceWithDetails{Service: *s})
		}
	}
	return out, nil
}

func (r *fakeServiceRepo) UpdateAssignment(id, agentID, status string) error {
	s, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.AgentID = agentID
	s.Status = status
	r.updates = append(r.updates, id+":"+agentID+":"+status)
	return nil
}

func (r *fakeServiceRepo) UpdateStatus(id, status string) error {
	s, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Status = status
	r.updates = append(r.updates, id+"::"+status)
	return nil
}

// fakeTxRunner simula una transacción real: escribe en una copia y solo
// publica al repositorio base si fn no falla.
type fakeTxRunner struct{ base *fakeServiceRepo }

func (t *fakeTxRunner) Run(_ context.Context, fn func(services repository.ServiceRepository) error) error {
	staging := newFakeServiceRepo()
	staging.itemErr = t.base.itemErr
	staging.createErr = t.base.createErr
	if err := fn(staging); err != nil {
		return err
	}
	for id, s := range staging.byID {
		t.base.byID[id] = s
	}
	t.base.items = append(t.base.items, staging.items...)
	return nil
}

type fakeAgentRepo struct{ byID map[string]*entity.Agent }

func (r *fakeAgentRepo) Create(a *entity.Agent) error { r.byID[a.ID] = a; return nil }
func (r *fakeAgentRepo) GetByID(id string) (*entity.Agent, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return a, nil
}
func (r *fakeAgentRepo) GetByEmail(email string) (*entity.Agent, error) { return nil, domain.ErrUserNotFound }
func (r *fakeAgentRepo) ListByStatus(status string, limit, offset int) ([]*entity.Agent, error) {
	return nil, nil
}
func (r *fakeAgentRepo) UpdateStatus(id, status string) error { return nil }
func (r *fakeAgentRepo) UpdatePosition(id string, lat, lng float64) error { return nil }

type fakeExtinguisherRepo struct{ byID map[string]*entity.Extinguisher }

func (r *fakeExtinguisherRepo) CreateBatch(items []*entity.Extinguisher) error { return nil }
func (r *fakeExtinguisherRepo) GetByID(id string) (*entity.Extinguisher, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}
func (r *fakeExtinguisherRepo) ListByCustomer(customerID string) ([]*entity.Extinguisher, error) {
	return nil, nil
}
func (r *fakeExtinguisherRepo) ListByVisit(visitID string) ([]*entity.Extinguisher, error) {
	return nil, nil
}

type bookingFixture struct {
	services *fakeServiceRepo
	agents   *fakeAgentRepo
	exts     *fakeExtinguisherRepo
	uc       *booking.BookingUseCase
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		services: newFakeServiceRepo(),
		agents:   &fakeAgentRepo{byID: make(map[string]*entity.Agent)},
		exts:     &fakeExtinguisherRepo{byID: make(map[string]*entity.Extinguisher)},
	}
	f.uc = booking.NewBookingUseCase(f.services, f.agents, f.exts, &fakeTxRunner{base: f.services}, logger.Nop())
	return f
}

// ── Creación ──────────────────────────────────────────────────────────────────

func TestCreate_ReservaQuedaRequested(t *testing.T) {
	f := newBookingFixture()

	res, err := f.uc.Create(context.Background(), "cust-1", dto.CreateBookingRequest{
		ServiceType:   entity.ServiceTypeInspection,
		ScheduledDate: "2026-09-15",
		Notes:         "Inspección anual",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.ServiceStatusRequested, res.Status)
	assert.Equal(t, "2026-09-15", res.ScheduledDate)
	assert.Empty(t, res.AgentID, "la reserva nace sin agente asignado")
	assert.Len(t, f.services.byID, 1)
}

func TestCreate_RecargaConItemsAtomica(t *testing.T) {
	f := newBookingFixture()
	f.exts.byID["ext-1"] = &entity.Extinguisher{ID: "ext-1", CustomerID: "cust-1"}
	f.exts.byID["ext-2"] = &entity.Extinguisher{ID: "ext-2", CustomerID: "cust-1"}

	res, err := f.uc.Create(context.Background(), "cust-1", dto.CreateBookingRequest{
		ServiceType:     entity.ServiceTypeRefilling,
		ScheduledDate:   "2026-09-20",
		ExtinguisherIDs: []string{"ext-1", "ext-2"},
	})

	require.NoError(t, err)
	require.Len(t, f.services.items, 2)
	for _, item := range f.services.items {
		assert.Equal(t, res.ID, item.ServiceID)
	}
}

func TestCreate_FalloEnItemsNoDejaReservaHuerfana(t *testing.T) {
	f := newBookingFixture()
	f.exts.byID["ext-1"] = &entity.Extinguisher{ID: "ext-1", CustomerID: "cust-1"}
	f.services.itemErr = errors.New("insert service_items: conexión perdida")

	_, err := f.uc.Create(context.Background(), "cust-1", dto.CreateBookingRequest{
		ServiceType:     entity.ServiceTypeRefilling,
		ScheduledDate:   "2026-09-20",
		ExtinguisherIDs: []string{"ext-1"},
	})

	require.Error(t, err)
	assert.Empty(t, f.services.byID, "la transacción revierte la reserva junto con los ítems")
	assert.Empty(t, f.services.items)
}

func TestCreate_ExtintorAjenoRechazado(t *testing.T) {
	f := newBookingFixture()
	f.exts.byID["ext-9"] = &entity.Extinguisher{ID: "ext-9", CustomerID: "otro-cliente"}

	_, err := f.uc.Create(context.Background(), "cust-1", dto.CreateBookingRequest{
		ServiceType:     entity.ServiceTypeRefilling,
		ScheduledDate:   "2026-09-20",
		ExtinguisherIDs: []string{"ext-9"},
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreate_ItemsSoloEnRecargas(t *testing.T) {
	f := newBookingFixture()

	_, err := f.uc.Create(context.Background(), "cust-1", dto.CreateBookingRequest{
		ServiceType:     entity.ServiceTypeInspection,
		ScheduledDate:   "2026-09-20",
		ExtinguisherIDs: []string{"ext-1"},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_TipoInvalido(t *testing.T) {
	f := newBookingFixture()
	_, err := f.uc.Create(context.Background(), "cust-1", dto.CreateBookingRequest{
		ServiceType:   "fumigation",
		ScheduledDate: "2026-09-20",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Asignación y ciclo de vida ────────────────────────────────────────────────

func seedService(f *bookingFixture, status, agentID string) *entity.Service {
	s := &entity.Service{
		ID:          "svc-1",
		CustomerID:  "cust-1",
		AgentID:     agentID,
		ServiceType: entity.ServiceTypeInspection,
		Status:      status,
	}
	f.services.byID[s.ID] = s
	return s
}

func TestAssign_AgenteActivoPasaAScheduled(t *testing.T) {
	f := newBookingFixture()
	seedService(f, entity.ServiceStatusRequested, "")
	f.agents.byID["ag-1"] = &entity.Agent{ID: "ag-1", Status: entity.AgentStatusActive}

	err := f.uc.Assign("svc-1", dto.AssignAgentRequest{AgentID: "ag-1"})

	require.NoError(t, err)
	s := f.services.byID["svc-1"]
	assert.Equal(t, "ag-1", s.AgentID)
	assert.Equal(t, entity.ServiceStatusScheduled, s.Status)
}

func TestAssign_AgentePendienteRechazado(t *testing.T) {
	f := newBookingFixture()
	seedService(f, entity.ServiceStatusRequested, "")
	f.agents.byID["ag-2"] = &entity.Agent{ID: "ag-2", Status: entity.AgentStatusPending}

	err := f.uc.Assign("svc-1", dto.AssignAgentRequest{AgentID: "ag-2"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAssign_ReservaYaProgramadaRechazada(t *testing.T) {
	f := newBookingFixture()
	seedService(f, entity.ServiceStatusCompleted, "ag-1")
	f.agents.byID["ag-1"] = &entity.Agent{ID: "ag-1", Status: entity.AgentStatusActive}

	err := f.uc.Assign("svc-1", dto.AssignAgentRequest{AgentID: "ag-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestStart_SoloAgenteAsignado(t *testing.T) {
	f := newBookingFixture()
	seedService(f, entity.ServiceStatusScheduled, "ag-1")

	assert.ErrorIs(t, f.uc.Start("svc-1", "ag-otro"), domain.ErrForbidden)
	require.NoError(t, f.uc.Start("svc-1", "ag-1"))
	assert.Equal(t, entity.ServiceStatusInProgress, f.services.byID["svc-1"].Status)
}

func TestComplete_DesdeInProgress(t *testing.T) {
	f := newBookingFixture()
	seedService(f, entity.ServiceStatusInProgress, "ag-1")

	require.NoError(t, f.uc.Complete("svc-1", "ag-1"))
	assert.Equal(t, entity.ServiceStatusCompleted, f.services.byID["svc-1"].Status)
}

func TestComplete_DesdeScheduledRechazado(t *testing.T) {
	f := newBookingFixture()
	seedService(f, entity.ServiceStatusScheduled, "ag-1")
	assert.ErrorIs(t, f.uc.Complete("svc-1", "ag-1"), domain.ErrInvalidTransition)
}

func TestCancel_ClienteDuenoAntesDeIniciar(t *testing.T) {
	f := newBookingFixture()
	seedService(f, entity.ServiceStatusRequested, "")

	require.NoError(t, f.uc.Cancel("svc-1", "cust-1"))
	assert.Equal(t, entity.ServiceStatusCancelled, f.services.byID["svc-1"].Status)
}

func TestCancel_ClienteAjenoRechazado(t *testing.T) {
	f := newBookingFixture()
	seedService(f, entity.ServiceStatusRequested, "")
	assert.ErrorIs(t, f.uc.Cancel("svc-1", "otro"), domain.ErrForbidden)
}

func TestCancel_EnProgresoRechazado(t *testing.T) {
	f := newBookingFixture()
	seedService(f, entity.ServiceStatusInProgress, "ag-1")
	assert.ErrorIs(t, f.uc.Cancel("svc-1", "cust-1"), domain.ErrInvalidTransition)
}
