package visit_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawaid25/aixosfire-api/internal/application/visit"
	"github.com/sawaid25/aixosfire-api/internal/domain"
	"github.com/sawaid25/aixosfire-api/internal/domain/entity"
	"github.com/sawaid25/aixosfire-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del pipeline de envío: orden de escrituras, lead sintético, ausencia de
// rollback y candado de vuelo único.
// ──────────────────────────────────────────────────────────────────────────────

type submitFixture struct {
	store *fakeDraftStore
	lock  *fakeSubmitLock
	cust  *fakeCustomerRepo
	vis   *fakeVisitRepo
	ext   *fakeExtinguisherRepo
	uc    *visit.SubmitUseCase
}

func newSubmitFixture() *submitFixture {
	f := &submitFixture{
		store: newFakeDraftStore(),
		lock:  newFakeSubmitLock(),
		cust:  newFakeCustomerRepo(),
		vis:   &fakeVisitRepo{},
		ext:   &fakeExtinguisherRepo{},
	}
	f.uc = visit.NewSubmitUseCase(f.store, f.lock, f.cust, f.vis, f.ext, logger.Nop())
	return f
}

// seedDraft deja en el store un borrador completo de lead nuevo con dos líneas.
func (f *submitFixture) seedDraft(t *testing.T) *visit.Draft {
	t.Helper()
	d := visit.NewDraft("draft-1", "agent-1", time.Now())
	d.SetIdentification(visit.Identification{
		BusinessName: "Restaurante La Chispa",
		OwnerName:    "Pedro Gómez",
		Phone:        "3009998877",
		Address:      "Cra 7 #45-12",
		BusinessType: "Restaurant",
	})
	d.AddLine()
	d.Lines[1].Mode = entity.TaskModeRefill
	d.Lines[1].Partner = "Recargas del Norte"
	d.SetAssessment(visit.Assessment{
		Notes:        "Extintores vencidos en cocina",
		FollowUpDate: "2026-04-01",
	})
	d.Step = visit.StepAssessment
	require.NoError(t, f.store.Save(context.Background(), d))
	return d
}

func TestSubmit_LeadNuevoCreaClienteSintetico(t *testing.T) {
	f := newSubmitFixture()
	f.seedDraft(t)

	res, err := f.uc.Submit(context.Background(), "agent-1", "draft-1")
	require.NoError(t, err)

	require.Len(t, f.cust.created, 1)
	lead := f.cust.created[0]
	assert.Equal(t, entity.CustomerStatusLead, lead.Status)
	assert.Equal(t, "Restaurante La Chispa", lead.BusinessName)
	assert.True(t, strings.HasPrefix(lead.Email, "lead-"), "email sintético con prefijo lead-")
	assert.True(t, strings.HasSuffix(lead.Email, "@temp.com"))
	assert.Equal(t, entity.LeadPasswordPlaceholder, lead.PasswordHash,
		"un lead nunca recibe una credencial utilizable")

	assert.Equal(t, lead.ID, res.CustomerID)
	assert.Equal(t, 2, res.Lines)
}

func TestSubmit_GeneraYPersisteQRDelLead(t *testing.T) {
	f := newSubmitFixture()
	f.seedDraft(t)

	res, err := f.uc.Submit(context.Background(), "agent-1", "draft-1")
	require.NoError(t, err)

	dataURL, ok := f.cust.qrUpdates[res.CustomerID]
	require.True(t, ok, "el QR se persiste con el id ya definitivo")
	assert.True(t, strings.HasPrefix(dataURL, "data:image/png;base64,"))
}

func TestSubmit_FalloDePersistenciaDeQRNoAborta(t *testing.T) {
	f := newSubmitFixture()
	f.seedDraft(t)
	f.cust.qrErr = errors.New("columna qr_code_url no existe")

	_, err := f.uc.Submit(context.Background(), "agent-1", "draft-1")

	require.NoError(t, err, "el QR es best-effort, el envío continúa")
	assert.Len(t, f.vis.created, 1)
	assert.Len(t, f.ext.batches, 1)
}

func TestSubmit_VisitaCompletadaConResumenDeModos(t *testing.T) {
	f := newSubmitFixture()
	f.seedDraft(t)

	_, err := f.uc.Submit(context.Background(), "agent-1", "draft-1")
	require.NoError(t, err)

	require.Len(t, f.vis.created, 1)
	v := f.vis.created[0]
	assert.Equal(t, "agent-1", v.AgentID)
	assert.Equal(t, entity.VisitStatusCompleted, v.Status)
	assert.Equal(t, "Validation, Refill", v.TaskTypes)
	assert.Equal(t, "Restaurante La Chispa", v.CustomerName)
	require.NotNil(t, v.FollowUpDate)
	assert.Equal(t, "2026-04-01", v.FollowUpDate.Format("2006-01-02"))
}

func TestSubmit_ExtintoresDerivanEstadoDelModo(t *testing.T) {
	f := newSubmitFixture()
	f.seedDraft(t)

	res, err := f.uc.Submit(context.Background(), "agent-1", "draft-1")
	require.NoError(t, err)

	require.Len(t, f.ext.batches, 1)
	rows := f.ext.batches[0]
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, res.CustomerID, r.CustomerID)
		assert.Equal(t, f.vis.created[0].ID, r.VisitID)
	}
	assert.Equal(t, entity.ExtinguisherStatusValid, rows[0].Status)
	assert.Equal(t, entity.ExtinguisherStatusRefilled, rows[1].Status)
	assert.Equal(t, "Recargas del Norte", rows[1].Partner)
	assert.True(t, rows[0].Price.Equal(decimal.NewFromInt(180)))
}

func TestSubmit_ClienteExistenteNoCreaLeadNiQR(t *testing.T) {
	f := newSubmitFixture()
	d := f.seedDraft(t)
	d.Identification.CustomerID = "cust-7"
	require.NoError(t, f.store.Save(context.Background(), d))

	res, err := f.uc.Submit(context.Background(), "agent-1", "draft-1")
	require.NoError(t, err)

	assert.Empty(t, f.cust.created, "cliente existente no produce inserción")
	assert.Empty(t, f.cust.qrUpdates, "el QR solo se regenera para leads nuevos")
	assert.Equal(t, "cust-7", res.CustomerID)
}

func TestSubmit_FalloEnVisitaDejaClienteSinRollback(t *testing.T) {
	f := newSubmitFixture()
	f.seedDraft(t)
	f.vis.createErr = errors.New("insert visits: deadline exceeded")

	_, err := f.uc.Submit(context.Background(), "agent-1", "draft-1")

	require.Error(t, err)
	assert.Len(t, f.cust.created, 1, "el lead ya escrito permanece, no hay rollback")
	assert.Empty(t, f.ext.batches, "ningún extintor se escribe tras el fallo")
	_, getErr := f.store.Get(context.Background(), "draft-1")
	assert.NoError(t, getErr, "el borrador sobrevive a un envío fallido")
	assert.Equal(t, f.lock.acquires, f.lock.releases, "el candado se libera tras el fallo")
}

func TestSubmit_FalloEnExtintoresDejaVisita(t *testing.T) {
	f := newSubmitFixture()
	f.seedDraft(t)
	f.ext.createErr = errors.New("insert extinguishers: conexión perdida")

	_, err := f.uc.Submit(context.Background(), "agent-1", "draft-1")

	require.Error(t, err)
	assert.Len(t, f.cust.created, 1)
	assert.Len(t, f.vis.created, 1, "la visita ya escrita permanece")
}

func TestSubmit_DobleEnvioRechazado(t *testing.T) {
	f := newSubmitFixture()
	f.seedDraft(t)
	// Simula un envío en curso: el candado ya está tomado.
	acquired, err := f.lock.Acquire(context.Background(), "draft-1")
	require.NoError(t, err)
	require.True(t, acquired)

	_, err = f.uc.Submit(context.Background(), "agent-1", "draft-1")

	assert.ErrorIs(t, err, domain.ErrSubmitInFlight)
	assert.Empty(t, f.cust.created)
	assert.Empty(t, f.vis.created)
	assert.Empty(t, f.ext.batches)
}

func TestSubmit_BorradorIncompletoRechazado(t *testing.T) {
	f := newSubmitFixture()
	d := visit.NewDraft("draft-2", "agent-1", time.Now())
	require.NoError(t, f.store.Save(context.Background(), d))

	_, err := f.uc.Submit(context.Background(), "agent-1", "draft-2")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, f.lock.acquires, "la validación ocurre antes de tomar el candado")
}

func TestSubmit_AgenteAjenoRechazado(t *testing.T) {
	f := newSubmitFixture()
	f.seedDraft(t)

	_, err := f.uc.Submit(context.Background(), "agent-2", "draft-1")

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSubmit_EliminaBorradorTrasExito(t *testing.T) {
	f := newSubmitFixture()
	f.seedDraft(t)

	_, err := f.uc.Submit(context.Background(), "agent-1", "draft-1")
	require.NoError(t, err)

	assert.Contains(t, f.store.deleted, "draft-1")
	_, getErr := f.store.Get(context.Background(), "draft-1")
	assert.ErrorIs(t, getErr, domain.ErrNotFound)
}
