package certificate_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawaid25/aixosfire-api/internal/application/certificate"
	"github.com/sawaid25/aixosfire-api/internal/domain"
	"github.com/sawaid25/aixosfire-api/internal/domain/entity"
	"github.com/sawaid25/aixosfire-api/internal/domain/repository"
	"github.com/sawaid25/aixosfire-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeGenerator struct {
	lastData *certificate.CertificateData
	err      error
}

func (f *fakeGenerator) GenerateCertificatePDF(ctx context.Context, data *certificate.CertificateData) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastData = data
	return []byte("%PDF-fake"), nil
}

type fakeCustomerRepo struct {
	byID map[string]*entity.Customer
}

func (f *fakeCustomerRepo) Create(c *entity.Customer) error { return nil }
func (f *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}
func (f *fakeCustomerRepo) GetByEmail(email string) (*entity.Customer, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeCustomerRepo) Search(query string, limit int) ([]*entity.Customer, error) {
	return nil, nil
}
func (f *fakeCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) { return nil, nil }
func (f *fakeCustomerRepo) Update(c *entity.Customer) error { return nil }
func (f *fakeCustomerRepo) UpdateQRCodeURL(id, dataURL string) error { return nil }
func (f *fakeCustomerRepo) UpdatePosition(id string, lat, lng float64) error { return nil }

type fakeExtinguisherRepo struct {
	byID map[string]*entity.Extinguisher
}

func (f *fakeExtinguisherRepo) CreateBatch(items []*entity.Extinguisher) error { return nil }
func (f *fakeExtinguisherRepo) GetByID(id string) (*entity.Extinguisher, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}
func (f *fakeExtinguisherRepo) ListByCustomer(customerID string) ([]*entity.Extinguisher, error) {
	return nil, nil
}
func (f *fakeExtinguisherRepo) ListByVisit(visitID string) ([]*entity.Extinguisher, error) {
	return nil, nil
}

type fakeVisitRepo struct {
	byID map[string]*entity.Visit
}

func (f *fakeVisitRepo) Create(v *entity.Visit) error { return nil }
func (f *fakeVisitRepo) GetByID(id string) (*entity.Visit, error) {
	v, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return v, nil
}
func (f *fakeVisitRepo) ListByAgent(agentID string, limit, offset int) ([]*entity.Visit, error) {
	return nil, nil
}
func (f *fakeVisitRepo) ListByCustomer(customerID string) ([]*entity.Visit, error) {
	return nil, nil
}
func (f *fakeVisitRepo) ListVisitedCustomers(agentID string) ([]repository.VisitedCustomerRow, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc        *certificate.CertificateUseCase
	generator *fakeGenerator
	visits    *fakeVisitRepo
}

func newFixture() *fixture {
	customers := &fakeCustomerRepo{byID: map[string]*entity.Customer{
		"cust-1": {
			ID:           "cust-1",
			BusinessName: "Restaurante La Llama",
			OwnerName:    "María Pérez",
			Address:      "Av. Central 42",
			Phone:        "3001234567",
		},
	}}
	extinguishers := &fakeExtinguisherRepo{byID: map[string]*entity.Extinguisher{
		"ext-12345678-abcd": {
			ID:         "ext-12345678-abcd",
			CustomerID: "cust-1",
			VisitID:    "v-1",
			Type:       "ABC Dry Powder",
			Capacity:   "6kg",
			Quantity:   2,
			Status:     entity.ExtinguisherStatusValid,
			Condition:  "Good",
			CreatedAt:  time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		},
	}}
	visits := &fakeVisitRepo{byID: map[string]*entity.Visit{
		"v-1": {
			ID:        "v-1",
			TaskTypes: "Validation, Refill",
			CreatedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		},
	}}
	generator := &fakeGenerator{}
	uc := certificate.NewCertificateUseCase(customers, extinguishers, visits, generator, logger.Nop())
	return &fixture{uc: uc, generator: generator, visits: visits}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerate_ArmaLosDatosDelCertificado(t *testing.T) {
	f := newFixture()

	pdf, err := f.uc.Generate(context.Background(), "ext-12345678-abcd", "")
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)

	data := f.generator.lastData
	require.NotNil(t, data)
	assert.Equal(t, "CERT-ext-1234", data.CertificateNumber,
		"el número usa los primeros 8 caracteres del id de la unidad")
	assert.Equal(t, "10/03/2026", data.IssuedAt)
	assert.Equal(t, "Restaurante La Llama", data.BusinessName)
	assert.Equal(t, "ABC Dry Powder", data.ExtinguisherType)
	assert.Equal(t, "10/03/2026", data.LastVisitDate)
	assert.Equal(t, "Validation, Refill", data.TaskTypes)
	assert.Contains(t, data.QRData, `"id":"cust-1"`,
		"el QR embebido codifica la identidad del cliente")
}

func TestGenerate_DuenoPuedeCertificarSuUnidad(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Generate(context.Background(), "ext-12345678-abcd", "cust-1")
	assert.NoError(t, err)
}

func TestGenerate_OtroClienteProhibido(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Generate(context.Background(), "ext-12345678-abcd", "cust-otro")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Nil(t, f.generator.lastData, "no debe generarse PDF para un ajeno")
}

func TestGenerate_UnidadInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Generate(context.Background(), "no-existe", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGenerate_SinVisitaElCertificadoSaleIgual(t *testing.T) {
	f := newFixture()
	delete(f.visits.byID, "v-1")

	pdf, err := f.uc.Generate(context.Background(), "ext-12345678-abcd", "")
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Empty(t, f.generator.lastData.LastVisitDate,
		"sin historial la sección de visita queda vacía")
}
