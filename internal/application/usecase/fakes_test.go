package usecase_test

import (
	"sort"
	"time"

	"github.com/sawaid25/aixosfire-api/internal/domain"
	"github.com/sawaid25/aixosfire-api/internal/domain/entity"
	"github.com/sawaid25/aixosfire-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los repositorios
// ──────────────────────────────────────────────────────────────────────────────

type fakeAgentRepo struct {
	byID          map[string]*entity.Agent
	statusUpdates map[string]string
	updateErr     error
}

func newFakeAgentRepo() *fakeAgentRepo {
	return &fakeAgentRepo{byID: map[string]*entity.Agent{}, statusUpdates: map[string]string{}}
}

func (f *fakeAgentRepo) Create(a *entity.Agent) error {
	f.byID[a.ID] = a
	return nil
}

func (f *fakeAgentRepo) GetByID(id string) (*entity.Agent, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

func (f *fakeAgentRepo) GetByEmail(email string) (*entity.Agent, error) {
	for _, a := range f.byID {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAgentRepo) ListByStatus(status string, limit, offset int) ([]*entity.Agent, error) {
	var out []*entity.Agent
	for _, a := range f.byID {
		if status == "" || a.Status == status {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAgentRepo) UpdateStatus(id, status string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	a, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Status = status
	f.statusUpdates[id] = status
	return nil
}

func (f *fakeAgentRepo) UpdatePosition(id string, lat, lng float64) error { return nil }

type fakeVisitRepo struct {
	byCustomer map[string][]*entity.Visit
	byAgent    map[string][]*entity.Visit
	visited    map[string][]repository.VisitedCustomerRow
}

func newFakeVisitRepo() *fakeVisitRepo {
	return &fakeVisitRepo{
		byCustomer: map[string][]*entity.Visit{},
		byAgent:    map[string][]*entity.Visit{},
		visited:    map[string][]repository.VisitedCustomerRow{},
	}
}

func (f *fakeVisitRepo) Create(v *entity.Visit) error { return nil }

func (f *fakeVisitRepo) GetByID(id string) (*entity.Visit, error) { return nil, domain.ErrNotFound }

func (f *fakeVisitRepo) ListByAgent(agentID string, limit, offset int) ([]*entity.Visit, error) {
	return f.byAgent[agentID], nil
}

func (f *fakeVisitRepo) ListByCustomer(customerID string) ([]*entity.Visit, error) {
	return f.byCustomer[customerID], nil
}

func (f *fakeVisitRepo) ListVisitedCustomers(agentID string) ([]repository.VisitedCustomerRow, error) {
	return f.visited[agentID], nil
}

type fakeCustomerRepo struct {
	byID      map[string]*entity.Customer
	qrUpdates map[string]string
	qrErr     error
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{byID: map[string]*entity.Customer{}, qrUpdates: map[string]string{}}
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

func (f *fakeCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range f.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCustomerRepo) Update(c *entity.Customer) error { return nil }

func (f *fakeCustomerRepo) UpdateQRCodeURL(id, dataURL string) error {
	if f.qrErr != nil {
		return f.qrErr
	}
	c, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.QRCodeURL = dataURL
	f.qrUpdates[id] = dataURL
	return nil
}

func (f *fakeCustomerRepo) UpdatePosition(id string, lat, lng float64) error { return nil }

type fakeExtinguisherRepo struct {
	byCustomer map[string][]*entity.Extinguisher
}

func newFakeExtinguisherRepo() *fakeExtinguisherRepo {
	return &fakeExtinguisherRepo{byCustomer: map[string][]*entity.Extinguisher{}}
}

func (f *fakeExtinguisherRepo) CreateBatch(items []*entity.Extinguisher) error { return nil }

func (f *fakeExtinguisherRepo) GetByID(id string) (*entity.Extinguisher, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeExtinguisherRepo) ListByCustomer(customerID string) ([]*entity.Extinguisher, error) {
	return f.byCustomer[customerID], nil
}

func (f *fakeExtinguisherRepo) ListByVisit(visitID string) ([]*entity.Extinguisher, error) {
	return nil, nil
}

// datePtr helper para fechas de vencimiento.
func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}
