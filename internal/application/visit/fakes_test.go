package visit_test

import (
	"context"
	"errors"

	"github.com/sawaid25/aixosfire-api/internal/application/visit"
	"github.com/sawaid25/aixosfire-api/internal/domain"
	"github.com/sawaid25/aixosfire-api/internal/domain/entity"
	"github.com/sawaid25/aixosfire-api/internal/domain/repository"
)

// ── fakes in-memory para los casos de uso del wizard ─────────────────────────

type fakeDraftStore struct {
	drafts  map[string]*visit.Draft
	deleted []string
	saveErr error
}

func newFakeDraftStore() *fakeDraftStore {
	return &fakeDraftStore{drafts: make(map[string]*visit.Draft)}
}

func (s *fakeDraftStore) Save(_ context.Context, d *visit.Draft) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	cp := *d
	s.drafts[d.ID] = &cp
	return nil
}

func (s *fakeDraftStore) Get(_ context.Context, id string) (*visit.Draft, error) {
	d, ok := s.drafts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (s *fakeDraftStore) Delete(_ context.Context, id string) error {
	delete(s.drafts, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type fakeSubmitLock struct {
	held     map[string]bool
	acquires int
	releases int
	denyAll  bool
}

func newFakeSubmitLock() *fakeSubmitLock {
	return &fakeSubmitLock{held: make(map[string]bool)}
}

func (l *fakeSubmitLock) Acquire(_ context.Context, draftID string) (bool, error) {
	l.acquires++
	if l.denyAll || l.held[draftID] {
		return false, nil
	}
	l.held[draftID] = true
	return true, nil
}

func (l *fakeSubmitLock) Release(_ context.Context, draftID string) error {
	l.releases++
	delete(l.held, draftID)
	return nil
}

type fakeCustomerRepo struct {
	byID      map[string]*entity.Customer
	created   []*entity.Customer
	qrUpdates map[string]string
	searchRes []*entity.Customer
	searched  []string
	searchErr error
	qrErr     error
	createErr error
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{
		byID:      make(map[string]*entity.Customer),
		qrUpdates: make(map[string]string),
	}
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, c)
	r.byID[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (r *fakeCustomerRepo) GetByEmail(email string) (*entity.Customer, error) {
	for _, c := range r.byID {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeCustomerRepo) Search(query string, limit int) ([]*entity.Customer, error) {
	r.searched = append(r.searched, query)
	if r.searchErr != nil {
		return nil, r.searchErr
	}
	return r.searchRes, nil
}

func (r *fakeCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	return nil, errors.New("no implementado")
}

func (r *fakeCustomerRepo) Update(c *entity.Customer) error {
	r.byID[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) UpdateQRCodeURL(id, dataURL string) error {
	if r.qrErr != nil {
		return r.qrErr
	}
	r.qrUpdates[id] = dataURL
	return nil
}

func (r *fakeCustomerRepo) UpdatePosition(id string, lat, lng float64) error {
	return nil
}

type fakeVisitRepo struct {
	created   []*entity.Visit
	createErr error
}

func (r *fakeVisitRepo) Create(v *entity.Visit) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, v)
	return nil
}

func (r *fakeVisitRepo) GetByID(id string) (*entity.Visit, error) {
	return nil, domain.ErrNotFound
}

func (r *fakeVisitRepo) ListByAgent(agentID string, limit, offset int) ([]*entity.Visit, error) {
	return nil, nil
}

func (r *fakeVisitRepo) ListByCustomer(customerID string) ([]*entity.Visit, error) {
	return nil, nil
}

func (r *fakeVisitRepo) ListVisitedCustomers(agentID string) ([]repository.VisitedCustomerRow, error) {
	return nil, nil
}

type fakeExtinguisherRepo struct {
	batches   [][]*entity.Extinguisher
	createErr error
}

func (r *fakeExtinguisherRepo) CreateBatch(items []*entity.Extinguisher) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.batches = append(r.batches, items)
	return nil
}

func (r *fakeExtinguisherRepo) GetByID(id string) (*entity.Extinguisher, error) {
	return nil, domain.ErrNotFound
}

func (r *fakeExtinguisherRepo) ListByCustomer(customerID string) ([]*entity.Extinguisher, error) {
	return nil, nil
}

func (r *fakeExtinguisherRepo) ListByVisit(visitID string) ([]*entity.Extinguisher, error) {
	return nil, nil
}
