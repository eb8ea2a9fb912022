package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sawaid25/aixosfire-api/internal/application/auth"
	"github.com/sawaid25/aixosfire-api/internal/application/dto"
	"github.com/sawaid25/aixosfire-api/internal/domain"
	"github.com/sawaid25/aixosfire-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de autenticación: login por rol contra tablas separadas, gating de
// agentes pendientes y bloqueo de leads sin credencial.
// ──────────────────────────────────────────────────────────────────────────────

var testJWTCfg = auth.JWTConfig{Secret: "secreto-de-test", ExpMinutes: 60, Issuer: "aixosfire-test"}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

// ── fakes por tabla ───────────────────────────────────────────────────────────

type fakeAdminRepo struct{ byEmail map[string]*entity.Admin }

func (r *fakeAdminRepo) Create(a *entity.Admin) error { r.byEmail[a.Email] = a; return nil }
func (r *fakeAdminRepo) GetByEmail(email string) (*entity.Admin, error) {
	if a, ok := r.byEmail[email]; ok {
		return a, nil
	}
	return nil, domain.ErrUserNotFound
}

type fakeAgentRepo struct{ byEmail map[string]*entity.Agent }

func (r *fakeAgentRepo) Create(a *entity.Agent) error { r.byEmail[a.Email] = a; return nil }
func (r *fakeAgentRepo) GetByID(id string) (*entity.Agent, error) {
	for _, a := range r.byEmail {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, domain.ErrNotFound
}
func (r *fakeAgentRepo) GetByEmail(email string) (*entity.Agent, error) {
	if a, ok := r.byEmail[email]; ok {
		return a, nil
	}
	return nil, domain.ErrUserNotFound
}
func (r *fakeAgentRepo) ListByStatus(status string, limit, offset int) ([]*entity.Agent, error) {
	return nil, nil
}
func (r *fakeAgentRepo) UpdateStatus(id, status string) error             { return nil }
func (r *fakeAgentRepo) UpdatePosition(id string, lat, lng float64) error { return nil }

type fakeCustomerRepo struct{ byEmail map[string]*entity.Customer }

func (r *fakeCustomerRepo) Create(c *entity.Customer) error { r.byEmail[c.Email] = c; return nil }
func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	for _, c := range r.byEmail {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}
func (r *fakeCustomerRepo) GetByEmail(email string) (*entity.Customer, error) {
	if c, ok := r.byEmail[email]; ok {
		return c, nil
	}
	return nil, domain.ErrUserNotFound
}
func (r *fakeCustomerRepo) Search(query string, limit int) ([]*entity.Customer, error) {
	return nil, nil
}
func (r *fakeCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) { return nil, nil }
func (r *fakeCustomerRepo) Update(c *entity.Customer) error { return nil }
func (r *fakeCustomerRepo) UpdateQRCodeURL(id, dataURL string) error { return nil }
func (r *fakeCustomerRepo) UpdatePosition(id string, lat, lng float64) error { return nil }

func newFixture() (*auth.AuthUseCase, *fakeAdminRepo, *fakeAgentRepo, *fakeCustomerRepo) {
	admins := &fakeAdminRepo{byEmail: make(map[string]*entity.Admin)}
	agents := &fakeAgentRepo{byEmail: make(map[string]*entity.Agent)}
	customers := &fakeCustomerRepo{byEmail: make(map[string]*entity.Customer)}
	return auth.NewAuthUseCase(admins, agents, customers, testJWTCfg), admins, agents, customers
}

// ── Login ─────────────────────────────────────────────────────────────────────

func TestLogin_AdminOK(t *testing.T) {
	uc, admins, _, _ := newFixture()
	admins.byEmail["admin@aixos.co"] = &entity.Admin{
		ID: "adm-1", Email: "admin@aixos.co", Name: "Root", PasswordHash: hashOf(t, "clave123"),
	}

	res, err := uc.Login(dto.LoginRequest{Email: "admin@aixos.co", Password: "clave123", Role: "admin"})

	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "admin", res.User.Role)
	assert.Equal(t, "adm-1", res.User.ID)
}

func TestLogin_AgenteActivoOK(t *testing.T) {
	uc, _, agents, _ := newFixture()
	agents.byEmail["agente@aixos.co"] = &entity.Agent{
		ID: "ag-1", Email: "agente@aixos.co", Name: "Luisa", Status: entity.AgentStatusActive,
		PasswordHash: hashOf(t, "clave123"),
	}

	res, err := uc.Login(dto.LoginRequest{Email: "agente@aixos.co", Password: "clave123", Role: "agent"})

	require.NoError(t, err)
	assert.Equal(t, "agent", res.User.Role)
	assert.Equal(t, entity.AgentStatusActive, res.User.Status)
}

func TestLogin_AgentePendienteRechazado(t *testing.T) {
	uc, _, agents, _ := newFixture()
	agents.byEmail["nuevo@aixos.co"] = &entity.Agent{
		ID: "ag-2", Email: "nuevo@aixos.co", Status: entity.AgentStatusPending,
		PasswordHash: hashOf(t, "clave123"),
	}

	_, err := uc.Login(dto.LoginRequest{Email: "nuevo@aixos.co", Password: "clave123", Role: "agent"})

	assert.ErrorIs(t, err, domain.ErrAccountPending,
		"credencial correcta pero cuenta sin aprobar no inicia sesión")
}

func TestLogin_AgenteRechazadoBloqueado(t *testing.T) {
	uc, _, agents, _ := newFixture()
	agents.byEmail["rech@aixos.co"] = &entity.Agent{
		ID: "ag-3", Email: "rech@aixos.co", Status: entity.AgentStatusRejected,
		PasswordHash: hashOf(t, "clave123"),
	}

	_, err := uc.Login(dto.LoginRequest{Email: "rech@aixos.co", Password: "clave123", Role: "agent"})
	assert.ErrorIs(t, err, domain.ErrAccountPending)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc, admins, _, _ := newFixture()
	admins.byEmail["admin@aixos.co"] = &entity.Admin{
		ID: "adm-1", Email: "admin@aixos.co", PasswordHash: hashOf(t, "clave123"),
	}

	_, err := uc.Login(dto.LoginRequest{Email: "admin@aixos.co", Password: "otra", Role: "admin"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_RolDesconocido(t *testing.T) {
	uc, _, _, _ := newFixture()
	_, err := uc.Login(dto.LoginRequest{Email: "x@y.co", Password: "p", Role: "superuser"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_RolNoMezclaTablas(t *testing.T) {
	uc, admins, _, _ := newFixture()
	admins.byEmail["admin@aixos.co"] = &entity.Admin{
		ID: "adm-1", Email: "admin@aixos.co", PasswordHash: hashOf(t, "clave123"),
	}

	// El mismo email con rol agent consulta la tabla de agentes, donde no existe.
	_, err := uc.Login(dto.LoginRequest{Email: "admin@aixos.co", Password: "clave123", Role: "agent"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_LeadSinCredencialNoIniciaSesion(t *testing.T) {
	uc, _, _, customers := newFixture()
	customers.byEmail["lead-171234@temp.com"] = &entity.Customer{
		ID: "c-lead", Email: "lead-171234@temp.com", Status: entity.CustomerStatusLead,
		PasswordHash: entity.LeadPasswordPlaceholder,
	}

	_, err := uc.Login(dto.LoginRequest{
		Email: "lead-171234@temp.com", Password: entity.LeadPasswordPlaceholder, Role: "customer",
	})

	assert.ErrorIs(t, err, domain.ErrUnauthorized,
		"el marcador de lead no es un hash válido, ninguna password lo satisface")
}

// ── Registro ──────────────────────────────────────────────────────────────────

func TestRegisterAgent_QuedaPendiente(t *testing.T) {
	uc, _, agents, _ := newFixture()

	u, err := uc.RegisterAgent(dto.RegisterAgentRequest{
		Email: "nuevo@aixos.co", Password: "clave12345", Name: "Jorge", Territory: "Chapinero",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.AgentStatusPending, u.Status)
	stored := agents.byEmail["nuevo@aixos.co"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "clave12345", stored.PasswordHash, "la password se persiste hasheada")
}

func TestRegisterAgent_EmailDuplicado(t *testing.T) {
	uc, _, agents, _ := newFixture()
	agents.byEmail["nuevo@aixos.co"] = &entity.Agent{ID: "ag-1", Email: "nuevo@aixos.co"}

	_, err := uc.RegisterAgent(dto.RegisterAgentRequest{
		Email: "nuevo@aixos.co", Password: "clave12345", Name: "Jorge", Territory: "Chapinero",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterCustomer_QuedaActivoYPuedeIniciarSesion(t *testing.T) {
	uc, _, _, _ := newFixture()

	u, err := uc.RegisterCustomer(dto.RegisterCustomerRequest{
		Email: "negocio@mail.co", Password: "clave12345", BusinessName: "Café La Esquina",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.CustomerStatusActive, u.Status)

	res, err := uc.Login(dto.LoginRequest{Email: "negocio@mail.co", Password: "clave12345", Role: "customer"})
	require.NoError(t, err)
	assert.Equal(t, "Café La Esquina", res.User.Name)
}
