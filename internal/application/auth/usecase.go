// Package auth implementa registro e inicio de sesión para los tres roles:
// admin, agente de campo y cliente. Cada rol valida contra su propia tabla.
package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sawaid25/aixosfire-api/internal/application/dto"
	"github.com/sawaid25/aixosfire-api/internal/domain"
	"github.com/sawaid25/aixosfire-api/internal/domain/entity"
	"github.com/sawaid25/aixosfire-api/internal/domain/repository"
	"github.com/sawaid25/aixosfire-api/pkg/jwt"
)

// Roles válidos para login.
const (
	RoleAdmin    = "admin"
	RoleAgent    = "agent"
	RoleCustomer = "customer"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login por rol.
type AuthUseCase struct {
	admins    repository.AdminRepository
	agents    repository.AgentRepository
	customers repository.CustomerRepository
	jwtCfg    JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(admins repository.AdminRepository, agents repository.AgentRepository, customers repository.CustomerRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{admins: admins, agents: agents, customers: customers, jwtCfg: jwtCfg}
}

// Login verifica email/password contra la tabla del rol indicado, genera el
// JWT y retorna token + usuario. Un agente Pending o Rejected recibe
// ErrAccountPending aunque la credencial sea correcta.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	switch in.Role {
	case RoleAdmin:
		return uc.loginAdmin(in)
	case RoleAgent:
		return uc.loginAgent(in)
	case RoleCustomer:
		return uc.loginCustomer(in)
	default:
		return nil, domain.ErrInvalidInput
	}
}

func (uc *AuthUseCase) loginAdmin(in dto.LoginRequest) (*dto.LoginResponse, error) {
	admin, err := uc.admins.GetByEmail(in.Email)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.buildSession(admin.ID, admin.Email, admin.Name, RoleAdmin, "", admin.CreatedAt)
}

func (uc *AuthUseCase) loginAgent(in dto.LoginRequest) (*dto.LoginResponse, error) {
	agent, err := uc.agents.GetByEmail(in.Email)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(agent.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if agent.Status != entity.AgentStatusActive {
		return nil, domain.ErrAccountPending
	}
	return uc.buildSession(agent.ID, agent.Email, agent.Name, RoleAgent, agent.Status, agent.CreatedAt)
}

func (uc *AuthUseCase) loginCustomer(in dto.LoginRequest) (*dto.LoginResponse, error) {
	customer, err := uc.customers.GetByEmail(in.Email)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	// Un Lead tiene un marcador en lugar de hash; CompareHashAndPassword
	// falla contra cualquier entrada y el login se rechaza.
	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if customer.Status == entity.CustomerStatusInactive {
		return nil, domain.ErrForbidden
	}
	return uc.buildSession(customer.ID, customer.Email, customer.BusinessName, RoleCustomer, customer.Status, customer.CreatedAt)
}

// RegisterAgent crea un agente en estado Pending. No puede iniciar sesión
// hasta que un admin lo apruebe.
func (uc *AuthUseCase) RegisterAgent(in dto.RegisterAgentRequest) (*dto.SessionUser, error) {
	if existing, _ := uc.agents.GetByEmail(in.Email); existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	agent := &entity.Agent{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Phone:        in.Phone,
		Territory:    in.Territory,
		Status:       entity.AgentStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.agents.Create(agent); err != nil {
		return nil, err
	}
	return &dto.SessionUser{
		ID:        agent.ID,
		Email:     agent.Email,
		Name:      agent.Name,
		Role:      RoleAgent,
		Status:    agent.Status,
		CreatedAt: agent.CreatedAt,
	}, nil
}

// RegisterCustomer auto-registro de cliente, queda Active de inmediato.
func (uc *AuthUseCase) RegisterCustomer(in dto.RegisterCustomerRequest) (*dto.SessionUser, error) {
	if existing, _ := uc.customers.GetByEmail(in.Email); existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:           uuid.New().String(),
		BusinessName: in.BusinessName,
		OwnerName:    in.OwnerName,
		Email:        in.Email,
		PasswordHash: string(hash),
		Phone:        in.Phone,
		Address:      in.Address,
		BusinessType: in.BusinessType,
		Status:       entity.CustomerStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.customers.Create(customer); err != nil {
		return nil, err
	}
	return &dto.SessionUser{
		ID:        customer.ID,
		Email:     customer.Email,
		Name:      customer.BusinessName,
		Role:      RoleCustomer,
		Status:    customer.Status,
		CreatedAt: customer.CreatedAt,
	}, nil
}

func (uc *AuthUseCase) buildSession(id, email, name, role, status string, createdAt time.Time) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, id, name, role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User: dto.SessionUser{
			ID:        id,
			Email:     email,
			Name:      name,
			Role:      role,
			Status:    status,
			CreatedAt: createdAt,
		},
	}, nil
}
