package usecase

import (
	"fmt"
	"time"

	"github.com/sawaid25/aixosfire-api/internal/application/dto"
	"github.com/sawaid25/aixosfire-api/internal/domain/entity"
	"github.com/sawaid25/aixosfire-api/internal/domain/repository"
	"github.com/sawaid25/aixosfire-api/pkg/logger"
	"github.com/sawaid25/aixosfire-api/pkg/qr"
)

// CustomerUseCase lecturas sobre clientes: directorio, detalle con historial
// de visitas e inventario, y regeneración del QR de identidad.
type CustomerUseCase struct {
	customers     repository.CustomerRepository
	visits        repository.VisitRepository
	extinguishers repository.ExtinguisherRepository
	log           *logger.Logger
}

// NewCustomerUseCase construye el caso de uso de clientes.
func NewCustomerUseCase(
	customers repository.CustomerRepository,
	visits repository.VisitRepository,
	extinguishers repository.ExtinguisherRepository,
	log *logger.Logger,
) *CustomerUseCase {
	return &CustomerUseCase{customers: customers, visits: visits, extinguishers: extinguishers, log: log}
}

// List directorio paginado de clientes (admin).
func (uc *CustomerUseCase) List(page dto.PageRequest) ([]dto.CustomerResponse, error) {
	customers, err := uc.customers.List(page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// Get un cliente por id.
func (uc *CustomerUseCase) Get(id string) (*dto.CustomerResponse, error) {
	c, err := uc.customers.GetByID(id)
	if err != nil {
		return nil, err
	}
	resp := toCustomerResponse(c)
	return &resp, nil
}

// Detail cliente con su historial de visitas y su inventario, la vista que
// abre el agente al seleccionar un negocio visitado.
func (uc *CustomerUseCase) Detail(id string) (*dto.CustomerDetailResponse, error) {
	c, err := uc.customers.GetByID(id)
	if err != nil {
		return nil, err
	}
	visits, err := uc.visits.ListByCustomer(id)
	if err != nil {
		return nil, fmt.Errorf("cargar visitas del cliente: %w", err)
	}
	items, err := uc.extinguishers.ListByCustomer(id)
	if err != nil {
		return nil, fmt.Errorf("cargar inventario del cliente: %w", err)
	}

	detail := &dto.CustomerDetailResponse{
		Customer:      toCustomerResponse(c),
		Visits:        make([]dto.VisitResponse, 0, len(visits)),
		Extinguishers: make([]dto.ExtinguisherResponse, 0, len(items)),
	}
	for _, v := range visits {
		detail.Visits = append(detail.Visits, toVisitResponse(v))
	}
	now := time.Now()
	for _, e := range items {
		detail.Extinguishers = append(detail.Extinguishers, toExtinguisherResponse(e, now))
	}
	return detail, nil
}

// Inventory inventario de extintores de un cliente con vencimiento derivado.
func (uc *CustomerUseCase) Inventory(customerID string) ([]dto.ExtinguisherResponse, error) {
	items, err := uc.extinguishers.ListByCustomer(customerID)
	if err != nil {
		return nil, fmt.Errorf("cargar inventario: %w", err)
	}
	now := time.Now()
	out := make([]dto.ExtinguisherResponse, 0, len(items))
	for _, e := range items {
		out = append(out, toExtinguisherResponse(e, now))
	}
	return out, nil
}

// EnsureQR devuelve el QR de identidad del cliente, generándolo y
// persistiéndolo si aún no existe.
func (uc *CustomerUseCase) EnsureQR(customerID string) (string, error) {
	c, err := uc.customers.GetByID(customerID)
	if err != nil {
		return "", err
	}
	if c.QRCodeURL != "" {
		return c.QRCodeURL, nil
	}
	dataURL, err := qr.DataURL(qr.Payload{ID: c.ID, Type: "customer", Name: c.BusinessName})
	if err != nil {
		return "", fmt.Errorf("generar QR: %w", err)
	}
	if err := uc.customers.UpdateQRCodeURL(c.ID, dataURL); err != nil {
		uc.log.Warn().Err(err).Str("customer_id", c.ID).Msg("no se pudo guardar el QR regenerado")
	}
	return dataURL, nil
}

func toCustomerResponse(c *entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:           c.ID,
		BusinessName: c.BusinessName,
		OwnerName:    c.OwnerName,
		Email:        c.Email,
		Phone:        c.Phone,
		Address:      c.Address,
		BusinessType: c.BusinessType,
		Status:       c.Status,
		QRCodeURL:    c.QRCodeURL,
		CreatedAt:    c.CreatedAt,
	}
}

func toVisitResponse(v *entity.Visit) dto.VisitResponse {
	resp := dto.VisitResponse{
		ID:                     v.ID,
		AgentID:                v.AgentID,
		CustomerID:             v.CustomerID,
		CustomerName:           v.CustomerName,
		BusinessType:           v.BusinessType,
		Notes:                  v.Notes,
		RiskAssessment:         v.RiskAssessment,
		ServiceRecommendations: v.ServiceRecommendations,
		Status:                 v.Status,
		TaskTypes:              v.TaskTypes,
		CreatedAt:              v.CreatedAt,
	}
	if v.FollowUpDate != nil {
		resp.FollowUpDate = v.FollowUpDate.Format("2006-01-02")
	}
	return resp
}

func toExtinguisherResponse(e *entity.Extinguisher, now time.Time) dto.ExtinguisherResponse {
	resp := dto.ExtinguisherResponse{
		ID:           e.ID,
		CustomerID:   e.CustomerID,
		VisitID:      e.VisitID,
		Type:         e.Type,
		Capacity:     e.Capacity,
		Quantity:     e.Quantity,
		Condition:    e.Condition,
		Status:       e.Status,
		Brand:        e.Brand,
		Seller:       e.Seller,
		Partner:      e.Partner,
		RefillStatus: e.RefillStatus,
		Price:        e.Price,
		Expired:      e.IsExpired(now),
	}
	if e.ExpiryDate != nil {
		resp.ExpiryDate = e.ExpiryDate.Format("2006-01-02")
	}
	return resp
}
