// Package certificate emite el certificado PDF de conformidad de un extintor:
// datos del negocio, la unidad, su última revisión y el QR de identidad.
package certificate

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sawaid25/aixosfire-api/internal/domain"
	"github.com/sawaid25/aixosfire-api/internal/domain/repository"
	"github.com/sawaid25/aixosfire-api/pkg/logger"
	"github.com/sawaid25/aixosfire-api/pkg/qr"
)

// CertificateUseCase emisión de certificados de unidad.
type CertificateUseCase struct {
	customers     repository.CustomerRepository
	extinguishers repository.ExtinguisherRepository
	visits        repository.VisitRepository
	generator     CertificatePDFGenerator
	log           *logger.Logger
}

// NewCertificateUseCase construye el caso de uso de certificados.
func NewCertificateUseCase(
	customers repository.CustomerRepository,
	extinguishers repository.ExtinguisherRepository,
	visits repository.VisitRepository,
	generator CertificatePDFGenerator,
	log *logger.Logger,
) *CertificateUseCase {
	return &CertificateUseCase{
		customers:     customers,
		extinguishers: extinguishers,
		visits:        visits,
		generator:     generator,
		log:           log,
	}
}

// Generate emite el certificado PDF del extintor. requesterID limita el acceso
// al dueño de la unidad; vacío (admin) no restringe.
func (uc *CertificateUseCase) Generate(ctx context.Context, extinguisherID, requesterID string) ([]byte, error) {
	ext, err := uc.extinguishers.GetByID(extinguisherID)
	if err != nil {
		return nil, err
	}
	if requesterID != "" && ext.CustomerID != requesterID {
		return nil, domain.ErrForbidden
	}
	customer, err := uc.customers.GetByID(ext.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("cargar cliente del certificado: %w", err)
	}

	data := &CertificateData{
		CertificateNumber: fmt.Sprintf("CERT-%s", shortID(ext.ID)),
		IssuedAt:          ext.CreatedAt.Format("02/01/2006"),
		BusinessName:      customer.BusinessName,
		OwnerName:         customer.OwnerName,
		Address:           customer.Address,
		Phone:             customer.Phone,
		ExtinguisherType:  ext.Type,
		Capacity:          ext.Capacity,
		Quantity:          ext.Quantity,
		Status:            ext.Status,
		Condition:         ext.Condition,
	}
	if ext.ExpiryDate != nil {
		data.ExpiryDate = ext.ExpiryDate.Format("02/01/2006")
	}

	// La última visita aporta fecha y tareas realizadas; si el historial no
	// carga, el certificado sale sin esa sección.
	if visit, err := uc.visits.GetByID(ext.VisitID); err == nil {
		data.LastVisitDate = visit.CreatedAt.Format("02/01/2006")
		data.TaskTypes = visit.TaskTypes
	} else {
		uc.log.Warn().Err(err).Str("visit_id", ext.VisitID).Msg("certificado sin datos de visita")
	}

	payload, err := json.Marshal(qr.Payload{ID: customer.ID, Type: "customer", Name: customer.BusinessName})
	if err == nil {
		data.QRData = string(payload)
	}

	pdfBytes, err := uc.generator.GenerateCertificatePDF(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("generar certificado: %w", err)
	}
	return pdfBytes, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
