package certificate

import "context"

// CertificateData todo lo que el render necesita, ya resuelto por el caso de
// uso: el generador no toca repositorios.
type CertificateData struct {
	CertificateNumber string
	IssuedAt          string // DD/MM/YYYY

	BusinessName string
	OwnerName    string
	Address      string
	Phone        string

	ExtinguisherType string
	Capacity         string
	Quantity         int
	Status           string
	Condition        string
	ExpiryDate       string // DD/MM/YYYY, vacío si no aplica

	LastVisitDate string
	TaskTypes     string

	QRData string // JSON del payload de identidad, embebido como QR
}

// CertificatePDFGenerator renderiza el certificado de conformidad de una
// unidad. La implementación concreta vive en infraestructura.
type CertificatePDFGenerator interface {
	GenerateCertificatePDF(ctx context.Context, data *CertificateData) ([]byte, error)
}
