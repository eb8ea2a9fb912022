package dto

import "github.com/shopspring/decimal"

// UpdateIdentificationRequest campos del paso 1 del wizard. CustomerID no
// vacío significa cliente existente seleccionado; vacío, lead nuevo.
type UpdateIdentificationRequest struct {
	CustomerID   string `json:"customer_id"`
	BusinessName string `json:"business_name"`
	OwnerName    string `json:"owner_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	BusinessType string `json:"business_type"`
}

// UpdateLineRequest actualización parcial de una línea de inventario del
// paso 2. Solo los campos no nulos se aplican.
type UpdateLineRequest struct {
	Mode         *string          `json:"mode,omitempty"`
	Type         *string          `json:"type,omitempty"`
	Capacity     *string          `json:"capacity,omitempty"`
	Quantity     *int             `json:"quantity,omitempty"`
	Brand        *string          `json:"brand,omitempty"`
	Seller       *string          `json:"seller,omitempty"`
	Partner      *string          `json:"partner,omitempty"`
	RefillStatus *string          `json:"refill_status,omitempty"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	ExpiryDate   *string          `json:"expiry_date,omitempty"` // YYYY-MM-DD
	Condition    *string          `json:"condition,omitempty"`
}

// UpdateAssessmentRequest campos del paso 3.
type UpdateAssessmentRequest struct {
	Notes                  string `json:"notes"`
	RiskAssessment         string `json:"risk_assessment"`
	ServiceRecommendations string `json:"service_recommendations"`
	FollowUpDate           string `json:"follow_up_date"` // YYYY-MM-DD
	PhotoKey               string `json:"photo_key"`
	VoiceNoteKey           string `json:"voice_note_key"`
}

// AdvanceResponse resultado de intentar avanzar de paso.
type AdvanceResponse struct {
	Step    int      `json:"step"`
	Missing []string `json:"missing,omitempty"` // campos faltantes si no avanzó
}

// QRPreviewResponse vista previa local del QR de identidad.
type QRPreviewResponse struct {
	DataURL string `json:"data_url"`
	TempID  bool   `json:"temp_id"` // true si el id codificado es provisional
}

// SubmitVisitResponse resultado del pipeline de envío.
type SubmitVisitResponse struct {
	VisitID    string `json:"visit_id"`
	CustomerID string `json:"customer_id"`
	Lines      int    `json:"lines"`
}

// MediaUploadResponse clave del adjunto guardado en el media store.
type MediaUploadResponse struct {
	Key string `json:"key"`
}
