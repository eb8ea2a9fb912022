// Package visit implementa el núcleo del registro de visitas: el wizard de
// 3 pasos (identificación → inventario → evaluación) y el pipeline de envío.
// El estado del wizard vive server-side como borrador por agente.
package visit

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sawaid25/aixosfire-api/internal/application/dto"
	"github.com/sawaid25/aixosfire-api/internal/domain"
	"github.com/sawaid25/aixosfire-api/internal/domain/entity"
)

// Pasos del wizard.
const (
	StepIdentification = 1
	StepInventory      = 2
	StepAssessment     = 3
)

// Defaults de una línea nueva y del modo New Unit.
const (
	defaultLineType     = "ABC Dry Powder"
	defaultCapacity     = "6kg"
	defaultCondition    = "Good"
	defaultRefillStatus = "Required"
	defaultBusinessType = "Retail Store - Grocery"
)

// DefaultUnitPrice precio por defecto de una línea; también el precio al que
// se resetea una línea al cambiarla a modo New Unit.
var DefaultUnitPrice = decimal.NewFromInt(180)

// Line una línea de inventario del paso 2. Los campos de procedencia son
// relevantes según el modo; Normalized limpia los que no aplican.
type Line struct {
	Mode         string          `json:"mode"`
	Type         string          `json:"type"`
	Capacity     string          `json:"capacity"`
	Quantity     int             `json:"quantity"`
	Brand        string          `json:"brand,omitempty"`
	Seller       string          `json:"seller,omitempty"`
	Partner      string          `json:"partner,omitempty"`
	RefillStatus string          `json:"refill_status,omitempty"`
	Price        decimal.Decimal `json:"price"`
	ExpiryDate   string          `json:"expiry_date,omitempty"` // YYYY-MM-DD
	Condition    string          `json:"condition,omitempty"`
}

// Identification estado del paso 1. CustomerID vacío significa lead nuevo.
type Identification struct {
	CustomerID   string `json:"customer_id,omitempty"`
	BusinessName string `json:"business_name"`
	OwnerName    string `json:"owner_name,omitempty"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
	Address      string `json:"address,omitempty"`
	BusinessType string `json:"business_type"`
}

// Assessment estado del paso 3.
type Assessment struct {
	Notes                  string `json:"notes,omitempty"`
	RiskAssessment         string `json:"risk_assessment,omitempty"`
	ServiceRecommendations string `json:"service_recommendations,omitempty"`
	FollowUpDate           string `json:"follow_up_date,omitempty"` // YYYY-MM-DD
	PhotoKey               string `json:"photo_key,omitempty"`
	VoiceNoteKey           string `json:"voice_note_key,omitempty"`
}

// Draft el estado completo de un wizard en curso. Se serializa tal cual al
// draft store (JSON) y se devuelve tal cual por la API de borradores.
type Draft struct {
	ID             string         `json:"id"`
	AgentID        string         `json:"agent_id"`
	Step           int            `json:"step"`
	Identification Identification `json:"identification"`
	Lines          []Line         `json:"lines"`
	Assessment     Assessment     `json:"assessment"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// NewDraft crea un borrador en el paso 1 con una línea por defecto, igual que
// el formulario arranca con una unidad precargada.
func NewDraft(id, agentID string, now time.Time) *Draft {
	return &Draft{
		ID:      id,
		AgentID: agentID,
		Step:    StepIdentification,
		Identification: Identification{
			BusinessType: defaultBusinessType,
		},
		Lines:     []Line{defaultLine()},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func defaultLine() Line {
	return Line{
		Mode:         entity.TaskModeValidation,
		Type:         defaultLineType,
		Capacity:     defaultCapacity,
		Quantity:     1,
		RefillStatus: defaultRefillStatus,
		Price:        DefaultUnitPrice,
		Condition:    defaultCondition,
	}
}

// Advance intenta pasar al siguiente paso. Si el paso actual está incompleto
// devuelve la lista de campos faltantes y no avanza.
func (d *Draft) Advance() []string {
	missing := d.MissingForStep(d.Step)
	if len(missing) > 0 {
		return missing
	}
	if d.Step < StepAssessment {
		d.Step++
	}
	return nil
}

// Retreat vuelve un paso atrás conservando todo lo digitado. En el paso 1 es no-op.
func (d *Draft) Retreat() {
	if d.Step > StepIdentification {
		d.Step--
	}
}

// MissingForStep validación explícita por paso: devuelve los campos requeridos
// que faltan para considerar completo el paso.
func (d *Draft) MissingForStep(step int) []string {
	var missing []string
	switch step {
	case StepIdentification:
		// Cliente existente seleccionado satisface el paso completo.
		if d.Identification.CustomerID != "" {
			return nil
		}
		if d.Identification.BusinessName == "" {
			missing = append(missing, "business_name")
		}
		if d.Identification.Phone == "" {
			missing = append(missing, "phone")
		}
	case StepInventory:
		if len(d.Lines) == 0 {
			missing = append(missing, "lines")
			return missing
		}
		for i, l := range d.Lines {
			if !isValidMode(l.Mode) {
				missing = append(missing, fmt.Sprintf("lines[%d].mode", i))
			}
			if l.Quantity < 1 {
				missing = append(missing, fmt.Sprintf("lines[%d].quantity", i))
			}
			if l.Price.IsNegative() {
				missing = append(missing, fmt.Sprintf("lines[%d].price", i))
			}
		}
	case StepAssessment:
		// Sin campos obligatorios: la evaluación puede ir vacía.
	}
	return missing
}

// MissingAll validación de todos los pasos antes del envío.
func (d *Draft) MissingAll() []string {
	var missing []string
	for step := StepIdentification; step <= StepAssessment; step++ {
		missing = append(missing, d.MissingForStep(step)...)
	}
	return missing
}

// AddLine agrega una línea con los defaults documentados al final de la lista.
func (d *Draft) AddLine() {
	d.Lines = append(d.Lines, defaultLine())
}

// RemoveLine elimina exactamente el índice i conservando el orden relativo del
// resto. Quitar la última línea está permitido; el paso 2 no valida con cero líneas.
func (d *Draft) RemoveLine(i int) error {
	if i < 0 || i >= len(d.Lines) {
		return domain.ErrInvalidInput
	}
	d.Lines = append(d.Lines[:i], d.Lines[i+1:]...)
	return nil
}

// UpdateLine aplica una actualización parcial a la línea i. Cambiar el modo a
// New Unit resetea el precio de esa línea al default, sin importar su valor previo.
func (d *Draft) UpdateLine(i int, in dto.UpdateLineRequest) error {
	if i < 0 || i >= len(d.Lines) {
		return domain.ErrInvalidInput
	}
	l := &d.Lines[i]
	if in.Mode != nil {
		if !isValidMode(*in.Mode) {
			return domain.ErrInvalidInput
		}
		changed := l.Mode != *in.Mode
		l.Mode = *in.Mode
		if changed && l.Mode == entity.TaskModeNewUnit {
			l.Price = DefaultUnitPrice
		}
	}
	if in.Type != nil {
		l.Type = *in.Type
	}
	if in.Capacity != nil {
		l.Capacity = *in.Capacity
	}
	if in.Quantity != nil {
		l.Quantity = *in.Quantity
	}
	if in.Brand != nil {
		l.Brand = *in.Brand
	}
	if in.Seller != nil {
		l.Seller = *in.Seller
	}
	if in.Partner != nil {
		l.Partner = *in.Partner
	}
	if in.RefillStatus != nil {
		l.RefillStatus = *in.RefillStatus
	}
	if in.Price != nil {
		l.Price = *in.Price
	}
	if in.ExpiryDate != nil {
		l.ExpiryDate = *in.ExpiryDate
	}
	if in.Condition != nil {
		l.Condition = *in.Condition
	}
	return nil
}

// SetIdentification reemplaza el estado del paso 1.
func (d *Draft) SetIdentification(id Identification) {
	if id.BusinessType == "" {
		id.BusinessType = defaultBusinessType
	}
	d.Identification = id
}

// SetAssessment reemplaza el estado del paso 3.
func (d *Draft) SetAssessment(a Assessment) {
	d.Assessment = a
}

// TaskTypes modos distintos presentes en las líneas, en orden de primera
// aparición, unidos por coma. Se persiste como resumen en la visita.
func (d *Draft) TaskTypes() string {
	seen := make(map[string]bool, len(d.Lines))
	out := ""
	for _, l := range d.Lines {
		if seen[l.Mode] {
			continue
		}
		seen[l.Mode] = true
		if out != "" {
			out += ", "
		}
		out += l.Mode
	}
	return out
}

// Normalized devuelve la línea con los campos que no aplican a su modo en
// cero: el modo actúa como discriminante y las combinaciones inválidas no
// llegan a persistirse.
func (l Line) Normalized() Line {
	out := l
	switch l.Mode {
	case entity.TaskModeValidation:
		out.Brand, out.Seller, out.Partner, out.RefillStatus = "", "", "", ""
	case entity.TaskModeRefill:
		out.Seller = ""
		out.ExpiryDate, out.Condition = "", ""
	case entity.TaskModeNewUnit:
		out.Partner, out.RefillStatus = "", ""
		out.ExpiryDate, out.Condition = "", ""
	}
	return out
}

// ToEntity materializa la línea como fila de extintor de la visita.
func (l Line) ToEntity(id, customerID, visitID string, now time.Time) *entity.Extinguisher {
	n := l.Normalized()
	var expiry *time.Time
	if n.ExpiryDate != "" {
		if t, err := time.Parse("2006-01-02", n.ExpiryDate); err == nil {
			expiry = &t
		}
	}
	return &entity.Extinguisher{
		ID:           id,
		CustomerID:   customerID,
		VisitID:      visitID,
		Type:         n.Type,
		Capacity:     n.Capacity,
		Quantity:     n.Quantity,
		ExpiryDate:   expiry,
		Condition:    n.Condition,
		Status:       entity.StatusForMode(n.Mode),
		Brand:        n.Brand,
		Seller:       n.Seller,
		Partner:      n.Partner,
		RefillStatus: n.RefillStatus,
		Price:        n.Price,
		CreatedAt:    now,
	}
}

func isValidMode(mode string) bool {
	return mode == entity.TaskModeValidation ||
		mode == entity.TaskModeRefill ||
		mode == entity.TaskModeNewUnit
}
