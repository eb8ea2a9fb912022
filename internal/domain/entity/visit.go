package entity

import "time"

// VisitStatusCompleted estado con el que se persiste cada visita; el flujo de
// registro no contempla visitas en borrador ni edición posterior.
const VisitStatusCompleted = "Completed"

// Visit una visita de agente a un sitio. Inmutable después de creada: el
// flujo no define ruta de edición.
type Visit struct {
	ID                     string
	AgentID                string
	CustomerID             string
	CustomerName           string // snapshot del nombre al momento de la visita
	BusinessType           string
	Notes                  string
	RiskAssessment         string
	ServiceRecommendations string
	FollowUpDate           *time.Time
	Status                 string
	TaskTypes              string // modos distintos de las líneas, unidos por coma
	PhotoKey               string // clave en el media store; vacío si no se adjuntó
	VoiceNoteKey           string
	CreatedAt              time.Time
}
