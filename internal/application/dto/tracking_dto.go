package dto

// PositionUpdateRequest reporte de posición de un agente o cliente.
type PositionUpdateRequest struct {
	Lat float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lng float64 `json:"lng" validate:"required,min=-180,max=180"`
}

// PositionUpdateResponse resultado del reporte. Un update dentro de la
// ventana de throttle se acepta y descarta (Stored=false), nunca es error.
type PositionUpdateResponse struct {
	Stored bool `json:"stored"`
}
