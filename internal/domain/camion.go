package domain

// Camion represents a truck assigned to repartos. It can only be hard
// deleted while no reparto references it.
type Camion struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}
