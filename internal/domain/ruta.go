package domain

// Ruta is a named delivery route referenced by repartos.
type Ruta struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}
