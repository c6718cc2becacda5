package domain

// Reparto is a dispatch run linking a camion and a ruta. Clientes are
// related only through the reparto_cliente join table; list and get reads
// denormalize the camion and ruta names into CamionNombre / RutaNombre.
type Reparto struct {
	ID       int64 `json:"id"`
	CamionID int64 `json:"camion_id"`
	RutaID   int64 `json:"ruta_id"`

	// Denormalized display fields populated by join reads; empty on writes.
	CamionNombre *string `json:"camion_nombre,omitempty"`
	RutaNombre   *string `json:"ruta_nombre,omitempty"`
}
