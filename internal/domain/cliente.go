// Package domain defines the core business entities.
package domain

// Cliente estados. Deleting a cliente never removes the row; it flips the
// estado to EstadoInactivo.
const (
	EstadoActivo   = "Activo"
	EstadoInactivo = "Inactivo"
)

// Cliente represents a customer with billing and geolocation data.
// CodigoAlte and Rut are optional alternate keys; when present they must be
// unique across all clientes (checked at the application layer before
// insert/update).
type Cliente struct {
	ID          int64    `json:"id"`
	CodigoAlte  *string  `json:"codigoalte"`
	RazonSocial string   `json:"razonsocial"`
	Nombre      string   `json:"nombre"`
	Direccion   string   `json:"direccion"`
	Telefono    *string  `json:"telefono"`
	Rut         *string  `json:"rut"`
	Estado      string   `json:"estado"`
	Longitud    *float64 `json:"longitud"`
	Latitud     *float64 `json:"latitud"`
}

// Activo reports whether the cliente is in the active state.
func (c *Cliente) Activo() bool {
	return c.Estado == EstadoActivo
}
