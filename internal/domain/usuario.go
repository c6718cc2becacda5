package domain

import "time"

// Usuario represents an authenticated account. Username and Email are
// unique; the password is stored only as a bcrypt hash and is never
// serialized on any read path.
type Usuario struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	NombreCompleto string    `json:"nombre_completo"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}
