package entity

import "time"

// Estados de User.
const (
	UserActive   = "active"
	UserInactive = "inactive"
)

// User usuario de la API de facturación. TenantID identifica al emisor (mandante)
// en cuyo nombre genera y archiva facturas.
type User struct {
	ID           string
	TenantID     string
	Email        string
	PasswordHash string // bcrypt; nunca en claro
	Name         string
	Role         string // admin, buchhaltung, viewer
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Active true si el usuario puede iniciar sesión.
func (u *User) Active() bool {
	return u != nil && u.Status == UserActive
}
