package entity

import "time"

// Roles válidos para User.
// admin y editor registran remesas directamente; submitter solo crea solicitudes
// que un admin/editor debe aprobar.
const (
	RoleAdmin     = "admin"
	RoleEditor    = "editor"
	RoleSubmitter = "submitter"
)

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, editor, submitter
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
