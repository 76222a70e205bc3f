package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleCortador  = "cortador"
	RoleEmpacador = "empacador"
)

// User representa un usuario del sistema de producción.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, cortador, empacador
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
