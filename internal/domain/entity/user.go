package entity

import "time"

// Role rol de un usuario del sistema.
type Role string

// Roles válidos para User.
const (
	RoleAdmin Role = "admin" // configuración y operaciones destructivas
	RoleUser  Role = "user"
)

// ParseRole normaliza s; cualquier valor distinto de "admin" es RoleUser.
func ParseRole(s string) Role {
	if Role(s) == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// User representa un usuario del sistema.
type User struct {
	ID           int64
	Username     string
	PasswordHash string // bcrypt
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor identidad autenticada que ejecuta una operación.
type Actor struct {
	ID       int64
	Username string
	Role     Role
}

// Can indica si el actor tiene el rol requerido. Admin cumple cualquier rol.
func (a Actor) Can(required Role) bool {
	if a.Role == RoleAdmin {
		return true
	}
	return a.Role == required
}

// ActorOf vista de actor de u.
func ActorOf(u *User) Actor {
	return Actor{ID: u.ID, Username: u.Username, Role: u.Role}
}
