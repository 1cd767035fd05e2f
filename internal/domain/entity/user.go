package entity

import "time"

// Roles válidos para User.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// NormalizeRole mapea cualquier rol nulo o desconocido almacenado a "user".
// Solo "admin" conserva privilegios elevados.
func NormalizeRole(role string) string {
	if role == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// User representa una cuenta del sistema. El email se guarda normalizado
// (trim + minúsculas) y es único globalmente. Para cuentas federadas de
// Google, PasswordHash es un valor sintético inutilizable para login.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // hash bcrypt, nunca plano después de persistir
	Role         string // user | admin
	IsVerified   bool
	GoogleID     string // subject del ID token de Google, vacío para cuentas locales
	Avatar       string
	CreatedAt    time.Time
}

// UserWithProductCount usuario más el número de productos que posee
// (para el listado de administración).
type UserWithProductCount struct {
	User
	ProductCount int
}
