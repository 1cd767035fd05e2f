package dto

import "time"

// AdminUserResponse usuario en el listado de administración, con el número
// de productos que posee.
type AdminUserResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	ProductCount int       `json:"productCount"`
}

// DeleteUserResponse confirmación del borrado de un usuario.
type DeleteUserResponse struct {
	Message   string `json:"message"`
	DeletedID string `json:"deletedId"`
}
