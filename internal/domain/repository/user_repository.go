package repository

import "github.com/jhoicas/inventory-app/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	// UpdatePasswordByEmail actualiza solo el hash de contraseña y devuelve
	// cuántas filas se afectaron (0 si la cuenta desapareció entre el
	// request y el verify del reset).
	UpdatePasswordByEmail(email, passwordHash string) (int64, error)
	// ListWithProductCount lista todos los usuarios con el conteo de
	// productos que poseen, más recientes primero.
	ListWithProductCount() ([]*entity.UserWithProductCount, error)
	Delete(id string) error
}
