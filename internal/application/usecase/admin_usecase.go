package usecase

import (
	"github.com/jhoicas/inventory-app/internal/application/dto"
	"github.com/jhoicas/inventory-app/internal/domain"
	"github.com/jhoicas/inventory-app/internal/domain/entity"
	"github.com/jhoicas/inventory-app/internal/domain/repository"
)

// AdminUseCase gestión de usuarios para el rol admin.
type AdminUseCase struct {
	users repository.UserRepository
}

// NewAdminUseCase construye el caso de uso.
func NewAdminUseCase(users repository.UserRepository) *AdminUseCase {
	return &AdminUseCase{users: users}
}

// ListUsers devuelve todos los usuarios con su conteo de productos,
// más recientes primero.
func (uc *AdminUseCase) ListUsers() ([]dto.AdminUserResponse, error) {
	list, err := uc.users.ListWithProductCount()
	if err != nil {
		return nil, err
	}
	items := make([]dto.AdminUserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, dto.AdminUserResponse{
			ID:           u.ID,
			Name:         u.Name,
			Email:        u.Email,
			Role:         entity.NormalizeRole(u.Role),
			CreatedAt:    u.CreatedAt,
			ProductCount: u.ProductCount,
		})
	}
	return items, nil
}

// DeleteUser borra un usuario que no sea admin. Las cuentas admin nunca se
// borran desde la aplicación.
func (uc *AdminUseCase) DeleteUser(id string) error {
	user, err := uc.users.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if entity.NormalizeRole(user.Role) == entity.RoleAdmin {
		return domain.ErrForbidden
	}
	return uc.users.Delete(id)
}
