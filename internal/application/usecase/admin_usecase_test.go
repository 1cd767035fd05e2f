package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-app/internal/application/usecase"
	"github.com/jhoicas/inventory-app/internal/domain"
	"github.com/jhoicas/inventory-app/internal/domain/entity"
)

// fakeUserRepo repositorio en memoria para los tests de administración.
type fakeUserRepo struct {
	users  []*entity.User
	counts map[string]int
}

func (r *fakeUserRepo) Create(user *entity.User) error {
	cp := *user
	r.users = append(r.users, &cp)
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdatePasswordByEmail(email, hash string) (int64, error) {
	return 0, nil
}

func (r *fakeUserRepo) ListWithProductCount() ([]*entity.UserWithProductCount, error) {
	out := make([]*entity.UserWithProductCount, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, &entity.UserWithProductCount{User: *u, ProductCount: r.counts[u.ID]})
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(id string) error {
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return nil
}

func TestAdmin_ListUsersIncluyeConteo(t *testing.T) {
	repo := &fakeUserRepo{counts: map[string]int{"u1": 3}}
	repo.users = []*entity.User{
		{ID: "u1", Name: "Ana", Email: "ana@example.com", Role: entity.RoleUser},
		{ID: "u2", Name: "Root", Email: "root@example.com", Role: entity.RoleAdmin},
		{ID: "u3", Name: "Legacy", Email: "legacy@example.com", Role: "superuser"},
	}
	uc := usecase.NewAdminUseCase(repo)

	out, err := uc.ListUsers()
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, 3, out[0].ProductCount)
	assert.Equal(t, entity.RoleAdmin, out[1].Role)
	assert.Equal(t, entity.RoleUser, out[2].Role, "roles desconocidos se normalizan a user")
}

func TestAdmin_DeleteUser(t *testing.T) {
	repo := &fakeUserRepo{counts: map[string]int{}}
	repo.users = []*entity.User{
		{ID: "u1", Name: "Ana", Email: "ana@example.com", Role: entity.RoleUser},
		{ID: "u2", Name: "Root", Email: "root@example.com", Role: entity.RoleAdmin},
	}
	uc := usecase.NewAdminUseCase(repo)

	require.NoError(t, uc.DeleteUser("u1"))
	assert.Len(t, repo.users, 1)

	err := uc.DeleteUser("u1")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	err = uc.DeleteUser("u2")
	assert.ErrorIs(t, err, domain.ErrForbidden, "las cuentas admin no se pueden eliminar")
	assert.Len(t, repo.users, 1)
}
