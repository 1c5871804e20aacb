package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ventas/internal/application/dto"
	"github.com/jhoicas/Inventario-ventas/internal/application/usecase"
	"github.com/jhoicas/Inventario-ventas/internal/domain"
	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/Inventario-ventas/internal/infrastructure/memory"
)

func TestUserCreateStaff_EmailDuplicado(t *testing.T) {
	uc := usecase.NewUserUseCase(memory.NewStore().Users())
	ctx := context.Background()
	in := dto.CreateUserRequest{Email: "caja@tienda.com", Password: "password123", Name: "Caja", Role: entity.RoleSupport}

	u, err := uc.CreateStaff(ctx, "s1", in)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSupport, u.Role)

	in.Email = "CAJA@tienda.com"
	_, err = uc.CreateStaff(ctx, "s2", in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUserCreateStaff_RolNoAsignable(t *testing.T) {
	uc := usecase.NewUserUseCase(memory.NewStore().Users())
	for _, role := range []string{entity.RoleOwner, entity.RoleAdmin, "CAJERO"} {
		_, err := uc.CreateStaff(context.Background(), "s1", dto.CreateUserRequest{
			Email: "x@tienda.com", Password: "password123", Name: "X", Role: role,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, role)
	}
}

func TestUserSetStatus_Restricciones(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewUserUseCase(store.Users())
	ctx := context.Background()
	require.NoError(t, store.Users().Create(ctx, &entity.User{
		ID: "owner", SellerID: "s1", Email: "dueno@tienda.com", Role: entity.RoleOwner, Status: entity.UserStatusActive,
	}))
	staff, err := uc.CreateStaff(ctx, "s1", dto.CreateUserRequest{
		Email: "ops@tienda.com", Password: "password123", Name: "Ops", Role: entity.RoleOperations,
	})
	require.NoError(t, err)

	_, err = uc.SetStatus(ctx, "s1", staff.ID, "owner", entity.UserStatusInactive)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el OWNER no se desactiva")

	_, err = uc.SetStatus(ctx, "s1", staff.ID, staff.ID, entity.UserStatusInactive)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nadie se desactiva a sí mismo")

	_, err = uc.SetStatus(ctx, "s2", "owner", staff.ID, entity.UserStatusInactive)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	out, err := uc.SetStatus(ctx, "s1", "owner", staff.ID, entity.UserStatusInactive)
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusInactive, out.Status)

	got, err := store.Users().GetByID(ctx, staff.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusInactive, got.Status)
}
