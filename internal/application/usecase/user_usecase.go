package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Inventario-ventas/internal/application/dto"
	"github.com/jhoicas/Inventario-ventas/internal/domain"
	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/Inventario-ventas/internal/domain/repository"
)

// UserUseCase administra el equipo de un vendedor (usuarios OPERATIONS y SUPPORT).
type UserUseCase struct {
	repo repository.UserRepository
	now  func() time.Time
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo, now: time.Now}
}

// CreateStaff da de alta un usuario del equipo. El email es único en todo el sistema.
func (uc *UserUseCase) CreateStaff(ctx context.Context, sellerID string, in dto.CreateUserRequest) (*dto.StaffUserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 8 {
		return nil, domain.Invalid("email y password (mínimo 8) son obligatorios")
	}
	if in.Role != entity.RoleOperations && in.Role != entity.RoleSupport {
		return nil, domain.Invalid("rol no asignable: %q", in.Role)
	}
	existing, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		SellerID:     sellerID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		Role:         in.Role,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toStaffUserResponse(user), nil
}

// List lista los usuarios del vendedor.
func (uc *UserUseCase) List(ctx context.Context, sellerID string) (*dto.UserListResponse, error) {
	users, err := uc.repo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	out := &dto.UserListResponse{Items: make([]dto.StaffUserResponse, 0, len(users))}
	for _, u := range users {
		out.Items = append(out.Items, *toStaffUserResponse(u))
	}
	return out, nil
}

// SetStatus activa o desactiva un usuario del equipo. El OWNER y el propio actor no se pueden desactivar.
// Un usuario de otro vendedor es ErrNotFound.
func (uc *UserUseCase) SetStatus(ctx context.Context, sellerID, actorID, userID, status string) (*dto.StaffUserResponse, error) {
	if status != entity.UserStatusActive && status != entity.UserStatusInactive {
		return nil, domain.Invalid("estado desconocido: %q", status)
	}
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.SellerID != sellerID {
		return nil, domain.ErrNotFound
	}
	if user.Role == entity.RoleOwner || user.ID == actorID {
		return nil, domain.Invalid("no se puede cambiar el estado de este usuario")
	}
	now := uc.now().UTC()
	if err := uc.repo.UpdateStatus(ctx, user.ID, status, now); err != nil {
		return nil, err
	}
	user.Status = status
	user.UpdatedAt = now
	return toStaffUserResponse(user), nil
}

func toStaffUserResponse(u *entity.User) *dto.StaffUserResponse {
	return &dto.StaffUserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}
