package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Inventario-ventas/internal/application/dto"
	"github.com/jhoicas/Inventario-ventas/internal/domain"
	"github.com/jhoicas/Inventario-ventas/internal/domain/access"
	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/Inventario-ventas/internal/domain/repository"
	"github.com/jhoicas/Inventario-ventas/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: alta de vendedor y login.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	sellerRepo repository.SellerRepository
	jwtCfg     JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, sellerRepo repository.SellerRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, sellerRepo: sellerRepo, jwtCfg: jwtCfg}
}

// RegisterSellerInput datos para dar de alta un vendedor y su usuario OWNER.
type RegisterSellerInput struct {
	SellerName string
	Tier       string
	Email      string
	Password   string
	OwnerName  string
}

// RegisterSeller crea el vendedor y su usuario OWNER (password hasheado con bcrypt).
func (uc *AuthUseCase) RegisterSeller(ctx context.Context, in RegisterSellerInput) (*entity.Seller, *entity.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.SellerName == "" || in.Email == "" || len(in.Password) < 8 {
		return nil, nil, domain.Invalid("nombre, email y password (mínimo 8) son obligatorios")
	}
	if in.Tier == "" {
		in.Tier = entity.TierFree
	}
	if !access.ValidTier(in.Tier) {
		return nil, nil, domain.Invalid("plan desconocido: %q", in.Tier)
	}
	existing, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	seller := &entity.Seller{
		ID:        uuid.New().String(),
		Name:      in.SellerName,
		Tier:      in.Tier,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.sellerRepo.Create(ctx, seller); err != nil {
		return nil, nil, err
	}
	name := in.OwnerName
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		SellerID:     seller.ID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         entity.RoleOwner,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}
	return seller, user, nil
}

// Login verifica email/password, genera JWT con rol y plan, y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	seller, err := uc.sellerRepo.GetByID(ctx, user.SellerID)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, jwt.Identity{
		UserID:   user.ID,
		SellerID: user.SellerID,
		Role:     user.Role,
		Tier:     seller.Tier,
	})
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			ID:       user.ID,
			SellerID: user.SellerID,
			Email:    user.Email,
			Name:     user.Name,
			Role:     user.Role,
			Tier:     seller.Tier,
		},
	}, nil
}
