package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Inventario-ventas/internal/application/dto"
	"github.com/jhoicas/Inventario-ventas/internal/domain"
	"github.com/jhoicas/Inventario-ventas/internal/domain/access"
	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/Inventario-ventas/internal/domain/repository"
)

// SellerUseCase perfil del vendedor autenticado.
type SellerUseCase struct {
	repo repository.SellerRepository
	now  func() time.Time
}

// NewSellerUseCase construye el caso de uso con el puerto de persistencia.
func NewSellerUseCase(repo repository.SellerRepository) *SellerUseCase {
	return &SellerUseCase{repo: repo, now: time.Now}
}

// Get devuelve el perfil con las funcionalidades de su plan.
func (uc *SellerUseCase) Get(ctx context.Context, sellerID string) (*dto.SellerResponse, error) {
	s, err := uc.repo.GetByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return toSellerResponse(s), nil
}

// Rename cambia el nombre de la tienda. El plan no se modifica desde aquí.
func (uc *SellerUseCase) Rename(ctx context.Context, sellerID string, in dto.UpdateSellerRequest) (*dto.SellerResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name es obligatorio")
	}
	s, err := uc.repo.GetByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	s.Name = name
	s.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return toSellerResponse(s), nil
}

func toSellerResponse(s *entity.Seller) *dto.SellerResponse {
	return &dto.SellerResponse{
		ID:        s.ID,
		Name:      s.Name,
		Tier:      s.Tier,
		Features:  access.TierFeatures(s.Tier),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
