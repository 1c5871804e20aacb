package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Inventario-ventas/internal/domain"
	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/Inventario-ventas/internal/domain/repository"
)

var (
	_ repository.UserRepository   = (*UserRepo)(nil)
	_ repository.SellerRepository = (*SellerRepo)(nil)
)

// UserRepo usuarios en memoria. El email es único sin distinguir mayúsculas.
type UserRepo struct {
	a access
}

// Create persiste un usuario.
func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.a.write(func(st *state) error {
		for _, existing := range st.users {
			if existing.ID == u.ID || strings.EqualFold(existing.Email, u.Email) {
				return domain.ErrDuplicate
			}
		}
		st.users[u.ID] = *u
		return nil
	})
}

// GetByID obtiene un usuario; (nil, nil) si no existe.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.a.read(func(st *state) error {
		if u, ok := st.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

// FindByEmail busca por email; (nil, nil) si no existe.
func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.a.read(func(st *state) error {
		for _, u := range st.users {
			if strings.EqualFold(u.Email, email) {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

// ListBySeller usuarios del vendedor ordenados por alta (email como desempate).
func (r *UserRepo) ListBySeller(_ context.Context, sellerID string) ([]*entity.User, error) {
	out := make([]*entity.User, 0)
	err := r.a.read(func(st *state) error {
		for _, u := range st.users {
			if u.SellerID == sellerID {
				u := u
				out = append(out, &u)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Email < out[j].Email
	})
	return out, err
}

// UpdateStatus cambia el estado del usuario.
func (r *UserRepo) UpdateStatus(_ context.Context, id, status string, updatedAt time.Time) error {
	return r.a.write(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return domain.ErrNotFound
		}
		u.Status = status
		u.UpdatedAt = updatedAt
		st.users[id] = u
		return nil
	})
}

// SellerRepo vendedores en memoria.
type SellerRepo struct {
	a access
}

// Create persiste un vendedor.
func (r *SellerRepo) Create(_ context.Context, s *entity.Seller) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.sellers[s.ID]; ok {
			return domain.ErrDuplicate
		}
		st.sellers[s.ID] = *s
		return nil
	})
}

// GetByID obtiene un vendedor; (nil, nil) si no existe.
func (r *SellerRepo) GetByID(_ context.Context, id string) (*entity.Seller, error) {
	var out *entity.Seller
	err := r.a.read(func(st *state) error {
		if s, ok := st.sellers[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

// Update reemplaza nombre y plan del vendedor.
func (r *SellerRepo) Update(_ context.Context, s *entity.Seller) error {
	return r.a.write(func(st *state) error {
		cur, ok := st.sellers[s.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Name = s.Name
		cur.Tier = s.Tier
		cur.UpdatedAt = s.UpdatedAt
		st.sellers[s.ID] = cur
		return nil
	})
}
