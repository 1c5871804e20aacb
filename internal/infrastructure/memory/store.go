// Package memory implementa los puertos de persistencia en memoria.
// Se usa con STORAGE_DRIVER=memory (desarrollo/demo) y en los tests de casos de uso y HTTP.
//
// Las transacciones se serializan con un mutex global: cada Run trabaja sobre una copia del
// estado que se publica al terminar sin error y se descarta si fn falla.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Inventario-ventas/internal/application/inventory"
	"github.com/jhoicas/Inventario-ventas/internal/application/sales"
	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/Inventario-ventas/internal/domain/repository"
)

var (
	_ inventory.TxRunner = (*Store)(nil)
	_ sales.SaleTxRunner = (*Store)(nil)
)

type state struct {
	sellers      map[string]entity.Seller
	users        map[string]entity.User
	products     map[string]entity.Product
	productOrder []string
	stockTxs     []entity.StockTransaction
	customers    map[string]entity.Customer
	customerIDs  []string
	sales        map[string]entity.Sale
	saleOrder    []string
	saleItems    map[string][]entity.SaleItem
}

func newState() *state {
	return &state{
		sellers:   make(map[string]entity.Seller),
		users:     make(map[string]entity.User),
		products:  make(map[string]entity.Product),
		customers: make(map[string]entity.Customer),
		sales:     make(map[string]entity.Sale),
		saleItems: make(map[string][]entity.SaleItem),
	}
}

func (s *state) clone() *state {
	c := &state{
		sellers:      make(map[string]entity.Seller, len(s.sellers)),
		users:        make(map[string]entity.User, len(s.users)),
		products:     make(map[string]entity.Product, len(s.products)),
		productOrder: append([]string(nil), s.productOrder...),
		stockTxs:     append([]entity.StockTransaction(nil), s.stockTxs...),
		customers:    make(map[string]entity.Customer, len(s.customers)),
		customerIDs:  append([]string(nil), s.customerIDs...),
		sales:        make(map[string]entity.Sale, len(s.sales)),
		saleOrder:    append([]string(nil), s.saleOrder...),
		saleItems:    make(map[string][]entity.SaleItem, len(s.saleItems)),
	}
	for k, v := range s.sellers {
		c.sellers[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.sales {
		c.sales[k] = v
	}
	for k, v := range s.saleItems {
		c.saleItems[k] = append([]entity.SaleItem(nil), v...)
	}
	return c
}

// access abstrae si el repo opera sobre el estado publicado (con lock) o sobre la copia de una tx.
type access interface {
	read(fn func(st *state) error) error
	write(fn func(st *state) error) error
}

// Store raíz del almacenamiento en memoria.
type Store struct {
	mu sync.RWMutex
	st *state
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

func (s *Store) read(fn func(st *state) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.st)
}

func (s *Store) write(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.st.clone()
	if err := fn(work); err != nil {
		return err
	}
	s.st = work
	return nil
}

// txAccess opera sobre la copia de la transacción en curso; el lock lo tiene Store.begin.
type txAccess struct {
	st *state
}

func (t txAccess) read(fn func(st *state) error) error  { return fn(t.st) }
func (t txAccess) write(fn func(st *state) error) error { return fn(t.st) }

// begin toma el lock exclusivo, ejecuta fn sobre una copia y la publica si no hubo error.
func (s *Store) begin(ctx context.Context, fn func(a access) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.st.clone()
	if err := fn(txAccess{st: work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = work
	return nil
}

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	txRepo repository.StockTransactionRepository,
) error) error {
	return s.begin(ctx, func(a access) error {
		return fn(&ProductRepo{a: a}, &StockTransactionRepo{a: a})
	})
}

// RunSale implementa sales.SaleTxRunner.
func (s *Store) RunSale(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	txRepo repository.StockTransactionRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return s.begin(ctx, func(a access) error {
		return fn(&ProductRepo{a: a}, &StockTransactionRepo{a: a}, &CustomerRepo{a: a}, &SaleRepo{a: a})
	})
}

// ── Repos fuera de transacción ───────────────────────────────────────────────

// Products repo de productos sobre el estado publicado.
func (s *Store) Products() *ProductRepo { return &ProductRepo{a: s} }

// StockTransactions repo del ledger sobre el estado publicado.
func (s *Store) StockTransactions() *StockTransactionRepo { return &StockTransactionRepo{a: s} }

// Customers repo de clientes sobre el estado publicado.
func (s *Store) Customers() *CustomerRepo { return &CustomerRepo{a: s} }

// Sales repo de ventas sobre el estado publicado.
func (s *Store) Sales() *SaleRepo { return &SaleRepo{a: s} }

// Users repo de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{a: s} }

// Sellers repo de vendedores.
func (s *Store) Sellers() *SellerRepo { return &SellerRepo{a: s} }

// Reports repo de reportes.
func (s *Store) Reports() *ReportRepo { return &ReportRepo{a: s} }
