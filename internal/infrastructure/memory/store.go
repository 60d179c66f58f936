// Package memory implementa todos los puertos de persistencia en memoria, con transacciones
// por snapshot: si la función de Run falla, el estado vuelve exactamente al anterior.
// Se usa en tests y en desarrollo sin base de datos.
package memory

import (
	"context"
	"sync"

	"github.com/LuizZonetti1/cafeterias-api/internal/application/inventory"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
)

var _ inventory.TxRunner = (*Store)(nil)

// Store almacén en memoria seguro para uso concurrente.
type Store struct {
	mu   sync.Mutex // protege los mapas
	txMu sync.Mutex // serializa transacciones y las escrituras que un rollback restauraría

	restaurants   map[string]entity.Restaurant
	users         map[string]entity.User
	warehouses    map[string]entity.Warehouse
	categories    map[string]entity.Category
	ingredients   map[string]entity.Ingredient // Stock se adjunta al leer
	stocks        map[string]entity.Stock      // por ID de stock
	movements     []entity.StockMovement
	products      map[string]entity.Product
	orders        map[string]entity.Order
	notifications map[string]entity.Notification
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		restaurants:   map[string]entity.Restaurant{},
		users:         map[string]entity.User{},
		warehouses:    map[string]entity.Warehouse{},
		categories:    map[string]entity.Category{},
		ingredients:   map[string]entity.Ingredient{},
		stocks:        map[string]entity.Stock{},
		products:      map[string]entity.Product{},
		orders:        map[string]entity.Order{},
		notifications: map[string]entity.Notification{},
	}
}

// Repositorios sobre el almacén.
func (s *Store) Restaurants() *RestaurantRepo     { return &RestaurantRepo{s: s} }
func (s *Store) Users() *UserRepo                 { return &UserRepo{s: s} }
func (s *Store) Warehouses() *WarehouseRepo       { return &WarehouseRepo{s: s} }
func (s *Store) Categories() *CategoryRepo        { return &CategoryRepo{s: s} }
func (s *Store) Ingredients() *IngredientRepo     { return &IngredientRepo{s: s} }
func (s *Store) Stocks() *StockRepo               { return &StockRepo{s: s} }
func (s *Store) Movements() *MovementRepo         { return &MovementRepo{s: s} }
func (s *Store) Products() *ProductRepo           { return &ProductRepo{s: s} }
func (s *Store) Orders() *OrderRepo               { return &OrderRepo{s: s} }
func (s *Store) Notifications() *NotificationRepo { return &NotificationRepo{s: s} }

// Run ejecuta fn con repositorios del almacén. Si fn devuelve error se restaura el snapshot
// tomado al inicio. Las escrituras fuera de Run sobre los mapas del snapshot esperan a que
// termine la transacción, así un rollback nunca pisa cambios ajenos.
func (s *Store) Run(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	err := fn(inventory.TxRepos{
		Stocks:      &StockRepo{s: s, tx: true},
		Movements:   &MovementRepo{s: s, tx: true},
		Ingredients: &IngredientRepo{s: s, tx: true},
		Orders:      &OrderRepo{s: s, tx: true},
	})
	if err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// lockWrite toma los candados de una escritura. Fuera de una transacción también toma txMu.
func (s *Store) lockWrite(tx bool) (unlock func()) {
	if tx {
		s.mu.Lock()
		return s.mu.Unlock
	}
	s.txMu.Lock()
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		s.txMu.Unlock()
	}
}

type snapshot struct {
	ingredients   map[string]entity.Ingredient
	stocks        map[string]entity.Stock
	movements     []entity.StockMovement
	orders        map[string]entity.Order
	notifications map[string]entity.Notification
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		ingredients:   cloneMap(s.ingredients),
		stocks:        cloneMap(s.stocks),
		movements:     append([]entity.StockMovement(nil), s.movements...),
		orders:        cloneMap(s.orders),
		notifications: cloneMap(s.notifications),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ingredients = snap.ingredients
	s.stocks = snap.stocks
	s.movements = snap.movements
	s.orders = snap.orders
	s.notifications = snap.notifications
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ── Accesos directos para tests ──────────────────────────────────────────────

// AllMovements copia de todos los movimientos en orden de inserción.
func (s *Store) AllMovements() []entity.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.StockMovement(nil), s.movements...)
}

// StockOf stock actual del ingrediente (nil si no tiene).
func (s *Store) StockOf(ingredientID string) *entity.Stock {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stockByIngredientLocked(ingredientID)
}

// NotificationCount cantidad total de notificaciones.
func (s *Store) NotificationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notifications)
}

func (s *Store) stockByIngredientLocked(ingredientID string) *entity.Stock {
	for _, st := range s.stocks {
		if st.IngredientID == ingredientID {
			cp := st
			return &cp
		}
	}
	return nil
}

// ingredientLocked devuelve una copia del ingrediente con su stock adjunto.
func (s *Store) ingredientLocked(id string) *entity.Ingredient {
	ing, ok := s.ingredients[id]
	if !ok || ing.DeletedAt != nil {
		return nil
	}
	ing.Stock = s.stockByIngredientLocked(id)
	return &ing
}
