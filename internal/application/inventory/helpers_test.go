package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/LuizZonetti1/cafeterias-api/internal/application/dto"
	"github.com/LuizZonetti1/cafeterias-api/internal/application/inventory"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
	"github.com/LuizZonetti1/cafeterias-api/internal/infrastructure/memory"
)

const (
	restID = "rest-1"
	userID = "user-1"
	whID   = "wh-1"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

// seedIngredient crea un ingrediente con stock (current, min) y devuelve su ID.
func seedIngredient(t *testing.T, s *memory.Store, id, name, current, minimum string) string {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.Ingredients().Create(ctx, &entity.Ingredient{
		ID: id, RestaurantID: restID, WarehouseID: whID, Name: name, Unit: entity.UnitGrams,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))
	require.NoError(t, s.Stocks().Create(ctx, &entity.Stock{
		ID: "st-" + id, IngredientID: id,
		QuantityCurrent: d(current), QuantityMinimum: d(minimum), AverageCost: decimal.Zero,
	}))
	return id
}

// seedProduct crea un producto con receta ingredientID -> cantidad por unidad.
func seedProduct(t *testing.T, s *memory.Store, id, name string, recipe map[string]string) string {
	t.Helper()
	p := &entity.Product{ID: id, RestaurantID: restID, Name: name, Price: d("10")}
	for ingID, qty := range recipe {
		p.Recipe = append(p.Recipe, entity.RecipeItem{
			ID: id + "-" + ingID, ProductID: id, IngredientID: ingID, Quantity: d(qty), Unit: entity.UnitGrams,
		})
	}
	require.NoError(t, s.Products().Create(context.Background(), p))
	return id
}

// recordingNotifier guarda las alertas recibidas.
type recordingNotifier struct {
	mu     sync.Mutex
	alerts []inventory.LowStockAlert
}

func (n *recordingNotifier) NotifyLowStock(_ context.Context, a inventory.LowStockAlert) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, a)
}

func (n *recordingNotifier) Alerts() []inventory.LowStockAlert {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]inventory.LowStockAlert(nil), n.alerts...)
}

// recordingMetrics cuenta llamadas por motivo.
type recordingMetrics struct {
	committed int
	rejected  map[string]int
	raised    map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{rejected: map[string]int{}, raised: map[string]int{}}
}

func (m *recordingMetrics) ConsumptionCommitted(string, int)            { m.committed++ }
func (m *recordingMetrics) ConsumptionRejected(_ string, reason string) { m.rejected[reason]++ }
func (m *recordingMetrics) LowStockRaised(level string)                 { m.raised[level]++ }

// mapCache caché en memoria que cuenta invalidaciones.
type mapCache struct {
	entries     map[string]*dto.StockOverviewResponse
	invalidated int
}

func newMapCache() *mapCache { return &mapCache{entries: map[string]*dto.StockOverviewResponse{}} }

func (c *mapCache) GetOverview(_ context.Context, id string) (*dto.StockOverviewResponse, error) {
	return c.entries[id], nil
}

func (c *mapCache) SetOverview(_ context.Context, id string, v *dto.StockOverviewResponse) error {
	c.entries[id] = v
	return nil
}

func (c *mapCache) InvalidateOverview(_ context.Context, id string) error {
	delete(c.entries, id)
	c.invalidated++
	return nil
}

// racingTx simula un consumo concurrente: antes de abrir la transacción resta
// stolen del stock indicado, después de que la validación ya leyó el valor anterior.
type racingTx struct {
	store   *memory.Store
	stockID string
	stolen  decimal.Decimal
}

func (r *racingTx) Run(ctx context.Context, fn func(inventory.TxRepos) error) error {
	if _, err := r.store.Stocks().Decrement(ctx, r.stockID, r.stolen, "otro"); err != nil {
		return err
	}
	return r.store.Run(ctx, fn)
}

type fixture struct {
	store    *memory.Store
	notifier *recordingNotifier
	metrics  *recordingMetrics
	cache    *mapCache
	consumer *inventory.Consumer
	resolver *inventory.Resolver
	produce  *inventory.ProductionUseCase
	stock    *inventory.StockUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithTx(t, nil)
}

func newFixtureWithTx(t *testing.T, tx func(*memory.Store) inventory.TxRunner) *fixture {
	t.Helper()
	s := memory.NewStore()
	f := &fixture{store: s, notifier: &recordingNotifier{}, metrics: newRecordingMetrics(), cache: newMapCache()}
	var runner inventory.TxRunner = s
	if tx != nil {
		runner = tx(s)
	}
	f.consumer = inventory.NewConsumer(runner, f.notifier, f.cache, f.metrics, zerolog.Nop())
	f.resolver = inventory.NewResolver(s.Products(), s.Ingredients())
	f.produce = inventory.NewProductionUseCase(f.resolver, f.consumer)
	f.stock = inventory.NewStockUseCase(runner, s.Ingredients(), s.Stocks(), s.Movements(), s.Products(), f.notifier, f.cache, zerolog.Nop())
	return f
}

func dtoProduce(productID, qty string) dto.ProduceRequest {
	return dto.ProduceRequest{ProductID: productID, Quantity: d(qty)}
}
