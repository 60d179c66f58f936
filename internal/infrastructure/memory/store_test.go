package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuizZonetti1/cafeterias-api/internal/application/inventory"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
	"github.com/LuizZonetti1/cafeterias-api/internal/infrastructure/memory"
)

func seedStock(t *testing.T, s *memory.Store) {
	t.Helper()
	require.NoError(t, s.Stocks().Create(context.Background(), &entity.Stock{
		ID: "st-flour", IngredientID: "flour", QuantityCurrent: decimal.NewFromInt(10),
	}))
}

// ── Run ──────────────────────────────────────────────────────────────────────

func TestRun_ErrorRevierteLaTransaccion(t *testing.T) {
	s := memory.NewStore()
	seedStock(t, s)
	ctx := context.Background()

	err := s.Run(ctx, func(repos inventory.TxRepos) error {
		_, err := repos.Stocks.Decrement(ctx, "st-flour", decimal.NewFromInt(4), "u")
		require.NoError(t, err)
		return errors.New("falla")
	})

	require.Error(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(s.StockOf("flour").QuantityCurrent))
}

func TestRun_RollbackConservaEscriturasConcurrentes(t *testing.T) {
	s := memory.NewStore()
	seedStock(t, s)
	ctx := context.Background()

	inTx := make(chan struct{})
	release := make(chan struct{})
	txDone := make(chan error, 1)
	go func() {
		txDone <- s.Run(ctx, func(repos inventory.TxRepos) error {
			if _, err := repos.Stocks.Decrement(ctx, "st-flour", decimal.NewFromInt(4), "u"); err != nil {
				return err
			}
			close(inTx)
			<-release
			return errors.New("falla")
		})
	}()

	<-inTx
	written := make(chan error, 1)
	go func() {
		_, _, err := s.Notifications().CreateIfNoUnread(ctx, &entity.Notification{
			ID: "n-1", RestaurantID: "rest-1", IngredientID: "flour",
			Type: entity.NotificationLowStock, CreatedAt: time.Now(),
		})
		written <- err
	}()

	select {
	case <-written:
		t.Fatal("la escritura no debe avanzar mientras la transacción está abierta")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	require.Error(t, <-txDone)
	require.NoError(t, <-written)

	assert.Equal(t, 1, s.NotificationCount(), "el rollback no pisa la notificación")
	assert.True(t, decimal.NewFromInt(10).Equal(s.StockOf("flour").QuantityCurrent))
}
