package notification_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuizZonetti1/cafeterias-api/internal/application/dto"
	"github.com/LuizZonetti1/cafeterias-api/internal/application/inventory"
	"github.com/LuizZonetti1/cafeterias-api/internal/application/notification"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain"
	domaininv "github.com/LuizZonetti1/cafeterias-api/internal/domain/inventory"
	"github.com/LuizZonetti1/cafeterias-api/internal/infrastructure/memory"
)

type fakePublisher struct {
	events []notification.LowStockEvent
	err    error
}

func (p *fakePublisher) PublishLowStock(_ context.Context, ev notification.LowStockEvent) error {
	p.events = append(p.events, ev)
	return p.err
}

func alert(ingredientID string) inventory.LowStockAlert {
	return inventory.LowStockAlert{
		RestaurantID:   "rest-1",
		IngredientID:   ingredientID,
		IngredientName: "Harina",
		Unit:           "GRAMS",
		Level:          domaininv.RestockLow,
		Current:        decimal.NewFromInt(10),
		Minimum:        decimal.NewFromInt(200),
	}
}

func TestNotifyLowStock_DeduplicaNoLeidas(t *testing.T) {
	store := memory.NewStore()
	pub := &fakePublisher{}
	svc := notification.NewService(store.Notifications(), pub, zerolog.Nop())
	ctx := context.Background()

	svc.NotifyLowStock(ctx, alert("flour"))
	svc.NotifyLowStock(ctx, alert("flour"))
	assert.Equal(t, 1, store.NotificationCount())
	assert.Len(t, pub.events, 1, "solo se publica la notificación nueva")
	assert.Equal(t, "Stock bajo: Harina (10 GRAMS - Mínimo: 200 GRAMS)", pub.events[0].Message)

	// otro ingrediente no se deduplica
	svc.NotifyLowStock(ctx, alert("sugar"))
	assert.Equal(t, 2, store.NotificationCount())

	// tras leerla se puede volver a crear
	_, err := svc.MarkAllRead(ctx, "rest-1")
	require.NoError(t, err)
	svc.NotifyLowStock(ctx, alert("flour"))
	assert.Equal(t, 3, store.NotificationCount())
}

func TestCreate_DevuelveLaExistente(t *testing.T) {
	store := memory.NewStore()
	svc := notification.NewService(store.Notifications(), nil, zerolog.Nop())
	ctx := context.Background()

	in := notification.CreateInput{RestaurantID: "rest-1", IngredientID: "flour", Message: "x"}
	first := svc.Create(ctx, in)
	require.NotNil(t, first)
	second := svc.Create(ctx, in)
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "LOW_STOCK", first.Type)
}

func TestNotifyLowStock_ErrorDePublicacionNoPropaga(t *testing.T) {
	store := memory.NewStore()
	pub := &fakePublisher{err: errors.New("broker caído")}
	svc := notification.NewService(store.Notifications(), pub, zerolog.Nop())

	svc.NotifyLowStock(context.Background(), alert("flour"))
	assert.Equal(t, 1, store.NotificationCount())
}

func TestLowStockMessage_Agotado(t *testing.T) {
	a := alert("flour")
	a.Level = domaininv.RestockExhausted
	a.Current = decimal.Zero
	assert.Equal(t, "Stock agotado: Harina (0 GRAMS - Mínimo: 200 GRAMS)", notification.LowStockMessage(a))
}

func TestBuzon_ListarLeerYBorrar(t *testing.T) {
	store := memory.NewStore()
	svc := notification.NewService(store.Notifications(), nil, zerolog.Nop())
	ctx := context.Background()

	a := svc.Create(ctx, notification.CreateInput{RestaurantID: "rest-1", IngredientID: "a", Message: "a"})
	svc.Create(ctx, notification.CreateInput{RestaurantID: "rest-1", IngredientID: "b", Message: "b"})
	svc.Create(ctx, notification.CreateInput{RestaurantID: "rest-2", IngredientID: "c", Message: "c"})

	list, err := svc.List(ctx, "rest-1", false)
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 2, list.Summary.Unread)

	_, err = svc.MarkRead(ctx, "rest-2", a.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	read, err := svc.MarkRead(ctx, "rest-1", a.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)
	assert.NotNil(t, read.ReadAt)

	unread, err := svc.List(ctx, "rest-1", true)
	require.NoError(t, err)
	assert.Len(t, unread.Items, 1)
	assert.Equal(t, dtoSummary(2, 1), unread.Summary)

	deleted, err := svc.DeleteAllRead(ctx, "rest-1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted.Count)

	assert.ErrorIs(t, svc.Delete(ctx, "rest-1", a.ID), domain.ErrNotFound)

	_, err = svc.List(ctx, "", false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func dtoSummary(total, unread int) dto.NotificationSummary {
	return dto.NotificationSummary{Total: total, Unread: unread, Read: total - unread}
}
