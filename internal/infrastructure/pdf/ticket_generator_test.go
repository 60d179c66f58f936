package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
	"github.com/LuizZonetti1/cafeterias-api/internal/infrastructure/pdf"
)

func TestGenerateTicket_ProducePDF(t *testing.T) {
	o := &entity.Order{
		ID:          "6f1c2d3e-aaaa-bbbb-cccc-000000000001",
		Status:      entity.OrderInProgress,
		TotalAmount: decimal.RequireFromString("27.50"),
		CreatedAt:   time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
		Items: []entity.OrderItem{{
			ProductName:  "Hamburguesa",
			Quantity:     2,
			UnitPrice:    decimal.RequireFromString("12.50"),
			Observations: "sin cebolla",
			Additionals: []entity.OrderItemAdditional{{
				IngredientID: "ing-queso", Quantity: decimal.NewFromInt(30), Unit: entity.UnitGrams,
				Price: decimal.RequireFromString("2.50"),
			}},
		}},
	}

	out, err := pdf.NewTicketGenerator().GenerateTicket(context.Background(), o, &entity.Restaurant{Name: "Café Central"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "la salida debe ser un PDF")
}

func TestGenerateTicket_SinRestaurante(t *testing.T) {
	o := &entity.Order{ID: "abc", Status: entity.OrderCancelled, CancelReason: "No informado"}
	out, err := pdf.NewTicketGenerator().GenerateTicket(context.Background(), o, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "6f1c2d3e", pdf.ShortID("6f1c2d3e-aaaa"))
	assert.Equal(t, "abc", pdf.ShortID("abc"))
}
