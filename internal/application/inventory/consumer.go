package inventory

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/LuizZonetti1/cafeterias-api/internal/domain"
	domaininv "github.com/LuizZonetti1/cafeterias-api/internal/domain/inventory"
)

var tracer = otel.Tracer("github.com/LuizZonetti1/cafeterias-api/internal/application/inventory")

// Consumer orquesta validación → consumo transaccional → notificaciones. Es el único camino
// por el que pedidos y producción descuentan stock.
type Consumer struct {
	tx       TxRunner
	engine   *Engine
	notifier LowStockNotifier
	cache    OverviewCache
	metrics  Metrics
	log      zerolog.Logger
}

// NewConsumer construye el orquestador. notifier, cache y metrics pueden ser nil.
func NewConsumer(tx TxRunner, notifier LowStockNotifier, cache OverviewCache, metrics Metrics, log zerolog.Logger) *Consumer {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if cache == nil {
		cache = NopCache{}
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &Consumer{tx: tx, engine: NewEngine(), notifier: notifier, cache: cache, metrics: metrics, log: log}
}

// Commit valida needs con el porcentaje de desperdicio w y, si todo alcanza, consume dentro de
// una sola transacción. then, si no es nil, corre en la misma transacción después del consumo
// (p.ej. cambiar el estado del pedido); si devuelve error se revierte todo.
func (c *Consumer) Commit(
	ctx context.Context,
	needs domaininv.Needs,
	w decimal.Decimal,
	src Source,
	userID string,
	then func(repos TxRepos) error,
) (*Result, error) {
	ctx, span := tracer.Start(ctx, "inventory.Consume")
	defer span.End()
	span.SetAttributes(
		attribute.String("consumption.source", src.Kind),
		attribute.Int("consumption.ingredients", len(needs)),
		attribute.String("consumption.waste_pct", w.String()),
	)

	plan, err := domaininv.Validate(needs, w)
	if err != nil {
		c.metrics.ConsumptionRejected(src.Kind, "insufficient_stock")
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var result *Result
	err = c.tx.Run(ctx, func(repos TxRepos) error {
		res, err := c.engine.Consume(ctx, repos, plan, src, userID)
		if err != nil {
			return err
		}
		if then != nil {
			if err := then(repos); err != nil {
				return err
			}
		}
		result = res
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrStockConflict) {
			c.metrics.ConsumptionRejected(src.Kind, "stock_conflict")
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	c.metrics.ConsumptionCommitted(src.Kind, len(result.Items))
	c.afterCommit(ctx, restaurantsOf(result), result.Alerts)
	span.SetStatus(codes.Ok, "consumo confirmado")
	return result, nil
}

// afterCommit emite alertas e invalida la caché del resumen. Los errores solo se registran.
func (c *Consumer) afterCommit(ctx context.Context, restaurantIDs []string, alerts []LowStockAlert) {
	for _, a := range alerts {
		c.metrics.LowStockRaised(a.Level)
		c.notifier.NotifyLowStock(ctx, a)
	}
	for _, id := range restaurantIDs {
		if err := c.cache.InvalidateOverview(ctx, id); err != nil {
			c.log.Warn().Ctx(ctx).Err(err).Str("restaurant_id", id).Msg("no se pudo invalidar la caché del resumen de stock")
		}
	}
}

func restaurantsOf(res *Result) []string {
	seen := map[string]bool{}
	var out []string
	for _, it := range res.Items {
		id := it.Ingredient.RestaurantID
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
