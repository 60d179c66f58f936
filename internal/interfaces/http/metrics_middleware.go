package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HTTPObserver registra la latencia y el código de cada petición.
type HTTPObserver interface {
	ObserveHTTP(method, route, status string, seconds float64)
}

// Metrics mide cada petición usando la ruta registrada (no la URL) como etiqueta.
func Metrics(obs HTTPObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		obs.ObserveHTTP(c.Method(), c.Route().Path, strconv.Itoa(status), time.Since(start).Seconds())
		return err
	}
}
