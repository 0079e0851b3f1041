package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by command name, so cache and
// rate-limit degradation is visible without log spelunking.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "tradepost_redis_errors_total",
	Help: "Total number of Redis command errors.",
}, []string{"command"})

// ItemWrites counts item create/update/delete operations by kind.
var ItemWrites = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "tradepost_item_writes_total",
	Help: "Total number of item write operations.",
}, []string{"operation"})

// InitMetrics creates the Prometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wires the Prometheus middleware into the request chain.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
