package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by command name.
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "birdwatch_redis_errors_total",
		Help: "Total number of Redis command errors.",
	},
	[]string{"command"},
)

// LikeAttempts counts like attempts by outcome ("applied", "duplicate", "self").
var LikeAttempts = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "birdwatch_like_attempts_total",
		Help: "Total number of like attempts by outcome.",
	},
	[]string{"outcome"},
)

// AvatarRenders counts procedural avatar generations by cache outcome.
var AvatarRenders = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "birdwatch_avatar_renders_total",
		Help: "Total number of avatar PNGs served, by source.",
	},
	[]string{"source"}, // "generated" or "cache"
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}
