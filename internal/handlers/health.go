package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// pinger is the reachability probe each backing dependency exposes.
type pinger interface {
	Ping(ctx context.Context) error
}

// redisPinger adapts the redis client's StatusCmd-returning Ping.
type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

type healthResponse struct {
	Status      string `json:"status"`
	Database    string `json:"database"`
	Cache       string `json:"cache"`
	Storage     string `json:"storage"`
	Environment string `json:"environment"`
}

func (h HandlerSet) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	check := func(name string, p pinger) string {
		if err := p.Ping(ctx); err != nil {
			h.log.Error().Err(err).Str("dependency", name).Msg("health check failed")
			return "error"
		}
		return "ok"
	}

	c.JSON(http.StatusOK, healthResponse{
		Status:      "ok",
		Database:    check("postgres", h.db),
		Cache:       check("redis", h.cache),
		Storage:     check("storage", h.store),
		Environment: h.cfg.Environment,
	})
}
