package handlers

import (
	"invox/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": "1.0.0",
	})
}

func CacheStats(c *fiber.Ctx) error {
	hits, misses := repositories.CacheService.Stats()
	pool := repositories.CacheService.PoolStats()

	return c.JSON(fiber.Map{
		"cache_stats": fiber.Map{
			"hits":   hits,
			"misses": misses,
		},
		"pool_stats": fiber.Map{
			"hits":        pool.Hits,
			"misses":      pool.Misses,
			"timeouts":    pool.Timeouts,
			"total_conns": pool.TotalConns,
			"idle_conns":  pool.IdleConns,
		},
	})
}
