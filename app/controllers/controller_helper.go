package controllers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/CollectraHQ/Collectra/internal/pkg/cache"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// pagination extracts offset/limit query parameters with sane bounds.
func pagination(c *fiber.Ctx) (int, int) {
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	limit, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultPageSize)))
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return offset, limit
}

func firstHeaderValue(c *fiber.Ctx, keys ...string) string {
	for _, k := range keys {
		v := strings.TrimSpace(c.Get(k))
		if v != "" {
			return v
		}
	}
	return ""
}

func formatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func errorJSON(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": code, "message": message})
}

// redisCache adapts the cache package to the alerting service's interface.
type redisCache struct{}

func (redisCache) Get(key string) (string, error) {
	return cache.Get(key)
}

func (redisCache) Set(key string, value interface{}, expiration time.Duration) error {
	return cache.Set(key, value, expiration)
}
