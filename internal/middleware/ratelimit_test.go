package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCounter struct {
	counts   map[string]int64
	windows  map[string]time.Duration
	failIncr bool
}

func newStubCounter() *stubCounter {
	return &stubCounter{counts: map[string]int64{}, windows: map[string]time.Duration{}}
}

func (s *stubCounter) Incr(ctx context.Context, key string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx, "incr", key)
	if s.failIncr {
		cmd.SetErr(errors.New("connection refused"))
		return cmd
	}
	s.counts[key]++
	cmd.SetVal(s.counts[key])
	return cmd
}

func (s *stubCounter) Expire(ctx context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	cmd := redis.NewBoolCmd(ctx, "expire", key)
	s.windows[key] = ttl
	cmd.SetVal(true)
	return cmd
}

func limitedApp(limiter *RateLimiter) *fiber.App {
	app := fiber.New()
	app.Post("/login", limiter.Middleware(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestNilLimiterPassesThrough(t *testing.T) {
	var limiter *RateLimiter
	app := limitedApp(limiter)

	for i := 0; i < 5; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", "/login", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
}

func TestLimiterAllowsUnderLimitAndSetsWindow(t *testing.T) {
	counter := newStubCounter()
	app := limitedApp(NewRateLimiter(counter, "login_rate", 3, time.Minute))

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", "/login", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	require.Len(t, counter.windows, 1)
	for _, ttl := range counter.windows {
		assert.Equal(t, time.Minute, ttl, "window expiry must be set on the first hit")
	}
}

func TestLimiterBlocksOverLimit(t *testing.T) {
	counter := newStubCounter()
	app := limitedApp(NewRateLimiter(counter, "login_rate", 2, time.Minute))

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", "/login", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("POST", "/login", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Too many requests", body["error"])
}

func TestLimiterErrorsDoNotBlockRequests(t *testing.T) {
	counter := newStubCounter()
	counter.failIncr = true
	app := limitedApp(NewRateLimiter(counter, "login_rate", 1, time.Minute))

	resp, err := app.Test(httptest.NewRequest("POST", "/login", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
