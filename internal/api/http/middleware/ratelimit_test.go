package middleware

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/contacts-server/internal/mocks"
	"github.com/dtroode/contacts-server/internal/ratelimit"
	"github.com/dtroode/contacts-server/internal/testutil"
)

func TestRateLimit_Handle(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	limiter := ratelimit.New(client, ratelimit.Config{Limit: 2, Window: time.Minute})
	app := newTestApp()
	app.Get("/", NewRateLimit(limiter, "me", testutil.MakeNoopLogger()).Handle, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	for i, wantRemaining := range []string{"1", "0"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode, "request %d", i+1)
		assert.Equal(t, "2", resp.Header.Get("X-RateLimit-Limit"))
		assert.Equal(t, wantRemaining, resp.Header.Get("X-RateLimit-Remaining"))
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 429, resp.StatusCode)
	assert.Equal(t, "60", resp.Header.Get(fiber.HeaderRetryAfter))

	mr.FastForward(time.Minute)

	resp, err = app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestRateLimit_Handle_FailsOpen(t *testing.T) {
	t.Parallel()

	limiter := mocks.NewRateLimiter(t)
	limiter.On("Allow", mock.Anything, mock.Anything).
		Return(ratelimit.Decision{}, errors.New("redis unavailable"))

	app := newTestApp()
	app.Get("/", NewRateLimit(limiter, "me", testutil.MakeNoopLogger()).Handle, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("X-RateLimit-Limit"))
}
