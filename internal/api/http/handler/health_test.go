package handler

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dtroode/contacts-server/internal/testutil"
)

func TestHealth_Handle(t *testing.T) {
	t.Parallel()

	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	t.Run("healthy", func(t *testing.T) {
		app := newTestApp()
		app.Get("/healthz", NewHealth(map[string]Check{"postgres": ok, "redis": ok}, testutil.MakeNoopLogger()).Handle)

		status, body := do(t, app, httptest.NewRequest("GET", "/healthz", nil))
		assert.Equal(t, 200, status)
		assert.Equal(t, "ok", body["status"])
	})

	t.Run("degraded", func(t *testing.T) {
		app := newTestApp()
		app.Get("/healthz", NewHealth(map[string]Check{"postgres": ok, "redis": down}, testutil.MakeNoopLogger()).Handle)

		status, body := do(t, app, httptest.NewRequest("GET", "/healthz", nil))
		assert.Equal(t, 503, status)
		assert.Equal(t, "degraded", body["status"])
		assert.Equal(t, map[string]any{"postgres": "ok", "redis": "connection refused"}, body["checks"])
	})

	t.Run("no checks", func(t *testing.T) {
		app := newTestApp()
		app.Get("/healthz", NewHealth(nil, testutil.MakeNoopLogger()).Handle)

		status, _ := do(t, app, httptest.NewRequest("GET", "/healthz", nil))
		assert.Equal(t, 200, status)
	})
}
