package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

type readyFunc func(ctx context.Context) error

func (f readyFunc) Ready(ctx context.Context) error { return f(ctx) }

func TestHealth(t *testing.T) {
	h := NewHealthHandler(readyFunc(func(context.Context) error { return nil }))
	app := newTestApp()
	app.Get("/health", h.Health)
	app.Get("/ready", h.Ready)

	status, body := do(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["ok"])

	status, body = do(t, app, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ready", body["status"])
}

func TestReady_NotReady(t *testing.T) {
	h := NewHealthHandler(readyFunc(func(context.Context) error { return errors.New("postgres: refused") }))
	app := newTestApp()
	app.Get("/ready", h.Ready)

	status, body := do(t, app, http.MethodGet, "/ready", "")

	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "not_ready", body["status"])
	assert.Equal(t, "postgres: refused", body["details"])
}
