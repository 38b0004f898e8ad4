package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/tracker/api/http/presenter"
	"github.com/artem13815/tracker/pkg/auth"
	"github.com/artem13815/tracker/pkg/item"
	"github.com/artem13815/tracker/pkg/security/jwt"
)

type mockAuth struct{ mock.Mock }

func (m *mockAuth) Login(ctx context.Context, email, password string) (auth.AuthResult, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(auth.AuthResult), args.Error(1)
}

func (m *mockAuth) VerifyToken(ctx context.Context, token string) (auth.Claims, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(auth.Claims), args.Error(1)
}

func (m *mockAuth) Register(ctx context.Context, email, name, password string) error {
	return m.Called(ctx, email, name, password).Error(0)
}

func (m *mockAuth) Me(ctx context.Context, claims auth.Claims) (auth.User, error) {
	args := m.Called(ctx, claims)
	return args.Get(0).(auth.User), args.Error(1)
}

func (m *mockAuth) Logout(ctx context.Context, claims auth.Claims) error {
	return m.Called(ctx, claims).Error(0)
}

func (m *mockAuth) SeedMasterAdmin(ctx context.Context, email, name, password string) (auth.SeedResult, error) {
	args := m.Called(ctx, email, name, password)
	return args.Get(0).(auth.SeedResult), args.Error(1)
}

type mockItems struct{ mock.Mock }

func (m *mockItems) List(ctx context.Context, query string) ([]item.Item, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]item.Item), args.Error(1)
}

func (m *mockItems) Create(ctx context.Context, in item.NewItem) (item.Item, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(item.Item), args.Error(1)
}

func (m *mockItems) Update(ctx context.Context, id int64, p item.Patch) (item.Item, error) {
	args := m.Called(ctx, id, p)
	return args.Get(0).(item.Item), args.Error(1)
}

func (m *mockItems) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockItems) BulkCreate(ctx context.Context, rows []item.NewItem) (int, error) {
	args := m.Called(ctx, rows)
	return args.Int(0), args.Error(1)
}

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: presenter.ErrorHandler})
}

// withClaims mimics the auth middleware for handlers mounted behind it.
func withClaims(claims auth.Claims) fiber.Handler {
	return func(c *fiber.Ctx) error {
		jwt.WithClaims(c, claims)
		return c.Next()
	}
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	} else if len(raw) > 0 {
		out["_raw"] = string(raw)
	}
	return resp.StatusCode, out
}
