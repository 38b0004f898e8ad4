package presenter

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("secret internals") })
	app.Get("/teapot", func(c *fiber.Ctx) error { return fiber.NewError(http.StatusTeapot, "short and stout") })

	cases := []struct {
		path string
		code int
		body string
	}{
		{"/boom", http.StatusInternalServerError, `{"error":"internal server error"}`},
		{"/teapot", http.StatusTeapot, `{"error":"short and stout"}`},
		{"/missing", http.StatusNotFound, `{"error":"Cannot GET /missing"}`},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.path, nil))
		require.NoError(t, err)
		raw, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		assert.Equal(t, tc.code, resp.StatusCode, tc.path)
		assert.JSONEq(t, tc.body, string(raw), tc.path)
	}
}
