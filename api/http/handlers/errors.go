package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/tracker/api/http/presenter"
	"github.com/artem13815/tracker/pkg/auth"
	"github.com/artem13815/tracker/pkg/item"
	"github.com/artem13815/tracker/pkg/logger"
)

// respondError maps domain errors to status codes. Anything unclassified is a
// store fault: it is logged and the client only sees fallback.
func respondError(c *fiber.Ctx, log *logger.Logger, err error, fallback string) error {
	var authValidation auth.ErrValidation
	var itemValidation item.ErrValidation
	switch {
	case errors.As(err, &authValidation), errors.As(err, &itemValidation):
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		return presenter.Error(c, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, auth.ErrUnauthenticated):
		return presenter.Error(c, http.StatusUnauthorized, "invalid or expired token")
	case errors.Is(err, auth.ErrForbidden):
		return presenter.Error(c, http.StatusForbidden, "admin access only")
	case errors.Is(err, auth.ErrUserAlreadyExists):
		return presenter.Error(c, http.StatusConflict, "email already exists")
	case errors.Is(err, auth.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "user not found")
	case errors.Is(err, item.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "item not found")
	default:
		log.Error(fallback, "error", err, "method", c.Method(), "path", c.Path(), "request_id", requestID(c))
		return presenter.Error(c, http.StatusInternalServerError, fallback)
	}
}

func requestID(c *fiber.Ctx) string {
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
