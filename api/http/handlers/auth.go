package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/tracker/api/http/presenter"
	"github.com/artem13815/tracker/pkg/auth"
	"github.com/artem13815/tracker/pkg/logger"
	"github.com/artem13815/tracker/pkg/metrics"
	"github.com/artem13815/tracker/pkg/security/jwt"
)

type AuthHandler struct {
	useCase auth.AuthUseCase
	log     *logger.Logger
	metrics *metrics.Metrics
}

func NewAuthHandler(useCase auth.AuthUseCase, log *logger.Logger, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{useCase: useCase, log: log.With("handler", "auth"), metrics: m}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginUser struct {
	ID       int64     `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Role     auth.Role `json:"role"`
	IsMaster bool      `json:"isMaster"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

// Login handles user login.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} loginResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	result, err := h.useCase.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			h.metrics.Login("invalid")
		case !isValidation(err):
			h.metrics.Login("error")
		}
		return respondError(c, h.log, err, "failed to login")
	}
	h.metrics.Login("success")

	u := result.User
	return presenter.JSON(c, http.StatusOK, loginResponse{
		Token: result.Token,
		User: loginUser{
			ID:       u.ID,
			Email:    u.Email,
			Name:     u.Name,
			Role:     u.Role,
			IsMaster: u.IsMaster,
		},
	})
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Register creates another administrator. Admin only.
// @Summary Register admin
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body registerRequest true "registration payload"
// @Security BearerAuth
// @Success 201 {object} presenter.OKResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	if err := h.useCase.Register(c.UserContext(), req.Email, req.Name, req.Password); err != nil {
		return respondError(c, h.log, err, "failed to register user")
	}
	claims, _ := jwt.ClaimsFrom(c)
	h.log.Info("admin registered", "email", auth.NormalizeEmail(req.Email), "by", claims.UserID)
	return presenter.OK(c, http.StatusCreated)
}

// Me returns the authenticated user's profile.
// @Summary Current user
// @Tags    auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} auth.Profile
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, ok := jwt.ClaimsFrom(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "missing token")
	}
	user, err := h.useCase.Me(c.UserContext(), claims)
	if err != nil {
		return respondError(c, h.log, err, "failed to load user")
	}
	return presenter.JSON(c, http.StatusOK, user.Profile())
}

// Logout revokes the current token when a revocation store is configured.
// @Summary Logout
// @Tags    auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} presenter.OKResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, ok := jwt.ClaimsFrom(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "missing token")
	}
	if err := h.useCase.Logout(c.UserContext(), claims); err != nil {
		return respondError(c, h.log, err, "failed to logout")
	}
	return presenter.OK(c, http.StatusOK)
}

func isValidation(err error) bool {
	var v auth.ErrValidation
	return errors.As(err, &v)
}
