package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"courseMarketplace/internal/auth"
	"courseMarketplace/internal/service"
	"courseMarketplace/models"
	"courseMarketplace/repository"
)

type AuthHTTP struct {
	Svc *service.IdentityService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Email    string `json:"email"`
		Role     string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	u, err := h.Svc.Register(ctx, req.Username, req.Password, req.Email, models.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidRole):
			return echo.NewHTTPError(http.StatusBadRequest, "role must be admin, student, or instructor")
		case errors.Is(err, repository.ErrDuplicateIdentity):
			return echo.NewHTTPError(http.StatusConflict, "username or email already exists")
		default:
			slog.Error("register failed", "handler", "auth.register", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot register user")
		}
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	sess, err := h.Svc.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		slog.Error("login failed", "handler", "auth.login", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot log in")
	}
	return c.JSON(http.StatusOK, sess)
}

func (h *AuthHTTP) Profile(c echo.Context) error {
	ctx := c.Request().Context()
	p, ok := auth.CurrentPrincipal(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing principal")
	}

	profile, err := h.Svc.GetProfile(ctx, p.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "account no longer exists")
		}
		slog.Error("profile failed", "handler", "auth.profile", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load profile")
	}
	return c.JSON(http.StatusOK, profile)
}
