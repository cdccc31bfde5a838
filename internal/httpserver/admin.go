package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"courseMarketplace/internal/service"
	"courseMarketplace/models"
	"courseMarketplace/repository"
)

type AdminHTTP struct {
	Identity *service.IdentityService
	Catalog  *service.CatalogService
}

func (h *AdminHTTP) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	users, err := h.Identity.ListUsers(ctx)
	if err != nil {
		slog.Error("list users failed", "handler", "admin.list_users", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list users")
	}
	return c.JSON(http.StatusOK, users)
}

func (h *AdminHTTP) UpdateRole(c echo.Context) error {
	ctx := c.Request().Context()
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "user id must be an integer")
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Identity.UpdateUserRole(ctx, userID, models.Role(req.Role)); err != nil {
		if errors.Is(err, repository.ErrInvalidRole) {
			return echo.NewHTTPError(http.StatusBadRequest, "role must be admin, student, or instructor")
		}
		slog.Error("update role failed", "handler", "admin.update_role", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update role")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHTTP) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	stats, err := h.Catalog.GetStats(ctx)
	if err != nil {
		slog.Error("stats failed", "handler", "admin.stats", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot compute statistics")
	}
	return c.JSON(http.StatusOK, stats)
}
