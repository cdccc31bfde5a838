package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"courseMarketplace/internal/auth"
	"courseMarketplace/internal/service"
	"courseMarketplace/repository"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) ListCourses(c echo.Context) error {
	ctx := c.Request().Context()
	courses, err := h.Svc.ListCourses(ctx)
	if err != nil {
		slog.Error("list courses failed", "handler", "catalog.list_courses", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list courses")
	}
	return c.JSON(http.StatusOK, courses)
}

func (h *CatalogHTTP) CreateCourse(c echo.Context) error {
	ctx := c.Request().Context()
	p, ok := auth.CurrentPrincipal(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing principal")
	}

	var req struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	course, err := h.Svc.CreateCourse(ctx, req.Title, req.Description, p.UserID, req.Price)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "title is required and price must be non-negative")
		}
		slog.Error("create course failed", "handler", "catalog.create_course", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create course")
	}
	return c.JSON(http.StatusCreated, course)
}

func (h *CatalogHTTP) InstructorCourses(c echo.Context) error {
	ctx := c.Request().Context()
	p, ok := auth.CurrentPrincipal(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing principal")
	}

	courses, err := h.Svc.CoursesByInstructor(ctx, p.UserID)
	if err != nil {
		slog.Error("instructor courses failed", "handler", "catalog.instructor_courses", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list courses")
	}
	return c.JSON(http.StatusOK, courses)
}

func (h *CatalogHTTP) Enroll(c echo.Context) error {
	ctx := c.Request().Context()
	p, ok := auth.CurrentPrincipal(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing principal")
	}

	courseID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "course id must be an integer")
	}

	enrollment, err := h.Svc.Enroll(ctx, p.UserID, courseID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "course does not exist")
		case errors.Is(err, repository.ErrAlreadyEnrolled):
			return echo.NewHTTPError(http.StatusConflict, "already enrolled in this course")
		default:
			slog.Error("enroll failed", "handler", "catalog.enroll", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot enroll")
		}
	}
	return c.JSON(http.StatusCreated, enrollment)
}

func (h *CatalogHTTP) MyEnrollments(c echo.Context) error {
	ctx := c.Request().Context()
	p, ok := auth.CurrentPrincipal(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing principal")
	}

	courses, err := h.Svc.EnrolledCourses(ctx, p.UserID)
	if err != nil {
		slog.Error("enrollments failed", "handler", "catalog.my_enrollments", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list enrollments")
	}
	return c.JSON(http.StatusOK, courses)
}
