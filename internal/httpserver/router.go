package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"courseMarketplace/internal/auth"
	"courseMarketplace/internal/service"
	"courseMarketplace/models"
)

// Deps carries the wired services the handlers need.
type Deps struct {
	Identity  *service.IdentityService
	Catalog   *service.CatalogService
	JWTSecret string
}

// Register mounts all routes on the given echo instance.
func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	ah := &AuthHTTP{Svc: d.Identity}
	ch := &CatalogHTTP{Svc: d.Catalog}
	adm := &AdminHTTP{Identity: d.Identity, Catalog: d.Catalog}

	e.POST("/register", ah.Register)
	e.POST("/login", ah.Login)
	e.GET("/courses", ch.ListCourses)

	private := e.Group("", auth.RequireAuth(d.JWTSecret))
	private.GET("/profile", ah.Profile)

	private.POST("/courses", ch.CreateCourse, auth.RequireRole(models.RoleInstructor))
	private.GET("/instructor/courses", ch.InstructorCourses, auth.RequireRole(models.RoleInstructor))

	private.POST("/courses/:id/enroll", ch.Enroll, auth.RequireRole(models.RoleStudent))
	private.GET("/enrollments", ch.MyEnrollments, auth.RequireRole(models.RoleStudent))

	admin := private.Group("/admin", auth.RequireRole(models.RoleAdmin))
	admin.GET("/users", adm.ListUsers)
	admin.PATCH("/users/:id/role", adm.UpdateRole)
	admin.GET("/stats", adm.Stats)
}
