package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"courseMarketplace/internal/service"
	"courseMarketplace/internal/testutil"
	"courseMarketplace/models"
	"courseMarketplace/repository"
)

const testSecret = "test-secret"

type testEnv struct {
	e *echo.Echo
}

func newTestEnv(t *testing.T, name string) *testEnv {
	t.Helper()
	d := testutil.OpenInMemoryDB(t, name)

	users := repository.NewUserRepository(d)
	courses := repository.NewCourseRepository(d)
	enrollments := repository.NewEnrollmentRepository(d)

	identity := &service.IdentityService{Users: users, Secret: testSecret, TokenTTL: time.Hour}
	catalog := &service.CatalogService{Courses: courses, Enrollments: enrollments, Users: users}

	e := echo.New()
	Register(e, &Deps{Identity: identity, Catalog: catalog, JWTSecret: testSecret})
	return &testEnv{e: e}
}

func (env *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(b))
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) register(t *testing.T, username, password, email, role string) {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/register", "", echo.Map{
		"username": username, "password": password, "email": email, "role": role,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func (env *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/login", "", echo.Map{
		"username": username, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestRegisterLoginProfileFlow(t *testing.T) {
	env := newTestEnv(t, "httpflow")

	env.register(t, "alice", "p1", "a@x.com", "student")

	// Duplicate username conflicts
	rec := env.do(t, http.MethodPost, "/register", "", echo.Map{
		"username": "alice", "password": "p2", "email": "other@x.com", "role": "student",
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	// Unknown role is rejected
	rec = env.do(t, http.MethodPost, "/register", "", echo.Map{
		"username": "mallory", "password": "p", "email": "m@x.com", "role": "superuser",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Wrong password
	rec = env.do(t, http.MethodPost, "/login", "", echo.Map{"username": "alice", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	token := env.login(t, "alice", "p1")

	rec = env.do(t, http.MethodGet, "/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Role     string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	require.Equal(t, "alice", profile.Username)
	require.Equal(t, "a@x.com", profile.Email)
	require.Equal(t, "student", profile.Role)

	// No token -> 401
	rec = env.do(t, http.MethodGet, "/profile", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCourseAndEnrollmentFlow(t *testing.T) {
	env := newTestEnv(t, "httpcourses")

	env.register(t, "teach", "p1", "t@x.com", "instructor")
	env.register(t, "stud", "p2", "s@x.com", "student")
	teach := env.login(t, "teach", "p1")
	stud := env.login(t, "stud", "p2")

	// Students cannot publish courses
	rec := env.do(t, http.MethodPost, "/courses", stud, echo.Map{"title": "Nope", "price": 1})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPost, "/courses", teach, echo.Map{
		"title": "Go Basics", "description": "intro", "price": 19.99,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var course models.Course
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &course))
	require.NotZero(t, course.ID)

	// Negative price rejected
	rec = env.do(t, http.MethodPost, "/courses", teach, echo.Map{"title": "Bad", "price": -5})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Public browse includes the instructor display name
	rec = env.do(t, http.MethodGet, "/courses", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listings []struct {
		ID         int64  `json:"id"`
		Title      string `json:"title"`
		Instructor string `json:"instructor"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listings))
	require.Len(t, listings, 1)
	require.Equal(t, "teach", listings[0].Instructor)

	// Enroll, then enroll again
	rec = env.do(t, http.MethodPost, "/courses/1/enroll", stud, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = env.do(t, http.MethodPost, "/courses/1/enroll", stud, nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	// Enroll in a course that does not exist
	rec = env.do(t, http.MethodPost, "/courses/999/enroll", stud, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// Instructors cannot enroll
	rec = env.do(t, http.MethodPost, "/courses/1/enroll", teach, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/enrollments", stud, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var enrolled []models.Course
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &enrolled))
	require.Len(t, enrolled, 1)
	require.Equal(t, course.ID, enrolled[0].ID)

	// Instructor view shows the enrollment count
	rec = env.do(t, http.MethodGet, "/instructor/courses", teach, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []struct {
		ID               int64 `json:"id"`
		EnrolledStudents int64 `json:"enrolled_students"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	require.Len(t, mine, 1)
	require.EqualValues(t, 1, mine[0].EnrolledStudents)
}

func TestAdminEndpoints(t *testing.T) {
	env := newTestEnv(t, "httpadmin")

	env.register(t, "boss", "p1", "b@x.com", "admin")
	env.register(t, "stud", "p2", "s@x.com", "student")
	boss := env.login(t, "boss", "p1")
	stud := env.login(t, "stud", "p2")

	// Non-admins are rejected
	rec := env.do(t, http.MethodGet, "/admin/users", stud, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/admin/users", boss, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var users []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 2)
	// Password hashes never serialize
	for _, u := range users {
		require.NotContains(t, u, "password_hash")
		require.NotContains(t, u, "PasswordHash")
	}

	// Promote the student to instructor
	rec = env.do(t, http.MethodPatch, "/admin/users/2/role", boss, echo.Map{"role": "instructor"})
	require.Equal(t, http.StatusNoContent, rec.Code)

	// Arbitrary role strings are rejected
	rec = env.do(t, http.MethodPatch, "/admin/users/2/role", boss, echo.Map{"role": "root"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/admin/stats", boss, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats service.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	require.EqualValues(t, 2, stats.TotalUsers)
	require.EqualValues(t, 0, stats.TotalCourses)
	require.EqualValues(t, 0, stats.TotalEnrollments)
}
