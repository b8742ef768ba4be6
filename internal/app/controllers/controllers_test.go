package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/gradebook/internal/app/controllers"
	"github.com/yigit/gradebook/internal/app/repositories"
	"github.com/yigit/gradebook/internal/app/routes"
	"github.com/yigit/gradebook/internal/app/services"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Field   string                 `json:"field"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
}

type testAPI struct {
	t      *testing.T
	router *gin.Engine
	repos  *repositories.Repositories
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repos := repositories.NewRepositories(repositories.NewStore(repositories.StoreOptions{
		MaxReaders:  4,
		LockTimeout: 200 * time.Millisecond,
		Logger:      zerolog.Nop(),
	}))
	router := gin.New()
	router.ContextWithFallback = true
	routes.SetupRouter(router, routes.Controllers{
		User:       controllers.NewUserController(services.NewUserService(repos.UserRepository, zerolog.Nop())),
		Course:     controllers.NewCourseController(services.NewCourseService(repos.CourseRepository, zerolog.Nop())),
		Assignment: controllers.NewAssignmentController(services.NewAssignmentService(repos.AssignmentRepository, zerolog.Nop())),
		System:     controllers.NewSystemController(repos.Store),
	})
	return &testAPI{t: t, router: router, repos: repos}
}

func (a *testAPI) do(method, path string, body interface{}) (int, envelope) {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func (a *testAPI) createUser(name, email, role string) int64 {
	a.t.Helper()
	code, env := a.do(http.MethodPost, "/users", map[string]string{"name": name, "email": email, "role": role})
	require.Equal(a.t, http.StatusCreated, code)
	return decode[struct {
		ID int64 `json:"userID"`
	}](a.t, env).ID
}

func TestHello(t *testing.T) {
	api := newTestAPI(t)

	code, env := api.do(http.MethodGet, "/hello?name=Ada", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Hello Ada!", decode[map[string]string](t, env)["message"])

	code, env = api.do(http.MethodGet, "/hello", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.Success)
}

func TestCreateUserEndpoint(t *testing.T) {
	api := newTestAPI(t)

	code, env := api.do(http.MethodPost, "/users", map[string]string{"name": "zero", "email": "zero@example.com", "role": "Admin"})
	require.Equal(t, http.StatusCreated, code)
	user := decode[map[string]interface{}](t, env)
	assert.Equal(t, float64(0), user["userID"])
	assert.Equal(t, "Admin", user["role"])
	_, hasCourses := user["courses"]
	assert.False(t, hasCourses, "admins carry no course list")

	code, env = api.do(http.MethodPost, "/users", map[string]string{"name": "x", "email": "x@example.com", "role": "Janitor"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VAL_001", env.Error.Code)
	assert.Equal(t, "Role", env.Error.Field)

	code, _ = api.do(http.MethodPost, "/users", map[string]string{"email": "x@example.com", "role": "Student"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestCreateUserAcceptsAnyRoleCase(t *testing.T) {
	api := newTestAPI(t)

	for _, role := range []string{"faculty", "STUDENT", " admin "} {
		code, env := api.do(http.MethodPost, "/users", map[string]string{"name": "n", "email": "n@example.com", "role": role})
		require.Equal(t, http.StatusCreated, code, role)
		assert.Contains(t, []string{"Admin", "Student", "Faculty"}, decode[map[string]interface{}](t, env)["role"])
	}

	code, env := api.do(http.MethodPost, "/users", map[string]string{"name": "n", "email": "n@example.com", "role": "faculty"})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Faculty", decode[map[string]interface{}](t, env)["role"])

	code, env = api.do(http.MethodPost, "/users", map[string]string{"name": "n", "email": "n@example.com", "role": "Janitor"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Role", env.Error.Field)
	fields, ok := env.Error.Details["fields"].([]interface{})
	require.True(t, ok)
	require.Len(t, fields, 1)
	assert.Equal(t, "Role must be one of: Admin Student Faculty", fields[0].(map[string]interface{})["message"])
}

func TestBadIDHasObjectDetails(t *testing.T) {
	api := newTestAPI(t)

	code, env := api.do(http.MethodGet, "/courses/nope", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "courseID", env.Error.Field)
	assert.Equal(t, "courseID must be a non-negative integer", env.Error.Details["reason"])
}

func TestFindStudentAndFaculty(t *testing.T) {
	api := newTestAPI(t)
	api.createUser("zero", "zero@example.com", "Admin")
	stu := api.createUser("one", "one@example.com", "Student")
	fac := api.createUser("prof", "admin@example.com", "Faculty")

	code, env := api.do(http.MethodGet, "/student?email=one@example.com", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(stu), decode[map[string]interface{}](t, env)["userID"])

	code, env = api.do(http.MethodGet, fmt.Sprintf("/faculty?userID=%d", fac), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "prof", decode[map[string]interface{}](t, env)["name"])

	code, env = api.do(http.MethodGet, "/student?email=admin@example.com", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "student", env.Error.Details["entity"])

	code, _ = api.do(http.MethodGet, "/faculty", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = api.do(http.MethodGet, "/student?userID=abc", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = api.do(http.MethodGet, "/students", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]map[string]interface{}](t, env), 1)

	code, env = api.do(http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]map[string]interface{}](t, env), 3)
}

func TestCourseEndpoints(t *testing.T) {
	api := newTestAPI(t)
	stu := api.createUser("S", "s@example.com", "Student")
	fac := api.createUser("F", "f@example.com", "Faculty")

	code, env := api.do(http.MethodPost, "/courses", map[string]interface{}{"name": "CS101", "facultyID": stu})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "faculty", env.Error.Details["entity"])

	code, env = api.do(http.MethodPost, "/courses", map[string]interface{}{"name": "CS101", "facultyID": fac})
	require.Equal(t, http.StatusCreated, code)
	courseID := int64(decode[map[string]interface{}](t, env)["courseID"].(float64))

	path := fmt.Sprintf("/courses/%d/students/%d", courseID, stu)
	code, _ = api.do(http.MethodPost, path, nil)
	require.Equal(t, http.StatusOK, code)
	code, env = api.do(http.MethodPost, path, nil)
	require.Equal(t, http.StatusOK, code, "enrollment is idempotent")
	course := decode[struct {
		Students []struct {
			ID int64 `json:"userID"`
		} `json:"students"`
	}](t, env)
	assert.Len(t, course.Students, 1)

	code, _ = api.do(http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, code)
	code, env = api.do(http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "enrollment", env.Error.Details["entity"])

	code, _ = api.do(http.MethodGet, "/courses/nope", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = api.do(http.MethodDelete, fmt.Sprintf("/courses/%d", courseID), nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = api.do(http.MethodGet, fmt.Sprintf("/courses/%d", courseID), nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestGradeEndpoints(t *testing.T) {
	api := newTestAPI(t)
	stu := api.createUser("S", "s@example.com", "Student")
	fac := api.createUser("F", "f@example.com", "Faculty")

	_, env := api.do(http.MethodPost, "/courses", map[string]interface{}{"name": "CS101", "facultyID": fac})
	courseID := int64(decode[map[string]interface{}](t, env)["courseID"].(float64))

	code, env := api.do(http.MethodPost, "/assignments", map[string]interface{}{"courseID": courseID, "name": "HW1"})
	require.Equal(t, http.StatusCreated, code)
	hwID := int64(decode[map[string]interface{}](t, env)["assignmentID"].(float64))
	gradesPath := fmt.Sprintf("/assignments/%d/grades", hwID)

	code, env = api.do(http.MethodPost, gradesPath, map[string]interface{}{"studentID": stu, "grade": 90})
	assert.Equal(t, http.StatusNotFound, code, "student not enrolled")
	assert.Equal(t, "enrollment", env.Error.Details["entity"])

	code, _ = api.do(http.MethodPost, fmt.Sprintf("/courses/%d/students/%d", courseID, stu), nil)
	require.Equal(t, http.StatusOK, code)

	code, env = api.do(http.MethodPost, gradesPath, map[string]interface{}{"studentID": stu, "grade": 150})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "RES_002", env.Error.Code)

	code, env = api.do(http.MethodPost, gradesPath, map[string]interface{}{"studentID": stu})
	assert.Equal(t, http.StatusBadRequest, code, "grade is required")
	assert.Equal(t, "VAL_001", env.Error.Code)
	assert.Equal(t, "Grade", env.Error.Field)
	require.Len(t, env.Error.Details["fields"], 1)

	code, env = api.do(http.MethodPost, gradesPath, map[string]interface{}{"studentID": stu, "grade": 92.5})
	require.Equal(t, http.StatusCreated, code)
	grade := decode[map[string]interface{}](t, env)
	assert.Equal(t, 92.5, grade["grade"])
	gradeID := int64(grade["assignmentGradeID"].(float64))

	code, _ = api.do(http.MethodGet, fmt.Sprintf("/grades/%d", gradeID), nil)
	assert.Equal(t, http.StatusOK, code)

	code, env = api.do(http.MethodGet, "/stats", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]int{"users": 2, "courses": 1, "assignments": 1, "grades": 1, "enrollments": 1},
		decode[map[string]int](t, env))

	code, env = api.do(http.MethodDelete, fmt.Sprintf("/assignments/%d", hwID), nil)
	require.Equal(t, http.StatusOK, code)
	deleted := decode[struct {
		Grades []interface{} `json:"grades"`
	}](t, env)
	assert.Len(t, deleted.Grades, 1)

	code, _ = api.do(http.MethodGet, fmt.Sprintf("/grades/%d", gradeID), nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestStoreBusyMapsTo503(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req.WithContext(ctx))

	// A cancelled context may still win an uncontended semaphore, so
	// only a failure is required to be a 503.
	if w.Code != http.StatusOK {
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "1", w.Header().Get("Retry-After"))
	}
}
