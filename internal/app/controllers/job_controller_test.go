package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusai/nexus-backend/internal/app/controllers"
	"github.com/nexusai/nexus-backend/internal/app/models"
	"github.com/nexusai/nexus-backend/internal/app/models/dto"
	"github.com/nexusai/nexus-backend/internal/app/repositories"
	"github.com/nexusai/nexus-backend/internal/app/routes"
	"github.com/nexusai/nexus-backend/internal/app/services"
	"github.com/nexusai/nexus-backend/internal/db"
	ws "github.com/nexusai/nexus-backend/internal/pkg/websocket"
)

// nopNotifier discards broadcast events
type nopNotifier struct{}

func (nopNotifier) Broadcast(event string, data interface{}) {}

// failingJobService forces the opaque 500 path
type failingJobService struct{}

func (failingJobService) ListJobs(ctx context.Context) ([]*models.Job, error) {
	return nil, errors.New("connection refused")
}

func (failingJobService) CreateJob(ctx context.Context, job *models.Job) (*models.Job, error) {
	return nil, errors.New("connection refused")
}

func (failingJobService) UpdateJob(ctx context.Context, id string, patch *dto.UpdateJobRequest) (*models.Job, error) {
	return nil, errors.New("connection refused")
}

func (failingJobService) DeleteJob(ctx context.Context, id string) error {
	return errors.New("connection refused")
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sqlDB, err := db.NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	repos := repositories.NewSQLiteRepositories(sqlDB)
	jobService := services.NewJobService(repos.Jobs, nopNotifier{}, zerolog.Nop())
	userService := services.NewUserService(repos.Users, zerolog.Nop())

	hub := ws.NewHub(zerolog.Nop(), nil)
	go hub.Run()

	router := gin.New()
	routes.SetupRouter(
		router,
		controllers.NewJobController(jobService, userService, zerolog.Nop()),
		controllers.NewUserController(userService, zerolog.Nop()),
		controllers.NewCollegeController(userService, zerolog.Nop()),
		ws.NewHandler(hub, zerolog.Nop()),
	)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestJobEndpoints_ListEmptyStore(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/jobs", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String(), "an empty store lists as an empty array, not null")
}

func TestJobEndpoints_CreateThenList(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/jobs", map[string]interface{}{
		"title":          "Frontend Engineer",
		"company":        "TechFlow",
		"skillsRequired": []string{"React", "TypeScript"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Len(t, created.ID, 9)
	assert.Equal(t, models.DefaultMatchScore, created.MatchScore)
	assert.Equal(t, models.DefaultRecruiterID, created.RecruiterID)
	assert.False(t, created.PostedAt.IsZero())

	rec = doJSON(t, router, http.MethodGet, "/api/jobs", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []models.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
	assert.Equal(t, []string{"React", "TypeScript"}, listed[0].SkillsRequired)
}

func TestJobEndpoints_UpdateUnknownIDIsNull(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPut, "/api/jobs/missing99", map[string]interface{}{
		"title": "whatever",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", rec.Body.String())
}

func TestJobEndpoints_DeleteIsIdempotent(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/jobs", map[string]interface{}{"title": "doomed"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	for i := 0; i < 2; i++ {
		rec = doJSON(t, router, http.MethodDelete, "/api/jobs/"+created.ID, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	}
}

func TestJobEndpoints_ApplyAppendsApplication(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/users", map[string]interface{}{
		"uid":   "stu-1",
		"email": "stu1@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/jobs", map[string]interface{}{"title": "Data Analyst"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var job models.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &job))

	rec = doJSON(t, router, http.MethodPost, "/api/jobs/"+job.ID+"/apply", map[string]interface{}{"uid": "stu-1"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/api/users/stu-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	require.Len(t, user.Applications, 1)
	assert.Equal(t, job.ID, user.Applications[0].JobID)
	assert.Equal(t, models.StatusApplied, user.Applications[0].Status)
}

func TestJobEndpoints_FailureIsOpaque500(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	controller := controllers.NewJobController(failingJobService{}, nil, zerolog.Nop())
	router.GET("/api/jobs", controller.ListJobs)
	router.DELETE("/api/jobs/:id", controller.DeleteJob)

	rec := doJSON(t, router, http.MethodGet, "/api/jobs", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch jobs"}`, rec.Body.String(), "the client sees only the static message")

	rec = doJSON(t, router, http.MethodDelete, "/api/jobs/x", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to delete job"}`, rec.Body.String())
}

func TestJobEndpoints_MalformedBodyIs500Not400(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/jobs", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to create job"}`, rec.Body.String())
}

func TestUserEndpoints_GetUnknownUIDIsNull(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/users/nobody", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", rec.Body.String())
}

func TestUserEndpoints_UpdateNameAndBio(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/users", map[string]interface{}{
		"uid":   "stu-2",
		"email": "stu2@example.com",
		"name":  "Ada",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/api/users/stu-2", map[string]interface{}{
		"name": "Ada L.",
		"bio":  "Systems student",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "Ada L.", user.Name)
	assert.Equal(t, "Systems student", user.Bio)
	assert.Equal(t, "stu2@example.com", user.Email)
}

func TestCollegeEndpoints_ListStudents(t *testing.T) {
	router := newTestRouter(t)

	for _, payload := range []map[string]interface{}{
		{"uid": "s1", "email": "s1@example.com", "role": "student", "collegeId": "college-1"},
		{"uid": "s2", "email": "s2@example.com", "role": "student", "collegeId": "college-2"},
		{"uid": "r1", "email": "r1@example.com", "role": "recruiter", "collegeId": "college-1"},
	} {
		rec := doJSON(t, router, http.MethodPost, "/api/users", payload)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/colleges/college-1/students", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var students []models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &students))
	require.Len(t, students, 1, "only student-role users of this college are listed")
	assert.Equal(t, "s1", students[0].UID)

	rec = doJSON(t, router, http.MethodGet, "/api/colleges/empty-college/students", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
