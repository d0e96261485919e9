package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"financas/internal/calendar"
	"financas/internal/config"
	"financas/internal/database"
	"financas/internal/logger"
	"financas/internal/middleware"
	"financas/internal/receipts"
	"financas/internal/testutil"
	"financas/internal/validator"
)

const (
	testPipelineKey   = "pipeline-secret"
	testAdminPassword = "admin123"
	testUserPassword  = "esposa123"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
	Clock  *calendar.FixedClock
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp creates a seeded application stack backed by an isolated
// in-memory SQLite database and a temporary receipt folder.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	if err := database.Seed(db, database.SeedOptions{AdminPassword: testAdminPassword, UserPassword: testUserPassword}); err != nil {
		t.Fatalf("failed to seed database: %v", err)
	}

	store, err := receipts.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create receipt store: %v", err)
	}

	cfg := &config.Config{
		PipelineAPIKey:       testPipelineKey,
		MaxUploadBytes:       1 << 20,
		ImportDefaultAccount: "Conta Corrente",
	}
	clock := &calendar.FixedClock{FixedNow: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)}
	issuer := middleware.NewTokenIssuer("integration-secret", time.Hour)

	router := NewRouter(cfg, NewServices(db, store, clock, cfg), issuer, clock)
	return &testApp{DB: db, Router: router, Clock: clock}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// upload posts a multipart form with a single "file" part.
func (app *testApp) upload(t *testing.T, path, filename, content string, fields map[string]string, token string) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("failed to write field: %v", err)
		}
	}
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	_, _ = part.Write([]byte(content))
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// login returns a bearer token for one of the seeded users.
func (app *testApp) login(t *testing.T, username, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["token"].(string)
}

// lookupID finds the id of the named item in a list response.
func (app *testApp) lookupID(t *testing.T, path, key, name, token string) string {
	t.Helper()
	rec := app.request("GET", path, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s failed: %d %s", path, rec.Code, rec.Body.String())
	}
	for _, item := range parseJSON(t, rec)[key].([]interface{}) {
		m := item.(map[string]interface{})
		if m["name"] == name {
			return m["id"].(string)
		}
	}
	t.Fatalf("%s %q not found", key, name)
	return ""
}

// pipeline calls a scheduler route with the API key.
func (app *testApp) pipeline(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	req.Header.Set("X-API-Key", testPipelineKey)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}
