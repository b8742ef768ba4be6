package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/gradebook/internal/config"
	"github.com/yigit/gradebook/internal/pkg/logger"
)

func testConfig(seed bool) *config.Config {
	cfg := &config.Config{}
	cfg.Server.Port = "0"
	cfg.Server.Mode = "test"
	cfg.Store.LockTimeout = time.Second
	cfg.Store.MaxReaders = 8
	cfg.Store.SeedDemoData = seed
	return cfg
}

func TestRouterServesSeededStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig(true)

	repos, err := SetupStore(cfg, zerolog.Nop())
	require.NoError(t, err)
	router := SetupRouter(cfg, BuildDependencies(repos, zerolog.Nop()), zerolog.Nop())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/faculty?email=admin@example.com", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var resp struct {
		Data struct {
			ID   int64  `json:"userID"`
			Name string `json:"name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.Data.ID)
	assert.Equal(t, "prof", resp.Data.Name)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/assignments/{assignmentID}/grades")
}

func TestSetupStoreWithoutSeed(t *testing.T) {
	repos, err := SetupStore(testConfig(false), zerolog.Nop())
	require.NoError(t, err)

	stats, err := repos.Store.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Users)
}

func TestRequestLogsCarryHTTPComponent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger.Configure(logger.Config{Level: logger.InfoLevel, Output: &buf})
	t.Cleanup(func() { logger.Configure(logger.Config{Level: logger.InfoLevel, Pretty: true, Output: os.Stdout}) })

	cfg := testConfig(false)
	repos, err := SetupStore(cfg, zerolog.Nop())
	require.NoError(t, err)
	router := SetupRouter(cfg, BuildDependencies(repos, zerolog.Nop()), zerolog.Nop())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, buf.String(), `"component":"http"`)
	assert.Contains(t, buf.String(), `"path":"/ping"`)
}
