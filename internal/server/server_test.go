package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pageza/alchemorsel-pantry/backend/config"
	"github.com/pageza/alchemorsel-pantry/backend/internal/api"
	"github.com/pageza/alchemorsel-pantry/backend/internal/logging"
	"github.com/pageza/alchemorsel-pantry/backend/internal/service"
	"github.com/pageza/alchemorsel-pantry/backend/internal/testhelpers"
)

type stubCompleter struct{}

func (stubCompleter) CompleteJSON(ctx context.Context, system, user string) (string, error) {
	return `[]`, nil
}

func newTestServer(t *testing.T) *Server {
	t.Setenv("ENV", "test")
	db := testhelpers.SetupSQLite(t)
	logger := logging.Discard()

	cfg := &config.Config{
		ServerHost:  "localhost",
		ServerPort:  "0",
		JWTSecret:   "test-secret",
		LLMTimeout:  time.Second,
		CORSOrigins: []string{"http://localhost:5173"},
	}
	deps := api.Dependencies{
		DB:         db,
		Auth:       service.NewAuthService(db, cfg.JWTSecret),
		Inventory:  service.NewInventoryService(db),
		Generation: service.NewGenerationService(stubCompleter{}, nil, logger),
		Recipes:    service.NewRecipeService(db, service.CharacterEmbedder{}, logger),
		Logger:     logger,
	}
	return New(cfg, deps)
}

func TestNew(t *testing.T) {
	server := newTestServer(t)
	assert.NotNil(t, server)

	// Test health check endpoint
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	server.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	server := newTestServer(t)

	for _, path := range []string{"/api/v1/inventory", "/api/v1/recipes", "/api/v1/favorites"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		server.Handler().ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestCORSHeaders(t *testing.T) {
	server := newTestServer(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	server.Handler().ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestShutdownBeforeStart(t *testing.T) {
	server := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, server.Shutdown(ctx))
}
