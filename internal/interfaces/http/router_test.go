package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locationgenius/dashboard/internal/infrastructure/auth"
	"github.com/locationgenius/dashboard/internal/infrastructure/config"
	"github.com/locationgenius/dashboard/internal/infrastructure/database"
	"github.com/locationgenius/dashboard/internal/infrastructure/migration"
	"github.com/locationgenius/dashboard/internal/infrastructure/persistence/seeds"
	"github.com/locationgenius/dashboard/internal/infrastructure/repository"
	"github.com/locationgenius/dashboard/internal/shared/authorization"
	"github.com/locationgenius/dashboard/internal/shared/constants"
	"github.com/locationgenius/dashboard/internal/shared/db"
	sharedConfig "github.com/locationgenius/dashboard/internal/shared/config"
	"github.com/locationgenius/dashboard/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const routerTestSecret = "router-test-secret"

type testServer struct {
	engine *gin.Engine
	jwt    *auth.JWTService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	log := logger.NewDiscardLogger()

	cfg := &config.Config{
		Server:   sharedConfig.ServerConfig{AllowedOrigins: []string{"http://localhost:5173"}},
		Database: sharedConfig.DatabaseConfig{Driver: "sqlite", Path: ":memory:"},
		Auth:     sharedConfig.AuthConfig{JWT: sharedConfig.JWTConfig{Secret: routerTestSecret, AccessExpMinutes: 5}},
	}

	gdb, err := database.Open(&cfg.Database)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	manager, err := migration.NewManager(cfg.Database.Driver, log)
	require.NoError(t, err)
	require.NoError(t, manager.Migrate(ctx, gdb))

	defaults, err := seeds.DefaultTemplates()
	require.NoError(t, err)
	_, err = seeds.SeedTemplates(ctx, db.NewTransactionManager(gdb), repository.NewMessageTemplateRepository(gdb), defaults, log)
	require.NoError(t, err)

	router, err := NewRouter(ctx, gdb, cfg, log)
	require.NoError(t, err)
	router.SetupRoutes()
	t.Cleanup(router.Shutdown)

	return &testServer{engine: router.GetEngine(), jwt: auth.NewJWTService(routerTestSecret, 5)}
}

func (s *testServer) do(t *testing.T, method, path string, role authorization.UserRole, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if role != "" {
		token, _, err := s.jwt.Generate("user-"+role.String(), role)
		require.NoError(t, err)
		req.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Type string `json:"type"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(constants.HeaderXRequestID))
}

func TestRouter_RequiresToken(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/message-templates", "", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_RoleGrants(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		role   authorization.UserRole
		body   string
		want   int
	}{
		{"user reads dashboard", http.MethodGet, "/api/v1/dashboard/timeframes", authorization.RoleUser, "", http.StatusOK},
		{"user cannot read templates", http.MethodGet, "/api/v1/message-templates", authorization.RoleUser, "", http.StatusForbidden},
		{"manager reads templates", http.MethodGet, "/api/v1/message-templates", authorization.RoleManager, "", http.StatusOK},
		{"manager cannot list admin view", http.MethodGet, "/api/v1/admin/message-templates", authorization.RoleManager, "", http.StatusForbidden},
		{"admin lists admin view", http.MethodGet, "/api/v1/admin/message-templates", authorization.RoleAdmin, "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, tt.method, tt.path, tt.role, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestRouter_SeededTemplatesRender(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/message-templates", authorization.RoleManager, "")
	require.Equal(t, http.StatusOK, w.Code)
	var templates []struct {
		Type string `json:"type"`
	}
	decode(t, w, &templates)
	types := make([]string, 0, len(templates))
	for _, tpl := range templates {
		types = append(types, tpl.Type)
	}
	assert.ElementsMatch(t, []string{"welcome", "location_result"}, types)

	w = s.do(t, http.MethodPost, "/api/v1/message-templates/render", authorization.RoleManager,
		`{"type":"welcome","variables":{"daily_limit":50,"remaining_requests":12}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var rendered struct {
		Message          string   `json:"message"`
		MissingVariables []string `json:"missing_variables"`
	}
	decode(t, w, &rendered)
	assert.Contains(t, rendered.Message, "🎯 50 requests per 24hrs")
	assert.Contains(t, rendered.Message, "⚡ 12 requests left for today")
	assert.Empty(t, rendered.MissingVariables)
}

func TestRouter_AdminLifecycle(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/admin/message-templates", authorization.RoleAdmin,
		`{"name":"Daily Digest","type":"daily_digest","content":"Today we found {count} locations."}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID        string   `json:"id"`
		Variables []string `json:"variables"`
		CreatedBy string   `json:"created_by"`
	}
	decode(t, w, &created)
	assert.Equal(t, []string{"count"}, created.Variables)
	assert.Equal(t, "user-admin", created.CreatedBy)

	w = s.do(t, http.MethodGet, "/api/v1/message-templates/type/daily_digest", authorization.RoleManager, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPatch, "/api/v1/admin/message-templates/"+created.ID+"/status", authorization.RoleAdmin, `{"is_active":false}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/v1/message-templates/type/daily_digest", authorization.RoleManager, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPut, "/api/v1/admin/message-templates/type/welcome/content", authorization.RoleAdmin,
		`{"content":"Welcome back {first_name}, enjoy your stay."}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/v1/message-templates/render", authorization.RoleManager, `{"type":"welcome"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var rendered struct {
		Message          string   `json:"message"`
		MissingVariables []string `json:"missing_variables"`
	}
	decode(t, w, &rendered)
	assert.Equal(t, "Welcome back {first_name}, enjoy your stay.", rendered.Message)
	assert.Equal(t, []string{"first_name"}, rendered.MissingVariables)
}

func TestRouter_SendWithoutTelegram(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/admin/message-templates/send", authorization.RoleAdmin,
		`{"type":"welcome","chat_id":1001,"variables":{"daily_limit":5,"remaining_requests":5}}`)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	env := decode(t, w, nil)
	require.NotNil(t, env.Error)
	assert.Equal(t, "service_unavailable", env.Error.Type)
}

func TestRouter_ResolveTimeframe(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/dashboard/timeframe?selection=this_week&previous=2024-01-15T00:00:00Z", authorization.RoleUser, "")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var got struct {
		Timeframe string `json:"timeframe"`
		Changed   bool   `json:"changed"`
	}
	decode(t, w, &got)
	assert.Equal(t, "this_week", got.Timeframe)
	assert.False(t, got.Changed)
}
