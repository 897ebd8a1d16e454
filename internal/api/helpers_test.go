package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Sanjeev-Guntha/synapse/internal/api/middleware"
	"github.com/Sanjeev-Guntha/synapse/internal/config"
	"github.com/Sanjeev-Guntha/synapse/internal/events"
	"github.com/Sanjeev-Guntha/synapse/internal/generation"
	"github.com/Sanjeev-Guntha/synapse/internal/platform/memory"
	"github.com/Sanjeev-Guntha/synapse/internal/service/auth"
	"github.com/Sanjeev-Guntha/synapse/internal/service/learning"
	"github.com/Sanjeev-Guntha/synapse/internal/task"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-that-is-at-least-32-characters"

// testAPI is the full HTTP surface wired to in-memory services.
type testAPI struct {
	handler  http.Handler
	sessions *auth.SessionService
	learning *learning.Service
	store    *memory.SessionStore
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	logger := discardLogger()

	tokens, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            testJWTSecret,
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	snapshots := memory.NewSessionStore()
	sessions, err := auth.NewSessionService(snapshots, tokens, auth.SessionConfig{Key: "auth-storage"}, logger)
	require.NoError(t, err)

	genCfg := generation.DefaultSimulatedConfig()
	genCfg.Delay = 0
	gen, err := generation.NewSimulatedGenerator(genCfg, logger)
	require.NoError(t, err)

	emitter := events.NewInMemoryEventEmitter(logger)
	svc, err := learning.NewService(gen, emitter, logger)
	require.NoError(t, err)

	runner := task.NewTaskRunner(task.NewMemoryTaskStore(), task.DefaultTaskRunnerConfig(), logger)
	emitter.Subscribe(events.TypeContentGeneration,
		task.NewTaskFactoryEventHandler(task.NewContentGenerationTaskFactory(svc, logger), runner, logger))
	require.NoError(t, runner.Start())
	t.Cleanup(runner.Stop)

	r := chi.NewRouter()
	r.Use(middleware.TraceMiddleware)
	RegisterRoutes(r, Handlers{
		Auth:      NewAuthHandler(sessions),
		Materials: NewMaterialHandler(svc),
		Study:     NewStudyHandler(svc),
	}, middleware.NewAuthMiddleware(sessions).Authenticate)

	return &testAPI{handler: r, sessions: sessions, learning: svc, store: snapshots}
}

// do sends a JSON request. body may be nil, a string of raw JSON or a value to marshal.
func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

// login signs in and returns the bearer token.
func (a *testAPI) login(t *testing.T) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/auth/login", "", LoginRequest{Email: "ada@example.com", Password: "pw"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp AuthResponse
	decode(t, rec, &resp)
	return resp.Token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v), rec.Body.String())
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decode(t, rec, &body)
	return body.Error
}
