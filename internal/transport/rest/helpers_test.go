package rest

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lularocha/glossary-builder/internal/adapter/cache"
	"github.com/lularocha/glossary-builder/internal/adapter/memstore"
	"github.com/lularocha/glossary-builder/internal/auth"
	"github.com/lularocha/glossary-builder/internal/config"
	"github.com/lularocha/glossary-builder/internal/domain"
	"github.com/lularocha/glossary-builder/internal/metrics"
	"github.com/lularocha/glossary-builder/internal/service/export"
	"github.com/lularocha/glossary-builder/internal/service/session"
)

var testNow = time.Date(2026, 4, 2, 8, 30, 0, 0, time.UTC)

type testServer struct {
	handler http.Handler
	svc     *glossaryServiceMock
	tokens  *auth.JWTManager
	metrics *metrics.Recorder
}

func testConfig() config.Config {
	return config.Config{
		Server:    config.ServerConfig{MaxBodyBytes: 1 << 20},
		CORS:      config.CORSConfig{AllowedOrigins: "*", AllowedMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowedHeaders: "Authorization,Content-Type"},
		RateLimit: config.RateLimitConfig{Enabled: false},
		Metrics:   config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

func newTestServer(t *testing.T, svc *glossaryServiceMock, mutate ...func(*RouterDeps)) *testServer {
	t.Helper()

	cfg := testConfig()
	logger := slog.New(slog.DiscardHandler)
	tokens := auth.NewJWTManager(strings.Repeat("s", 32), "glossary-builder-test", time.Hour)
	rec := metrics.New()

	gh := NewGlossaryHandler(svc, cache.NewMemory(time.Hour, 100), cfg.Server.MaxBodyBytes, logger)
	gh.SetMetrics(rec)
	exp := export.NewService()

	deps := RouterDeps{
		Config:   cfg,
		Logger:   logger,
		Tokens:   tokens,
		Glossary: gh,
		Session:  NewSessionHandler(tokens, session.NewService(logger, memstore.NewSnapshotStore()), gh, exp, logger),
		Export:   NewExportHandler(exp, cfg.Server.MaxBodyBytes, logger),
		Health:   NewHealthHandler("test"),
		Metrics:  rec,
	}
	for _, m := range mutate {
		m(&deps)
	}

	return &testServer{handler: NewRouter(deps), svc: svc, tokens: tokens, metrics: rec}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func strPtr(s string) *string { return &s }

func sampleGlossary() *domain.Glossary {
	return &domain.Glossary{
		ID:          "g-1",
		Title:       strPtr("Container Basics"),
		Description: "Vocabulary for running containers.",
		SeedWord:    "Kubernetes",
		Terms: []domain.Term{
			{Term: "Kubernetes", Definition: "An orchestrator.", Importance: 10, RelatedTerms: []string{"Pod"}},
			{Term: "Pod", Definition: "Smallest deployable unit.", Importance: 9, RelatedTerms: []string{}},
		},
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
}

func sampleExpansion() *domain.ExpandedContent {
	return &domain.ExpandedContent{
		Paragraphs: []string{"Pods wrap one or more containers."},
		Sources:    []domain.Source{{Name: "Kubernetes Docs", URL: strPtr("https://kubernetes.io/docs/")}},
		LoadedAt:   testNow,
	}
}
