//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/megamarket-backend/internal/adapter/postgres"
	"github.com/heartmarshall/megamarket-backend/internal/adapter/postgres/history"
	"github.com/heartmarshall/megamarket-backend/internal/adapter/postgres/item"
	"github.com/heartmarshall/megamarket-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/megamarket-backend/internal/app"
	"github.com/heartmarshall/megamarket-backend/internal/config"
	"github.com/heartmarshall/megamarket-backend/internal/service/catalog"
	"github.com/heartmarshall/megamarket-backend/migrations"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the application stack against the shared
// PostgreSQL container. The container is shared across tests, so every test
// uses fresh ids and its own dates.
func setupTestServer(t *testing.T, tune func(cfg *config.Config)) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	cfg := &config.Config{
		Server:  config.ServerConfig{MaxBodyBytes: 1 << 20},
		Catalog: config.CatalogConfig{SalesWindow: 24 * time.Hour, MaxImportItems: 1000},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,DELETE,OPTIONS",
			AllowedHeaders: "Content-Type",
			MaxAge:         86400,
		},
		RateLimit: config.RateLimitConfig{Disabled: true},
		Metrics:   config.MetricsConfig{Path: "/metrics"},
	}
	if tune != nil {
		tune(cfg)
	}

	migrator, err := postgres.NewMigrator(pool, migrations.FS)
	require.NoError(t, err)
	t.Cleanup(func() { _ = migrator.Close() })

	reg := prometheus.NewRegistry()
	svc := catalog.NewService(
		logger,
		item.New(pool),
		history.New(pool),
		postgres.NewTxManager(pool, pgx.RepeatableRead),
		cfg.Catalog,
		catalog.NewMetrics(reg),
	)

	handler, stop := app.NewHTTPHandler(cfg, &app.Catalog{Pool: pool, Migrator: migrator, Service: svc}, logger, reg, reg)
	t.Cleanup(stop)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{URL: srv.URL, Client: srv.Client(), Pool: pool}
}

// do sends a request and returns the status code and raw body.
func (ts *testServer) do(t *testing.T, method, path string, body any) (int, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, ts.URL+path, r)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

// importBatch posts a batch and requires a 200.
func (ts *testServer) importBatch(t *testing.T, date string, items ...map[string]any) {
	t.Helper()
	status, body := ts.do(t, http.MethodPost, "/imports", map[string]any{
		"items":      items,
		"updateDate": date,
	})
	require.Equal(t, http.StatusOK, status, string(body))
}

// node fetches /nodes/{id} and decodes it.
func (ts *testServer) node(t *testing.T, id string) map[string]any {
	t.Helper()
	status, body := ts.do(t, http.MethodGet, "/nodes/"+id, nil)
	require.Equal(t, http.StatusOK, status, string(body))

	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func category(id, name string, parent *string) map[string]any {
	return map[string]any{"id": id, "name": name, "type": "CATEGORY", "parentId": parent}
}

func offer(id, name string, parent *string, price int64) map[string]any {
	return map[string]any{"id": id, "name": name, "type": "OFFER", "parentId": parent, "price": price}
}

// child finds a direct child by id in a decoded /nodes response.
func child(t *testing.T, node map[string]any, id string) map[string]any {
	t.Helper()
	children, ok := node["children"].([]any)
	require.True(t, ok, "children must be an array on a category")
	for _, c := range children {
		m := c.(map[string]any)
		if m["id"] == id {
			return m
		}
	}
	t.Fatalf("child %s not found", id)
	return nil
}

func decodeItems(t *testing.T, body []byte) []map[string]any {
	t.Helper()
	var out struct {
		Items []map[string]any `json:"items"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	return out.Items
}
