package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/leads-service/internal/api/http/handlers"
	"github.com/spec-kit/leads-service/internal/auth"
	"github.com/spec-kit/leads-service/internal/config"
	"github.com/spec-kit/leads-service/internal/docstore"
	"github.com/spec-kit/leads-service/internal/domain"
	"github.com/spec-kit/leads-service/internal/events"
	"github.com/spec-kit/leads-service/internal/observability"
	"github.com/spec-kit/leads-service/internal/repository"
	"github.com/spec-kit/leads-service/internal/service"
)

type fixedResolver struct{}

func (fixedResolver) Resolve(context.Context, *string) string { return "Netherlands" }

type blockingSender struct {
	mu    sync.Mutex
	sent  int
	block chan struct{}
}

func (s *blockingSender) Send(ctx context.Context, _ string) error {
	select {
	case <-s.block:
	case <-ctx.Done():
		return ctx.Err()
	}
	s.mu.Lock()
	s.sent++
	s.mu.Unlock()
	return errors.New("channel down")
}

type testServer struct {
	app        *fiber.App
	store      docstore.Store
	dispatcher events.Dispatcher
}

func newTestServer(t *testing.T, store docstore.Store, dispatcher events.Dispatcher) *testServer {
	t.Helper()
	logger := zap.NewNop()
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	if dispatcher == nil {
		dispatcher = events.NewInMemoryDispatcher()
	}

	leads := repository.NewLeadRepository(store)
	gate := auth.NewAdminGate(config.AdminConfig{Username: "admin", Password: "admin123"})

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, config.CORSConfig{AllowedOrigins: []string{"*"}}, 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health: handlers.NewHealthHandler("leads-service", "test", config.StoreDriverMemory, store),
		Status: handlers.NewStatusHandler(service.NewStatusService(repository.NewStatusCheckRepository(store))),
		Quotes: handlers.NewQuoteHandler(service.NewQuoteService(service.QuoteDependencies{
			Leads:      leads,
			Geo:        fixedResolver{},
			Dispatcher: dispatcher,
			Logger:     logger,
			Metrics:    metrics,
		})),
		Projects:        handlers.NewProjectHandler(service.NewProjectService(repository.NewProjectRepository(store))),
		Admin:           handlers.NewAdminHandler(service.NewAdminService(gate, leads, logger)),
		AdminMiddleware: auth.NewAdminMiddleware(gate),
		Gatherer:        metrics.Gatherer(),
	})
	return &testServer{app: app, store: store, dispatcher: dispatcher}
}

func (s *testServer) do(t *testing.T, method, path string, body any, admin bool) (*nethttp.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.SetBasicAuth("admin", "admin123")
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp, out
}

func (s *testServer) list(t *testing.T, path string) []map[string]any {
	t.Helper()
	req := httptest.NewRequest(nethttp.MethodGet, path, nil)
	req.SetBasicAuth("admin", "admin123")
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	var out []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func quoteBody(name string) map[string]any {
	return map[string]any{"name": name, "email": name + "@example.com", "message": "Need a site"}
}

func TestSubmitQuote(t *testing.T) {
	srv := newTestServer(t, docstore.NewMemoryStore(), nil)

	resp, body := srv.do(t, nethttp.MethodPost, "/api/quote", quoteBody("anna"), false)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, service.QuoteAcceptedMessage, body["message"])
	assert.NotEmpty(t, body["quote_id"])

	leads := srv.list(t, "/api/admin/quotes")
	require.Len(t, leads, 1)
	assert.Equal(t, body["quote_id"], leads[0]["id"])
	assert.Equal(t, "Netherlands", leads[0]["country"])
	assert.Equal(t, "new", leads[0]["status"])
}

func TestSubmitQuoteInvalid(t *testing.T) {
	srv := newTestServer(t, docstore.NewMemoryStore(), nil)

	invalid := []map[string]any{
		{"email": "a@example.com", "message": "hi"},
		{"name": "A", "email": "nope", "message": "hi"},
		{"name": "A", "email": "a@example.com", "message": ""},
	}
	for _, payload := range invalid {
		resp, body := srv.do(t, nethttp.MethodPost, "/api/quote", payload, false)
		assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "VALIDATION_FAILED", body["code"])
	}
	assert.Empty(t, srv.list(t, "/api/admin/quotes"))
}

func TestSubmitQuoteDoesNotWaitForNotification(t *testing.T) {
	sender := &blockingSender{block: make(chan struct{})}
	dispatcher := events.NewAsyncDispatcher(1, 8, zap.NewNop())
	service.NewNotificationService(dispatcher, sender, zap.NewNop(), nil, 5*time.Second).RegisterHandlers()
	srv := newTestServer(t, docstore.NewMemoryStore(), dispatcher)

	resp, body := srv.do(t, nethttp.MethodPost, "/api/quote", quoteBody("bob"), false)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	close(sender.block)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, dispatcher.Close(ctx))
	assert.Equal(t, 1, sender.sent)
}

func TestAdminRoutesRequireCredentials(t *testing.T) {
	srv := newTestServer(t, docstore.NewMemoryStore(), nil)

	resp, body := srv.do(t, nethttp.MethodGet, "/api/admin/quotes", nil, false)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", body["code"])
	assert.Equal(t, `Basic realm="admin"`, resp.Header.Get("WWW-Authenticate"))

	req := httptest.NewRequest(nethttp.MethodDelete, "/api/admin/projects/x", nil)
	req.SetBasicAuth("admin", "admin124")
	resp, err := srv.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
}

func TestAdminLogin(t *testing.T) {
	srv := newTestServer(t, docstore.NewMemoryStore(), nil)

	resp, body := srv.do(t, nethttp.MethodPost, "/api/admin/login", map[string]string{"username": "admin", "password": "admin123"}, false)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "admin", body["username"])

	resp, body = srv.do(t, nethttp.MethodPost, "/api/admin/login", map[string]string{"username": "admin", "password": "x"}, false)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestAdminQuoteWorkflow(t *testing.T) {
	srv := newTestServer(t, docstore.NewMemoryStore(), nil)
	leads := repository.NewLeadRepository(srv.store)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var ids []string
	for i, name := range []string{"first", "second", "third"} {
		lead := domain.NewLead(domain.LeadInput{Name: name, Email: name + "@example.com", Message: "m"}, base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, leads.Insert(context.Background(), lead))
		ids = append(ids, lead.ID)
	}

	resp, body := srv.do(t, nethttp.MethodPatch, "/api/admin/quotes/missing/status", map[string]string{"status": "completed"}, true)
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])

	resp, _ = srv.do(t, nethttp.MethodPatch, "/api/admin/quotes/"+ids[0]+"/status", map[string]string{"status": "done"}, true)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)

	resp, body = srv.do(t, nethttp.MethodPatch, "/api/admin/quotes/"+ids[0]+"/status", map[string]string{"status": "completed"}, true)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	list := srv.list(t, "/api/admin/quotes")
	require.Len(t, list, 3)
	assert.Equal(t, ids[2], list[0]["id"])
	assert.Equal(t, ids[1], list[1]["id"])
	assert.Equal(t, ids[0], list[2]["id"])
	assert.Equal(t, "completed", list[2]["status"])

	filtered := srv.list(t, "/api/admin/quotes?status=completed")
	require.Len(t, filtered, 1)
	assert.Len(t, srv.list(t, "/api/admin/quotes?limit=2"), 2)

	resp, _ = srv.do(t, nethttp.MethodDelete, "/api/admin/quotes/"+ids[1], nil, true)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	resp, body = srv.do(t, nethttp.MethodDelete, "/api/admin/quotes/"+ids[1], nil, true)
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestProjectRoutes(t *testing.T) {
	srv := newTestServer(t, docstore.NewMemoryStore(), nil)

	resp, body := srv.do(t, nethttp.MethodPost, "/api/admin/projects", map[string]any{
		"title": "Shop", "description": "Online store", "tech": []string{"Go", "React"}, "image": "shop.png",
	}, true)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	project := body["project"].(map[string]any)
	id := project["id"].(string)
	assert.Equal(t, "Shop", project["title"])

	resp, _ = srv.do(t, nethttp.MethodPut, "/api/admin/projects/"+id, map[string]any{
		"title": "Shop 2", "description": "Online store", "link": "https://shop.example.com",
	}, true)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(nethttp.MethodGet, "/api/projects", nil)
	resp, err := srv.app.Test(req, -1)
	require.NoError(t, err)
	var public []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&public))
	require.Len(t, public, 1)
	assert.Equal(t, "Shop 2", public[0]["title"])
	assert.Equal(t, "https://shop.example.com", public[0]["link"])

	resp, _ = srv.do(t, nethttp.MethodPut, "/api/admin/projects/missing", map[string]any{"title": "a", "description": "b"}, true)
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)

	resp, _ = srv.do(t, nethttp.MethodDelete, "/api/admin/projects/"+id, nil, true)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Empty(t, srv.list(t, "/api/admin/projects"))
}

func TestStatusAndHealthRoutes(t *testing.T) {
	srv := newTestServer(t, docstore.NewMemoryStore(), nil)

	resp, body := srv.do(t, nethttp.MethodGet, "/api/", nil, false)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hello World", body["message"])

	resp, body = srv.do(t, nethttp.MethodPost, "/api/status", map[string]string{"client_name": "web"}, false)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "web", body["client_name"])

	resp, _ = srv.do(t, nethttp.MethodGet, "/health/ready", nil, false)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)

	resp, body = srv.do(t, nethttp.MethodGet, "/api/unknown", nil, false)
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, docstore.NewMemoryStore(), nil)
	srv.do(t, nethttp.MethodPost, "/api/quote", quoteBody("carol"), false)

	resp, err := srv.app.Test(httptest.NewRequest(nethttp.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), "leads_intake_quotes_total"))
}
