package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/leads-service/internal/domain"
)

func strPtr(s string) *string { return &s }

func countingServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestResolveSkipsLoopbackAndAbsent(t *testing.T) {
	srv, calls := countingServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"country":"Nowhere"}`))
	})
	r := NewResolver(srv.URL, time.Second, zap.NewNop(), nil)

	for _, ip := range []*string{nil, strPtr(""), strPtr("127.0.0.1"), strPtr("::1"), strPtr("localhost")} {
		assert.Equal(t, domain.Unknown, r.Resolve(context.Background(), ip))
	}
	assert.Zero(t, calls.Load())
}

func TestResolveReturnsCountry(t *testing.T) {
	srv, calls := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/json/8.8.8.8", r.URL.Path)
		assert.Equal(t, "country", r.URL.Query().Get("fields"))
		_, _ = w.Write([]byte(`{"country":"United States"}`))
	})
	r := NewResolver(srv.URL, time.Second, zap.NewNop(), nil)

	assert.Equal(t, "United States", r.Resolve(context.Background(), strPtr("8.8.8.8")))
	assert.EqualValues(t, 1, calls.Load())
}

func TestResolveFallsBackOnFailure(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"malformed": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		},
		"no country": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"status":"fail"}`))
		},
		"timeout": func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-time.After(2 * time.Second):
			case <-r.Context().Done():
			}
		},
	}
	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			srv, _ := countingServer(t, handler)
			r := NewResolver(srv.URL, 100*time.Millisecond, zap.NewNop(), nil)

			start := time.Now()
			assert.Equal(t, domain.Unknown, r.Resolve(context.Background(), strPtr("203.0.113.9")))
			assert.Less(t, time.Since(start), time.Second)
		})
	}
}

func TestResolveUnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	r := NewResolver(base, 200*time.Millisecond, nil, nil)
	require.Equal(t, domain.Unknown, r.Resolve(context.Background(), strPtr("198.51.100.1")))
}
