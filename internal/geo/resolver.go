// Package geo maps client addresses to a coarse country label.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/leads-service/internal/domain"
	"github.com/spec-kit/leads-service/internal/observability"
)

const (
	defaultBaseURL = "http://ip-api.com"
	defaultTimeout = 3 * time.Second
	maxBodyBytes   = 64 << 10
)

// CountryResolver resolves an optional address to a country label.
type CountryResolver interface {
	Resolve(ctx context.Context, ip *string) string
}

// Resolver looks countries up via an ip-api.com compatible endpoint. Results are
// not cached; every call is one outbound request.
type Resolver struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewResolver builds a resolver. Empty baseURL and non-positive timeout use defaults.
func NewResolver(baseURL string, timeout time.Duration, logger *zap.Logger, metrics *observability.Metrics) *Resolver {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		metrics:    metrics,
	}
}

type lookupResponse struct {
	Country string `json:"country"`
}

// Resolve never fails: absent or loopback addresses and any lookup failure
// yield domain.Unknown.
func (r *Resolver) Resolve(ctx context.Context, ip *string) string {
	if ip == nil || skipLookup(*ip) {
		r.metrics.RecordGeoLookup(observability.OutcomeSkipped)
		return domain.Unknown
	}

	country, err := r.lookup(ctx, strings.TrimSpace(*ip))
	if err != nil {
		r.logger.Warn("geo lookup failed", zap.String("ip", *ip), zap.Error(err))
		r.metrics.RecordGeoLookup(observability.OutcomeFailure)
		return domain.Unknown
	}
	r.metrics.RecordGeoLookup(observability.OutcomeSuccess)
	return country
}

func (r *Resolver) lookup(ctx context.Context, ip string) (string, error) {
	endpoint := fmt.Sprintf("%s/json/%s?fields=country", r.baseURL, url.PathEscape(ip))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("geo: create request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("geo: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geo: unexpected status %d", resp.StatusCode)
	}

	var payload lookupResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&payload); err != nil {
		return "", fmt.Errorf("geo: decode response: %w", err)
	}
	if strings.TrimSpace(payload.Country) == "" {
		return "", fmt.Errorf("geo: response has no country")
	}
	return payload.Country, nil
}

func skipLookup(ip string) bool {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return true
	}
	if parsed := net.ParseIP(ip); parsed != nil {
		return parsed.IsLoopback()
	}
	return ip == "localhost"
}
