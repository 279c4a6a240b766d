package service

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/leads-service/internal/domain"
	"github.com/spec-kit/leads-service/internal/events"
	"github.com/spec-kit/leads-service/internal/geo"
	"github.com/spec-kit/leads-service/internal/observability"
	"github.com/spec-kit/leads-service/internal/repository"
	apperrors "github.com/spec-kit/leads-service/pkg/util"
)

// Client-facing intake messages.
const (
	QuoteAcceptedMessage = "Заявка успешно отправлена"
	QuoteFailedMessage   = "Ошибка при отправке заявки"
)

// QuoteRequest is a client-supplied lead submission.
type QuoteRequest struct {
	Name    string  `validate:"required"`
	Email   string  `validate:"required,email"`
	Phone   *string
	Message string  `validate:"required"`
}

// ClientInfo carries transport details used for enrichment.
type ClientInfo struct {
	RemoteAddr   string
	ForwardedFor string
	UserAgent    string
}

// ClientIP prefers the first X-Forwarded-For entry over the peer address.
// The header is trusted as sent.
func (c ClientInfo) ClientIP() *string {
	if first, _, _ := strings.Cut(c.ForwardedFor, ","); strings.TrimSpace(first) != "" {
		return domain.OptionalString(first)
	}
	addr := strings.TrimSpace(c.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	return domain.OptionalString(addr)
}

// QuoteDependencies bundles collaborators of the intake pipeline.
type QuoteDependencies struct {
	Leads      repository.LeadRepository
	Geo        geo.CountryResolver
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	Now        func() time.Time
}

// QuoteService runs the intake pipeline for a single submission.
type QuoteService struct {
	leads      repository.LeadRepository
	geo        geo.CountryResolver
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
	now        func() time.Time
}

// NewQuoteService constructs the service.
func NewQuoteService(deps QuoteDependencies) *QuoteService {
	s := &QuoteService{
		leads:      deps.Leads,
		geo:        deps.Geo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		metrics:    deps.Metrics,
		now:        deps.Now,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Submit validates, enriches and stores req, then hands the lead to the
// notification dispatcher without waiting for delivery.
func (s *QuoteService) Submit(ctx context.Context, req QuoteRequest, client ClientInfo) (*domain.Lead, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if err := validate.Struct(req); err != nil {
		s.metrics.RecordQuote(observability.OutcomeRejected)
		return nil, validationError(err)
	}

	ip := client.ClientIP()
	lead := domain.NewLead(domain.LeadInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
		IPAddress: ip,
		Country:   s.resolveCountry(ctx, ip),
		UserAgent: client.UserAgent,
	}, s.now())

	// A client disconnect must not abort a write that has started.
	if err := s.leads.Insert(context.WithoutCancel(ctx), lead); err != nil {
		s.metrics.RecordQuote(observability.OutcomeFailure)
		s.logger.Error("store quote", zap.String("quote_id", lead.ID), zap.Error(err))
		return nil, apperrors.NewStorageUnavailable(QuoteFailedMessage, err)
	}
	s.metrics.RecordQuote(observability.OutcomeSuccess)

	s.publish(ctx, lead)
	return &lead, nil
}

func (s *QuoteService) resolveCountry(ctx context.Context, ip *string) string {
	if s.geo == nil {
		return domain.Unknown
	}
	return s.geo.Resolve(ctx, ip)
}

func (s *QuoteService) publish(ctx context.Context, lead domain.Lead) {
	if s.dispatcher == nil {
		return
	}
	err := s.dispatcher.Publish(context.WithoutCancel(ctx), events.NewQuoteCreated(lead))
	switch {
	case err == nil:
	case errors.Is(err, events.ErrQueueFull), errors.Is(err, events.ErrDispatcherClosed):
		s.metrics.RecordNotification(observability.OutcomeDropped)
		s.logger.Warn("quote notification dropped", zap.String("quote_id", lead.ID), zap.Error(err))
	default:
		s.logger.Warn("quote notification failed", zap.String("quote_id", lead.ID), zap.Error(err))
	}
}
