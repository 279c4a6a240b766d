package service

import (
	"context"
	"strings"
	"time"

	"github.com/spec-kit/leads-service/internal/domain"
	"github.com/spec-kit/leads-service/internal/repository"
)

const statusCheckResource = "status check"

// StatusCheckRequest is a client ping.
type StatusCheckRequest struct {
	ClientName string `validate:"required"`
}

// StatusService records client pings.
type StatusService struct {
	checks repository.StatusCheckRepository
	now    func() time.Time
}

// NewStatusService constructs the service.
func NewStatusService(checks repository.StatusCheckRepository) *StatusService {
	return &StatusService{checks: checks, now: time.Now}
}

// Record stores a ping.
func (s *StatusService) Record(ctx context.Context, req StatusCheckRequest) (*domain.StatusCheck, error) {
	req.ClientName = strings.TrimSpace(req.ClientName)
	if err := validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	check := domain.NewStatusCheck(req.ClientName, s.now())
	if err := s.checks.Insert(ctx, check); err != nil {
		return nil, storeError(statusCheckResource, err)
	}
	return &check, nil
}

// List returns every stored ping.
func (s *StatusService) List(ctx context.Context) ([]domain.StatusCheck, error) {
	checks, err := s.checks.List(ctx)
	if err != nil {
		return nil, storeError(statusCheckResource, err)
	}
	if checks == nil {
		checks = []domain.StatusCheck{}
	}
	return checks, nil
}
