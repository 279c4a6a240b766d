package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/leads-service/internal/auth"
	"github.com/spec-kit/leads-service/internal/docstore"
	"github.com/spec-kit/leads-service/internal/domain"
	"github.com/spec-kit/leads-service/internal/repository"
	apperrors "github.com/spec-kit/leads-service/pkg/util"
)

const leadResource = "quote"

// AdminService backs the credential-gated lead operations.
type AdminService struct {
	gate   *auth.AdminGate
	leads  repository.LeadRepository
	logger *zap.Logger
}

// NewAdminService constructs the service.
func NewAdminService(gate *auth.AdminGate, leads repository.LeadRepository, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{gate: gate, leads: leads, logger: logger}
}

// Login checks credentials and grants nothing reusable.
func (s *AdminService) Login(username, password string) error {
	if err := s.gate.Authorize(username, password); err != nil {
		s.logger.Info("admin login rejected")
		return err
	}
	return nil
}

// ListLeads returns leads newest first.
func (s *AdminService) ListLeads(ctx context.Context, filter repository.LeadFilter) ([]domain.Lead, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, invalidStatus(*filter.Status)
	}
	leads, err := docstore.Collect(s.leads.List(ctx, filter))
	if err != nil {
		return nil, storeError(leadResource, err)
	}
	if leads == nil {
		leads = []domain.Lead{}
	}
	return leads, nil
}

// UpdateLeadStatus sets the workflow status of a lead.
func (s *AdminService) UpdateLeadStatus(ctx context.Context, id string, status domain.LeadStatus) error {
	if !status.Valid() {
		return invalidStatus(status)
	}
	if err := s.leads.UpdateStatus(ctx, id, status); err != nil {
		return storeError(leadResource, err)
	}
	s.logger.Info("quote status updated", zap.String("quote_id", id), zap.String("status", string(status)))
	return nil
}

// DeleteLead removes a lead.
func (s *AdminService) DeleteLead(ctx context.Context, id string) error {
	if err := s.leads.Delete(ctx, id); err != nil {
		return storeError(leadResource, err)
	}
	s.logger.Info("quote deleted", zap.String("quote_id", id))
	return nil
}

func invalidStatus(status domain.LeadStatus) error {
	return apperrors.NewValidationError("invalid status", map[string]any{
		"status": string(status),
		"allowed": []string{
			string(domain.LeadStatusNew),
			string(domain.LeadStatusInProgress),
			string(domain.LeadStatusCompleted),
		},
	})
}
