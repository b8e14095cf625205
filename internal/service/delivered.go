package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rpattn/agenthub/internal/auth"
	"github.com/rpattn/agenthub/internal/domain"
	"github.com/rpattn/agenthub/internal/hydrate"
	"github.com/rpattn/agenthub/internal/repository"
)

// DeliveredService reads delivered agents and tracks their maintenance
// status. Delivered agents are only ever created by the fulfillment
// transition, never directly.
type DeliveredService struct {
	delivered repository.DeliveredAgentRepository
	hydrator  *hydrate.Hydrator
	log       *zap.Logger
}

// NewDeliveredService wires the delivered agent service.
func NewDeliveredService(delivered repository.DeliveredAgentRepository, hydrator *hydrate.Hydrator, log *zap.Logger) *DeliveredService {
	return &DeliveredService{delivered: delivered, hydrator: hydrator, log: log}
}

// List returns delivered agents through the query engine, hydrated.
func (s *DeliveredService) List(ctx context.Context, principal auth.Principal, params ListParams) (ListResult[domain.DeliveredAgentView], error) {
	result, err := runList(ctx, params, principal.Scope(), s.delivered.Count, s.delivered.List)
	if err != nil {
		return ListResult[domain.DeliveredAgentView]{}, err
	}
	views, err := s.hydrator.DeliveredAgents(ctx, result.Items)
	if err != nil {
		return ListResult[domain.DeliveredAgentView]{}, err
	}
	return withItems(result, views), nil
}

// Get returns one hydrated delivered agent.
func (s *DeliveredService) Get(ctx context.Context, principal auth.Principal, id uuid.UUID) (domain.DeliveredAgentView, error) {
	row, err := s.loadScoped(ctx, principal, id)
	if err != nil {
		return domain.DeliveredAgentView{}, err
	}
	return s.hydrator.DeliveredAgent(ctx, row)
}

// UpdateMaintenanceStatus moves a delivered agent between maintenance
// states. This is the only mutation delivered agents accept.
func (s *DeliveredService) UpdateMaintenanceStatus(ctx context.Context, principal auth.Principal, id uuid.UUID, status domain.MaintenanceStatus) (domain.DeliveredAgentView, error) {
	if !status.Valid() {
		return domain.DeliveredAgentView{}, fmt.Errorf("%w: unknown maintenance status %q", domain.ErrInvalidInput, status)
	}

	row, err := s.loadScoped(ctx, principal, id)
	if err != nil {
		return domain.DeliveredAgentView{}, err
	}

	row.MaintenanceStatus = status
	row.UpdatedByID = principal.UserID

	updated, err := s.delivered.Update(ctx, row)
	if err != nil {
		return domain.DeliveredAgentView{}, fmt.Errorf("update delivered agent: %w", err)
	}

	s.log.Info("maintenance status updated",
		zap.String("delivered_id", updated.ID.String()),
		zap.String("maintenance_status", string(status)))

	return s.hydrator.DeliveredAgent(ctx, updated)
}

func (s *DeliveredService) loadScoped(ctx context.Context, principal auth.Principal, id uuid.UUID) (domain.DeliveredAgent, error) {
	row, err := s.delivered.GetByID(ctx, id)
	if err != nil {
		return domain.DeliveredAgent{}, err
	}
	if len(principal.Scope()) > 0 && row.CompanyID != principal.CompanyID {
		return domain.DeliveredAgent{}, fmt.Errorf("delivered agent %s: %w", id, domain.ErrNotFound)
	}
	return row, nil
}
