package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rpattn/agenthub/internal/auth"
	"github.com/rpattn/agenthub/internal/domain"
	"github.com/rpattn/agenthub/internal/hydrate"
	"github.com/rpattn/agenthub/internal/lifecycle"
	"github.com/rpattn/agenthub/internal/repository"
)

// RequestService owns the agent request lifecycle: submission with computed
// pricing, listing through the query engine, updates including the
// fulfillment transition, and soft deletion.
type RequestService struct {
	requests  repository.AgentRequestRepository
	delivered repository.DeliveredAgentRepository
	agents    repository.AgentRepository
	companies repository.CompanyRepository
	hydrator  *hydrate.Hydrator
	log       *zap.Logger
}

// NewRequestService wires the request service.
func NewRequestService(
	requests repository.AgentRequestRepository,
	delivered repository.DeliveredAgentRepository,
	agents repository.AgentRepository,
	companies repository.CompanyRepository,
	hydrator *hydrate.Hydrator,
	log *zap.Logger,
) *RequestService {
	return &RequestService{
		requests:  requests,
		delivered: delivered,
		agents:    agents,
		companies: companies,
		hydrator:  hydrator,
		log:       log,
	}
}

// SubmitRequestInput is a submission: a catalog agent plus the names of the
// workflows the tenant wants.
type SubmitRequestInput struct {
	AgentID     uuid.UUID
	Workflows   []string
	Title       string
	Description string
}

// Submit creates an agent request with a server-computed invoice and the
// Submitted status, then returns the hydrated result.
func (s *RequestService) Submit(ctx context.Context, principal auth.Principal, input SubmitRequestInput) (domain.AgentRequestView, error) {
	agent, err := s.agents.GetByID(ctx, input.AgentID)
	if err != nil {
		return domain.AgentRequestView{}, fmt.Errorf("resolve agent %s: %w", input.AgentID, err)
	}

	if len(input.Workflows) == 0 {
		return domain.AgentRequestView{}, fmt.Errorf("%w: at least one workflow must be selected", domain.ErrInvalidInput)
	}
	selected := make([]domain.Workflow, 0, len(input.Workflows))
	for _, name := range input.Workflows {
		wf, ok := agent.WorkflowByName(name)
		if !ok {
			return domain.AgentRequestView{}, fmt.Errorf("%w: agent %s has no workflow %q", domain.ErrInvalidInput, agent.ID, name)
		}
		selected = append(selected, wf)
	}

	title := input.Title
	if title == "" {
		title = agent.Title
	}
	description := input.Description
	if description == "" {
		description = agent.Description
	}

	req := domain.AgentRequest{
		CompanyID:   principal.CompanyID,
		AgentID:     agent.ID,
		AssistantID: agent.AssistantID,
		Title:       title,
		Description: description,
		Image:       agent.Image,
		Workflows:   selected,
		Invoice:     domain.BuildInvoice(agent, selected),
		Status:      domain.RequestStatusSubmitted,
		CreatedByID: principal.UserID,
		UpdatedByID: principal.UserID,
	}

	created, err := s.requests.Create(ctx, req)
	if err != nil {
		return domain.AgentRequestView{}, fmt.Errorf("create agent request: %w", err)
	}

	s.log.Info("agent request submitted",
		zap.String("request_id", created.ID.String()),
		zap.String("company_id", created.CompanyID.String()),
		zap.Float64("invoice_total", created.Invoice.Total))

	return s.hydrator.AgentRequest(ctx, created)
}

// List returns agent requests through the query engine, hydrated, scoped to
// the principal's tenancy.
func (s *RequestService) List(ctx context.Context, principal auth.Principal, params ListParams) (ListResult[domain.AgentRequestView], error) {
	result, err := runList(ctx, params, principal.Scope(), s.requests.Count, s.requests.List)
	if err != nil {
		return ListResult[domain.AgentRequestView]{}, err
	}
	views, err := s.hydrator.AgentRequests(ctx, result.Items)
	if err != nil {
		return ListResult[domain.AgentRequestView]{}, err
	}
	return withItems(result, views), nil
}

// Get returns one hydrated agent request.
func (s *RequestService) Get(ctx context.Context, principal auth.Principal, id uuid.UUID) (domain.AgentRequestView, error) {
	req, err := s.loadScoped(ctx, principal, id)
	if err != nil {
		return domain.AgentRequestView{}, err
	}
	return s.hydrator.AgentRequest(ctx, req)
}

// UpdateRequestInput carries a partial update. A nil field is untouched.
type UpdateRequestInput struct {
	Title       *string
	Description *string
	Image       *string
	Status      *domain.RequestStatus
}

// Update applies field updates and, when the status changes, drives the
// lifecycle machine. Entering Delivered derives a DeliveredAgent at most
// once: a pre-existing one fails the transition with ErrAlreadyDelivered.
// The result is always re-hydrated before returning.
func (s *RequestService) Update(ctx context.Context, principal auth.Principal, id uuid.UUID, input UpdateRequestInput) (domain.AgentRequestView, error) {
	req, err := s.loadScoped(ctx, principal, id)
	if err != nil {
		return domain.AgentRequestView{}, err
	}

	if input.Title != nil {
		req.Title = *input.Title
	}
	if input.Description != nil {
		req.Description = *input.Description
	}
	if input.Image != nil {
		req.Image = *input.Image
	}
	req.UpdatedByID = principal.UserID

	if input.Status != nil && *input.Status != req.Status {
		machine := lifecycle.NewRequestMachine(req.Status, func(ctx context.Context) error {
			return s.deliver(ctx, principal, req)
		})
		if err := machine.Transition(ctx, *input.Status); err != nil {
			return domain.AgentRequestView{}, err
		}
		req.Status = machine.Current()
	}

	updated, err := s.requests.Update(ctx, req)
	if err != nil {
		return domain.AgentRequestView{}, fmt.Errorf("update agent request: %w", err)
	}

	return s.hydrator.AgentRequest(ctx, updated)
}

// Delete soft-deletes an agent request.
func (s *RequestService) Delete(ctx context.Context, principal auth.Principal, id uuid.UUID) error {
	if _, err := s.loadScoped(ctx, principal, id); err != nil {
		return err
	}
	return s.requests.SoftDelete(ctx, id)
}

// ExportRows returns the full filtered, sorted, hydrated set for export.
func (s *RequestService) ExportRows(ctx context.Context, principal auth.Principal, params ListParams) ([]domain.AgentRequestView, error) {
	params.Page = nil
	params.RPP = nil
	result, err := s.List(ctx, principal, params)
	if err != nil {
		return nil, err
	}
	return result.Items, nil
}

// deliver is the fulfillment side effect: the at-most-once check followed by
// the derived delivered agent. The check is a plain read, so concurrent
// duplicate transitions on the same request remain a documented race.
func (s *RequestService) deliver(ctx context.Context, principal auth.Principal, req domain.AgentRequest) error {
	exists, err := s.delivered.ExistsForRequest(ctx, req.ID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("request %s: %w", req.ID, domain.ErrAlreadyDelivered)
	}

	ownerID := uuid.Nil
	company, err := s.companies.GetByID(ctx, req.CompanyID)
	switch {
	case err == nil:
		ownerID = company.OwnerID
	case !errors.Is(err, domain.ErrNotFound):
		// A dangling company reference degrades to a nil owner, but a store
		// failure must fail the transition rather than persist a wrong owner.
		return fmt.Errorf("resolve company %s: %w", req.CompanyID, err)
	}

	delivered, err := s.delivered.Create(ctx, domain.DeliveredFromRequest(req, ownerID, principal.UserID))
	if err != nil {
		return fmt.Errorf("create delivered agent: %w", err)
	}

	s.log.Info("agent request delivered",
		zap.String("request_id", req.ID.String()),
		zap.String("delivered_id", delivered.ID.String()))
	return nil
}

// loadScoped loads a request and hides other tenants' documents behind
// ErrNotFound rather than revealing their existence.
func (s *RequestService) loadScoped(ctx context.Context, principal auth.Principal, id uuid.UUID) (domain.AgentRequest, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return domain.AgentRequest{}, err
	}
	if len(principal.Scope()) > 0 && req.CompanyID != principal.CompanyID {
		return domain.AgentRequest{}, fmt.Errorf("agent request %s: %w", id, domain.ErrNotFound)
	}
	return req, nil
}
