package hydrate

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rpattn/agenthub/internal/domain"
	"github.com/rpattn/agenthub/internal/repository"
)

// Step is one left-outer join of a hydration pipeline. Steps mutate the rows
// in place and never reorder, drop or deduplicate them.
type Step[T any] struct {
	Name string
	Run  func(ctx context.Context, ld *Loaders, rows []T) error
}

// Pipeline runs an ordered list of join steps over a page of rows.
type Pipeline[T any] struct {
	steps []Step[T]
}

// Run executes the steps in order. The pipeline is read-only with respect to
// the stores; a failing step aborts the pass.
func (p Pipeline[T]) Run(ctx context.Context, ld *Loaders, rows []T) error {
	for _, step := range p.steps {
		if err := step.Run(ctx, ld, rows); err != nil {
			return fmt.Errorf("hydrate %s: %w", step.Name, err)
		}
	}
	return nil
}

// Hydrator expands foreign-key references on pages of base documents into
// embedded read models. All expansion is transient; nothing it produces is
// written back. Every join step gathers the reference ids of the whole page
// before resolving them, so a page costs one fetch per referenced collection.
type Hydrator struct {
	agents       repository.AgentRepository
	users        repository.UserRepository
	companies    repository.CompanyRepository
	integrations repository.IntegrationRepository
	requests     repository.AgentRequestRepository
	delivered    repository.DeliveredAgentRepository
}

// New creates a hydrator over the reference repositories.
func New(
	agents repository.AgentRepository,
	users repository.UserRepository,
	companies repository.CompanyRepository,
	integrations repository.IntegrationRepository,
	requests repository.AgentRequestRepository,
	delivered repository.DeliveredAgentRepository,
) *Hydrator {
	return &Hydrator{
		agents:       agents,
		users:        users,
		companies:    companies,
		integrations: integrations,
		requests:     requests,
		delivered:    delivered,
	}
}

func (h *Hydrator) loaders() *Loaders {
	return newLoaders(h.agents, h.users, h.companies, h.integrations, h.requests, h.delivered)
}

// AgentRequests hydrates a page of agent requests in their given order.
func (h *Hydrator) AgentRequests(ctx context.Context, reqs []domain.AgentRequest) ([]domain.AgentRequestView, error) {
	views := make([]*domain.AgentRequestView, len(reqs))
	for i, req := range reqs {
		views[i] = &domain.AgentRequestView{AgentRequest: req}
	}

	pipeline := Pipeline[*domain.AgentRequestView]{steps: []Step[*domain.AgentRequestView]{
		{Name: "agent", Run: h.attachRequestAgent},
		{Name: "audit_users", Run: h.attachRequestUsers},
		{Name: "company", Run: h.attachRequestCompany},
		{Name: "delivered_agent", Run: h.attachRequestDelivered},
	}}
	if err := pipeline.Run(ctx, h.loaders(), views); err != nil {
		return nil, err
	}

	result := make([]domain.AgentRequestView, len(views))
	for i, view := range views {
		result[i] = *view
	}
	return result, nil
}

// AgentRequest hydrates a single request.
func (h *Hydrator) AgentRequest(ctx context.Context, req domain.AgentRequest) (domain.AgentRequestView, error) {
	views, err := h.AgentRequests(ctx, []domain.AgentRequest{req})
	if err != nil {
		return domain.AgentRequestView{}, err
	}
	return views[0], nil
}

// DeliveredAgents hydrates a page of delivered agents in their given order.
func (h *Hydrator) DeliveredAgents(ctx context.Context, rows []domain.DeliveredAgent) ([]domain.DeliveredAgentView, error) {
	views := make([]*domain.DeliveredAgentView, len(rows))
	for i, row := range rows {
		views[i] = &domain.DeliveredAgentView{DeliveredAgent: row}
	}

	pipeline := Pipeline[*domain.DeliveredAgentView]{steps: []Step[*domain.DeliveredAgentView]{
		{Name: "agent", Run: h.attachDeliveredAgentRef},
		{Name: "audit_users", Run: h.attachDeliveredUsers},
		{Name: "company", Run: h.attachDeliveredCompany},
		{Name: "request", Run: h.attachDeliveredRequest},
	}}
	if err := pipeline.Run(ctx, h.loaders(), views); err != nil {
		return nil, err
	}

	result := make([]domain.DeliveredAgentView, len(views))
	for i, view := range views {
		result[i] = *view
	}
	return result, nil
}

// DeliveredAgent hydrates a single delivered agent.
func (h *Hydrator) DeliveredAgent(ctx context.Context, row domain.DeliveredAgent) (domain.DeliveredAgentView, error) {
	views, err := h.DeliveredAgents(ctx, []domain.DeliveredAgent{row})
	if err != nil {
		return domain.DeliveredAgentView{}, err
	}
	return views[0], nil
}

// Companies hydrates company rows with their owner's public projection.
func (h *Hydrator) Companies(ctx context.Context, rows []domain.Company) ([]domain.CompanyView, error) {
	ld := h.loaders()
	ownerIDs := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ownerIDs = append(ownerIDs, row.OwnerID)
	}
	owners, err := loadMap[domain.User](ctx, ld.Users, ownerIDs)
	if err != nil {
		return nil, err
	}

	views := make([]domain.CompanyView, len(rows))
	for i, row := range rows {
		views[i] = domain.CompanyView{Company: row, Owner: publicUserFrom(owners, row.OwnerID)}
	}
	return views, nil
}

func (h *Hydrator) attachRequestAgent(ctx context.Context, ld *Loaders, rows []*domain.AgentRequestView) error {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.AgentID)
	}
	agents, err := agentViews(ctx, ld, ids)
	if err != nil {
		return err
	}
	for _, row := range rows {
		view, ok := agents[row.AgentID]
		if !ok {
			continue
		}
		row.Agent = &view
	}
	return nil
}

func (h *Hydrator) attachRequestUsers(ctx context.Context, ld *Loaders, rows []*domain.AgentRequestView) error {
	ids := make([]uuid.UUID, 0, len(rows)*2)
	for _, row := range rows {
		ids = append(ids, row.CreatedByID, row.UpdatedByID)
	}
	users, err := loadMap[domain.User](ctx, ld.Users, ids)
	if err != nil {
		return err
	}
	for _, row := range rows {
		row.CreatedBy = publicUserFrom(users, row.CreatedByID)
		row.UpdatedBy = publicUserFrom(users, row.UpdatedByID)
	}
	return nil
}

func (h *Hydrator) attachRequestCompany(ctx context.Context, ld *Loaders, rows []*domain.AgentRequestView) error {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.CompanyID)
	}
	companies, err := companyViews(ctx, ld, ids)
	if err != nil {
		return err
	}
	for _, row := range rows {
		view, ok := companies[row.CompanyID]
		if !ok {
			continue
		}
		row.Company = &view
	}
	return nil
}

func (h *Hydrator) attachRequestDelivered(ctx context.Context, ld *Loaders, rows []*domain.AgentRequestView) error {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	delivered, err := loadMap[domain.DeliveredAgent](ctx, ld.DeliveredByRequest, ids)
	if err != nil {
		return err
	}
	for _, row := range rows {
		d, ok := delivered[row.ID]
		if !ok {
			continue
		}
		row.DeliveredAgent = &d
	}
	return nil
}

func (h *Hydrator) attachDeliveredAgentRef(ctx context.Context, ld *Loaders, rows []*domain.DeliveredAgentView) error {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.AgentID)
	}
	agents, err := agentViews(ctx, ld, ids)
	if err != nil {
		return err
	}
	for _, row := range rows {
		view, ok := agents[row.AgentID]
		if !ok {
			continue
		}
		row.Agent = &view
	}
	return nil
}

func (h *Hydrator) attachDeliveredUsers(ctx context.Context, ld *Loaders, rows []*domain.DeliveredAgentView) error {
	ids := make([]uuid.UUID, 0, len(rows)*2)
	for _, row := range rows {
		ids = append(ids, row.CreatedByID, row.UpdatedByID)
	}
	users, err := loadMap[domain.User](ctx, ld.Users, ids)
	if err != nil {
		return err
	}
	for _, row := range rows {
		row.CreatedBy = publicUserFrom(users, row.CreatedByID)
		row.UpdatedBy = publicUserFrom(users, row.UpdatedByID)
	}
	return nil
}

func (h *Hydrator) attachDeliveredCompany(ctx context.Context, ld *Loaders, rows []*domain.DeliveredAgentView) error {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.CompanyID)
	}
	companies, err := companyViews(ctx, ld, ids)
	if err != nil {
		return err
	}
	for _, row := range rows {
		view, ok := companies[row.CompanyID]
		if !ok {
			continue
		}
		row.Company = &view
	}
	return nil
}

func (h *Hydrator) attachDeliveredRequest(ctx context.Context, ld *Loaders, rows []*domain.DeliveredAgentView) error {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.RequestID)
	}
	requests, err := loadMap[domain.AgentRequest](ctx, ld.Requests, ids)
	if err != nil {
		return err
	}
	for _, row := range rows {
		req, ok := requests[row.RequestID]
		if !ok {
			continue
		}
		row.Request = &req
	}
	return nil
}

// agentViews expands a set of catalog agents: the agents load in one batch,
// the full integration set their workflows mention loads in a second, then
// each workflow keeps only its own integrations.
func agentViews(ctx context.Context, ld *Loaders, ids []uuid.UUID) (map[uuid.UUID]domain.AgentView, error) {
	agents, err := loadMap[domain.Agent](ctx, ld.Agents, ids)
	if err != nil {
		return nil, err
	}

	integrationIDs := make([]uuid.UUID, 0)
	for _, agent := range agents {
		for _, wf := range agent.Workflows {
			integrationIDs = append(integrationIDs, wf.IntegrationIDs...)
		}
	}
	integrations, err := loadMap[domain.Integration](ctx, ld.Integrations, integrationIDs)
	if err != nil {
		return nil, err
	}

	available := make([]domain.Integration, 0, len(integrations))
	for _, integration := range integrations {
		available = append(available, integration)
	}

	views := make(map[uuid.UUID]domain.AgentView, len(agents))
	for id, agent := range agents {
		views[id] = domain.AgentView{
			Agent:     agent,
			Workflows: FilterWorkflowIntegrations(agent.Workflows, available),
		}
	}
	return views, nil
}

// FilterWorkflowIntegrations assigns each workflow only the integrations its
// own id list references, in that list's order. Integrations belonging to
// sibling workflows never leak across.
func FilterWorkflowIntegrations(workflows []domain.Workflow, available []domain.Integration) []domain.WorkflowView {
	byID := make(map[uuid.UUID]domain.Integration, len(available))
	for _, integration := range available {
		byID[integration.ID] = integration
	}

	views := make([]domain.WorkflowView, len(workflows))
	for i, wf := range workflows {
		own := make([]domain.Integration, 0, len(wf.IntegrationIDs))
		for _, id := range wf.IntegrationIDs {
			if integration, ok := byID[id]; ok {
				own = append(own, integration)
			}
		}
		views[i] = domain.WorkflowView{Workflow: wf, Integrations: own}
	}
	return views
}

// companyViews loads companies and their owners' public projections.
func companyViews(ctx context.Context, ld *Loaders, ids []uuid.UUID) (map[uuid.UUID]domain.CompanyView, error) {
	companies, err := loadMap[domain.Company](ctx, ld.Companies, ids)
	if err != nil {
		return nil, err
	}

	ownerIDs := make([]uuid.UUID, 0, len(companies))
	for _, company := range companies {
		ownerIDs = append(ownerIDs, company.OwnerID)
	}
	owners, err := loadMap[domain.User](ctx, ld.Users, ownerIDs)
	if err != nil {
		return nil, err
	}

	views := make(map[uuid.UUID]domain.CompanyView, len(companies))
	for id, company := range companies {
		views[id] = domain.CompanyView{Company: company, Owner: publicUserFrom(owners, company.OwnerID)}
	}
	return views, nil
}

func publicUserFrom(users map[uuid.UUID]domain.User, id uuid.UUID) *domain.PublicUser {
	user, ok := users[id]
	if !ok {
		return nil
	}
	public := user.Public()
	return &public
}
