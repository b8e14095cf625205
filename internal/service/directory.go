package service

import (
	"context"

	"github.com/rpattn/agenthub/internal/auth"
	"github.com/rpattn/agenthub/internal/domain"
	"github.com/rpattn/agenthub/internal/hydrate"
	"github.com/rpattn/agenthub/internal/query"
	"github.com/rpattn/agenthub/internal/repository"
)

// DirectoryService serves the list-only collections: the agent catalog,
// companies, integrations, notifications and customer enquiries. All of them
// ride the same query engine; only their scoping and hydration differ.
type DirectoryService struct {
	agents        repository.AgentRepository
	companies     repository.CompanyRepository
	integrations  repository.IntegrationRepository
	notifications repository.NotificationRepository
	queries       repository.CustomerQueryRepository
	hydrator      *hydrate.Hydrator
}

// NewDirectoryService wires the directory service.
func NewDirectoryService(
	agents repository.AgentRepository,
	companies repository.CompanyRepository,
	integrations repository.IntegrationRepository,
	notifications repository.NotificationRepository,
	queries repository.CustomerQueryRepository,
	hydrator *hydrate.Hydrator,
) *DirectoryService {
	return &DirectoryService{
		agents:        agents,
		companies:     companies,
		integrations:  integrations,
		notifications: notifications,
		queries:       queries,
		hydrator:      hydrator,
	}
}

// Agents lists the catalog. The catalog is global; no tenancy scope applies.
func (s *DirectoryService) Agents(ctx context.Context, params ListParams) (ListResult[domain.Agent], error) {
	return runList(ctx, params, nil, s.agents.Count, s.agents.List)
}

// Companies lists companies with their owner projection. Company-scoped
// principals only see their own company.
func (s *DirectoryService) Companies(ctx context.Context, principal auth.Principal, params ListParams) (ListResult[domain.CompanyView], error) {
	var scope []query.Condition
	if conds := principal.Scope(); len(conds) > 0 {
		scope = []query.Condition{{Field: "id", Operator: query.OpEq, Value: principal.CompanyID.String()}}
	}
	result, err := runList(ctx, params, scope, s.companies.Count, s.companies.List)
	if err != nil {
		return ListResult[domain.CompanyView]{}, err
	}
	views, err := s.hydrator.Companies(ctx, result.Items)
	if err != nil {
		return ListResult[domain.CompanyView]{}, err
	}
	return withItems(result, views), nil
}

// Integrations lists the integration directory. Global, like the catalog.
func (s *DirectoryService) Integrations(ctx context.Context, params ListParams) (ListResult[domain.Integration], error) {
	return runList(ctx, params, nil, s.integrations.Count, s.integrations.List)
}

// Notifications lists a tenant's notifications.
func (s *DirectoryService) Notifications(ctx context.Context, principal auth.Principal, params ListParams) (ListResult[domain.Notification], error) {
	return runList(ctx, params, principal.Scope(), s.notifications.Count, s.notifications.List)
}

// CustomerQueries lists customer enquiries.
func (s *DirectoryService) CustomerQueries(ctx context.Context, principal auth.Principal, params ListParams) (ListResult[domain.CustomerQuery], error) {
	return runList(ctx, params, principal.Scope(), s.queries.Count, s.queries.List)
}
