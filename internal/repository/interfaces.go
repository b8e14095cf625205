package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/rpattn/agenthub/internal/domain"
	"github.com/rpattn/agenthub/internal/query"
)

// Collection names. Every repository addresses exactly one of these tables.
const (
	CollectionAgentRequests   = "agent_requests"
	CollectionDeliveredAgents = "delivered_agents"
	CollectionAgents          = "agents"
	CollectionUsers           = "users"
	CollectionCompanies       = "companies"
	CollectionIntegrations    = "integrations"
	CollectionNotifications   = "notifications"
	CollectionQueries         = "queries"
)

// AgentRequestRepository defines persistence for agent requests.
type AgentRequestRepository interface {
	Create(ctx context.Context, req domain.AgentRequest) (domain.AgentRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.AgentRequest, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.AgentRequest, error)
	List(ctx context.Context, filter query.CompiledFilter, sort query.SortSpec, limit, offset int) ([]domain.AgentRequest, error)
	Count(ctx context.Context, filter query.CompiledFilter) (int64, error)
	Update(ctx context.Context, req domain.AgentRequest) (domain.AgentRequest, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// DeliveredAgentRepository defines persistence for delivered agents.
type DeliveredAgentRepository interface {
	Create(ctx context.Context, delivered domain.DeliveredAgent) (domain.DeliveredAgent, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.DeliveredAgent, error)
	GetByRequestIDs(ctx context.Context, requestIDs []uuid.UUID) ([]domain.DeliveredAgent, error)
	ExistsForRequest(ctx context.Context, requestID uuid.UUID) (bool, error)
	List(ctx context.Context, filter query.CompiledFilter, sort query.SortSpec, limit, offset int) ([]domain.DeliveredAgent, error)
	Count(ctx context.Context, filter query.CompiledFilter) (int64, error)
	Update(ctx context.Context, delivered domain.DeliveredAgent) (domain.DeliveredAgent, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// AgentRepository defines read access to the agent catalog.
type AgentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Agent, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Agent, error)
	List(ctx context.Context, filter query.CompiledFilter, sort query.SortSpec, limit, offset int) ([]domain.Agent, error)
	Count(ctx context.Context, filter query.CompiledFilter) (int64, error)
}

// UserRepository defines read access to user accounts.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error)
}

// CompanyRepository defines read access to companies.
type CompanyRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Company, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Company, error)
	List(ctx context.Context, filter query.CompiledFilter, sort query.SortSpec, limit, offset int) ([]domain.Company, error)
	Count(ctx context.Context, filter query.CompiledFilter) (int64, error)
}

// IntegrationRepository defines read access to workflow integrations.
type IntegrationRepository interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Integration, error)
	List(ctx context.Context, filter query.CompiledFilter, sort query.SortSpec, limit, offset int) ([]domain.Integration, error)
	Count(ctx context.Context, filter query.CompiledFilter) (int64, error)
}

// NotificationRepository defines read access to notifications.
type NotificationRepository interface {
	List(ctx context.Context, filter query.CompiledFilter, sort query.SortSpec, limit, offset int) ([]domain.Notification, error)
	Count(ctx context.Context, filter query.CompiledFilter) (int64, error)
}

// CustomerQueryRepository defines read access to customer enquiries.
type CustomerQueryRepository interface {
	List(ctx context.Context, filter query.CompiledFilter, sort query.SortSpec, limit, offset int) ([]domain.CustomerQuery, error)
	Count(ctx context.Context, filter query.CompiledFilter) (int64, error)
}
