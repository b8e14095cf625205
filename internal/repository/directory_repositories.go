package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/rpattn/agenthub/internal/domain"
	"github.com/rpattn/agenthub/internal/query"
)

// The directory repositories cover the collections the query engine lists
// but that carry no lifecycle of their own: the agent catalog, users,
// companies, integrations, notifications and customer enquiries.

type agentRepository struct {
	store *Store
}

// NewAgentRepository creates a read-side repository over the agent catalog.
func NewAgentRepository(store *Store) AgentRepository {
	return &agentRepository{store: store}
}

func (r *agentRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Agent, error) {
	return getRecord[domain.Agent](ctx, r.store, CollectionAgents, id)
}

func (r *agentRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Agent, error) {
	return getRecords[domain.Agent](ctx, r.store, CollectionAgents, ids)
}

func (r *agentRepository) List(ctx context.Context, filter query.CompiledFilter, sort query.SortSpec, limit, offset int) ([]domain.Agent, error) {
	return findRecords[domain.Agent](ctx, r.store, CollectionAgents, filter, sort, limit, offset)
}

func (r *agentRepository) Count(ctx context.Context, filter query.CompiledFilter) (int64, error) {
	return r.store.Count(ctx, CollectionAgents, filter)
}

type userRepository struct {
	store *Store
}

// NewUserRepository creates a read-side repository over user accounts.
func NewUserRepository(store *Store) UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return getRecord[domain.User](ctx, r.store, CollectionUsers, id)
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error) {
	return getRecords[domain.User](ctx, r.store, CollectionUsers, ids)
}

type companyRepository struct {
	store *Store
}

// NewCompanyRepository creates a read-side repository over companies.
func NewCompanyRepository(store *Store) CompanyRepository {
	return &companyRepository{store: store}
}

func (r *companyRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Company, error) {
	return getRecord[domain.Company](ctx, r.store, CollectionCompanies, id)
}

func (r *companyRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Company, error) {
	return getRecords[domain.Company](ctx, r.store, CollectionCompanies, ids)
}

func (r *companyRepository) List(ctx context.Context, filter query.CompiledFilter, sort query.SortSpec, limit, offset int) ([]domain.Company, error) {
	return findRecords[domain.Company](ctx, r.store, CollectionCompanies, filter, sort, limit, offset)
}

func (r *companyRepository) Count(ctx context.Context, filter query.CompiledFilter) (int64, error) {
	return r.store.Count(ctx, CollectionCompanies, filter)
}

type integrationRepository struct {
	store *Store
}

// NewIntegrationRepository creates a read-side repository over integrations.
func NewIntegrationRepository(store *Store) IntegrationRepository {
	return &integrationRepository{store: store}
}

func (r *integrationRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Integration, error) {
	return getRecords[domain.Integration](ctx, r.store, CollectionIntegrations, ids)
}

func (r *integrationRepository) List(ctx context.Context, filter query.CompiledFilter, sort query.SortSpec, limit, offset int) ([]domain.Integration, error) {
	return findRecords[domain.Integration](ctx, r.store, CollectionIntegrations, filter, sort, limit, offset)
}

func (r *integrationRepository) Count(ctx context.Context, filter query.CompiledFilter) (int64, error) {
	return r.store.Count(ctx, CollectionIntegrations, filter)
}

type notificationRepository struct {
	store *Store
}

// NewNotificationRepository creates a read-side repository over notifications.
func NewNotificationRepository(store *Store) NotificationRepository {
	return &notificationRepository{store: store}
}

func (r *notificationRepository) List(ctx context.Context, filter query.CompiledFilter, sort query.SortSpec, limit, offset int) ([]domain.Notification, error) {
	return findRecords[domain.Notification](ctx, r.store, CollectionNotifications, filter, sort, limit, offset)
}

func (r *notificationRepository) Count(ctx context.Context, filter query.CompiledFilter) (int64, error) {
	return r.store.Count(ctx, CollectionNotifications, filter)
}

type customerQueryRepository struct {
	store *Store
}

// NewCustomerQueryRepository creates a read-side repository over enquiries.
func NewCustomerQueryRepository(store *Store) CustomerQueryRepository {
	return &customerQueryRepository{store: store}
}

func (r *customerQueryRepository) List(ctx context.Context, filter query.CompiledFilter, sort query.SortSpec, limit, offset int) ([]domain.CustomerQuery, error) {
	return findRecords[domain.CustomerQuery](ctx, r.store, CollectionQueries, filter, sort, limit, offset)
}

func (r *customerQueryRepository) Count(ctx context.Context, filter query.CompiledFilter) (int64, error) {
	return r.store.Count(ctx, CollectionQueries, filter)
}
