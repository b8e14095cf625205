package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/rpattn/agenthub/internal/domain"
	"github.com/rpattn/agenthub/internal/query"
)

type agentRequestRepository struct {
	store *Store
}

// NewAgentRequestRepository creates a repository over the agent_requests
// collection.
func NewAgentRequestRepository(store *Store) AgentRequestRepository {
	return &agentRequestRepository{store: store}
}

func (r *agentRequestRepository) Create(ctx context.Context, req domain.AgentRequest) (domain.AgentRequest, error) {
	return insertRecord[domain.AgentRequest](ctx, r.store, CollectionAgentRequests, req)
}

func (r *agentRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.AgentRequest, error) {
	return getRecord[domain.AgentRequest](ctx, r.store, CollectionAgentRequests, id)
}

func (r *agentRequestRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.AgentRequest, error) {
	return getRecords[domain.AgentRequest](ctx, r.store, CollectionAgentRequests, ids)
}

func (r *agentRequestRepository) List(ctx context.Context, filter query.CompiledFilter, sort query.SortSpec, limit, offset int) ([]domain.AgentRequest, error) {
	return findRecords[domain.AgentRequest](ctx, r.store, CollectionAgentRequests, filter, sort, limit, offset)
}

func (r *agentRequestRepository) Count(ctx context.Context, filter query.CompiledFilter) (int64, error) {
	return r.store.Count(ctx, CollectionAgentRequests, filter)
}

func (r *agentRequestRepository) Update(ctx context.Context, req domain.AgentRequest) (domain.AgentRequest, error) {
	return updateRecord(ctx, r.store, CollectionAgentRequests, req.ID, req)
}

func (r *agentRequestRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.store.SoftDelete(ctx, CollectionAgentRequests, id)
}
