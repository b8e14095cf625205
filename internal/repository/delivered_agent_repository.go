package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rpattn/agenthub/internal/domain"
	"github.com/rpattn/agenthub/internal/query"
)

type deliveredAgentRepository struct {
	store *Store
}

// NewDeliveredAgentRepository creates a repository over the delivered_agents
// collection.
func NewDeliveredAgentRepository(store *Store) DeliveredAgentRepository {
	return &deliveredAgentRepository{store: store}
}

func (r *deliveredAgentRepository) Create(ctx context.Context, delivered domain.DeliveredAgent) (domain.DeliveredAgent, error) {
	return insertRecord[domain.DeliveredAgent](ctx, r.store, CollectionDeliveredAgents, delivered)
}

func (r *deliveredAgentRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.DeliveredAgent, error) {
	return getRecord[domain.DeliveredAgent](ctx, r.store, CollectionDeliveredAgents, id)
}

// GetByRequestIDs looks delivered agents up by the request that produced
// them, for reverse hydration of agent request pages.
func (r *deliveredAgentRepository) GetByRequestIDs(ctx context.Context, requestIDs []uuid.UUID) ([]domain.DeliveredAgent, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}
	members := make([]string, len(requestIDs))
	for i, id := range requestIDs {
		members[i] = id.String()
	}
	filter := query.CompiledFilter{
		Conditions: []query.Condition{{Field: "request_id", Operator: query.OpIn, Values: members}},
		Scope:      []query.Condition{{Field: query.FieldIsDeleted, Operator: query.OpEq, Value: "false"}},
	}
	return findRecords[domain.DeliveredAgent](ctx, r.store, CollectionDeliveredAgents, filter, nil, 0, 0)
}

// ExistsForRequest is the at-most-once pre-check of the fulfillment
// transition. It is a plain read; a unique constraint does not back it, so
// concurrent duplicate transitions remain a known race.
func (r *deliveredAgentRepository) ExistsForRequest(ctx context.Context, requestID uuid.UUID) (bool, error) {
	filter := query.CompiledFilter{
		Conditions: []query.Condition{{Field: "request_id", Operator: query.OpEq, Value: requestID.String()}},
		Scope:      []query.Condition{{Field: query.FieldIsDeleted, Operator: query.OpEq, Value: "false"}},
	}
	count, err := r.store.Count(ctx, CollectionDeliveredAgents, filter)
	if err != nil {
		return false, fmt.Errorf("check delivered agent for request %s: %w", requestID, err)
	}
	return count > 0, nil
}

func (r *deliveredAgentRepository) List(ctx context.Context, filter query.CompiledFilter, sort query.SortSpec, limit, offset int) ([]domain.DeliveredAgent, error) {
	return findRecords[domain.DeliveredAgent](ctx, r.store, CollectionDeliveredAgents, filter, sort, limit, offset)
}

func (r *deliveredAgentRepository) Count(ctx context.Context, filter query.CompiledFilter) (int64, error) {
	return r.store.Count(ctx, CollectionDeliveredAgents, filter)
}

func (r *deliveredAgentRepository) Update(ctx context.Context, delivered domain.DeliveredAgent) (domain.DeliveredAgent, error) {
	return updateRecord(ctx, r.store, CollectionDeliveredAgents, delivered.ID, delivered)
}

func (r *deliveredAgentRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.store.SoftDelete(ctx, CollectionDeliveredAgents, id)
}
