package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/rpattn/agenthub/internal/domain"
	"github.com/rpattn/agenthub/internal/query"
)

// memRequests is an in-memory AgentRequestRepository that records the last
// compiled filter it saw so tests can assert on scoping.
type memRequests struct {
	mu         sync.Mutex
	rows       map[uuid.UUID]domain.AgentRequest
	order      []uuid.UUID
	lastFilter query.CompiledFilter
}

func newMemRequests() *memRequests {
	return &memRequests{rows: map[uuid.UUID]domain.AgentRequest{}}
}

func (m *memRequests) Create(_ context.Context, req domain.AgentRequest) (domain.AgentRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	req.ID = uuid.New()
	m.rows[req.ID] = req
	m.order = append(m.order, req.ID)
	return req, nil
}

func (m *memRequests) GetByID(_ context.Context, id uuid.UUID) (domain.AgentRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.rows[id]
	if !ok || req.IsDeleted {
		return domain.AgentRequest{}, domain.ErrNotFound
	}
	return req, nil
}

func (m *memRequests) GetByIDs(_ context.Context, ids []uuid.UUID) ([]domain.AgentRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.AgentRequest
	for _, id := range ids {
		if req, ok := m.rows[id]; ok {
			out = append(out, req)
		}
	}
	return out, nil
}

func (m *memRequests) List(_ context.Context, filter query.CompiledFilter, _ query.SortSpec, _, _ int) ([]domain.AgentRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastFilter = filter
	out := make([]domain.AgentRequest, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.rows[id])
	}
	return out, nil
}

func (m *memRequests) Count(_ context.Context, filter query.CompiledFilter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastFilter = filter
	return int64(len(m.order)), nil
}

func (m *memRequests) Update(_ context.Context, req domain.AgentRequest) (domain.AgentRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[req.ID] = req
	return req, nil
}

func (m *memRequests) SoftDelete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	req.IsDeleted = true
	m.rows[id] = req
	return nil
}

type memDelivered struct {
	mu         sync.Mutex
	rows       map[uuid.UUID]domain.DeliveredAgent
	order      []uuid.UUID
	lastFilter query.CompiledFilter
}

func newMemDelivered() *memDelivered {
	return &memDelivered{rows: map[uuid.UUID]domain.DeliveredAgent{}}
}

func (m *memDelivered) Create(_ context.Context, d domain.DeliveredAgent) (domain.DeliveredAgent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.ID = uuid.New()
	m.rows[d.ID] = d
	m.order = append(m.order, d.ID)
	return d, nil
}

func (m *memDelivered) GetByID(_ context.Context, id uuid.UUID) (domain.DeliveredAgent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.rows[id]
	if !ok || d.IsDeleted {
		return domain.DeliveredAgent{}, domain.ErrNotFound
	}
	return d, nil
}

func (m *memDelivered) GetByRequestIDs(_ context.Context, requestIDs []uuid.UUID) ([]domain.DeliveredAgent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.DeliveredAgent
	for _, reqID := range requestIDs {
		for _, id := range m.order {
			if m.rows[id].RequestID == reqID {
				out = append(out, m.rows[id])
			}
		}
	}
	return out, nil
}

func (m *memDelivered) ExistsForRequest(_ context.Context, requestID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.rows {
		if d.RequestID == requestID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memDelivered) List(_ context.Context, filter query.CompiledFilter, _ query.SortSpec, _, _ int) ([]domain.DeliveredAgent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastFilter = filter
	out := make([]domain.DeliveredAgent, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.rows[id])
	}
	return out, nil
}

func (m *memDelivered) Count(_ context.Context, filter query.CompiledFilter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastFilter = filter
	return int64(len(m.order)), nil
}

func (m *memDelivered) Update(_ context.Context, d domain.DeliveredAgent) (domain.DeliveredAgent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[d.ID] = d
	return d, nil
}

func (m *memDelivered) SoftDelete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	d.IsDeleted = true
	m.rows[id] = d
	return nil
}

func (m *memDelivered) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

type memAgents struct{ rows map[uuid.UUID]domain.Agent }

func (m *memAgents) GetByID(_ context.Context, id uuid.UUID) (domain.Agent, error) {
	if a, ok := m.rows[id]; ok {
		return a, nil
	}
	return domain.Agent{}, domain.ErrNotFound
}

func (m *memAgents) GetByIDs(_ context.Context, ids []uuid.UUID) ([]domain.Agent, error) {
	var out []domain.Agent
	for _, id := range ids {
		if a, ok := m.rows[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAgents) List(context.Context, query.CompiledFilter, query.SortSpec, int, int) ([]domain.Agent, error) {
	out := make([]domain.Agent, 0, len(m.rows))
	for _, a := range m.rows {
		out = append(out, a)
	}
	return out, nil
}

func (m *memAgents) Count(context.Context, query.CompiledFilter) (int64, error) {
	return int64(len(m.rows)), nil
}

type memUsers struct{ rows map[uuid.UUID]domain.User }

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (domain.User, error) {
	if u, ok := m.rows[id]; ok {
		return u, nil
	}
	return domain.User{}, domain.ErrNotFound
}

func (m *memUsers) GetByIDs(_ context.Context, ids []uuid.UUID) ([]domain.User, error) {
	var out []domain.User
	for _, id := range ids {
		if u, ok := m.rows[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

type memCompanies struct {
	rows map[uuid.UUID]domain.Company
	err  error
}

func (m *memCompanies) GetByID(_ context.Context, id uuid.UUID) (domain.Company, error) {
	if m.err != nil {
		return domain.Company{}, m.err
	}
	if c, ok := m.rows[id]; ok {
		return c, nil
	}
	return domain.Company{}, domain.ErrNotFound
}

func (m *memCompanies) GetByIDs(_ context.Context, ids []uuid.UUID) ([]domain.Company, error) {
	var out []domain.Company
	for _, id := range ids {
		if c, ok := m.rows[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCompanies) List(context.Context, query.CompiledFilter, query.SortSpec, int, int) ([]domain.Company, error) {
	out := make([]domain.Company, 0, len(m.rows))
	for _, c := range m.rows {
		out = append(out, c)
	}
	return out, nil
}

func (m *memCompanies) Count(context.Context, query.CompiledFilter) (int64, error) {
	return int64(len(m.rows)), nil
}

type memIntegrations struct{ rows map[uuid.UUID]domain.Integration }

func (m *memIntegrations) GetByIDs(_ context.Context, ids []uuid.UUID) ([]domain.Integration, error) {
	var out []domain.Integration
	for _, id := range ids {
		if in, ok := m.rows[id]; ok {
			out = append(out, in)
		}
	}
	return out, nil
}

func (m *memIntegrations) List(context.Context, query.CompiledFilter, query.SortSpec, int, int) ([]domain.Integration, error) {
	return nil, nil
}

func (m *memIntegrations) Count(context.Context, query.CompiledFilter) (int64, error) {
	return 0, nil
}
