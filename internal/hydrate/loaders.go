package hydrate

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader"

	"github.com/rpattn/agenthub/internal/domain"
	"github.com/rpattn/agenthub/internal/repository"
)

// Loaders batches reference lookups for one hydration pass. A fresh set is
// created per pass so the dataloader cache can never serve rows from an
// earlier request.
type Loaders struct {
	Agents             *dataloader.Loader
	Users              *dataloader.Loader
	Companies          *dataloader.Loader
	Integrations       *dataloader.Loader
	Requests           *dataloader.Loader
	DeliveredByRequest *dataloader.Loader
}

func newLoaders(
	agents repository.AgentRepository,
	users repository.UserRepository,
	companies repository.CompanyRepository,
	integrations repository.IntegrationRepository,
	requests repository.AgentRequestRepository,
	delivered repository.DeliveredAgentRepository,
) *Loaders {
	return &Loaders{
		Agents:             newBatchedLoader(agents.GetByIDs, func(a domain.Agent) uuid.UUID { return a.ID }),
		Users:              newBatchedLoader(users.GetByIDs, func(u domain.User) uuid.UUID { return u.ID }),
		Companies:          newBatchedLoader(companies.GetByIDs, func(c domain.Company) uuid.UUID { return c.ID }),
		Integrations:       newBatchedLoader(integrations.GetByIDs, func(i domain.Integration) uuid.UUID { return i.ID }),
		Requests:           newBatchedLoader(requests.GetByIDs, func(r domain.AgentRequest) uuid.UUID { return r.ID }),
		DeliveredByRequest: newBatchedLoader(delivered.GetByRequestIDs, func(d domain.DeliveredAgent) uuid.UUID { return d.RequestID }),
	}
}

// newBatchedLoader wraps a GetByIDs-style fetch in a dataloader batch
// function. Results come back in key order; a key the fetch did not return
// resolves to nil data, which the join steps treat as a left-outer miss.
func newBatchedLoader[T any](fetch func(context.Context, []uuid.UUID) ([]T, error), key func(T) uuid.UUID) *dataloader.Loader {
	batchFn := func(ctx context.Context, keys dataloader.Keys) []*dataloader.Result {
		ids := make([]uuid.UUID, len(keys))
		for i, k := range keys {
			id, err := uuid.Parse(k.String())
			if err != nil {
				return errorResults(keys, fmt.Errorf("invalid UUID key: %w", err))
			}
			ids[i] = id
		}

		values, err := fetch(ctx, ids)
		if err != nil {
			return errorResults(keys, err)
		}

		byID := make(map[uuid.UUID]T, len(values))
		for _, v := range values {
			byID[key(v)] = v
		}

		results := make([]*dataloader.Result, len(keys))
		for i, id := range ids {
			if v, ok := byID[id]; ok {
				results[i] = &dataloader.Result{Data: v}
			} else {
				results[i] = &dataloader.Result{Data: nil}
			}
		}
		return results
	}

	return dataloader.NewBatchedLoader(batchFn, dataloader.WithWait(5*time.Millisecond))
}

func errorResults(keys dataloader.Keys, err error) []*dataloader.Result {
	results := make([]*dataloader.Result, len(keys))
	for i := range results {
		results[i] = &dataloader.Result{Error: err}
	}
	return results
}

// loadMap resolves a reference set in one batch, returning the found
// documents keyed by id. Nil and duplicate ids are tolerated; missing ids are
// simply absent from the map. Each call issues at most one fetch per loader,
// so a join step over a page of rows costs one round trip, not one per row.
func loadMap[T any](ctx context.Context, loader *dataloader.Loader, ids []uuid.UUID) (map[uuid.UUID]T, error) {
	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return map[uuid.UUID]T{}, nil
	}

	keys := make(dataloader.Keys, len(unique))
	for i, id := range unique {
		keys[i] = dataloader.StringKey(id.String())
	}

	data, errs := loader.LoadMany(ctx, keys)()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	values := make(map[uuid.UUID]T, len(data))
	for i, item := range data {
		if item == nil {
			continue
		}
		value, ok := item.(T)
		if !ok {
			return nil, fmt.Errorf("loader returned unexpected type %T", item)
		}
		values[unique[i]] = value
	}
	return values, nil
}
