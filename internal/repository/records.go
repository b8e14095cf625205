package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rpattn/agenthub/internal/query"
)

// Record constrains the pointer side of a domain type that embeds
// domain.Meta, letting the decode helpers stamp the row metadata back onto
// the decoded payload.
type Record[T any] interface {
	*T
	SetMeta(id uuid.UUID, createdAt, updatedAt time.Time, deleted bool)
}

func decodeDoc[T any, PT Record[T]](doc Document) (T, error) {
	var value T
	if err := json.Unmarshal(doc.Data, &value); err != nil {
		return value, fmt.Errorf("decode document %s: %w", doc.ID, err)
	}
	PT(&value).SetMeta(doc.ID, doc.CreatedAt, doc.UpdatedAt, doc.IsDeleted)
	return value, nil
}

func decodeDocs[T any, PT Record[T]](docs []Document) ([]T, error) {
	values := make([]T, len(docs))
	for i, doc := range docs {
		value, err := decodeDoc[T, PT](doc)
		if err != nil {
			return nil, err
		}
		values[i] = value
	}
	return values, nil
}

func findRecords[T any, PT Record[T]](ctx context.Context, store *Store, collection string, filter query.CompiledFilter, sort query.SortSpec, limit, offset int) ([]T, error) {
	docs, err := store.Find(ctx, collection, filter, sort, limit, offset)
	if err != nil {
		return nil, err
	}
	return decodeDocs[T, PT](docs)
}

func getRecord[T any, PT Record[T]](ctx context.Context, store *Store, collection string, id uuid.UUID) (T, error) {
	doc, err := store.Get(ctx, collection, id)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeDoc[T, PT](doc)
}

func getRecords[T any, PT Record[T]](ctx context.Context, store *Store, collection string, ids []uuid.UUID) ([]T, error) {
	docs, err := store.GetMany(ctx, collection, ids)
	if err != nil {
		return nil, err
	}
	return decodeDocs[T, PT](docs)
}

func insertRecord[T any, PT Record[T]](ctx context.Context, store *Store, collection string, value T) (T, error) {
	id := uuid.New()
	PT(&value).SetMeta(id, time.Now(), time.Now(), false)
	doc, err := store.Insert(ctx, collection, id, value)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeDoc[T, PT](doc)
}

func updateRecord[T any, PT Record[T]](ctx context.Context, store *Store, collection string, id uuid.UUID, value T) (T, error) {
	doc, err := store.Update(ctx, collection, id, value)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeDoc[T, PT](doc)
}
