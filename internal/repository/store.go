package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rpattn/agenthub/internal/domain"
	"github.com/rpattn/agenthub/internal/query"
)

// DBTX is the subset of pgx the store needs. *pgxpool.Pool and pgx.Tx both
// satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store executes count/find/insert/update primitives over named collections.
// Each collection is a table of JSONB documents with id, created_at,
// updated_at and is_deleted as real columns; every other filterable field
// lives inside the data payload.
type Store struct {
	db DBTX
}

// NewStore creates a document store over the given connection.
func NewStore(db DBTX) *Store {
	return &Store{db: db}
}

// Document is one raw collection row.
type Document struct {
	ID        uuid.UUID
	Data      json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
	IsDeleted bool
}

// metaColumns are addressable directly instead of through the JSONB payload.
var metaColumns = map[string]struct{}{
	"id":         {},
	"created_at": {},
	"updated_at": {},
	"is_deleted": {},
}

// Count returns the number of documents matching the filter.
func (s *Store) Count(ctx context.Context, collection string, filter query.CompiledFilter) (int64, error) {
	builder := newSQLBuilder()
	sql := fmt.Sprintf("SELECT COUNT(*) FROM %s", collection)
	if where := buildWhere(filter, builder); where != "" {
		sql += " WHERE " + where
	}

	var total int64
	if err := s.db.QueryRow(ctx, sql, builder.args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, translateStoreError(err))
	}
	return total, nil
}

// Find returns documents matching the filter in the given order. A limit of
// zero or less returns the full set. Find issues a single round trip; callers
// needing totals pair it with Count, accepting that the two reads are not
// isolated from concurrent writes.
func (s *Store) Find(ctx context.Context, collection string, filter query.CompiledFilter, sort query.SortSpec, limit, offset int) ([]Document, error) {
	builder := newSQLBuilder()
	sql := fmt.Sprintf("SELECT id, data, created_at, updated_at, is_deleted FROM %s", collection)
	if where := buildWhere(filter, builder); where != "" {
		sql += " WHERE " + where
	}
	sql += " " + buildOrder(sort)
	if limit > 0 {
		limitIdx := builder.addArg(limit)
		offsetIdx := builder.addArg(offset)
		sql += fmt.Sprintf(" LIMIT %s OFFSET %s", builder.placeholder(limitIdx), builder.placeholder(offsetIdx))
	}

	rows, err := s.db.Query(ctx, sql, builder.args...)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", collection, translateStoreError(err))
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, &doc.Data, &doc.CreatedAt, &doc.UpdatedAt, &doc.IsDeleted); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", collection, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", collection, translateStoreError(err))
	}
	return docs, nil
}

// Get returns a single document by id. Soft-deleted documents read as absent.
func (s *Store) Get(ctx context.Context, collection string, id uuid.UUID) (Document, error) {
	sql := fmt.Sprintf("SELECT id, data, created_at, updated_at, is_deleted FROM %s WHERE id = $1 AND is_deleted = FALSE", collection)

	var doc Document
	err := s.db.QueryRow(ctx, sql, id).Scan(&doc.ID, &doc.Data, &doc.CreatedAt, &doc.UpdatedAt, &doc.IsDeleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return Document{}, fmt.Errorf("get %s %s: %w", collection, id, domain.ErrNotFound)
	}
	if err != nil {
		return Document{}, fmt.Errorf("get %s: %w", collection, translateStoreError(err))
	}
	return doc, nil
}

// GetMany returns the documents whose ids appear in the given set. Missing or
// soft-deleted ids are simply absent from the result; the caller decides
// whether absence is an error.
func (s *Store) GetMany(ctx context.Context, collection string, ids []uuid.UUID) ([]Document, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	sql := fmt.Sprintf("SELECT id, data, created_at, updated_at, is_deleted FROM %s WHERE id = ANY($1) AND is_deleted = FALSE", collection)

	rows, err := s.db.Query(ctx, sql, ids)
	if err != nil {
		return nil, fmt.Errorf("get many %s: %w", collection, translateStoreError(err))
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, &doc.Data, &doc.CreatedAt, &doc.UpdatedAt, &doc.IsDeleted); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", collection, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", collection, translateStoreError(err))
	}
	return docs, nil
}

// Insert stores a new document and returns the persisted row.
func (s *Store) Insert(ctx context.Context, collection string, id uuid.UUID, payload any) (Document, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Document{}, fmt.Errorf("marshal %s document: %w", collection, err)
	}

	sql := fmt.Sprintf("INSERT INTO %s (id, data) VALUES ($1, $2) RETURNING id, data, created_at, updated_at, is_deleted", collection)

	var doc Document
	if err := s.db.QueryRow(ctx, sql, id, data).Scan(&doc.ID, &doc.Data, &doc.CreatedAt, &doc.UpdatedAt, &doc.IsDeleted); err != nil {
		return Document{}, fmt.Errorf("insert %s: %w", collection, translateStoreError(err))
	}
	return doc, nil
}

// Update replaces a document's payload. Soft-deleted documents cannot be
// updated; they read as absent.
func (s *Store) Update(ctx context.Context, collection string, id uuid.UUID, payload any) (Document, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Document{}, fmt.Errorf("marshal %s document: %w", collection, err)
	}

	sql := fmt.Sprintf("UPDATE %s SET data = $2, updated_at = now() WHERE id = $1 AND is_deleted = FALSE RETURNING id, data, created_at, updated_at, is_deleted", collection)

	var doc Document
	err = s.db.QueryRow(ctx, sql, id, data).Scan(&doc.ID, &doc.Data, &doc.CreatedAt, &doc.UpdatedAt, &doc.IsDeleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return Document{}, fmt.Errorf("update %s %s: %w", collection, id, domain.ErrNotFound)
	}
	if err != nil {
		return Document{}, fmt.Errorf("update %s: %w", collection, translateStoreError(err))
	}
	return doc, nil
}

// SoftDelete marks a document deleted. Documents are never physically removed.
func (s *Store) SoftDelete(ctx context.Context, collection string, id uuid.UUID) error {
	sql := fmt.Sprintf("UPDATE %s SET is_deleted = TRUE, data = jsonb_set(data, '{is_deleted}', 'true'), updated_at = now() WHERE id = $1 AND is_deleted = FALSE", collection)

	tag, err := s.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("soft delete %s: %w", collection, translateStoreError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("soft delete %s %s: %w", collection, id, domain.ErrNotFound)
	}
	return nil
}

type sqlBuilder struct {
	args []any
}

func newSQLBuilder() *sqlBuilder {
	return &sqlBuilder{args: make([]any, 0)}
}

func (b *sqlBuilder) addArg(value any) int {
	b.args = append(b.args, value)
	return len(b.args)
}

func (b *sqlBuilder) placeholder(idx int) string {
	return fmt.Sprintf("$%d", idx)
}

// buildWhere renders the compiled filter. The expression's own conditions
// join under its combinator; scope conditions always AND onto the outside so
// soft-delete exclusion and tenancy are never subject to OR logic.
func buildWhere(filter query.CompiledFilter, builder *sqlBuilder) string {
	clauses := make([]string, 0, len(filter.Conditions))
	for _, cond := range filter.Conditions {
		clauses = append(clauses, conditionSQL(cond, builder))
	}

	var parts []string
	switch {
	case len(clauses) == 1:
		parts = append(parts, clauses[0])
	case len(clauses) > 1 && filter.Combinator == query.CombinatorOr:
		parts = append(parts, "("+strings.Join(clauses, " OR ")+")")
	case len(clauses) > 1:
		parts = append(parts, strings.Join(clauses, " AND "))
	}

	for _, cond := range filter.Scope {
		parts = append(parts, conditionSQL(cond, builder))
	}

	return strings.Join(parts, " AND ")
}

func conditionSQL(cond query.Condition, builder *sqlBuilder) string {
	expr, typed := fieldExpression(cond)

	switch cond.Operator {
	case query.OpEq:
		return fmt.Sprintf("%s = %s", expr, builder.placeholder(builder.addArg(typed(cond.Value))))
	case query.OpNe:
		// IS DISTINCT FROM keeps documents lacking the field in a ne match,
		// mirroring absent-field semantics of the document model.
		return fmt.Sprintf("%s IS DISTINCT FROM %s", expr, builder.placeholder(builder.addArg(typed(cond.Value))))
	case query.OpGt:
		return fmt.Sprintf("%s > %s", expr, builder.placeholder(builder.addArg(typed(cond.Value))))
	case query.OpGte:
		return fmt.Sprintf("%s >= %s", expr, builder.placeholder(builder.addArg(typed(cond.Value))))
	case query.OpLt:
		return fmt.Sprintf("%s < %s", expr, builder.placeholder(builder.addArg(typed(cond.Value))))
	case query.OpLte:
		return fmt.Sprintf("%s <= %s", expr, builder.placeholder(builder.addArg(typed(cond.Value))))
	case query.OpLike:
		idx := builder.addArg(cond.Value)
		return fmt.Sprintf("%s ILIKE '%%' || %s || '%%'", textExpression(cond.Field), builder.placeholder(idx))
	case query.OpIn:
		idx := builder.addArg(cond.Values)
		return fmt.Sprintf("%s = ANY(%s::text[])", textExpression(cond.Field), builder.placeholder(idx))
	default:
		// Unreachable with a parsed expression; render a never-true clause
		// rather than panicking on a hand-built condition.
		return "FALSE"
	}
}

// fieldExpression picks the SQL expression and argument typing for a field.
// Metadata columns compare natively; JSONB fields compare as text unless the
// value is numeric, in which case both sides compare as numbers.
func fieldExpression(cond query.Condition) (string, func(string) any) {
	if _, ok := metaColumns[cond.Field]; ok {
		switch cond.Field {
		case "id":
			return "id::text", func(v string) any { return v }
		case "is_deleted":
			return "is_deleted", func(v string) any { return v == "true" }
		default:
			return cond.Field, func(v string) any { return v }
		}
	}

	if _, err := strconv.ParseFloat(cond.Value, 64); err == nil && cond.Operator != query.OpLike && cond.Operator != query.OpIn {
		expr := fmt.Sprintf("(data ->> '%s')::numeric", sanitizeField(cond.Field))
		return expr, func(v string) any {
			f, _ := strconv.ParseFloat(v, 64)
			return f
		}
	}

	return textExpression(cond.Field), func(v string) any { return v }
}

func textExpression(field string) string {
	if _, ok := metaColumns[field]; ok {
		if field == "id" {
			return "id::text"
		}
		return field + "::text"
	}
	return fmt.Sprintf("data ->> '%s'", sanitizeField(field))
}

// sanitizeField strips characters that could escape the JSONB key literal.
// Field names come from the query string, never from trusted code.
func sanitizeField(field string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '.', r == '-':
			return r
		default:
			return -1
		}
	}, field)
}

// buildOrder renders the sort spec. Metadata columns order natively; any
// other field orders by its text value inside the payload. An empty spec
// falls back to newest first.
func buildOrder(sort query.SortSpec) string {
	if len(sort) == 0 {
		return "ORDER BY created_at DESC"
	}

	orderings := make([]string, 0, len(sort))
	for _, field := range sort {
		direction := "ASC"
		if field.Direction == query.DirectionDesc {
			direction = "DESC"
		}

		expr := ""
		if _, ok := metaColumns[field.Field]; ok {
			expr = field.Field
		} else {
			expr = fmt.Sprintf("data ->> '%s'", sanitizeField(field.Field))
		}
		orderings = append(orderings, fmt.Sprintf("%s %s NULLS LAST", expr, direction))
	}

	return "ORDER BY " + strings.Join(orderings, ", ")
}

// translateStoreError maps schema-level failures (unknown relation or
// column, bad casts) onto ErrInvalidReference so handlers can answer with a
// caller error instead of a blanket 500. Everything else propagates as-is.
func translateStoreError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "42P01", "42703", "22P02", "22003":
			return fmt.Errorf("%w: %s", domain.ErrInvalidReference, pgErr.Message)
		}
	}
	return err
}
