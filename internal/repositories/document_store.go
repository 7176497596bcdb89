package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("record not found")

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DocumentStore is the persistence collaborator: schemaless records
// keyed by collection and id, stored as jsonb.
type DocumentStore struct {
	pool *pgxpool.Pool
	db   querier
}

func NewDocumentStore(pool *pgxpool.Pool) *DocumentStore {
	return &DocumentStore{pool: pool, db: pool}
}

// CreateRecord inserts a record with a generated id and returns it.
func (s *DocumentStore) CreateRecord(ctx context.Context, collection string, data any) (string, error) {
	id := uuid.New().String()
	if err := s.PutRecord(ctx, collection, id, data); err != nil {
		return "", err
	}
	return id, nil
}

// PutRecord inserts a record under a caller-chosen id.
func (s *DocumentStore) PutRecord(ctx context.Context, collection, id string, data any) error {
	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO documents (id, collection, data)
		VALUES ($1, $2, $3)
	`, id, collection, body)
	return err
}

func (s *DocumentStore) GetRecord(ctx context.Context, collection, id string, dest any) error {
	var body []byte
	err := s.db.QueryRow(ctx, `
		SELECT data FROM documents WHERE collection = $1 AND id = $2
	`, collection, id).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(body, dest)
}

// UpdateRecord shallow-merges the patch into the stored record.
func (s *DocumentStore) UpdateRecord(ctx context.Context, collection, id string, patch map[string]any) error {
	body, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("marshal patch: %w", err)
	}
	tag, err := s.db.Exec(ctx, `
		UPDATE documents SET data = data || $3, updated_at = now()
		WHERE collection = $1 AND id = $2
	`, collection, id, body)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *DocumentStore) DeleteRecord(ctx context.Context, collection, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM documents WHERE collection = $1 AND id = $2`, collection, id)
	return err
}

// Record is one stored document with its identity attached.
type Record struct {
	ID   string
	Data json.RawMessage
}

// QueryRecords returns records whose data contains all filter fields,
// newest first. Filters use jsonb containment, so values must match
// exactly.
func (s *DocumentStore) QueryRecords(ctx context.Context, collection string, filters map[string]any, limit, offset int) ([]Record, error) {
	query := `SELECT id, data FROM documents WHERE collection = $1`
	args := []any{collection}
	argIdx := 2

	if len(filters) > 0 {
		body, err := json.Marshal(filters)
		if err != nil {
			return nil, fmt.Errorf("marshal filters: %w", err)
		}
		query += fmt.Sprintf(" AND data @> $%d", argIdx)
		args = append(args, body)
		argIdx++
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Data); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// InTx runs fn against a store bound to one transaction. All writes
// inside fn commit or roll back together.
func (s *DocumentStore) InTx(ctx context.Context, fn func(tx *DocumentStore) error) error {
	if s.pool == nil {
		return errors.New("nested transactions are not supported")
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(&DocumentStore{db: tx}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}
