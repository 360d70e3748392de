package treestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Postgres stores documents as JSONB rows in tree_nodes.
type Postgres struct {
	db *sqlx.DB
}

// NewPostgres wraps an open database handle.
func NewPostgres(db *sqlx.DB) *Postgres {
	return &Postgres{db: db}
}

// likeDescendants returns a LIKE pattern matching every path below p.
func likeDescendants(p string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(p) + "/%"
}

func (s *Postgres) Get(ctx context.Context, path string, dest interface{}) error {
	p, err := Clean(path)
	if err != nil {
		return err
	}
	var entries []entry
	const query = `SELECT path, value FROM tree_nodes WHERE path = $1 OR path LIKE $2 ESCAPE '\'`
	if err := s.db.SelectContext(ctx, &entries, query, p, likeDescendants(p)); err != nil {
		return fmt.Errorf("select %s: %w", p, err)
	}
	raw, found, err := assemble(p, entries)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return decode(raw, dest)
}

func (s *Postgres) Exists(ctx context.Context, path string) (bool, error) {
	p, err := Clean(path)
	if err != nil {
		return false, err
	}
	var exists bool
	const query = `SELECT EXISTS(SELECT 1 FROM tree_nodes WHERE path = $1 OR path LIKE $2 ESCAPE '\')`
	if err := s.db.GetContext(ctx, &exists, query, p, likeDescendants(p)); err != nil {
		return false, fmt.Errorf("exists %s: %w", p, err)
	}
	return exists, nil
}

func (s *Postgres) Set(ctx context.Context, path string, value interface{}) error {
	p, err := Clean(path)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin set %s: %w", p, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tree_nodes WHERE path LIKE $1 ESCAPE '\'`, likeDescendants(p)); err != nil {
		return fmt.Errorf("clear %s: %w", p, err)
	}
	const upsert = `INSERT INTO tree_nodes (path, value, updated_at) VALUES ($1, $2::jsonb, NOW())
ON CONFLICT (path) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
	if _, err := tx.ExecContext(ctx, upsert, p, string(raw)); err != nil {
		return fmt.Errorf("set %s: %w", p, err)
	}
	return tx.Commit()
}

func (s *Postgres) Update(ctx context.Context, path string, fields map[string]interface{}) error {
	p, err := Clean(path)
	if err != nil {
		return err
	}
	if err := checkKeys(fields); err != nil {
		return err
	}
	set, removed := splitFields(fields)
	raw, err := json.Marshal(set)
	if err != nil {
		return err
	}
	const query = `INSERT INTO tree_nodes (path, value, updated_at) VALUES ($1, $2::jsonb, NOW())
ON CONFLICT (path) DO UPDATE SET value = (tree_nodes.value || EXCLUDED.value) - $3::text[], updated_at = NOW()`
	if _, err := s.db.ExecContext(ctx, query, p, string(raw), pq.Array(removed)); err != nil {
		return fmt.Errorf("update %s: %w", p, err)
	}
	return nil
}

func (s *Postgres) Remove(ctx context.Context, path string) error {
	p, err := Clean(path)
	if err != nil {
		return err
	}
	const query = `DELETE FROM tree_nodes WHERE path = $1 OR path LIKE $2 ESCAPE '\'`
	if _, err := s.db.ExecContext(ctx, query, p, likeDescendants(p)); err != nil {
		return fmt.Errorf("remove %s: %w", p, err)
	}
	return nil
}

func (s *Postgres) Increment(ctx context.Context, path string, delta int64) (int64, error) {
	p, err := Clean(path)
	if err != nil {
		return 0, err
	}
	const query = `INSERT INTO tree_nodes (path, value, updated_at) VALUES ($1, to_jsonb($2::bigint), NOW())
ON CONFLICT (path) DO UPDATE SET value = to_jsonb((tree_nodes.value #>> '{}')::bigint + $2::bigint), updated_at = NOW()
RETURNING (value #>> '{}')::bigint`
	var n int64
	if err := s.db.QueryRowxContext(ctx, query, p, delta).Scan(&n); err != nil {
		var pqErr *pq.Error
		// 22P02: invalid_text_representation
		if errors.As(err, &pqErr) && pqErr.Code == "22P02" {
			return 0, ErrNotCounter
		}
		return 0, fmt.Errorf("increment %s: %w", p, err)
	}
	return n, nil
}

func (s *Postgres) SetIfAbsent(ctx context.Context, path string, value interface{}) (bool, error) {
	p, err := Clean(path)
	if err != nil {
		return false, err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	const query = `INSERT INTO tree_nodes (path, value, updated_at) VALUES ($1, $2::jsonb, NOW())
ON CONFLICT (path) DO NOTHING`
	res, err := s.db.ExecContext(ctx, query, p, string(raw))
	if err != nil {
		return false, fmt.Errorf("insert %s: %w", p, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *Postgres) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
