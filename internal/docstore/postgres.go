package docstore

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxDB is the subset of a pgx pool used by PostgresStore.
type PgxDB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
}

// PostgresStore keeps every collection in the documents table as JSONB.
type PostgresStore struct {
	db PgxDB
}

// NewPostgresStore wraps a pgx pool.
func NewPostgresStore(db PgxDB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Collection returns a handle scoped to name.
func (s *PostgresStore) Collection(name string) Collection {
	return &postgresCollection{db: s.db, name: name}
}

// Ping checks the pool.
func (s *PostgresStore) Ping(ctx context.Context) error {
	if s.db == nil {
		return unavailable("ping", fmt.Errorf("postgres pool not configured"))
	}
	return unavailable("ping", s.db.Ping(ctx))
}

type postgresCollection struct {
	db   PgxDB
	name string
}

func (c *postgresCollection) Insert(ctx context.Context, doc Document) error {
	id, ok := doc.ID()
	if !ok {
		return ErrInvalidDocument
	}
	raw, err := encodeDocument(doc)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO documents (collection, id, doc)
        VALUES ($1, $2, $3::jsonb)`
	_, err = c.db.Exec(ctx, query, c.name, id, string(raw))
	return unavailable("insert", err)
}

func (c *postgresCollection) Find(ctx context.Context, q Query) iter.Seq2[Document, error] {
	query, args := c.buildFind(q)
	return func(yield func(Document, error) bool) {
		rows, err := c.db.Query(ctx, query, args...)
		if err != nil {
			yield(nil, unavailable("find", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var raw []byte
			if err := rows.Scan(&raw); err != nil {
				yield(nil, unavailable("find", err))
				return
			}
			doc, err := decodeDocument(raw)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(doc, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(nil, unavailable("find", err))
		}
	}
}

func (c *postgresCollection) buildFind(q Query) (string, []any) {
	clauses := []string{"collection = $1"}
	args := []any{c.name}

	keys := make([]string, 0, len(q.Filter))
	for key := range q.Filter {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		args = append(args, key, q.Filter[key])
		clauses = append(clauses, fmt.Sprintf("doc->>$%d::text = $%d", len(args)-1, len(args)))
	}

	var b strings.Builder
	b.WriteString("SELECT doc FROM documents WHERE ")
	b.WriteString(strings.Join(clauses, " AND "))
	if q.SortField != "" {
		args = append(args, q.SortField)
		direction := "ASC"
		if q.SortDesc {
			direction = "DESC"
		}
		fmt.Fprintf(&b, " ORDER BY doc->>$%d::text %s", len(args), direction)
	}
	if q.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", q.Limit)
	}
	return b.String(), args
}

func (c *postgresCollection) SetFields(ctx context.Context, id string, fields Document) error {
	if err := checkFields(fields); err != nil {
		return err
	}
	patch, err := encodeDocument(fields)
	if err != nil {
		return err
	}
	const query = `
        UPDATE documents SET doc = doc || $3::jsonb
        WHERE collection = $1 AND id = $2`
	cmd, err := c.db.Exec(ctx, query, c.name, id, string(patch))
	if err != nil {
		return unavailable("update", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *postgresCollection) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM documents WHERE collection = $1 AND id = $2`
	cmd, err := c.db.Exec(ctx, query, c.name, id)
	if err != nil {
		return unavailable("delete", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
