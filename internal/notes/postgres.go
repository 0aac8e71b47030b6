package notes

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/promisemux/integration/database/pg"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrations returns the goose migrations for the notes table.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// PostgresDB is satisfied by *pgxpool.Pool.
type PostgresDB interface {
	pg.Querier
	pg.TxBeginner
}

// PostgresStore keeps notes in the table created by Migrations. Calls made
// with a context carrying a transaction (pg.WithTx) run inside it.
type PostgresStore struct {
	db  PostgresDB
	now func() time.Time
}

func NewPostgresStore(db PostgresDB) *PostgresStore {
	return &PostgresStore{db: db, now: time.Now}
}

const noteColumns = "id, title, body, created_at, updated_at"

func (s *PostgresStore) Create(ctx context.Context, in Input) (Note, error) {
	// Postgres keeps microseconds.
	n := newNote(in, s.now().UTC().Truncate(time.Microsecond))

	_, err := pg.Conn(ctx, s.db).Exec(ctx,
		"INSERT INTO notes ("+noteColumns+") VALUES ($1, $2, $3, $4, $5)",
		n.ID, n.Title, n.Body, n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		return Note{}, fmt.Errorf("save note %s: %w", n.ID, err)
	}
	return n, nil
}

func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (Note, error) {
	row := pg.Conn(ctx, s.db).QueryRow(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE id = $1", id)
	return s.scanOne(row, id, "get")
}

// List returns notes in insertion order.
func (s *PostgresStore) List(ctx context.Context) ([]Note, error) {
	rows, err := pg.Conn(ctx, s.db).Query(ctx,
		"SELECT "+noteColumns+" FROM notes ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Note, error) {
		return scanNote(row)
	})
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	if list == nil {
		list = []Note{}
	}
	return list, nil
}

// Update locks the row so a concurrent delete or update waits for it.
func (s *PostgresStore) Update(ctx context.Context, id uuid.UUID, in Input) (Note, error) {
	var updated Note
	err := pg.InTx(ctx, s.db, func(ctx context.Context) error {
		q := pg.Conn(ctx, s.db)

		n, err := s.scanOne(q.QueryRow(ctx,
			"SELECT "+noteColumns+" FROM notes WHERE id = $1 FOR UPDATE", id), id, "update")
		if err != nil {
			return err
		}
		n.Title, n.Body = in.Title, in.Body
		n.UpdatedAt = s.now().UTC().Truncate(time.Microsecond)

		if _, err := q.Exec(ctx,
			"UPDATE notes SET title = $2, body = $3, updated_at = $4 WHERE id = $1",
			id, n.Title, n.Body, n.UpdatedAt,
		); err != nil {
			return fmt.Errorf("update note %s: %w", id, err)
		}
		updated = n
		return nil
	})
	if err != nil {
		return Note{}, err
	}
	return updated, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := pg.Conn(ctx, s.db).Exec(ctx, "DELETE FROM notes WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete note %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) scanOne(row pgx.Row, id uuid.UUID, op string) (Note, error) {
	n, err := scanNote(row)
	switch {
	case pg.IsNotFoundError(err):
		return Note{}, ErrNotFound
	case err != nil:
		return Note{}, fmt.Errorf("%s note %s: %w", op, id, err)
	}
	return n, nil
}

func scanNote(row pgx.Row) (Note, error) {
	var n Note
	if err := row.Scan(&n.ID, &n.Title, &n.Body, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return Note{}, err
	}
	n.CreatedAt, n.UpdatedAt = n.CreatedAt.UTC(), n.UpdatedAt.UTC()
	return n, nil
}
