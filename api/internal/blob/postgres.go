package blob

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
)

// PostgresStore keeps the snapshot as a single row keyed by name.
type PostgresStore struct {
	db   *sql.DB
	name string
}

const snapshotSchema = `
create table if not exists snapshots (
  name       text primary key,
  data       bytea not null,
  updated_at timestamptz not null default now()
)`

// OpenPostgres connects through the pgx stdlib driver and makes sure the
// snapshots table exists.
func OpenPostgres(ctx context.Context, dsn, name string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(1 * time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.Ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, snapshotSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure snapshots table: %w", err)
	}
	return &PostgresStore{db: db, name: name}, nil
}

func (p *PostgresStore) Close() error { return p.db.Close() }

func (p *PostgresStore) Load(ctx context.Context) ([]byte, error) {
	const q = `select data from snapshots where name = $1`
	var data []byte
	err := p.db.QueryRowContext(ctx, q, p.name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (p *PostgresStore) Save(ctx context.Context, data []byte) error {
	const q = `
insert into snapshots (name, data, updated_at) values ($1, $2, now())
on conflict (name) do update
set data = excluded.data,
    updated_at = now()`
	_, err := p.db.ExecContext(ctx, q, p.name, data)
	return err
}
