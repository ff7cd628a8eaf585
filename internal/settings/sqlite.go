package settings

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/docpublish/internal/dbx"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// DatabaseFileName is the per-extension data file of the SQLite backend.
const DatabaseFileName = "data.db"

// SQLitePersister keeps each settings field as one row of the metadata
// key-value table.
type SQLitePersister struct {
	db *sql.DB
}

// OpenSQLitePersister opens dsn with the pure-Go sqlite driver and brings
// the schema up to date.
func OpenSQLitePersister(ctx context.Context, dsn string) (*SQLitePersister, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}
	// One connection: sqlite has a single writer and ":memory:" databases are
	// per-connection.
	db.SetMaxOpenConns(1)

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLitePersister{db: db}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (p *SQLitePersister) LoadData(ctx context.Context) (map[string]string, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT key, value FROM metadata`)
	if err != nil {
		return nil, fmt.Errorf("failed to list metadata: %w", err)
	}
	defer rows.Close()

	var data map[string]string
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan metadata row: %w", err)
		}
		if data == nil {
			data = make(map[string]string)
		}
		data[key] = string(value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate metadata rows: %w", err)
	}
	return data, nil
}

// SaveData upserts every key in one transaction.
func (p *SQLitePersister) SaveData(ctx context.Context, data map[string]string) error {
	return dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for k, v := range data {
			if err := setMetadata(ctx, tx, k, []byte(v)); err != nil {
				return err
			}
		}
		return nil
	})
}

func setMetadata(ctx context.Context, db dbx.DBTX, key string, value []byte) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

func (p *SQLitePersister) Close() error {
	return p.db.Close()
}
