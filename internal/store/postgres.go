package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxConn is the subset of *pgxpool.Pool the postgres store needs.
type PgxConn interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgRecord struct {
	ID   string `db:"id"`
	Data []byte `db:"data"`
}

type Postgres struct {
	db   PgxConn
	d    sqlDialect
	init lazyInit
}

// NewPostgres wraps a pool. The caller keeps ownership of db.
func NewPostgres(db PgxConn) *Postgres {
	return &Postgres{db: db, d: postgresDialect}
}

func (p *Postgres) ensureSchema(ctx context.Context) error {
	return p.init.ensure(ctx, func(ctx context.Context) error {
		_, err := p.db.Exec(ctx, p.d.schemaScript())
		return err
	})
}

func (p *Postgres) GetAll(ctx context.Context, c Collection) ([]Record, error) {
	if err := checkCollection(c); err != nil {
		return nil, err
	}
	if err := p.ensureSchema(ctx); err != nil {
		return nil, err
	}

	q, args, err := p.d.selectAll(c)
	if err != nil {
		return nil, err
	}
	var rows []pgRecord
	if err := pgxscan.Select(ctx, p.db, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("store: postgres get %s: %w", c, err)
	}

	out := make([]Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, Record{ID: r.ID, Data: json.RawMessage(r.Data)})
	}
	return out, nil
}

func (p *Postgres) SaveAll(ctx context.Context, c Collection, records []Record) error {
	if err := checkCollection(c); err != nil {
		return err
	}
	if err := checkRecords(records); err != nil {
		return err
	}
	if err := p.ensureSchema(ctx); err != nil {
		return err
	}

	del, _, err := p.d.deleteAll(c)
	if err != nil {
		return err
	}
	inserts, err := p.d.insertAll(c, records)
	if err != nil {
		return err
	}

	err = p.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, del); err != nil {
			return err
		}
		for _, ins := range inserts {
			if _, err := tx.Exec(ctx, ins.sql, ins.args...); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("store: postgres save %s: %w", c, err)
	}
	return nil
}

func (p *Postgres) GetSetting(ctx context.Context, key string) (json.RawMessage, bool, error) {
	if key == "" {
		return nil, false, ErrEmptyKey
	}
	if err := p.ensureSchema(ctx); err != nil {
		return nil, false, err
	}
	q, args, err := p.d.selectSetting(key)
	if err != nil {
		return nil, false, err
	}
	var raw []byte
	if err := p.db.QueryRow(ctx, q, args...).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("store: postgres get setting %s: %w", key, err)
	}
	return json.RawMessage(raw), true, nil
}

func (p *Postgres) SaveSetting(ctx context.Context, key string, value json.RawMessage) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := p.ensureSchema(ctx); err != nil {
		return err
	}
	q, args, err := p.d.upsertSetting(key, value)
	if err != nil {
		return err
	}
	if _, err := p.db.Exec(ctx, q, args...); err != nil {
		return fmt.Errorf("store: postgres save setting %s: %w", key, err)
	}
	return nil
}

// inTx commits when fn succeeds and rolls back otherwise.
func (p *Postgres) inTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()
	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
