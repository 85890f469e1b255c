package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"hotel-audit-pro/pkg/utils"
)

// MySQL stores collections in MySQL/MariaDB JSON columns.
type MySQL struct {
	db   *sql.DB
	d    sqlDialect
	init lazyInit
}

// NewMySQL wraps db. The caller keeps ownership of db.
func NewMySQL(db *sql.DB) *MySQL {
	return &MySQL{db: db, d: mysqlDialect}
}

// ensureSchema runs one statement at a time; the driver rejects multi-statement
// strings unless multiStatements is enabled in the DSN.
func (m *MySQL) ensureSchema(ctx context.Context) error {
	return m.init.ensure(ctx, func(ctx context.Context) error {
		for _, stmt := range m.d.schema() {
			if _, err := m.db.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
}

func (m *MySQL) GetAll(ctx context.Context, c Collection) ([]Record, error) {
	if err := checkCollection(c); err != nil {
		return nil, err
	}
	if err := m.ensureSchema(ctx); err != nil {
		return nil, err
	}

	q, args, err := m.d.selectAll(c)
	if err != nil {
		return nil, err
	}
	rows, err := m.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("store: mysql get %s: %w", c, err)
	}
	defer rows.Close()

	out := make([]Record, 0)
	for rows.Next() {
		var (
			id   string
			data []byte
		)
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("store: mysql scan %s: %w", c, err)
		}
		out = append(out, Record{ID: id, Data: json.RawMessage(data)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: mysql get %s: %w", c, err)
	}
	return out, nil
}

func (m *MySQL) SaveAll(ctx context.Context, c Collection, records []Record) error {
	if err := checkCollection(c); err != nil {
		return err
	}
	if err := checkRecords(records); err != nil {
		return err
	}
	if err := m.ensureSchema(ctx); err != nil {
		return err
	}

	del, _, err := m.d.deleteAll(c)
	if err != nil {
		return err
	}
	inserts, err := m.d.insertAll(c, records)
	if err != nil {
		return err
	}

	err = utils.WithTx(ctx, m.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, del); err != nil {
			return err
		}
		for _, ins := range inserts {
			if _, err := tx.ExecContext(ctx, ins.sql, ins.args...); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("store: mysql save %s: %w", c, err)
	}
	return nil
}

func (m *MySQL) GetSetting(ctx context.Context, key string) (json.RawMessage, bool, error) {
	if key == "" {
		return nil, false, ErrEmptyKey
	}
	if err := m.ensureSchema(ctx); err != nil {
		return nil, false, err
	}
	q, args, err := m.d.selectSetting(key)
	if err != nil {
		return nil, false, err
	}
	var raw []byte
	if err := m.db.QueryRowContext(ctx, q, args...).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("store: mysql get setting %s: %w", key, err)
	}
	return json.RawMessage(raw), true, nil
}

func (m *MySQL) SaveSetting(ctx context.Context, key string, value json.RawMessage) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := m.ensureSchema(ctx); err != nil {
		return err
	}
	q, args, err := m.d.upsertSetting(key, value)
	if err != nil {
		return err
	}
	if _, err := m.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("store: mysql save setting %s: %w", key, err)
	}
	return nil
}
