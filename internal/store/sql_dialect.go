package store

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

const (
	settingsTable   = "settings"
	insertBatchSize = 500
)

// sqlDialect builds the statements shared by the postgres and mysql stores.
// Each collection lives in its own table (id, seq, data); seq keeps saved order.
type sqlDialect struct {
	sb            sq.StatementBuilderType
	collectionDDL string
	settingsDDL   string
	upsertSuffix  string
}

var postgresDialect = sqlDialect{
	sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	collectionDDL: `CREATE TABLE IF NOT EXISTS %s (
  id   TEXT PRIMARY KEY,
  seq  INTEGER NOT NULL,
  data JSONB NOT NULL
)`,
	settingsDDL: `CREATE TABLE IF NOT EXISTS settings (
  name  TEXT PRIMARY KEY,
  value JSONB NOT NULL
)`,
	upsertSuffix: "ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value",
}

var mysqlDialect = sqlDialect{
	sb: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	collectionDDL: `CREATE TABLE IF NOT EXISTS %s (
  id   VARCHAR(191) NOT NULL PRIMARY KEY,
  seq  INT NOT NULL,
  data JSON NOT NULL
)`,
	settingsDDL: `CREATE TABLE IF NOT EXISTS settings (
  name  VARCHAR(191) NOT NULL PRIMARY KEY,
  value JSON NOT NULL
)`,
	upsertSuffix: "ON DUPLICATE KEY UPDATE value = VALUES(value)",
}

type sqlQuery struct {
	sql  string
	args []any
}

// schema returns one CREATE statement per table.
func (d sqlDialect) schema() []string {
	out := make([]string, 0, len(AllCollections())+1)
	for _, c := range AllCollections() {
		out = append(out, fmt.Sprintf(d.collectionDDL, string(c)))
	}
	return append(out, d.settingsDDL)
}

func (d sqlDialect) schemaScript() string {
	return strings.Join(d.schema(), ";\n") + ";"
}

func (d sqlDialect) selectAll(c Collection) (string, []any, error) {
	return d.sb.Select("id", "data").From(string(c)).OrderBy("seq").ToSql()
}

func (d sqlDialect) deleteAll(c Collection) (string, []any, error) {
	return d.sb.Delete(string(c)).ToSql()
}

// insertAll splits records into multi-row inserts of at most insertBatchSize rows.
func (d sqlDialect) insertAll(c Collection, records []Record) ([]sqlQuery, error) {
	var out []sqlQuery
	for start := 0; start < len(records); start += insertBatchSize {
		end := min(start+insertBatchSize, len(records))
		q := d.sb.Insert(string(c)).Columns("id", "seq", "data")
		for i, r := range records[start:end] {
			q = q.Values(r.ID, start+i, string(r.Data))
		}
		s, args, err := q.ToSql()
		if err != nil {
			return nil, err
		}
		out = append(out, sqlQuery{sql: s, args: args})
	}
	return out, nil
}

func (d sqlDialect) selectSetting(key string) (string, []any, error) {
	return d.sb.Select("value").From(settingsTable).Where(sq.Eq{"name": key}).ToSql()
}

func (d sqlDialect) upsertSetting(key string, value []byte) (string, []any, error) {
	return d.sb.Insert(settingsTable).
		Columns("name", "value").
		Values(key, string(value)).
		Suffix(d.upsertSuffix).
		ToSql()
}
