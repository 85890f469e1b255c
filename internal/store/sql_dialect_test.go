package store

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDialects_Placeholders(t *testing.T) {
	tests := []struct {
		name      string
		d         sqlDialect
		selectSQL string
		upsert    string
	}{
		{
			name:      "postgres",
			d:         postgresDialect,
			selectSQL: "SELECT value FROM settings WHERE name = $1",
			upsert:    "INSERT INTO settings (name,value) VALUES ($1,$2) ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value",
		},
		{
			name:      "mysql",
			d:         mysqlDialect,
			selectSQL: "SELECT value FROM settings WHERE name = ?",
			upsert:    "INSERT INTO settings (name,value) VALUES (?,?) ON DUPLICATE KEY UPDATE value = VALUES(value)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, args, err := tt.d.selectSetting("hotels")
			require.NoError(t, err)
			require.Equal(t, tt.selectSQL, q)
			require.Equal(t, []any{"hotels"}, args)

			q, args, err = tt.d.upsertSetting("hotels", []byte(`["A"]`))
			require.NoError(t, err)
			require.Equal(t, tt.upsert, q)
			require.Equal(t, []any{"hotels", `["A"]`}, args)
		})
	}
}

func TestDialect_InsertAllBatches(t *testing.T) {
	records := make([]Record, insertBatchSize+2)
	for i := range records {
		records[i] = Record{ID: fmt.Sprintf("r%d", i), Data: []byte(`{}`)}
	}

	batches, err := mysqlDialect.insertAll(Audits, records)
	require.NoError(t, err)
	require.Len(t, batches, 2)
	require.Len(t, batches[0].args, insertBatchSize*3)
	require.Len(t, batches[1].args, 2*3)
	// seq continues across batches
	require.Equal(t, insertBatchSize, batches[1].args[1])

	none, err := mysqlDialect.insertAll(Audits, nil)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestDialect_SchemaCoversEveryCollection(t *testing.T) {
	script := postgresDialect.schemaScript()
	for _, c := range AllCollections() {
		require.True(t, strings.Contains(script, "CREATE TABLE IF NOT EXISTS "+string(c)+" ("), c)
	}
	require.Contains(t, script, "CREATE TABLE IF NOT EXISTS settings")
	require.Len(t, mysqlDialect.schema(), len(AllCollections())+1)
}
