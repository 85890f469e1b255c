package store

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/require"
)

func newMockPostgres(t *testing.T) (*Postgres, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgres(mock), mock
}

func expectSchema(mock pgxmock.PgxPoolIface) {
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS audits").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
}

func TestPostgres_GetAll(t *testing.T) {
	s, mock := newMockPostgres(t)
	expectSchema(mock)
	mock.ExpectQuery("SELECT id, data FROM audits ORDER BY seq").
		WillReturnRows(pgxmock.NewRows([]string{"id", "data"}).
			AddRow("audit-1", []byte(`{"id":"audit-1","name":"Opening"}`)).
			AddRow("audit-2", []byte(`{"id":"audit-2","name":"Closing"}`)))

	got, err := LoadAll[item](context.Background(), s, Audits)
	require.NoError(t, err)
	require.Equal(t, []item{{ID: "audit-1", Name: "Opening"}, {ID: "audit-2", Name: "Closing"}}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_SaveAllReplacesInOneTransaction(t *testing.T) {
	s, mock := newMockPostgres(t)
	expectSchema(mock)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM incidents").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectExec("INSERT INTO incidents").
		WithArgs("inc-1", 0, `{"id":"inc-1","name":"Leak"}`, "inc-2", 1, `{"id":"inc-2","name":"Pest"}`).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()

	err := ReplaceAll(context.Background(), s, Incidents, []item{{ID: "inc-1", Name: "Leak"}, {ID: "inc-2", Name: "Pest"}})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_SaveAllEmptyOnlyDeletes(t *testing.T) {
	s, mock := newMockPostgres(t)
	expectSchema(mock)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM sops").WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	require.NoError(t, s.SaveAll(context.Background(), SOPs, nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_SaveAllRollsBackOnFailure(t *testing.T) {
	s, mock := newMockPostgres(t)
	expectSchema(mock)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM users").WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := s.SaveAll(context.Background(), Users, []Record{{ID: "u1", Data: []byte(`{}`)}})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_SchemaInitRetriesAfterFailure(t *testing.T) {
	s, mock := newMockPostgres(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS audits").WillReturnError(errors.New("db starting up"))
	expectSchema(mock)
	mock.ExpectQuery("SELECT id, data FROM templates").
		WillReturnRows(pgxmock.NewRows([]string{"id", "data"}))
	mock.ExpectQuery("SELECT id, data FROM sops").
		WillReturnRows(pgxmock.NewRows([]string{"id", "data"}))

	ctx := context.Background()
	_, err := s.GetAll(ctx, Templates)
	require.Error(t, err)

	got, err := s.GetAll(ctx, Templates)
	require.NoError(t, err)
	require.Empty(t, got)

	// schema is not created again once it succeeded
	_, err = s.GetAll(ctx, SOPs)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Settings(t *testing.T) {
	s, mock := newMockPostgres(t)
	expectSchema(mock)
	mock.ExpectQuery("SELECT value FROM settings").
		WithArgs(SettingDepartments).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectExec("INSERT INTO settings").
		WithArgs(SettingDepartments, `["Kitchen"]`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery("SELECT value FROM settings").
		WithArgs(SettingDepartments).
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow([]byte(`["Kitchen"]`)))

	ctx := context.Background()
	_, found, err := LoadSetting[[]string](ctx, s, SettingDepartments)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, PutSetting(ctx, s, SettingDepartments, []string{"Kitchen"}))

	got, found, err := LoadSetting[[]string](ctx, s, SettingDepartments)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []string{"Kitchen"}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_RejectsUnknownCollectionWithoutTouchingDB(t *testing.T) {
	s, mock := newMockPostgres(t)
	_, err := s.GetAll(context.Background(), Collection("guests"))
	require.ErrorIs(t, err, ErrUnknownCollection)
	require.NoError(t, mock.ExpectationsWereMet())
}
