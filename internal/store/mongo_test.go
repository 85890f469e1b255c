package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func schemaOK() bson.D { return mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}) }

func liveGeneration(c string, gen int64) bson.D {
	return mtest.CreateCursorResponse(0, "test.meta", mtest.FirstBatch, bson.D{
		{Key: "_id", Value: "generation:" + c},
		{Key: "gen", Value: gen},
	})
}

// requireCommand pops the next started event and checks its target.
func requireCommand(mt *mtest.T, name, coll string) *event.CommandStartedEvent {
	mt.Helper()
	started := mt.GetStartedEvent()
	require.NotNil(mt, started)
	require.Equal(mt, name, started.CommandName)
	require.Equal(mt, coll, started.Command.Lookup(name).StringValue())
	return started
}

func TestMongo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("get all reads the live generation in seq order", func(mt *mtest.T) {
		s := NewMongo(mt.DB)
		mt.AddMockResponses(
			schemaOK(),
			liveGeneration("audits", 2),
			mtest.CreateCursorResponse(0, "test.audits", mtest.FirstBatch,
				bson.D{{Key: "gen", Value: int64(2)}, {Key: "seq", Value: 0}, {Key: "id", Value: "audit-2"}, {Key: "data", Value: `{"id":"audit-2","name":"Closing"}`}},
				bson.D{{Key: "gen", Value: int64(2)}, {Key: "seq", Value: 1}, {Key: "id", Value: "audit-1"}, {Key: "data", Value: `{"id":"audit-1","name":"Opening"}`}},
			),
		)

		got, err := LoadAll[item](ctx, s, Audits)
		require.NoError(mt, err)
		require.Equal(mt, []item{{ID: "audit-2", Name: "Closing"}, {ID: "audit-1", Name: "Opening"}}, got)

		requireCommand(mt, "update", mongoMeta)
		requireCommand(mt, "find", mongoMeta)
		find := requireCommand(mt, "find", "audits")
		require.Equal(mt, int64(2), find.Command.Lookup("filter", "gen").Int64())
		require.NotEqual(mt, bson.RawValue{}, find.Command.Lookup("sort", "seq"))
	})

	mt.Run("never written collection is empty", func(mt *mtest.T) {
		s := NewMongo(mt.DB)
		mt.AddMockResponses(
			schemaOK(),
			mtest.CreateCursorResponse(0, "test.meta", mtest.FirstBatch),
		)

		got, err := s.GetAll(ctx, Incidents)
		require.NoError(mt, err)
		require.Empty(mt, got)

		requireCommand(mt, "update", mongoMeta)
		requireCommand(mt, "find", mongoMeta)
		require.Nil(mt, mt.GetStartedEvent())
	})

	mt.Run("save all writes one document per record then flips the generation", func(mt *mtest.T) {
		s := NewMongo(mt.DB)
		mt.AddMockResponses(
			schemaOK(),
			liveGeneration("sops", 1),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 2}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 3}),
		)

		require.NoError(mt, ReplaceAll(ctx, s, SOPs, []item{{ID: "sop-1", Name: "Fire Safety"}, {ID: "sop-2", Name: "Key Control"}}))

		requireCommand(mt, "update", mongoMeta)
		requireCommand(mt, "find", mongoMeta)
		requireCommand(mt, "delete", "sops")
		requireCommand(mt, "insert", "sops")
		requireCommand(mt, "update", mongoMeta)
		requireCommand(mt, "delete", "sops")
	})

	mt.Run("empty save skips the insert", func(mt *mtest.T) {
		s := NewMongo(mt.DB)
		mt.AddMockResponses(
			schemaOK(),
			mtest.CreateCursorResponse(0, "test.meta", mtest.FirstBatch),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)

		require.NoError(mt, s.SaveAll(ctx, Templates, nil))

		requireCommand(mt, "update", mongoMeta)
		requireCommand(mt, "find", mongoMeta)
		requireCommand(mt, "delete", "templates")
		requireCommand(mt, "update", mongoMeta)
		requireCommand(mt, "delete", "templates")
	})

	mt.Run("failed insert leaves the live generation alone", func(mt *mtest.T) {
		s := NewMongo(mt.DB)
		mt.AddMockResponses(
			schemaOK(),
			liveGeneration("incidents", 4),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
			mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 121, Name: "DocumentValidationFailure", Message: "document failed validation"}),
		)

		err := s.SaveAll(ctx, Incidents, []Record{{ID: "inc-1", Data: []byte(`{"id":"inc-1"}`)}})
		require.Error(mt, err)

		requireCommand(mt, "update", mongoMeta)
		requireCommand(mt, "find", mongoMeta)
		requireCommand(mt, "delete", "incidents")
		requireCommand(mt, "insert", "incidents")
		require.Nil(mt, mt.GetStartedEvent())
	})

	mt.Run("schema init is retried after a failure", func(mt *mtest.T) {
		s := NewMongo(mt.DB)
		mt.AddMockResponses(
			mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Name: "BadValue", Message: "not ready"}),
			schemaOK(),
			mtest.CreateCursorResponse(0, "test.meta", mtest.FirstBatch),
			mtest.CreateCursorResponse(0, "test.meta", mtest.FirstBatch),
		)

		_, err := s.GetAll(ctx, Templates)
		require.Error(mt, err)

		_, err = s.GetAll(ctx, Templates)
		require.NoError(mt, err)

		// no second schema call: the next response is consumed by the find
		_, err = s.GetAll(ctx, Collections)
		require.NoError(mt, err)
	})

	mt.Run("settings", func(mt *mtest.T) {
		s := NewMongo(mt.DB)
		mt.AddMockResponses(
			schemaOK(),
			mtest.CreateCursorResponse(0, "test.settings", mtest.FirstBatch),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateCursorResponse(0, "test.settings", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: SettingHotels},
				{Key: "value", Value: `["Grand Plaza Hotel"]`},
			}),
		)

		_, found, err := LoadSetting[[]string](ctx, s, SettingHotels)
		require.NoError(mt, err)
		require.False(mt, found)

		require.NoError(mt, PutSetting(ctx, s, SettingHotels, []string{"Grand Plaza Hotel"}))

		hotels, found, err := LoadSetting[[]string](ctx, s, SettingHotels)
		require.NoError(mt, err)
		require.True(mt, found)
		require.Equal(mt, []string{"Grand Plaza Hotel"}, hotels)
	})

	mt.Run("rejects bad input before touching the server", func(mt *mtest.T) {
		s := NewMongo(mt.DB)
		_, err := s.GetAll(ctx, Collection("guests"))
		require.ErrorIs(mt, err, ErrUnknownCollection)
		require.ErrorIs(mt, s.SaveAll(ctx, Audits, []Record{{Data: []byte(`{}`)}}), ErrMissingID)
		require.ErrorIs(mt, s.SaveSetting(ctx, "", []byte(`1`)), ErrEmptyKey)
	})
}
