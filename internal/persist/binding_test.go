package persist

import (
	"context"
	"testing"

	"hotel-audit-pro/internal/store"

	"github.com/stretchr/testify/require"
)

type thing struct {
	ID string `json:"id"`
}

func (t thing) RecordID() string { return t.ID }

func TestCollectionBinding_EmptyCountsAsNotFound(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	b := CollectionBinding[thing]{Store: mem, Collection: store.SOPs}

	_, found, err := b.Load(ctx)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, b.Save(ctx, []thing{}))
	_, found, err = b.Load(ctx)
	require.NoError(t, err)
	require.False(t, found, "an emptied collection falls back to seed data")

	require.NoError(t, b.Save(ctx, []thing{{ID: "sop-1"}}))
	got, found, err := b.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []thing{{ID: "sop-1"}}, got)
	require.Equal(t, "sops", b.Name())
}

func TestSettingBinding_EmptyValueIsKept(t *testing.T) {
	ctx := context.Background()
	b := SettingBinding[[]string]{Store: store.NewMemory(), Key: store.SettingHotels}

	_, found, err := b.Load(ctx)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, b.Save(ctx, []string{}))
	got, found, err := b.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.Empty(t, got)
}
