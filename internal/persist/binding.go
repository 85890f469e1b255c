package persist

import (
	"context"

	"hotel-audit-pro/internal/store"
)

// Binding loads and saves one persisted value.
// Load reports found=false when there is nothing usable stored, in which
// case the caller keeps its seed value.
type Binding[T any] interface {
	Name() string
	Load(ctx context.Context) (T, bool, error)
	Save(ctx context.Context, v T) error
}

// CollectionBinding persists a whole entity collection.
// An empty stored collection counts as not found.
type CollectionBinding[E store.Identified] struct {
	Store      store.Store
	Collection store.Collection
}

func (b CollectionBinding[E]) Name() string { return string(b.Collection) }

func (b CollectionBinding[E]) Load(ctx context.Context) ([]E, bool, error) {
	items, err := store.LoadAll[E](ctx, b.Store, b.Collection)
	if err != nil {
		return nil, false, err
	}
	return items, len(items) > 0, nil
}

func (b CollectionBinding[E]) Save(ctx context.Context, items []E) error {
	return store.ReplaceAll(ctx, b.Store, b.Collection, items)
}

// SettingBinding persists one settings key. Only a missing key counts as
// not found; a stored empty value is kept.
type SettingBinding[T any] struct {
	Store store.Store
	Key   string
}

func (b SettingBinding[T]) Name() string { return "settings." + b.Key }

func (b SettingBinding[T]) Load(ctx context.Context) (T, bool, error) {
	return store.LoadSetting[T](ctx, b.Store, b.Key)
}

func (b SettingBinding[T]) Save(ctx context.Context, v T) error {
	return store.PutSetting(ctx, b.Store, b.Key, v)
}
