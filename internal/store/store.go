// Package store persists whole collections of JSON records plus a small
// key/value settings namespace. Every backend replaces a collection
// atomically on SaveAll; there are no partial updates.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// Collection names one entity store.
type Collection string

const (
	Audits      Collection = "audits"
	Incidents   Collection = "incidents"
	Users       Collection = "users"
	SOPs        Collection = "sops"
	Templates   Collection = "templates"
	Collections Collection = "collections"
)

// Setting keys.
const (
	SettingHotels      = "hotels"
	SettingDepartments = "departments"
)

// AllCollections lists every entity store in schema order.
func AllCollections() []Collection {
	return []Collection{Audits, Incidents, Users, SOPs, Templates, Collections}
}

func (c Collection) Valid() bool {
	switch c {
	case Audits, Incidents, Users, SOPs, Templates, Collections:
		return true
	default:
		return false
	}
}

var (
	ErrUnknownCollection = errors.New("store: unknown collection")
	ErrMissingID         = errors.New("store: record id is required")
	ErrEmptyKey          = errors.New("store: setting key is required")
)

// Record is one encoded entity.
type Record struct {
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data"`
}

// Store is the object store contract shared by every backend.
type Store interface {
	// GetAll returns the collection in saved order; never-written collections are empty.
	GetAll(ctx context.Context, c Collection) ([]Record, error)
	// SaveAll replaces the collection with records.
	SaveAll(ctx context.Context, c Collection, records []Record) error
	GetSetting(ctx context.Context, key string) (json.RawMessage, bool, error)
	SaveSetting(ctx context.Context, key string, value json.RawMessage) error
}

func checkCollection(c Collection) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCollection, string(c))
	}
	return nil
}

func checkRecords(records []Record) error {
	for i, r := range records {
		if r.ID == "" {
			return fmt.Errorf("%w (index %d)", ErrMissingID, i)
		}
	}
	return nil
}

// lazyInit runs a schema setup function until it succeeds once.
// A failed attempt is retried on the next access.
type lazyInit struct {
	mu   sync.Mutex
	done bool
}

func (l *lazyInit) ensure(ctx context.Context, fn func(ctx context.Context) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.done {
		return nil
	}
	if err := fn(ctx); err != nil {
		return fmt.Errorf("store: init schema: %w", err)
	}
	l.done = true
	return nil
}
