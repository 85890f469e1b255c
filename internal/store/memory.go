package store

import (
	"context"
	"encoding/json"
	"sync"
)

// Memory is a process-local Store for local runs and tests.
type Memory struct {
	mu          sync.Mutex
	collections map[Collection][]Record
	settings    map[string]json.RawMessage
}

func NewMemory() *Memory {
	return &Memory{
		collections: map[Collection][]Record{},
		settings:    map[string]json.RawMessage{},
	}
}

func (m *Memory) GetAll(_ context.Context, c Collection) ([]Record, error) {
	if err := checkCollection(c); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneRecords(m.collections[c]), nil
}

func (m *Memory) SaveAll(_ context.Context, c Collection, records []Record) error {
	if err := checkCollection(c); err != nil {
		return err
	}
	if err := checkRecords(records); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[c] = cloneRecords(records)
	return nil
}

func (m *Memory) GetSetting(_ context.Context, key string) (json.RawMessage, bool, error) {
	if key == "" {
		return nil, false, ErrEmptyKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.settings[key]
	if !ok {
		return nil, false, nil
	}
	return append(json.RawMessage(nil), v...), true, nil
}

func (m *Memory) SaveSetting(_ context.Context, key string, value json.RawMessage) error {
	if key == "" {
		return ErrEmptyKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[key] = append(json.RawMessage(nil), value...)
	return nil
}

func cloneRecords(in []Record) []Record {
	out := make([]Record, len(in))
	for i, r := range in {
		out[i] = Record{ID: r.ID, Data: append(json.RawMessage(nil), r.Data...)}
	}
	return out
}
