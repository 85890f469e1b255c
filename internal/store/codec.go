package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Identified is implemented by every persisted entity.
type Identified interface {
	RecordID() string
}

// EncodeRecords marshals items in order, rejecting empty ids.
func EncodeRecords[T Identified](items []T) ([]Record, error) {
	out := make([]Record, 0, len(items))
	for i, it := range items {
		id := it.RecordID()
		if id == "" {
			return nil, fmt.Errorf("%w (index %d)", ErrMissingID, i)
		}
		b, err := json.Marshal(it)
		if err != nil {
			return nil, fmt.Errorf("store: encode %s: %w", id, err)
		}
		out = append(out, Record{ID: id, Data: b})
	}
	return out, nil
}

// DecodeRecords unmarshals records in order.
func DecodeRecords[T any](records []Record) ([]T, error) {
	out := make([]T, 0, len(records))
	for _, r := range records {
		var v T
		if err := json.Unmarshal(r.Data, &v); err != nil {
			return nil, fmt.Errorf("store: decode %s: %w", r.ID, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func LoadAll[T any](ctx context.Context, s Store, c Collection) ([]T, error) {
	records, err := s.GetAll(ctx, c)
	if err != nil {
		return nil, err
	}
	return DecodeRecords[T](records)
}

func ReplaceAll[T Identified](ctx context.Context, s Store, c Collection, items []T) error {
	records, err := EncodeRecords(items)
	if err != nil {
		return err
	}
	return s.SaveAll(ctx, c, records)
}

// LoadSetting decodes a setting; found is false when the key was never written.
func LoadSetting[T any](ctx context.Context, s Store, key string) (T, bool, error) {
	var v T
	raw, found, err := s.GetSetting(ctx, key)
	if err != nil || !found {
		return v, false, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false, fmt.Errorf("store: decode setting %s: %w", key, err)
	}
	return v, true, nil
}

func PutSetting[T any](ctx context.Context, s Store, key string, v T) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode setting %s: %w", key, err)
	}
	return s.SaveSetting(ctx, key, b)
}
