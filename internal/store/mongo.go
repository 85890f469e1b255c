package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoSettings = "settings"
	mongoMeta     = "meta"
)

// Mongo keeps one document per record in a collection named after the
// entity. Every SaveAll writes a new generation and then flips the pointer
// in meta, so readers see either the old list or the new one. The swap needs
// no transaction and works on a standalone server.
type Mongo struct {
	db   *mongo.Database
	init lazyInit
}

type mongoRecord struct {
	Gen  int64  `bson:"gen"`
	Seq  int    `bson:"seq"`
	ID   string `bson:"id"`
	Data string `bson:"data"`
}

type mongoGeneration struct {
	ID  string `bson:"_id"`
	Gen int64  `bson:"gen"`
}

type mongoSetting struct {
	ID    string `bson:"_id"`
	Value string `bson:"value"`
}

// NewMongo wraps db. The caller keeps ownership of the client.
func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{db: db}
}

func (m *Mongo) ensureSchema(ctx context.Context) error {
	return m.init.ensure(ctx, func(ctx context.Context) error {
		_, err := m.db.Collection(mongoMeta).UpdateOne(ctx,
			bson.D{{Key: "_id", Value: "schema"}},
			bson.D{{Key: "$setOnInsert", Value: bson.D{{Key: "version", Value: schemaVersion}}}},
			options.Update().SetUpsert(true),
		)
		return err
	})
}

func generationKey(c Collection) string { return "generation:" + string(c) }

// generation returns the live generation of c, 0 when never written.
func (m *Mongo) generation(ctx context.Context, c Collection) (int64, error) {
	var doc mongoGeneration
	err := m.db.Collection(mongoMeta).FindOne(ctx, bson.D{{Key: "_id", Value: generationKey(c)}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return doc.Gen, nil
}

func (m *Mongo) GetAll(ctx context.Context, c Collection) ([]Record, error) {
	if err := checkCollection(c); err != nil {
		return nil, err
	}
	if err := m.ensureSchema(ctx); err != nil {
		return nil, err
	}

	gen, err := m.generation(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("store: mongo get %s: %w", c, err)
	}
	if gen == 0 {
		return []Record{}, nil
	}

	cur, err := m.db.Collection(string(c)).Find(ctx,
		bson.D{{Key: "gen", Value: gen}},
		options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("store: mongo get %s: %w", c, err)
	}
	var docs []mongoRecord
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("store: mongo get %s: %w", c, err)
	}

	out := make([]Record, 0, len(docs))
	for _, d := range docs {
		out = append(out, Record{ID: d.ID, Data: json.RawMessage(d.Data)})
	}
	return out, nil
}

// SaveAll clears leftovers of an interrupted save, inserts the next
// generation, points meta at it and drops everything older.
func (m *Mongo) SaveAll(ctx context.Context, c Collection, records []Record) error {
	if err := checkCollection(c); err != nil {
		return err
	}
	if err := checkRecords(records); err != nil {
		return err
	}
	if err := m.ensureSchema(ctx); err != nil {
		return err
	}

	wrap := func(err error) error { return fmt.Errorf("store: mongo save %s: %w", c, err) }
	coll := m.db.Collection(string(c))

	live, err := m.generation(ctx, c)
	if err != nil {
		return wrap(err)
	}
	next := live + 1

	if _, err := coll.DeleteMany(ctx, bson.D{{Key: "gen", Value: bson.D{{Key: "$ne", Value: live}}}}); err != nil {
		return wrap(err)
	}
	if len(records) > 0 {
		docs := make([]interface{}, 0, len(records))
		for i, r := range records {
			docs = append(docs, mongoRecord{Gen: next, Seq: i, ID: r.ID, Data: string(r.Data)})
		}
		if _, err := coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
			return wrap(err)
		}
	}
	_, err = m.db.Collection(mongoMeta).ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: generationKey(c)}},
		mongoGeneration{ID: generationKey(c), Gen: next},
		options.Replace().SetUpsert(true))
	if err != nil {
		return wrap(err)
	}
	if _, err := coll.DeleteMany(ctx, bson.D{{Key: "gen", Value: bson.D{{Key: "$ne", Value: next}}}}); err != nil {
		return wrap(err)
	}
	return nil
}

func (m *Mongo) GetSetting(ctx context.Context, key string) (json.RawMessage, bool, error) {
	if key == "" {
		return nil, false, ErrEmptyKey
	}
	if err := m.ensureSchema(ctx); err != nil {
		return nil, false, err
	}
	var doc mongoSetting
	err := m.db.Collection(mongoSettings).FindOne(ctx, bson.D{{Key: "_id", Value: key}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("store: mongo get setting %s: %w", key, err)
	}
	return json.RawMessage(doc.Value), true, nil
}

func (m *Mongo) SaveSetting(ctx context.Context, key string, value json.RawMessage) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := m.ensureSchema(ctx); err != nil {
		return err
	}
	_, err := m.db.Collection(mongoSettings).ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: key}}, mongoSetting{ID: key, Value: string(value)}, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("store: mongo save setting %s: %w", key, err)
	}
	return nil
}
