package regions

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/connline/pkg/geom"
)

// Defaults used by OpenMongoStore.
const (
	DefaultMongoDatabase   = "connline"
	DefaultMongoCollection = "regions"
)

// regionDoc is the stored shape of one region.
type regionDoc struct {
	Ref    string  `bson:"ref"`
	Left   float64 `bson:"left"`
	Top    float64 `bson:"top"`
	Width  float64 `bson:"width"`
	Height float64 `bson:"height"`
}

func (d regionDoc) rect() geom.Rect {
	return geom.Rect{Left: d.Left, Top: d.Top, Width: d.Width, Height: d.Height}
}

// collection is the subset of *mongo.Collection that MongoStore needs.
type collection interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
	BulkWrite(ctx context.Context, models []mongo.WriteModel, opts ...*options.BulkWriteOptions) (*mongo.BulkWriteResult, error)
}

// MongoStore reads regions from a MongoDB collection holding one document
// per region: {ref, left, top, width, height}.
type MongoStore struct {
	coll collection
}

// NewMongoStore returns a store backed by coll.
func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

// OpenMongoStore connects to uri and returns a store for db.collection.
// Empty names fall back to the defaults. The caller must Disconnect the
// returned client.
func OpenMongoStore(ctx context.Context, uri, db, coll string) (*MongoStore, *mongo.Client, error) {
	if db == "" {
		db = DefaultMongoDatabase
	}
	if coll == "" {
		coll = DefaultMongoCollection
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongodb: %w", err)
	}
	return NewMongoStore(client.Database(db).Collection(coll)), client, nil
}

// Fetch implements Store with one $in query.
func (s *MongoStore) Fetch(ctx context.Context, refs []string) (map[string]geom.Rect, error) {
	cur, err := s.coll.Find(ctx, bson.M{"ref": bson.M{"$in": refs}})
	if err != nil {
		return nil, classifyMongo(err, "find regions")
	}
	defer cur.Close(ctx)

	var docs []regionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, classifyMongo(err, "decode regions")
	}

	out := make(map[string]geom.Rect, len(docs))
	for _, d := range docs {
		out[d.Ref] = d.rect()
	}
	return out, nil
}

// Put upserts every region in t.
func (s *MongoStore) Put(ctx context.Context, t Table) error {
	if len(t) == 0 {
		return nil
	}
	models := make([]mongo.WriteModel, 0, len(t))
	for _, ref := range t.Refs() {
		r := t[ref]
		doc := regionDoc{Ref: ref, Left: r.Left, Top: r.Top, Width: r.Width, Height: r.Height}
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"ref": ref}).
			SetReplacement(doc).
			SetUpsert(true))
	}
	if _, err := s.coll.BulkWrite(ctx, models); err != nil {
		return classifyMongo(err, "upsert regions")
	}
	return nil
}

func classifyMongo(err error, op string) error {
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || isTransient(err) {
		return Retryable(fmt.Errorf("%s: %w", op, err))
	}
	return fmt.Errorf("%s: %w", op, err)
}
