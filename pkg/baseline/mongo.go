package baseline

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/tabs/pkg/errors"
)

// MongoStore keeps one document per package:
//
//	{_id: "bash", version: "5.2.21", updated_at: ISODate, run_id: "…"}
type MongoStore struct {
	coll  *mongo.Collection
	RunID string // Stamped on every document written by Save
}

type mongoEntry struct {
	Name      string    `bson:"_id"`
	Version   string    `bson:"version"`
	UpdatedAt time.Time `bson:"updated_at"`
	RunID     string    `bson:"run_id,omitempty"`
}

// NewMongoStore returns a store over coll.
func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

// ConnectMongo connects to uri and returns a store over database/collection
// along with the client, which the caller must disconnect.
func ConnectMongo(ctx context.Context, uri, database, collection string) (*MongoStore, *mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "connect mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "ping mongodb")
	}
	return NewMongoStore(client.Database(database).Collection(collection)), client, nil
}

// Load reads every document in the collection.
func (s *MongoStore) Load(ctx context.Context) (Baseline, error) {
	cur, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load baseline")
	}
	var entries []mongoEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode baseline")
	}

	b := make(Baseline, len(entries))
	for _, e := range entries {
		b[e.Name] = e.Version
	}
	return b, nil
}

// Save makes the collection hold exactly b: entries are upserted and
// documents for names not in b are removed.
func (s *MongoStore) Save(ctx context.Context, b Baseline) error {
	now := time.Now().UTC()
	names := make([]string, 0, len(b))
	models := make([]mongo.WriteModel, 0, len(b))
	for name, v := range b {
		names = append(names, name)
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: "_id", Value: name}}).
			SetReplacement(mongoEntry{Name: name, Version: v, UpdatedAt: now, RunID: s.RunID}).
			SetUpsert(true))
	}

	if len(models) > 0 {
		if _, err := s.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false)); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "save baseline")
		}
	}
	filter := bson.D{{Key: "_id", Value: bson.D{{Key: "$nin", Value: names}}}}
	if _, err := s.coll.DeleteMany(ctx, filter); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "prune baseline")
	}
	return nil
}

var _ Store = (*MongoStore)(nil)
