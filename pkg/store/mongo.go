package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"laygrid/pkg/diagram"
	"laygrid/pkg/errors"
)

// MongoStore is a MongoDB-backed diagram store for multi-instance deployments.
// Diagrams live in a single collection, one document per diagram, keyed by name.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	// URI is the MongoDB connection string, e.g. "mongodb://localhost:27017".
	URI string

	// Database is the database name. Defaults to "laygrid".
	Database string

	// Collection is the collection name. Defaults to "diagrams".
	Collection string
}

// NewMongoStore connects to MongoDB and prepares the diagram collection.
// A unique index on the diagram name is created if it does not exist.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "laygrid"
	}
	if cfg.Collection == "" {
		cfg.Collection = "diagrams"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connecting to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "pinging mongodb")
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := coll.Indexes().CreateOne(ctx, indexModel); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "creating name index")
	}

	return &MongoStore{client: client, collection: coll}, nil
}

// Get retrieves a diagram by name.
func (s *MongoStore) Get(ctx context.Context, name string) (*diagram.Diagram, error) {
	var d diagram.Diagram
	err := s.collection.FindOne(ctx, bson.M{"name": name}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return nil, notFound(name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "fetching diagram %q", name)
	}
	return &d, nil
}

// Put stores a diagram, replacing any existing one with the same name.
func (s *MongoStore) Put(ctx context.Context, d *diagram.Diagram) error {
	if d == nil || d.Name == "" {
		return errors.New(errors.ErrCodeInvalidInput, "diagram must have a name")
	}

	opts := options.Replace().SetUpsert(true)
	_, err := s.collection.ReplaceOne(ctx, bson.M{"name": d.Name}, d, opts)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "storing diagram %q", d.Name)
	}
	return nil
}

// Delete removes a diagram by name.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	res, err := s.collection.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "deleting diagram %q", name)
	}
	if res.DeletedCount == 0 {
		return notFound(name)
	}
	return nil
}

// List returns the names of all stored diagrams, sorted.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"name": 1}).
		SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "listing diagrams")
	}
	defer cursor.Close(ctx)

	var names []string
	for cursor.Next(ctx) {
		var doc struct {
			Name string `bson:"name"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStore, err, "decoding diagram name")
		}
		names = append(names, doc.Name)
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "iterating diagrams")
	}
	return names, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
