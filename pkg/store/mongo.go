package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	appio "github.com/archpadhq/archpad/pkg/io"
)

// MongoConfig configures the MongoDB-backed design store.
type MongoConfig struct {
	URI        string // e.g. "mongodb://localhost:27017"
	Database   string // defaults to "archpad"
	Collection string // defaults to "designs"
}

// designDoc is the stored document shape. The diagram envelope carries its
// own bson tags, so designs are queryable as structured documents rather
// than opaque blobs.
type designDoc struct {
	Name      string        `bson:"_id"`
	Diagram   appio.Diagram `bson:"diagram"`
	UpdatedAt time.Time     `bson:"updated_at"`
}

// MongoStore keeps designs as structured documents in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "archpad"
	}
	if cfg.Collection == "" {
		cfg.Collection = "designs"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// List returns the stored design names in lexical order.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	cursor, err := s.coll.Find(ctx, bson.D{}, options.Find().SetProjection(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list designs: %w", err)
	}
	defer cursor.Close(ctx)

	var names []string
	for cursor.Next(ctx) {
		var doc struct {
			Name string `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode design name: %w", err)
		}
		names = append(names, doc.Name)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list designs: %w", err)
	}
	slices.Sort(names)
	return names, nil
}

// Get returns the design with the given name, or ErrNotFound.
func (s *MongoStore) Get(ctx context.Context, name string) (appio.Diagram, error) {
	if err := ValidateName(name); err != nil {
		return appio.Diagram{}, err
	}
	var doc designDoc
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: name}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return appio.Diagram{}, ErrNotFound
	}
	if err != nil {
		return appio.Diagram{}, fmt.Errorf("get design %s: %w", name, err)
	}
	return doc.Diagram, nil
}

// Put upserts a design document.
func (s *MongoStore) Put(ctx context.Context, name string, d appio.Diagram) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	doc := designDoc{Name: name, Diagram: d, UpdatedAt: time.Now().UTC()}
	_, err := s.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: name}}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("put design %s: %w", name, err)
	}
	return nil
}

// Delete removes a design document, or returns ErrNotFound.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: name}})
	if err != nil {
		return fmt.Errorf("delete design %s: %w", name, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
