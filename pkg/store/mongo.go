package store

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DefaultCollection is the collection MongoStore writes to.
const DefaultCollection = "graphs"

// MongoStore keeps documents in a MongoDB collection keyed by _id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to uri and uses database.collection.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	coll := client.Database(database).Collection(DefaultCollection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create index: %w", err)
	}
	return &MongoStore{client: client, coll: coll}, nil
}

func (s *MongoStore) Put(ctx context.Context, doc Document) (Document, error) {
	doc = prepare(doc)
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return Document{}, fmt.Errorf("insert document: %w", err)
	}
	return doc, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (Document, error) {
	var doc Document
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return Document{}, notFound(id)
	}
	if err != nil {
		return Document{}, fmt.Errorf("find document: %w", err)
	}
	return doc, nil
}

func (s *MongoStore) List(ctx context.Context, limit int) ([]Document, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(listLimit(limit))).
		SetProjection(bson.M{"source": 0})

	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	docs := []Document{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}
	return docs, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
