package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoCollection = "ledger_documents"

type mongoDocument struct {
	Name      string    `bson:"_id"`
	Body      string    `bson:"body"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoBackend stores the encoded document in a single MongoDB document.
type MongoBackend struct {
	col  *mongo.Collection
	name string
}

func NewMongoBackend(db *mongo.Database, name string) *MongoBackend {
	return &MongoBackend{col: db.Collection(mongoCollection), name: name}
}

func (b *MongoBackend) Name() string { return "mongo:" + b.name }

func (b *MongoBackend) Load(ctx context.Context) ([]byte, error) {
	var out mongoDocument
	err := b.col.FindOne(ctx, bson.M{"_id": b.name}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, err
	}
	return []byte(out.Body), nil
}

func (b *MongoBackend) Save(ctx context.Context, data []byte) error {
	doc := mongoDocument{
		Name:      b.name,
		Body:      string(data),
		UpdatedAt: time.Now().UTC(),
	}
	_, err := b.col.ReplaceOne(ctx, bson.M{"_id": b.name}, doc, options.Replace().SetUpsert(true))
	return err
}

// Close is a no-op; the client is owned by the caller.
func (b *MongoBackend) Close() error { return nil }
