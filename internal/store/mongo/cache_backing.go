package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/bmartin2011/Fetterman-s-sub000/internal/cache"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CacheBackingRepository keeps the durable copy of a TTL cache: one document
// per namespace holding the full entry set, replaced on every save.
type CacheBackingRepository struct {
	collection *mongo.Collection
}

func NewCacheBackingRepository(db *mongo.Database) *CacheBackingRepository {
	return &CacheBackingRepository{
		collection: db.Collection("cache_entries"),
	}
}

type cacheDocument struct {
	Namespace string                 `bson:"_id"`
	Entries   []cache.PersistedEntry `bson:"entries"`
	UpdatedAt time.Time              `bson:"updated_at"`
}

func (r *CacheBackingRepository) Save(ctx context.Context, namespace string, entries []cache.PersistedEntry) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	doc := cacheDocument{
		Namespace: namespace,
		Entries:   entries,
		UpdatedAt: time.Now(),
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": namespace}, doc, opts); err != nil {
		return fmt.Errorf("failed to save cache namespace %s: %w", namespace, err)
	}

	return nil
}

func (r *CacheBackingRepository) Load(ctx context.Context, namespace string) ([]cache.PersistedEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc cacheDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": namespace}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load cache namespace %s: %w", namespace, err)
	}

	return doc.Entries, nil
}
