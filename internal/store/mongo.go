package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/arsh246/weather-app/internal/errs"
	"github.com/arsh246/weather-app/internal/models"
)

const searchesCollection = "searches"

// MongoStore keeps search history in a single MongoDB collection, every
// document carrying its owner key.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(client *mongo.Client, dbName string) *MongoStore {
	return &MongoStore{coll: client.Database(dbName).Collection(searchesCollection)}
}

func (s *MongoStore) Append(ctx context.Context, userID string, rec models.SearchRecord) (string, error) {
	rec.OwnerID = ownerKey(userID)
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	stored := models.StoredSearch{ID: primitive.NewObjectID(), SearchRecord: rec}
	if _, err := s.coll.InsertOne(ctx, stored); err != nil {
		return "", fmt.Errorf("%w: insert search: %v", errs.ErrStorage, err)
	}
	return stored.ID.Hex(), nil
}

func (s *MongoStore) List(ctx context.Context, userID string) ([]models.StoredSearch, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"ownerId": ownerKey(userID)})
	if err != nil {
		return nil, fmt.Errorf("%w: find searches: %v", errs.ErrStorage, err)
	}
	defer cursor.Close(ctx)

	var records []models.StoredSearch
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("%w: decode searches: %v", errs.ErrStorage, err)
	}
	if records == nil {
		records = make([]models.StoredSearch, 0)
	}
	return records, nil
}

func (s *MongoStore) Update(ctx context.Context, userID, id string, upd SearchUpdate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: malformed record id", errs.ErrNotFound)
	}

	filter := bson.M{"_id": oid, "ownerId": ownerKey(userID)}
	update := bson.M{"$set": bson.M{"temperature": upd.Temperature, "weather": upd.Weather}}

	result, err := s.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("%w: update search: %v", errs.ErrStorage, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: search record %s", errs.ErrNotFound, id)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, userID, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: malformed record id", errs.ErrNotFound)
	}

	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid, "ownerId": ownerKey(userID)})
	if err != nil {
		return fmt.Errorf("%w: delete search: %v", errs.ErrStorage, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: search record %s", errs.ErrNotFound, id)
	}
	return nil
}

func (s *MongoStore) ExportAll(ctx context.Context, userID string) ([]models.SearchRecord, error) {
	stored, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	records := make([]models.SearchRecord, 0, len(stored))
	for _, st := range stored {
		records = append(records, st.SearchRecord)
	}
	return records, nil
}
