// Package repository holds the MongoDB implementations of the resource stores.
package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bistro-boss/internal/models"
)

// findAll decodes every document matching filter. It never returns a nil slice so
// empty results encode as [] rather than null.
func findAll[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cur, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", coll.Name(), err)
	}

	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", coll.Name(), err)
	}
	return out, nil
}

// findOne decodes a single document, mapping a miss to models.ErrNotFound.
func findOne[T any](ctx context.Context, coll *mongo.Collection, filter interface{}) (*T, error) {
	var out T
	err := coll.FindOne(ctx, filter).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find one in %s: %w", coll.Name(), err)
	}
	return &out, nil
}

func insertOne(ctx context.Context, coll *mongo.Collection, doc interface{}) (models.InsertResult, error) {
	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.InsertResult{}, models.ErrConflict
		}
		return models.InsertResult{}, fmt.Errorf("insert into %s: %w", coll.Name(), err)
	}
	return models.InsertResult{Acknowledged: true, InsertedID: res.InsertedID}, nil
}

// updateByID applies update and reports models.ErrNotFound when nothing matched.
func updateByID(ctx context.Context, coll *mongo.Collection, filter bson.M, update bson.M) (models.UpdateResult, error) {
	res, err := coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("update %s: %w", coll.Name(), err)
	}
	if res.MatchedCount == 0 {
		return models.UpdateResult{}, models.ErrNotFound
	}
	return models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}

func deleteOne(ctx context.Context, coll *mongo.Collection, filter bson.M) (models.DeleteResult, error) {
	res, err := coll.DeleteOne(ctx, filter)
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("delete from %s: %w", coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return models.DeleteResult{}, models.ErrNotFound
	}
	return models.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

// countByEmail counts an owner's documents in coll.
func countByEmail(ctx context.Context, coll *mongo.Collection, email string) (int64, error) {
	n, err := coll.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", coll.Name(), err)
	}
	return n, nil
}
