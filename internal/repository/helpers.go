package repository

import (
	"context"

	"service-parcel/internal/domain"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// findOne decodes the first match into T. A miss is (nil, nil).
func findOne[T any](ctx context.Context, col *mongo.Collection, filter bson.D) (*T, error) {
	var out T
	if err := col.FindOne(ctx, filter).Decode(&out); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, wrapError("find "+col.Name(), err)
	}
	return &out, nil
}

// findMany decodes every match. The result is never nil so it encodes as [].
func findMany[T any](ctx context.Context, col *mongo.Collection, filter bson.D, opts ...options.Lister[options.FindOptions]) ([]T, error) {
	cur, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, wrapError("find "+col.Name(), err)
	}
	defer cur.Close(ctx)

	out := make([]T, 0)
	for cur.Next(ctx) {
		var item T
		if err := cur.Decode(&item); err != nil {
			return nil, wrapError("decode "+col.Name(), err)
		}
		out = append(out, item)
	}
	if err := cur.Err(); err != nil {
		return nil, wrapError("cursor "+col.Name(), err)
	}
	return out, nil
}

func setByID(ctx context.Context, col *mongo.Collection, id bson.ObjectID, fields bson.D) (domain.UpdateResult, error) {
	res, err := col.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: fields}})
	if err != nil {
		return domain.UpdateResult{}, wrapError("update "+col.Name(), err)
	}
	return domain.UpdateResult{
		Acknowledged:  res.Acknowledged,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}, nil
}

func insertWithID(ctx context.Context, col *mongo.Collection, id bson.ObjectID, doc any) (domain.InsertResult, error) {
	res, err := col.InsertOne(ctx, doc)
	if err != nil {
		return domain.InsertResult{}, wrapError("insert "+col.Name(), err)
	}
	return domain.InsertResult{Acknowledged: res.Acknowledged, InsertedID: id}, nil
}
