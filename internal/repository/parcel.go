package repository

import (
	"context"

	"service-parcel/internal/domain"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// ParcelRepo stores parcels.
type ParcelRepo struct{ col *mongo.Collection }

// NewParcelRepo creates a new ParcelRepo.
func NewParcelRepo(db *mongo.Database) *ParcelRepo {
	return &ParcelRepo{col: db.Collection(ColParcels)}
}

// Create inserts p under a freshly generated id.
func (r *ParcelRepo) Create(ctx context.Context, p *domain.Parcel) (domain.InsertResult, error) {
	p.ID = bson.NewObjectID()
	return insertWithID(ctx, r.col, p.ID, p)
}

// List returns every parcel.
func (r *ParcelRepo) List(ctx context.Context) ([]domain.Parcel, error) {
	return findMany[domain.Parcel](ctx, r.col, bson.D{})
}

// ListByEmail returns parcels whose email equals email exactly.
func (r *ParcelRepo) ListByEmail(ctx context.Context, email string) ([]domain.Parcel, error) {
	return findMany[domain.Parcel](ctx, r.col, bson.D{{Key: "email", Value: email}})
}

// Get returns the parcel with the given id, or nil.
func (r *ParcelRepo) Get(ctx context.Context, id bson.ObjectID) (*domain.Parcel, error) {
	return findOne[domain.Parcel](ctx, r.col, bson.D{{Key: "_id", Value: id}})
}

// Replace sets every booking attribute of the parcel from p as sent, storing null
// for attributes p lacks, and writes p.Status. Other stored attributes are left untouched.
func (r *ParcelRepo) Replace(ctx context.Context, id bson.ObjectID, p domain.Parcel) (domain.UpdateResult, error) {
	fields := make(bson.D, 0, len(domain.ParcelBookingKeys)+1)
	for _, k := range domain.ParcelBookingKeys {
		fields = append(fields, bson.E{Key: k, Value: p.Attrs[k]})
	}
	fields = append(fields, bson.E{Key: "status", Value: p.Status})
	return setByID(ctx, r.col, id, fields)
}

// SetStatus changes only the status of the parcel.
func (r *ParcelRepo) SetStatus(ctx context.Context, id bson.ObjectID, status domain.ParcelStatus) (domain.UpdateResult, error) {
	return setByID(ctx, r.col, id, bson.D{{Key: "status", Value: status}})
}

// Delete removes the parcel. A missing id reports zero deletions.
func (r *ParcelRepo) Delete(ctx context.Context, id bson.ObjectID) (domain.DeleteResult, error) {
	res, err := r.col.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return domain.DeleteResult{}, wrapError("delete parcel", err)
	}
	return domain.DeleteResult{Acknowledged: res.Acknowledged, DeletedCount: res.DeletedCount}, nil
}
