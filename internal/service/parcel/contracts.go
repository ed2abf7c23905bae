package parcel

import (
	"context"

	"service-parcel/internal/domain"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// parcelRepository defines storage operations required by the parcel registry.
type parcelRepository interface {
	Create(ctx context.Context, p *domain.Parcel) (domain.InsertResult, error)
	List(ctx context.Context) ([]domain.Parcel, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Parcel, error)
	Get(ctx context.Context, id bson.ObjectID) (*domain.Parcel, error)
	Replace(ctx context.Context, id bson.ObjectID, p domain.Parcel) (domain.UpdateResult, error)
	SetStatus(ctx context.Context, id bson.ObjectID, status domain.ParcelStatus) (domain.UpdateResult, error)
	Delete(ctx context.Context, id bson.ObjectID) (domain.DeleteResult, error)
}
