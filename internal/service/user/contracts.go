package user

import (
	"context"

	"service-parcel/internal/domain"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// userRepository defines storage operations required by the user directory.
type userRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) (domain.InsertResult, error)
	SetRole(ctx context.Context, id bson.ObjectID, role domain.Role) (domain.UpdateResult, error)
}
