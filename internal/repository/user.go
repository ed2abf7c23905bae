package repository

import (
	"context"

	"service-parcel/internal/domain"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// UserRepo stores users.
type UserRepo struct{ col *mongo.Collection }

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *mongo.Database) *UserRepo { return &UserRepo{col: db.Collection(ColUsers)} }

// List returns every user in natural order.
func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	return findMany[domain.User](ctx, r.col, bson.D{})
}

// GetByEmail returns the first user with the exact email, or nil.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return findOne[domain.User](ctx, r.col, bson.D{{Key: "email", Value: email}})
}

// Create inserts u under a freshly generated id.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) (domain.InsertResult, error) {
	u.ID = bson.NewObjectID()
	return insertWithID(ctx, r.col, u.ID, u)
}

// SetRole overwrites the role of the user with the given id.
func (r *UserRepo) SetRole(ctx context.Context, id bson.ObjectID, role domain.Role) (domain.UpdateResult, error) {
	return setByID(ctx, r.col, id, bson.D{{Key: "role", Value: role}})
}
