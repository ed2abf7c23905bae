package repository

import (
	"context"

	"service-parcel/internal/domain"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// AssignmentRepo is the append-only delivery assignment log.
type AssignmentRepo struct{ col *mongo.Collection }

// NewAssignmentRepo creates a new AssignmentRepo.
func NewAssignmentRepo(db *mongo.Database) *AssignmentRepo {
	return &AssignmentRepo{col: db.Collection(ColAssignments)}
}

// Create appends a under a freshly generated id.
func (r *AssignmentRepo) Create(ctx context.Context, a *domain.Assignment) (domain.InsertResult, error) {
	a.ID = bson.NewObjectID()
	return insertWithID(ctx, r.col, a.ID, a)
}
