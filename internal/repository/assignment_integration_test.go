//go:build integration

package repository_test

import (
	"encoding/json"
	"testing"

	"service-parcel/internal/domain"
	"service-parcel/internal/repository"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestAssignmentRepo_CreateStoresVerbatim(t *testing.T) {
	t.Parallel()
	db := freshDB(t)
	repo := repository.NewAssignmentRepo(db)
	ctx := testCtx(t)

	a := &domain.Assignment{Attrs: map[string]any{
		"parcelId":        "p1",
		"deliveryManId":   "d1",
		"approximateDate": "2024-05-02",
	}}
	res, err := repo.Create(ctx, a)
	require.NoError(t, err)
	require.True(t, res.Acknowledged)

	var stored bson.M
	err = db.Collection(repository.ColAssignments).
		FindOne(ctx, bson.D{{Key: "_id", Value: res.InsertedID}}).
		Decode(&stored)
	require.NoError(t, err)
	require.Equal(t, "p1", stored["parcelId"])
	require.Equal(t, "d1", stored["deliveryManId"])
	require.Equal(t, "2024-05-02", stored["approximateDate"])

	// no referential checks
	_, err = repo.Create(ctx, &domain.Assignment{Attrs: map[string]any{"parcelId": "does-not-exist"}})
	require.NoError(t, err)
}

func TestAssignmentRepo_CreateKeepsNonStringIDs(t *testing.T) {
	t.Parallel()
	db := freshDB(t)
	repo := repository.NewAssignmentRepo(db)
	ctx := testCtx(t)

	var a domain.Assignment
	require.NoError(t, json.Unmarshal([]byte(`{"parcelId":12,"deliveryManId":{"ref":"d1"}}`), &a))

	res, err := repo.Create(ctx, &a)
	require.NoError(t, err)

	var stored bson.M
	err = db.Collection(repository.ColAssignments).
		FindOne(ctx, bson.D{{Key: "_id", Value: res.InsertedID}}).
		Decode(&stored)
	require.NoError(t, err)
	require.Equal(t, float64(12), stored["parcelId"])
	require.Equal(t, bson.D{{Key: "ref", Value: "d1"}}, stored["deliveryManId"])
}
