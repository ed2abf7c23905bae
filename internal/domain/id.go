package domain

import (
	"fmt"
	"strings"

	"service-parcel/internal/apperr"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ParseID converts a 24-character hex string into an ObjectID.
func ParseID(hex string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(strings.TrimSpace(hex))
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("%w: id %q", apperr.ErrInvalid, hex)
	}
	return id, nil
}
