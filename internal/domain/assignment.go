package domain

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Assignment links a delivery man to a parcel. The caller's payload, including
// parcelId and deliveryManId, is stored verbatim in Attrs.
type Assignment struct {
	ID    bson.ObjectID  `bson:"_id,omitempty"`
	Attrs map[string]any `bson:",inline"`
}

type assignmentJSON struct {
	ID *bson.ObjectID `json:"_id,omitempty"`
}

// ParcelID returns parcelId when the caller sent it as a string.
func (a Assignment) ParcelID() string {
	return a.stringAttr("parcelId")
}

// DeliveryManID returns deliveryManId when the caller sent it as a string.
func (a Assignment) DeliveryManID() string {
	return a.stringAttr("deliveryManId")
}

func (a Assignment) stringAttr(key string) string {
	s, _ := a.Attrs[key].(string)
	return s
}

// MarshalJSON flattens Attrs next to the id.
func (a Assignment) MarshalJSON() ([]byte, error) {
	var out assignmentJSON
	if !a.ID.IsZero() {
		id := a.ID
		out.ID = &id
	}
	return marshalDocument(out, a.Attrs)
}

// UnmarshalJSON reads a client payload. A client-supplied _id is discarded.
func (a *Assignment) UnmarshalJSON(data []byte) error {
	attrs, err := unmarshalDocument(data, &struct{}{}, "_id")
	if err != nil {
		return err
	}
	*a = Assignment{Attrs: attrs}
	return nil
}

// AssignmentRecorded is emitted after an assignment has been stored.
type AssignmentRecorded struct {
	AssignmentID  string
	ParcelID      string
	DeliveryManID string
	RecordedAt    time.Time
}

var (
	_ json.Marshaler   = Assignment{}
	_ json.Unmarshaler = (*Assignment)(nil)
)
