package domain

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ParcelStatus is the free-text delivery state of a parcel.
type ParcelStatus string

// Statuses written by the server.
const (
	ParcelStatusPending  ParcelStatus = "pending"
	ParcelStatusOnTheWay ParcelStatus = "On the Way"
)

// ParcelBookingKeys are the attributes a full replace overwrites. A key missing
// from the replacement is stored as null.
var ParcelBookingKeys = []string{
	"name", "email", "phoneNumber", "parcelType", "parcelWeight",
	"receiverName", "receiverPhoneNumber", "deliveryAddress", "requestedDeliveryDate",
	"deliveryAddressLatitude", "deliveryAddressLongitude", "bookingDate", "price",
}

// Parcel is a booked shipment. The server owns ID and Status; every other
// attribute is kept in Attrs exactly as the client sent it.
type Parcel struct {
	ID     bson.ObjectID  `bson:"_id,omitempty"`
	Status ParcelStatus   `bson:"status,omitempty"`
	Attrs  map[string]any `bson:",inline"`
}

type parcelJSON struct {
	ID     *bson.ObjectID `json:"_id,omitempty"`
	Status ParcelStatus   `json:"status,omitempty"`
}

// MarshalJSON flattens Attrs next to the id and status.
func (p Parcel) MarshalJSON() ([]byte, error) {
	out := parcelJSON{Status: p.Status}
	if !p.ID.IsZero() {
		id := p.ID
		out.ID = &id
	}
	return marshalDocument(out, p.Attrs)
}

// UnmarshalJSON reads a client payload. A client-supplied _id or status is discarded.
func (p *Parcel) UnmarshalJSON(data []byte) error {
	attrs, err := unmarshalDocument(data, &struct{}{}, "_id", "status")
	if err != nil {
		return err
	}
	*p = Parcel{Attrs: attrs}
	return nil
}

var (
	_ json.Marshaler   = Parcel{}
	_ json.Unmarshaler = (*Parcel)(nil)
)
