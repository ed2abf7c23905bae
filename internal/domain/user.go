package domain

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Role is a coarse permission label stored on a user.
type Role string

// Known roles. A user without a role is a regular sender.
const (
	RoleAdmin       Role = "Admin"
	RoleDeliveryMan Role = "DeliveryMen"
)

// User is a registered account. Attributes other than email and role are opaque
// and kept in Extra, which is stored inline in the users collection.
type User struct {
	ID    bson.ObjectID  `bson:"_id,omitempty"`
	Email string         `bson:"email"`
	Role  Role           `bson:"role,omitempty"`
	Extra map[string]any `bson:",inline"`
}

type userJSON struct {
	ID    *bson.ObjectID `json:"_id,omitempty"`
	Email string         `json:"email"`
	Role  Role           `json:"role,omitempty"`
}

// MarshalJSON flattens Extra next to the typed fields.
func (u User) MarshalJSON() ([]byte, error) {
	out := userJSON{Email: u.Email, Role: u.Role}
	if !u.ID.IsZero() {
		id := u.ID
		out.ID = &id
	}
	return marshalDocument(out, u.Extra)
}

// UnmarshalJSON reads a client payload. A client-supplied _id is discarded.
func (u *User) UnmarshalJSON(data []byte) error {
	var in userJSON
	extra, err := unmarshalDocument(data, &in, "_id", "email", "role")
	if err != nil {
		return err
	}
	*u = User{Email: in.Email, Role: in.Role, Extra: extra}
	return nil
}

var (
	_ json.Marshaler   = User{}
	_ json.Unmarshaler = (*User)(nil)
)
