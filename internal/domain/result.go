package domain

import "go.mongodb.org/mongo-driver/v2/bson"

// InsertResult reports a single-document insert.
type InsertResult struct {
	Acknowledged bool          `json:"acknowledged"`
	InsertedID   bson.ObjectID `json:"insertedId"`
}

// UpdateResult reports a single-document update. Zero counts mean nothing matched.
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
	UpsertedCount int64 `json:"upsertedCount"`
	UpsertedID    any   `json:"upsertedId"`
}

// DeleteResult reports a single-document delete.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// RegisterResult is the outcome of a registration. InsertedID is nil and Message
// is set when the email was already taken.
type RegisterResult struct {
	Acknowledged bool           `json:"acknowledged,omitempty"`
	InsertedID   *bson.ObjectID `json:"insertedId"`
	Message      string         `json:"message,omitempty"`
}

// MsgUserExists is reported when registering an email that is already stored.
const MsgUserExists = "User already exists"
