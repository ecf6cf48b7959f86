package models

// The result types mirror what the web client already consumes from the
// store: acknowledged flag plus counts and generated ids.

// InsertResult is returned by every create endpoint
type InsertResult struct {
	Acknowledged bool        `json:"acknowledged"`
	InsertedID   interface{} `json:"insertedId"`
}

// UpdateResult is returned by every update and upsert endpoint
type UpdateResult struct {
	Acknowledged  bool        `json:"acknowledged"`
	MatchedCount  int64       `json:"matchedCount"`
	ModifiedCount int64       `json:"modifiedCount"`
	UpsertedCount int64       `json:"upsertedCount"`
	UpsertedID    interface{} `json:"upsertedId"`
}

// DeleteResult is returned by delete endpoints
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// ExistingUserResult is returned instead of an InsertResult when a user with
// the same email is already registered. InsertedID is always nil.
type ExistingUserResult struct {
	Message    string      `json:"message"`
	InsertedID interface{} `json:"insertedId"`
}
