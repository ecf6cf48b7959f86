package models

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Submission is a participant's entry for a contest. Fields the server does
// not know about are kept in Payload and stored inline in the document.
type Submission struct {
	ID         primitive.ObjectID     `bson:"_id,omitempty" json:"_id,omitempty"`
	ContestID  string                 `bson:"contestID" json:"contestID" binding:"required"`
	UserEmail  string                 `bson:"userEmail" json:"userEmail" binding:"required"`
	UserResult string                 `bson:"userResult,omitempty" json:"userResult,omitempty"`
	Payload    map[string]interface{} `bson:",inline" json:"-"`
}

var submissionKeys = []string{"_id", "contestID", "userEmail", "userResult"}

type submissionFields Submission

// UnmarshalJSON decodes the known fields and collects the rest into Payload.
func (s *Submission) UnmarshalJSON(data []byte) error {
	var fields submissionFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, key := range submissionKeys {
		delete(raw, key)
	}

	*s = Submission(fields)
	s.Payload = nil
	if len(raw) > 0 {
		s.Payload = raw
	}
	return nil
}

// MarshalJSON flattens Payload next to the known fields.
func (s Submission) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(s.Payload)+4)
	for k, v := range s.Payload {
		out[k] = v
	}
	if !s.ID.IsZero() {
		out["_id"] = s.ID
	}
	out["contestID"] = s.ContestID
	out["userEmail"] = s.UserEmail
	if s.UserResult != "" {
		out["userResult"] = s.UserResult
	}
	return json.Marshal(out)
}
