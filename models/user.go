package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResultWin marks a won contest on both users and submissions.
const ResultWin = "Win"

// ContestEntry records a user's participation in one contest
type ContestEntry struct {
	ContestID string `bson:"contestID" json:"contestID"`
	Result    string `bson:"result,omitempty" json:"result,omitempty"`
}

// User defines a registered participant, creator or admin
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Role         string             `bson:"role" json:"role"`
	Photo        string             `bson:"photo" json:"photo"`
	Contest      []ContestEntry     `bson:"Contest" json:"Contest"`
	ContestAdded int                `bson:"contestAdded" json:"contestAdded"`
	Win          int                `bson:"win" json:"win"`
}

// ContestEntry returns the participation record for contestID, if any.
func (u *User) ContestEntry(contestID string) *ContestEntry {
	for i := range u.Contest {
		if u.Contest[i].ContestID == contestID {
			return &u.Contest[i]
		}
	}
	return nil
}
