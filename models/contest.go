package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contest statuses. Transitions are made by callers through the update
// endpoint and are not checked.
const (
	ContestStatusPending  = "Pending"
	ContestStatusApproved = "Approved"
)

// Contest is a competition created by a contest creator
type Contest struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name            string             `bson:"name" json:"name"`
	Image           string             `bson:"image" json:"image"`
	ContestPrice    float64            `bson:"contestPrice" json:"contestPrice"`
	PrizeMoney      float64            `bson:"prizeMoney" json:"prizeMoney"`
	Details         string             `bson:"details" json:"details"`
	Instruction     string             `bson:"instruction" json:"instruction"`
	ContestCreator  string             `bson:"contestCreator" json:"contestCreator"`
	CreatedBy       string             `bson:"createdBy" json:"createdBy"`
	Tag             string             `bson:"tag" json:"tag"`
	Status          string             `bson:"status" json:"status"`
	Participation   int                `bson:"participation" json:"participation"`
	ContestDeadline string             `bson:"contestDeadline" json:"contestDeadline"`
}
