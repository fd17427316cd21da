package models

import (
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultGroupSize = 10

// Group is a travel party that users can join.
type Group struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Destination string             `json:"destination" bson:"destination"`
	StartDate   string             `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate     string             `json:"endDate,omitempty" bson:"endDate,omitempty"`
	MaxMembers  int                `json:"maxMembers" bson:"maxMembers"`
	Members     []string           `json:"members" bson:"members"`
	CreatedBy   string             `json:"createdBy" bson:"createdBy"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

func (g *Group) HasMember(userID string) bool {
	return slices.Contains(g.Members, userID)
}

func (g *Group) Full() bool {
	return len(g.Members) >= g.MaxMembers
}

func (g *Group) Validate() error {
	v := &ValidationError{}
	if g.Name == "" {
		v.Add("name", "Name ist erforderlich")
	}
	if g.Destination == "" {
		v.Add("destination", "Reiseziel ist erforderlich")
	}
	if g.MaxMembers < 1 {
		v.Add("maxMembers", "Gruppengröße muss mindestens 1 sein")
	}
	if g.StartDate != "" && g.EndDate != "" && g.EndDate < g.StartDate {
		v.Add("endDate", "Enddatum liegt vor dem Startdatum")
	}
	return v.Err()
}
