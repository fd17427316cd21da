package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

type Destination struct {
	ID                primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name              string             `json:"name" bson:"name"`
	Country           string             `json:"country" bson:"country"`
	City              string             `json:"city,omitempty" bson:"city,omitempty"`
	Description       string             `json:"description" bson:"description"`
	Images            []string           `json:"images" bson:"images"`
	AvgPricePerPerson float64            `json:"avgPricePerPerson" bson:"avgPricePerPerson"`
	Tags              []string           `json:"tags" bson:"tags"`
	Coordinates       Coordinates        `json:"coordinates" bson:"coordinates"`
	CreatedAt         time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt" bson:"updatedAt"`
}

func (d *Destination) Validate() error {
	v := &ValidationError{}
	if d.Name == "" {
		v.Add("name", "Name ist erforderlich")
	}
	if d.Country == "" {
		v.Add("country", "Land ist erforderlich")
	}
	if d.AvgPricePerPerson < 0 {
		v.Add("avgPricePerPerson", "Preis darf nicht negativ sein")
	}
	return v.Err()
}
