package offers

import (
	"reisegruppen/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Patch is a partial offer update. Nil fields are left untouched.
type Patch struct {
	Title               *string
	Description         *string
	Destination         *string
	Country             *string
	City                *string
	Category            *string
	Images              *[]models.Image
	PricePerPerson      *float64
	PricePerNight       *float64
	MinPersons          *int
	MaxPersons          *int
	Stars               *int
	Amenities           *[]string
	Tags                *[]string
	Location            *models.Location
	AvailabilityPeriods *[]map[string]any
	CancellationPolicy  *string
	CheckInTime         *string
	CheckOutTime        *string
	Available           *bool

	LastModifiedBy string
}

// Validate checks only the fields the patch sets.
func (p Patch) Validate() error {
	v := &models.ValidationError{}
	if p.Title != nil && *p.Title == "" {
		v.Add("title", "Titel ist erforderlich")
	}
	if p.Description != nil && *p.Description == "" {
		v.Add("description", "Beschreibung ist erforderlich")
	}
	if p.Destination != nil && *p.Destination == "" {
		v.Add("destination", "Reiseziel ist erforderlich")
	}
	if p.Country != nil && *p.Country == "" {
		v.Add("country", "Land ist erforderlich")
	}
	if p.Category != nil {
		models.CheckCategory(v, *p.Category)
	}
	if p.PricePerPerson != nil {
		models.CheckPrice(v, "pricePerPerson", *p.PricePerPerson)
	}
	if p.PricePerNight != nil {
		models.CheckPrice(v, "pricePerNight", *p.PricePerNight)
	}
	if p.MinPersons != nil {
		models.CheckPersons(v, "minPersons", *p.MinPersons)
	}
	if p.MaxPersons != nil {
		models.CheckPersons(v, "maxPersons", *p.MaxPersons)
	}
	if p.Stars != nil {
		models.CheckStars(v, *p.Stars)
	}
	if p.CancellationPolicy != nil {
		models.CheckCancellationPolicy(v, *p.CancellationPolicy)
	}
	return v.Err()
}

// SetDoc returns the $set document for p.
func (p Patch) SetDoc() bson.M {
	set := bson.M{"lastModifiedBy": p.LastModifiedBy}
	put(set, "title", p.Title)
	put(set, "description", p.Description)
	put(set, "destination", p.Destination)
	put(set, "country", p.Country)
	put(set, "city", p.City)
	put(set, "category", p.Category)
	put(set, "images", p.Images)
	put(set, "pricePerPerson", p.PricePerPerson)
	put(set, "pricePerNight", p.PricePerNight)
	put(set, "minPersons", p.MinPersons)
	put(set, "maxPersons", p.MaxPersons)
	put(set, "stars", p.Stars)
	put(set, "amenities", p.Amenities)
	put(set, "tags", p.Tags)
	put(set, "location", p.Location)
	put(set, "availabilityPeriods", p.AvailabilityPeriods)
	put(set, "cancellationPolicy", p.CancellationPolicy)
	put(set, "checkInTime", p.CheckInTime)
	put(set, "checkOutTime", p.CheckOutTime)
	put(set, "available", p.Available)
	return set
}


func put[T any](set bson.M, key string, v *T) {
	if v != nil {
		set[key] = *v
	}
}
