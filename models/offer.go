package models

import (
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var Categories = []string{"Hotel", "Apartment", "Resort", "Hostel", "Ferienwohnung", "Pension", "Villa", "Kreuzfahrt", "Wellness Hotel"}

var CancellationPolicies = []string{"free", "moderate", "strict"}

const (
	DefaultMinPersons         = 1
	DefaultMaxPersons         = 10
	DefaultStars              = 3
	DefaultCancellationPolicy = "moderate"
	DefaultCheckInTime        = "15:00"
	DefaultCheckOutTime       = "11:00"
)

type Image struct {
	URL    string `json:"url" bson:"url"`
	Title  string `json:"title" bson:"title"`
	IsMain bool   `json:"isMain" bson:"isMain"`
}

type Location struct {
	Latitude  float64 `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty" bson:"longitude,omitempty"`
	Address   string  `json:"address,omitempty" bson:"address,omitempty"`
}

type Rating struct {
	Average float64 `json:"average" bson:"average"`
	Count   int     `json:"count" bson:"count"`
}

type TravelOffer struct {
	ID                  primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title               string             `json:"title" bson:"title"`
	Description         string             `json:"description" bson:"description"`
	Destination         string             `json:"destination" bson:"destination"`
	Country             string             `json:"country" bson:"country"`
	City                string             `json:"city" bson:"city"`
	Category            string             `json:"category" bson:"category"`
	Images              []Image            `json:"images" bson:"images"`
	PricePerPerson      float64            `json:"pricePerPerson" bson:"pricePerPerson"`
	PricePerNight       *float64           `json:"pricePerNight,omitempty" bson:"pricePerNight,omitempty"`
	MinPersons          int                `json:"minPersons" bson:"minPersons"`
	MaxPersons          int                `json:"maxPersons" bson:"maxPersons"`
	Stars               int                `json:"stars" bson:"stars"`
	Amenities           []string           `json:"amenities" bson:"amenities"`
	Tags                []string           `json:"tags" bson:"tags"`
	Location            Location           `json:"location" bson:"location"`
	AvailabilityPeriods []map[string]any   `json:"availabilityPeriods" bson:"availabilityPeriods"`
	CancellationPolicy  string             `json:"cancellationPolicy" bson:"cancellationPolicy"`
	CheckInTime         string             `json:"checkInTime" bson:"checkInTime"`
	CheckOutTime        string             `json:"checkOutTime" bson:"checkOutTime"`
	Rating              Rating             `json:"rating" bson:"rating"`
	BookingCount        int                `json:"bookingCount" bson:"bookingCount"`
	Available           bool               `json:"available" bson:"available"`
	CreatedBy           string             `json:"createdBy" bson:"createdBy"`
	LastModifiedBy      string             `json:"lastModifiedBy,omitempty" bson:"lastModifiedBy,omitempty"`
	CreatedAt           time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time          `json:"updatedAt" bson:"updatedAt"`
}

func IsCategory(c string) bool { return slices.Contains(Categories, c) }

func IsCancellationPolicy(p string) bool { return slices.Contains(CancellationPolicies, p) }

// Validate checks the schema constraints of a complete offer.
func (o *TravelOffer) Validate() error {
	v := &ValidationError{}
	if o.Title == "" {
		v.Add("title", "Titel ist erforderlich")
	}
	if o.Description == "" {
		v.Add("description", "Beschreibung ist erforderlich")
	}
	if o.Destination == "" {
		v.Add("destination", "Reiseziel ist erforderlich")
	}
	if o.Country == "" {
		v.Add("country", "Land ist erforderlich")
	}
	CheckCategory(v, o.Category)
	CheckPrice(v, "pricePerPerson", o.PricePerPerson)
	if o.PricePerNight != nil {
		CheckPrice(v, "pricePerNight", *o.PricePerNight)
	}
	CheckPersons(v, "minPersons", o.MinPersons)
	CheckPersons(v, "maxPersons", o.MaxPersons)
	CheckStars(v, o.Stars)
	CheckCancellationPolicy(v, o.CancellationPolicy)
	return v.Err()
}

func CheckCategory(v *ValidationError, c string) {
	if !IsCategory(c) {
		v.Add("category", "`"+c+"` ist keine gültige Kategorie")
	}
}

func CheckCancellationPolicy(v *ValidationError, p string) {
	if !IsCancellationPolicy(p) {
		v.Add("cancellationPolicy", "`"+p+"` ist keine gültige Stornierungsbedingung")
	}
}

func CheckPrice(v *ValidationError, field string, p float64) {
	if p <= 0 {
		v.Add(field, "Preis muss größer als 0 sein")
	}
}

func CheckPersons(v *ValidationError, field string, n int) {
	if n < 1 {
		v.Add(field, "Personenzahl muss mindestens 1 sein")
	}
}

func CheckStars(v *ValidationError, n int) {
	if n < 1 || n > 5 {
		v.Add("stars", "Sterne müssen zwischen 1 und 5 liegen")
	}
}
