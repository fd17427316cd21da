package offers

import (
	"bytes"
	"encoding/json"
	"strings"

	"reisegruppen/models"
)

// imageCandidates decodes the images field leniently. A value that is not an
// array counts as absent and non-string entries are skipped.
type imageCandidates struct {
	urls []string
	list bool
}

func (c *imageCandidates) UnmarshalJSON(b []byte) error {
	*c = imageCandidates{}
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil
	}
	c.list = true
	c.urls = make([]string, 0, len(raw))
	for _, r := range raw {
		var s string
		if json.Unmarshal(r, &s) == nil {
			c.urls = append(c.urls, s)
		}
	}
	return nil
}

// formInt is an optional integer that falls back to its default only when
// the submitted value is empty: absent, null, 0 or "". Any other string,
// including "0", is kept and validated.
type formInt struct {
	n   models.Number
	set bool
}

func (f *formInt) UnmarshalJSON(b []byte) error {
	*f = formInt{}
	if err := f.n.UnmarshalJSON(b); err != nil {
		return err
	}
	b = bytes.TrimSpace(b)
	quoted := len(b) > 0 && b[0] == '"'
	f.set = f.n != 0 || (quoted && !bytes.Equal(b, []byte(`""`)))
	return nil
}

var requiredFields = []string{"title", "description", "destination", "country", "category", "pricePerPerson"}

type CreateInput struct {
	Title               string           `json:"title"`
	Description         string           `json:"description"`
	Destination         string           `json:"destination"`
	Country             string           `json:"country"`
	City                string           `json:"city"`
	Category            string           `json:"category"`
	Images              imageCandidates  `json:"images"`
	PricePerPerson      models.Number    `json:"pricePerPerson"`
	PricePerNight       models.Number    `json:"pricePerNight"`
	MinPersons          formInt          `json:"minPersons"`
	MaxPersons          formInt          `json:"maxPersons"`
	Stars               formInt          `json:"stars"`
	Amenities           []string         `json:"amenities"`
	Tags                []string         `json:"tags"`
	Location            *models.Location `json:"location"`
	AvailabilityPeriods []map[string]any `json:"availabilityPeriods"`
	CancellationPolicy  string           `json:"cancellationPolicy"`
	CheckInTime         string           `json:"checkInTime"`
	CheckOutTime        string           `json:"checkOutTime"`
}

// Missing lists the required fields that are empty or zero.
func (in CreateInput) Missing() []string {
	present := map[string]bool{
		"title":          in.Title != "",
		"description":    in.Description != "",
		"destination":    in.Destination != "",
		"country":        in.Country != "",
		"category":       in.Category != "",
		"pricePerPerson": in.PricePerPerson != 0,
	}
	var missing []string
	for _, f := range requiredFields {
		if !present[f] {
			missing = append(missing, f)
		}
	}
	return missing
}

// Offer builds the record to insert, applying defaults.
func (in CreateInput) Offer(actorID string) (models.TravelOffer, error) {
	v := &models.ValidationError{}
	o := models.TravelOffer{
		Title:               strings.TrimSpace(in.Title),
		Description:         strings.TrimSpace(in.Description),
		Destination:         strings.TrimSpace(in.Destination),
		Country:             strings.TrimSpace(in.Country),
		City:                strings.TrimSpace(in.City),
		Category:            in.Category,
		Images:              SanitizeImageURLs(in.Images.urls),
		PricePerPerson:      in.PricePerPerson.Float(),
		MinPersons:          intOr(v, "minPersons", in.MinPersons, models.DefaultMinPersons),
		MaxPersons:          intOr(v, "maxPersons", in.MaxPersons, models.DefaultMaxPersons),
		Stars:               intOr(v, "stars", in.Stars, models.DefaultStars),
		Amenities:           orEmpty(in.Amenities),
		Tags:                orEmpty(in.Tags),
		AvailabilityPeriods: in.AvailabilityPeriods,
		CancellationPolicy:  or(in.CancellationPolicy, models.DefaultCancellationPolicy),
		CheckInTime:         or(in.CheckInTime, models.DefaultCheckInTime),
		CheckOutTime:        or(in.CheckOutTime, models.DefaultCheckOutTime),
		CreatedBy:           actorID,
		Available:           true,
		BookingCount:        0,
		Rating:              models.Rating{Average: 0, Count: 0},
	}
	if in.PricePerNight != 0 {
		p := in.PricePerNight.Float()
		o.PricePerNight = &p
	}
	if in.Location != nil {
		o.Location = *in.Location
	}
	if o.AvailabilityPeriods == nil {
		o.AvailabilityPeriods = []map[string]any{}
	}
	return o, v.Err()
}

type UpdateInput struct {
	Title               *string           `json:"title"`
	Description         *string           `json:"description"`
	Destination         *string           `json:"destination"`
	Country             *string           `json:"country"`
	City                *string           `json:"city"`
	Category            *string           `json:"category"`
	Images              *imageCandidates  `json:"images"`
	PricePerPerson      *models.Number    `json:"pricePerPerson"`
	PricePerNight       *models.Number    `json:"pricePerNight"`
	MinPersons          *models.Number    `json:"minPersons"`
	MaxPersons          *models.Number    `json:"maxPersons"`
	Stars               *models.Number    `json:"stars"`
	Amenities           *[]string         `json:"amenities"`
	Tags                *[]string         `json:"tags"`
	Location            *models.Location  `json:"location"`
	AvailabilityPeriods *[]map[string]any `json:"availabilityPeriods"`
	CancellationPolicy  *string           `json:"cancellationPolicy"`
	CheckInTime         *string           `json:"checkInTime"`
	CheckOutTime        *string           `json:"checkOutTime"`
	Available           *bool             `json:"available"`
}

// Patch converts the fields present in the request.
func (in UpdateInput) Patch(actorID string) (Patch, error) {
	v := &models.ValidationError{}
	p := Patch{
		Title:               trimmed(in.Title),
		Description:         trimmed(in.Description),
		Destination:         trimmed(in.Destination),
		Country:             trimmed(in.Country),
		City:                trimmed(in.City),
		Category:            in.Category,
		PricePerPerson:      floatPtr(in.PricePerPerson),
		PricePerNight:       floatPtr(in.PricePerNight),
		MinPersons:          intField(v, "minPersons", in.MinPersons),
		MaxPersons:          intField(v, "maxPersons", in.MaxPersons),
		Stars:               intField(v, "stars", in.Stars),
		Amenities:           in.Amenities,
		Tags:                in.Tags,
		Location:            in.Location,
		AvailabilityPeriods: in.AvailabilityPeriods,
		CancellationPolicy:  in.CancellationPolicy,
		CheckInTime:         in.CheckInTime,
		CheckOutTime:        in.CheckOutTime,
		Available:           in.Available,
		LastModifiedBy:      actorID,
	}
	if in.Images != nil && in.Images.list {
		images := SanitizeImageURLs(in.Images.urls)
		p.Images = &images
	}
	return p, v.Err()
}

func intOr(v *models.ValidationError, field string, f formInt, def int) int {
	if !f.set {
		return def
	}
	i, ok := f.n.Int()
	if !ok {
		v.Add(field, "muss eine ganze Zahl sein")
	}
	return i
}

func intField(v *models.ValidationError, field string, n *models.Number) *int {
	if n == nil {
		return nil
	}
	i, ok := n.Int()
	if !ok {
		v.Add(field, "muss eine ganze Zahl sein")
	}
	return &i
}

func floatPtr(n *models.Number) *float64 {
	if n == nil {
		return nil
	}
	f := n.Float()
	return &f
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

func or(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
