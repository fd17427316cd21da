package offers

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"reisegruppen/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListFilter narrows the public offer listing. Zero values mean "no constraint".
type ListFilter struct {
	Search   string
	Country  string
	Category string
	MinPrice *float64
	MaxPrice *float64
	MinStars *float64
	Tags     []string
}

// ParseListFilter reads the listing query parameters.
func ParseListFilter(q url.Values) (ListFilter, error) {
	f := ListFilter{
		Search:   strings.TrimSpace(q.Get("search")),
		Country:  strings.TrimSpace(q.Get("country")),
		Category: strings.TrimSpace(q.Get("category")),
		Tags:     utils.QueryList(q, "tags"),
	}
	var err error
	if f.MinPrice, err = utils.QueryFloat(q, "minPrice"); err != nil {
		return ListFilter{}, err
	}
	if f.MaxPrice, err = utils.QueryFloat(q, "maxPrice"); err != nil {
		return ListFilter{}, err
	}
	if f.MinStars, err = utils.QueryFloat(q, "minStars"); err != nil {
		return ListFilter{}, err
	}
	return f, nil
}

func containsFold(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

// Query translates f into a MongoDB filter. Unavailable offers never match.
func (f ListFilter) Query() bson.M {
	q := bson.M{"available": true}

	if f.Search != "" {
		rx := containsFold(f.Search)
		q["$or"] = bson.A{
			bson.M{"title": rx},
			bson.M{"destination": rx},
			bson.M{"country": rx},
			bson.M{"description": rx},
		}
	}
	if f.Country != "" {
		q["country"] = containsFold(f.Country)
	}
	if f.Category != "" {
		q["category"] = f.Category
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		q["pricePerPerson"] = price
	}
	if f.MinStars != nil {
		q["stars"] = bson.M{"$gte": *f.MinStars}
	}
	if len(f.Tags) > 0 {
		q["tags"] = bson.M{"$in": f.Tags}
	}
	return q
}

// Encode returns the canonical query string of f.
func (f ListFilter) Encode() string {
	v := url.Values{}
	set := func(k string, p *float64) {
		if p != nil {
			v.Set(k, strconv.FormatFloat(*p, 'f', -1, 64))
		}
	}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.Country != "" {
		v.Set("country", f.Country)
	}
	if f.Category != "" {
		v.Set("category", f.Category)
	}
	set("minPrice", f.MinPrice)
	set("maxPrice", f.MaxPrice)
	set("minStars", f.MinStars)
	if len(f.Tags) > 0 {
		v.Set("tags", strings.Join(f.Tags, ","))
	}
	return v.Encode()
}
