package destinations

import (
	"net/url"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFilterQuery(t *testing.T) {
	q, _ := url.ParseQuery("search=a.b&country=Spanien&tags=beach,City")
	f := ParseFilter(q)
	m := f.Query()
	if len(m["$or"].(bson.A)) != 4 {
		t.Fatalf("expected search over four fields, got %v", m["$or"])
	}
	if rx := m["country"].(primitive.Regex); rx.Pattern != "Spanien" || rx.Options != "i" {
		t.Fatalf("unexpected country regex %v", rx)
	}
	if rx := m["$or"].(bson.A)[0].(bson.M)["name"].(primitive.Regex); rx.Pattern != `a\.b` {
		t.Fatalf("search must be escaped, got %q", rx.Pattern)
	}
	if tags := m["tags"].(bson.M)["$in"].([]string); len(tags) != 2 || tags[1] != "city" {
		t.Fatalf("unexpected tags %v", tags)
	}
}

func TestFilterKeyIsCanonical(t *testing.T) {
	a, _ := url.ParseQuery("country=Spanien&tags=beach")
	b, _ := url.ParseQuery("tags=beach&country=spanien")
	if ParseFilter(a).Key() != ParseFilter(b).Key() {
		t.Fatalf("equivalent filters must share a key: %q vs %q", ParseFilter(a).Key(), ParseFilter(b).Key())
	}
	if (Filter{}).Key() != "" {
		t.Fatalf("empty filter must have empty key")
	}
}
