package destinations

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"reisegruppen/models"
	"reisegruppen/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("destination not found")

type Filter struct {
	Search  string
	Country string
	Tags    []string
}

func ParseFilter(q url.Values) Filter {
	return Filter{
		Search:  strings.TrimSpace(q.Get("search")),
		Country: strings.TrimSpace(q.Get("country")),
		Tags:    utils.QueryTags(q, "tags"),
	}
}

func (f Filter) Query() bson.M {
	q := bson.M{}
	if f.Search != "" {
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		q["$or"] = bson.A{
			bson.M{"name": rx},
			bson.M{"country": rx},
			bson.M{"city": rx},
			bson.M{"description": rx},
		}
	}
	if f.Country != "" {
		q["country"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Country), Options: "i"}
	}
	if len(f.Tags) > 0 {
		q["tags"] = bson.M{"$in": f.Tags}
	}
	return q
}

// Key is the canonical form of f, used as the cache key suffix.
func (f Filter) Key() string {
	v := url.Values{}
	if f.Search != "" {
		v.Set("search", strings.ToLower(f.Search))
	}
	if f.Country != "" {
		v.Set("country", strings.ToLower(f.Country))
	}
	if len(f.Tags) > 0 {
		v.Set("tags", strings.Join(f.Tags, ","))
	}
	return v.Encode()
}

type Store interface {
	List(ctx context.Context, f Filter) ([]models.Destination, error)
	Get(ctx context.Context, id string) (models.Destination, error)
	Create(ctx context.Context, d *models.Destination) error
	Delete(ctx context.Context, id string) error
}

type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

func (s *MongoStore) List(ctx context.Context, f Filter) ([]models.Destination, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	list, err := utils.FindAndDecode[models.Destination](ctx, s.coll, f.Query(), opts)
	if err != nil {
		return nil, fmt.Errorf("list destinations: %w", err)
	}
	return list, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (models.Destination, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Destination{}, ErrNotFound
	}
	var d models.Destination
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Destination{}, ErrNotFound
	}
	if err != nil {
		return models.Destination{}, fmt.Errorf("get destination %s: %w", id, err)
	}
	return d, nil
}

func (s *MongoStore) Create(ctx context.Context, d *models.Destination) error {
	if err := d.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	d.ID = primitive.NewObjectID()
	d.CreatedAt, d.UpdatedAt = now, now
	if _, err := s.coll.InsertOne(ctx, d); err != nil {
		return fmt.Errorf("insert destination: %w", err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete destination %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
