package offers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"reisegruppen/models"
	"reisegruppen/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("travel offer not found")

// Store persists travel offers.
type Store interface {
	List(ctx context.Context, f ListFilter) ([]models.TravelOffer, error)
	Get(ctx context.Context, id string) (models.TravelOffer, error)
	Create(ctx context.Context, o *models.TravelOffer) error
	Update(ctx context.Context, id string, p Patch) (models.TravelOffer, error)
	Delete(ctx context.Context, id string) error
}

type MongoStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll, now: func() time.Time { return time.Now().UTC() }}
}

func (s *MongoStore) List(ctx context.Context, f ListFilter) ([]models.TravelOffer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	offers, err := utils.FindAndDecode[models.TravelOffer](ctx, s.coll, f.Query(), opts)
	if err != nil {
		return nil, fmt.Errorf("list travel offers: %w", err)
	}
	return offers, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (models.TravelOffer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.TravelOffer{}, ErrNotFound
	}
	var o models.TravelOffer
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.TravelOffer{}, ErrNotFound
	}
	if err != nil {
		return models.TravelOffer{}, fmt.Errorf("get travel offer %s: %w", id, err)
	}
	return o, nil
}

// Create validates o, assigns its id and timestamps, and inserts it.
func (s *MongoStore) Create(ctx context.Context, o *models.TravelOffer) error {
	if err := o.Validate(); err != nil {
		return err
	}
	now := s.now()
	o.ID = primitive.NewObjectID()
	o.CreatedAt = now
	o.UpdatedAt = now
	if _, err := s.coll.InsertOne(ctx, o); err != nil {
		return fmt.Errorf("insert travel offer: %w", err)
	}
	return nil
}

// Update applies p atomically and returns the updated document.
func (s *MongoStore) Update(ctx context.Context, id string, p Patch) (models.TravelOffer, error) {
	if err := p.Validate(); err != nil {
		return models.TravelOffer{}, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.TravelOffer{}, ErrNotFound
	}
	set := p.SetDoc()
	set["updatedAt"] = s.now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var o models.TravelOffer
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.TravelOffer{}, ErrNotFound
	}
	if err != nil {
		return models.TravelOffer{}, fmt.Errorf("update travel offer %s: %w", id, err)
	}
	return o, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete travel offer %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
