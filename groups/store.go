package groups

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

var (
	ErrNotFound      = errors.New("group not found")
	ErrFull          = errors.New("group is full")
	ErrAlreadyMember = errors.New("already a member")
	ErrNotMember     = errors.New("not a member")
)

type Store interface {
	List(ctx context.Context, memberID string) ([]models.Group, error)
	Get(ctx context.Context, id string) (models.Group, error)
	Create(ctx context.Context, g *models.Group) error
	Join(ctx context.Context, id, userID string) (models.Group, error)
	Leave(ctx context.Context, id, userID string) (models.Group, error)
	Delete(ctx context.Context, id string) error
}

type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

// List returns all groups, or only those memberID belongs to when it is set.
func (s *MongoStore) List(ctx context.Context, memberID string) ([]models.Group, error) {
	filter := bson.M{}
	if memberID != "" {
		filter["members"] = memberID
	}
	opts := options.Find().SetSort(bson.D{{Key: "startDate", Value: 1}, {Key: "createdAt", Value: -1}})
	list, err := utils.FindAndDecode[models.Group](ctx, s.coll, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return list, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (models.Group, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Group{}, ErrNotFound
	}
	var g models.Group
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&g)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Group{}, ErrNotFound
	}
	if err != nil {
		return models.Group{}, fmt.Errorf("get group %s: %w", id, err)
	}
	return g, nil
}

// Create inserts g with its creator as the first member.
func (s *MongoStore) Create(ctx context.Context, g *models.Group) error {
	if err := g.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	g.CreatedAt, g.UpdatedAt = now, now
	g.Members = []string{g.CreatedBy}
	if _, err := s.coll.InsertOne(ctx, g); err != nil {
		return fmt.Errorf("insert group: %w", err)
	}
	return nil
}

// Join adds userID in a single conditional update, so concurrent joins cannot
// exceed maxMembers.
func (s *MongoStore) Join(ctx context.Context, id, userID string) (models.Group, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Group{}, ErrNotFound
	}
	filter := bson.M{
		"_id":     oid,
		"members": bson.M{"$ne": userID},
		"$expr":   bson.M{"$lt": bson.A{bson.M{"$size": "$members"}, "$maxMembers"}},
	}
	update := bson.M{
		"$addToSet": bson.M{"members": userID},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	}
	g, err := s.findOneAndUpdate(ctx, filter, update)
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return g, err
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return models.Group{}, err
	}
	if current.HasMember(userID) {
		return models.Group{}, ErrAlreadyMember
	}
	return models.Group{}, ErrFull
}

func (s *MongoStore) Leave(ctx context.Context, id, userID string) (models.Group, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Group{}, ErrNotFound
	}
	filter := bson.M{"_id": oid, "members": userID}
	update := bson.M{
		"$pull": bson.M{"members": userID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	g, err := s.findOneAndUpdate(ctx, filter, update)
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return g, err
	}
	if _, err := s.Get(ctx, id); err != nil {
		return models.Group{}, err
	}
	return models.Group{}, ErrNotMember
}

func (s *MongoStore) findOneAndUpdate(ctx context.Context, filter, update bson.M) (models.Group, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var g models.Group
	err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&g)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return models.Group{}, fmt.Errorf("update group: %w", err)
	}
	return g, err
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete group %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
