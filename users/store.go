package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"reisegruppen/models"
	"reisegruppen/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// ProfilePatch is a partial profile update. Nil fields are left untouched.
type ProfilePatch struct {
	Name      *string
	FirstName *string
	LastName  *string
	Phone     *string
	Bio       *string
	Avatar    *string
}

func (p ProfilePatch) setDoc() bson.M {
	set := bson.M{}
	fields := []struct {
		key string
		v   *string
	}{
		{"name", p.Name},
		{"profile.firstName", p.FirstName},
		{"profile.lastName", p.LastName},
		{"profile.phone", p.Phone},
		{"profile.bio", p.Bio},
		{"profile.avatar", p.Avatar},
	}
	for _, f := range fields {
		if f.v != nil {
			set[f.key] = strings.TrimSpace(*f.v)
		}
	}
	return set
}

type Store interface {
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	TouchLogin(ctx context.Context, id string, at time.Time) error
	UpdateProfile(ctx context.Context, id string, p ProfilePatch) (models.User, error)
}

type MongoStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll, now: func() time.Time { return time.Now().UTC() }}
}

// NormalizeEmail lowercases and trims an address the way it is stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *MongoStore) Create(ctx context.Context, u *models.User) error {
	now := s.now()
	u.ID = primitive.NewObjectID()
	u.Email = NormalizeEmail(u.Email)
	u.CreatedAt = now
	u.UpdatedAt = now
	_, err := s.coll.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *MongoStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return s.findOne(ctx, bson.M{"email": NormalizeEmail(email)})
}

func (s *MongoStore) FindByID(ctx context.Context, id string) (models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, ErrNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M) (models.User, error) {
	var u models.User
	err := s.coll.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (s *MongoStore) List(ctx context.Context) ([]models.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetProjection(bson.M{"passwordHash": 0})
	users, err := utils.FindAndDecode[models.User](ctx, s.coll, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *MongoStore) TouchLogin(ctx context.Context, id string, at time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	_, err = s.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"lastLogin": at}})
	if err != nil {
		return fmt.Errorf("touch login %s: %w", id, err)
	}
	return nil
}

func (s *MongoStore) UpdateProfile(ctx context.Context, id string, p ProfilePatch) (models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, ErrNotFound
	}
	set := p.setDoc()
	set["updatedAt"] = s.now()

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"passwordHash": 0})
	var u models.User
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("update profile %s: %w", id, err)
	}
	return u, nil
}
