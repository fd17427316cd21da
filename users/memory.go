package users

import (
	"context"
	"strings"
	"sync"
	"time"

	"reisegruppen/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-process Store used by handler tests across packages.
type MemoryStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: map[primitive.ObjectID]models.User{}}
}

func (s *MemoryStore) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.Email = NormalizeEmail(u.Email)
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return ErrDuplicateEmail
		}
	}
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	s.users[u.ID] = *u
	return nil
}

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = NormalizeEmail(email)
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *MemoryStore) FindByID(_ context.Context, id string) (models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[oid]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

func (s *MemoryStore) List(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *MemoryStore) TouchLogin(ctx context.Context, id string, at time.Time) error {
	u, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u.LastLogin = &at
	s.users[u.ID] = u
	return nil
}

func (s *MemoryStore) UpdateProfile(ctx context.Context, id string, p ProfilePatch) (models.User, error) {
	u, err := s.FindByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	for dst, src := range map[*string]*string{
		&u.Name:              p.Name,
		&u.Profile.FirstName: p.FirstName,
		&u.Profile.LastName:  p.LastName,
		&u.Profile.Phone:     p.Phone,
		&u.Profile.Bio:       p.Bio,
		&u.Profile.Avatar:    p.Avatar,
	} {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	u.UpdatedAt = time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	return u, nil
}
