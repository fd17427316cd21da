package seed

import (
	"context"
	"errors"
	"fmt"

	"reisegruppen/db"
	"reisegruppen/destinations"
	"reisegruppen/models"
	"reisegruppen/offers"
	"reisegruppen/users"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

type OfferCreator interface {
	Create(ctx context.Context, o *models.TravelOffer) error
}

type DestinationCreator interface {
	Create(ctx context.Context, d *models.Destination) error
}

// Result summarises a seeding run.
type Result struct {
	Admin        models.User
	Demo         models.User
	Offers       []models.TravelOffer
	Destinations []models.Destination
}

// Run clears offers and destinations, makes sure the admin and demo accounts
// exist, and inserts the sample catalogue.
func Run(ctx context.Context, database *db.Database) (Result, error) {
	for _, c := range []*mongo.Collection{database.Offers, database.Destinations} {
		if _, err := c.DeleteMany(ctx, bson.M{}); err != nil {
			return Result{}, fmt.Errorf("clear %s: %w", c.Name(), err)
		}
	}
	log.Info().Msg("old offers and destinations removed")

	return Populate(ctx,
		users.NewMongoStore(database.Users),
		offers.NewMongoStore(database.Offers),
		destinations.NewMongoStore(database.Destinations),
	)
}

// Populate inserts the sample data through the given stores.
func Populate(ctx context.Context, us users.Store, offerStore OfferCreator, destStore DestinationCreator) (Result, error) {
	var res Result
	var err error
	if res.Admin, err = ensureUser(ctx, us, accounts[0]); err != nil {
		return Result{}, err
	}
	if res.Demo, err = ensureUser(ctx, us, accounts[1]); err != nil {
		return Result{}, err
	}

	res.Offers = travelOffers()
	res.Destinations = make([]models.Destination, len(sampleDestinations))
	copy(res.Destinations, sampleDestinations)

	g, gctx := errgroup.WithContext(ctx)
	for i := range res.Offers {
		res.Offers[i].CreatedBy = res.Admin.ID.Hex()
		o := &res.Offers[i]
		g.Go(func() error {
			if err := offerStore.Create(gctx, o); err != nil {
				return fmt.Errorf("seed offer %q: %w", o.Title, err)
			}
			return nil
		})
	}
	for i := range res.Destinations {
		d := &res.Destinations[i]
		g.Go(func() error {
			if err := destStore.Create(gctx, d); err != nil {
				return fmt.Errorf("seed destination %q: %w", d.Name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	log.Info().
		Int("destinations", len(res.Destinations)).
		Int("offers", len(res.Offers)).
		Str("admin", res.Admin.Email).
		Str("demo", res.Demo.Email).
		Msg("database seeded")
	for i, o := range res.Offers {
		log.Info().Int("n", i+1).Str("title", o.Title).Str("destination", o.Destination).Float64("pricePerPerson", o.PricePerPerson).Msg("seeded offer")
	}
	return res, nil
}

// ensureUser returns the account with a's email, creating it when missing.
// Existing accounts keep their password.
func ensureUser(ctx context.Context, us users.Store, a account) (models.User, error) {
	u, err := us.FindByEmail(ctx, a.email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, users.ErrNotFound) {
		return models.User{}, fmt.Errorf("look up %s: %w", a.email, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password for %s: %w", a.email, err)
	}
	u = models.User{
		Email:        a.email,
		PasswordHash: string(hash),
		Name:         a.name,
		Role:         a.role,
		Profile:      a.profile,
	}
	if err := us.Create(ctx, &u); err != nil {
		return models.User{}, fmt.Errorf("create %s: %w", a.email, err)
	}
	log.Info().Str("email", a.email).Str("role", a.role).Msg("seed user created")
	return u, nil
}
