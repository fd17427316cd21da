package offers

import (
	"context"
	"errors"
	"testing"

	"reisegruppen/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "reisegruppen.traveloffers"

	mt.Run("ListDecodes", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "title", Value: "Strandhotel"},
			{Key: "available", Value: true},
			{Key: "pricePerPerson", Value: 499.0},
		}))
		offers, err := NewMongoStore(mt.Coll).List(context.Background(), ListFilter{})
		if err != nil {
			mt.Fatalf("List: %v", err)
		}
		if len(offers) != 1 || offers[0].ID != id || offers[0].Title != "Strandhotel" {
			mt.Fatalf("unexpected offers %+v", offers)
		}
	})

	mt.Run("ListEmptyIsNotNil", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		offers, err := NewMongoStore(mt.Coll).List(context.Background(), ListFilter{})
		if err != nil || offers == nil || len(offers) != 0 {
			mt.Fatalf("expected empty non-nil slice, got %v %v", offers, err)
		}
	})

	mt.Run("GetNotFound", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		_, err := NewMongoStore(mt.Coll).Get(context.Background(), primitive.NewObjectID().Hex())
		if !errors.Is(err, ErrNotFound) {
			mt.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	mt.Run("GetMalformedID", func(mt *mtest.T) {
		_, err := NewMongoStore(mt.Coll).Get(context.Background(), "123")
		if !errors.Is(err, ErrNotFound) {
			mt.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	mt.Run("CreateAssignsID", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		o := models.TravelOffer{
			Title: "T", Description: "D", Destination: "Kreta", Country: "Griechenland",
			Category: "Resort", PricePerPerson: 799, MinPersons: 1, MaxPersons: 4, Stars: 4,
			CancellationPolicy: "free", Available: true,
		}
		if err := NewMongoStore(mt.Coll).Create(context.Background(), &o); err != nil {
			mt.Fatalf("Create: %v", err)
		}
		if o.ID.IsZero() || o.CreatedAt.IsZero() || !o.CreatedAt.Equal(o.UpdatedAt) {
			mt.Fatalf("expected id and timestamps, got %+v", o)
		}
	})

	mt.Run("CreateValidatesBeforeInsert", func(mt *mtest.T) {
		err := NewMongoStore(mt.Coll).Create(context.Background(), &models.TravelOffer{Title: "T"})
		var verr *models.ValidationError
		if !errors.As(err, &verr) {
			mt.Fatalf("expected validation error, got %v", err)
		}
	})

	mt.Run("UpdateReturnsNewDocument", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: bson.D{
				{Key: "_id", Value: id},
				{Key: "stars", Value: 5},
				{Key: "lastModifiedBy", Value: "admin-1"},
			}},
		})
		stars := 5
		o, err := NewMongoStore(mt.Coll).Update(context.Background(), id.Hex(), Patch{Stars: &stars, LastModifiedBy: "admin-1"})
		if err != nil {
			mt.Fatalf("Update: %v", err)
		}
		if o.Stars != 5 || o.LastModifiedBy != "admin-1" {
			mt.Fatalf("unexpected offer %+v", o)
		}
	})

	mt.Run("UpdateNotFound", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}})
		stars := 5
		_, err := NewMongoStore(mt.Coll).Update(context.Background(), primitive.NewObjectID().Hex(), Patch{Stars: &stars})
		if !errors.Is(err, ErrNotFound) {
			mt.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	mt.Run("DeleteNotFound", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}})
		err := NewMongoStore(mt.Coll).Delete(context.Background(), primitive.NewObjectID().Hex())
		if !errors.Is(err, ErrNotFound) {
			mt.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	mt.Run("Delete", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}})
		if err := NewMongoStore(mt.Coll).Delete(context.Background(), primitive.NewObjectID().Hex()); err != nil {
			mt.Fatalf("Delete: %v", err)
		}
	})
}
