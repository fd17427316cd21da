package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Profile struct {
	FirstName string `json:"firstName,omitempty" bson:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty" bson:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty" bson:"phone,omitempty"`
	Bio       string `json:"bio,omitempty" bson:"bio,omitempty"`
	Avatar    string `json:"avatar,omitempty" bson:"avatar,omitempty"`
}

type User struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Email        string             `json:"email" bson:"email"`
	PasswordHash string             `json:"-" bson:"passwordHash"`
	Name         string             `json:"name" bson:"name"`
	Role         string             `json:"role" bson:"role"`
	Profile      Profile            `json:"profile" bson:"profile"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
	LastLogin    *time.Time         `json:"lastLogin,omitempty" bson:"lastLogin,omitempty"`
}
