package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Firstname    string        `bson:"firstname" json:"firstname"`
	Lastname     string        `bson:"lastname" json:"lastname"`
	Email        string        `bson:"email" json:"email"`
	PasswordHash string        `bson:"passwordHash" json:"-"` // never expose
	// RefreshToken is the single live refresh token for this user.
	// nil means logged out; a new login overwrites the previous value,
	// which invalidates any earlier session.
	RefreshToken *string   `bson:"refreshToken,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
