package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Gender values a user may pick for their profile.
type Gender string

const (
	GenderMale           Gender = "male"
	GenderFemale         Gender = "female"
	GenderOther          Gender = "other"
	GenderPreferNotToSay Gender = "prefer not to say"
)

// User represents an account. The generation/store core only ever sees the
// opaque user id; everything else here belongs to the auth/profile boundary.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name,omitempty" json:"name,omitempty"`
	Email        string             `bson:"email" json:"email"` // unique
	PasswordHash string             `bson:"passwordHash" json:"-"`

	EmailVerified     bool   `bson:"emailVerified" json:"emailVerified"`
	VerificationToken string `bson:"verificationToken,omitempty" json:"-"`

	BirthDate *time.Time   `bson:"birthDate,omitempty" json:"birthDate,omitempty"`
	Gender    Gender       `bson:"gender,omitempty" json:"gender,omitempty"`
	AvatarKey string       `bson:"avatarKey,omitempty" json:"-"`
	Defaults  *Preferences `bson:"preferences,omitempty" json:"preferences,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
