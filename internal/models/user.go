package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a credential record. Users are created at signup and never mutated
// or deleted by this service.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName    string             `bson:"firstname" json:"firstname"`
	LastName     string             `bson:"lastname" json:"lastname"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// DisplayName is the name carried in session token claims.
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}
