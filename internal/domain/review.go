package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a recommendation left by one user on another user's CV.
// CVID and UserID (the author) are immutable; only the comment may change,
// and only the author may change it. Deletion authority belongs to the
// owner of the referenced CV.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CVID      primitive.ObjectID `bson:"cvId" json:"cvId"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AuthoredBy reports whether the given user id (hex) wrote this review.
func (r *Review) AuthoredBy(userID string) bool {
	return r.UserID.Hex() == userID
}
