package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PersonalInfo is the identity block embedded in a CV.
type PersonalInfo struct {
	FirstName   string `bson:"firstName" json:"firstName"`
	LastName    string `bson:"lastName" json:"lastName"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// EducationEntry is one element of the ordered education list.
type EducationEntry struct {
	Degree      string `bson:"degree" json:"degree"`
	Institution string `bson:"institution" json:"institution"`
	Year        int    `bson:"year" json:"year"`
}

// ExperienceEntry is one element of the ordered experience list.
type ExperienceEntry struct {
	JobTitle string `bson:"jobTitle" json:"jobTitle"`
	Company  string `bson:"company" json:"company"`
	Years    int    `bson:"years" json:"years"`
}

// CV is a curated profile document. UserID is set at creation and never
// changes afterwards; IsVisible gates reads by anyone other than the owner.
type CV struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	PersonalInfo PersonalInfo       `bson:"personalInfo" json:"personalInfo"`
	Education    []EducationEntry   `bson:"education" json:"education"`
	Experience   []ExperienceEntry  `bson:"experience" json:"experience"`
	IsVisible    bool               `bson:"isVisible" json:"isVisible"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OwnedBy reports whether the given user id (hex) owns this CV.
func (c *CV) OwnedBy(userID string) bool {
	return c.UserID.Hex() == userID
}
