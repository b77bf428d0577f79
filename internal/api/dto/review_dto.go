package dto

import "time"

// CreateReviewRequest payload for leaving a recommendation on a CV.
type CreateReviewRequest struct {
	CVID    string `json:"cvId" validate:"required,objectid"`
	Comment string `json:"comment" validate:"required,min=1,max=500"`
}

// UpdateReviewRequest payload for editing a recommendation comment.
type UpdateReviewRequest struct {
	Comment string `json:"comment" validate:"required,min=1,max=500"`
}

// AuthorSummary denormalizes review author fields.
type AuthorSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CVSummary denormalizes the referenced CV. FirstName/LastName stand in
// for a title, which CVs do not have.
type CVSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ReviewResponse is a review enriched with author and CV summaries.
// Summaries are nil when the referenced document no longer exists.
type ReviewResponse struct {
	ID        string         `json:"id"`
	CVID      string         `json:"cvId"`
	UserID    string         `json:"userId"`
	Comment   string         `json:"comment"`
	Author    *AuthorSummary `json:"author,omitempty"`
	CV        *CVSummary     `json:"cv,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
