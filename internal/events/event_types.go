package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCVCreated           EventType = "cv_created"
	EventCVVisibilityChanged EventType = "cv_visibility_changed"
	EventReviewCreated       EventType = "review_created"
	EventReviewDeleted       EventType = "review_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// CVCreatedPayload payload.
type CVCreatedPayload struct {
	OwnerID   string `json:"owner_id"`
	IsVisible bool   `json:"is_visible"`
}

// CVVisibilityChangedPayload payload.
type CVVisibilityChangedPayload struct {
	OwnerID   string `json:"owner_id"`
	IsVisible bool   `json:"is_visible"`
}

// ReviewCreatedPayload payload.
type ReviewCreatedPayload struct {
	CVID           string `json:"cv_id"`
	CVOwnerID      string `json:"cv_owner_id"`
	AuthorID       string `json:"author_id"`
	CommentPreview string `json:"comment_preview"`
}

// ReviewDeletedPayload payload.
type ReviewDeletedPayload struct {
	CVID      string `json:"cv_id"`
	RemovedBy string `json:"removed_by"`
}
