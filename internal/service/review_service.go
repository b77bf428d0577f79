package service

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cvforge/cv-service/internal/api/dto"
	"github.com/cvforge/cv-service/internal/domain"
	"github.com/cvforge/cv-service/internal/events"
	"github.com/cvforge/cv-service/internal/repository"
	"github.com/cvforge/cv-service/internal/validation"
	apperrors "github.com/cvforge/cv-service/pkg/util"
)

const commentPreviewLen = 80

// EnrichedReview pairs a review with the denormalized author and CV it
// references. Author or CV are nil when the referenced document is gone.
type EnrichedReview struct {
	Review domain.Review
	Author *domain.User
	CV     *domain.CV
}

// ReviewService coordinates recommendation workflows.
type ReviewService struct {
	reviews    repository.ReviewRepository
	cvs        repository.CVRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// ReviewDependencies bundles repositories for the review service.
type ReviewDependencies struct {
	ReviewRepo repository.ReviewRepository
	CVRepo     repository.CVRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// NewReviewService constructs the service.
func NewReviewService(deps ReviewDependencies) *ReviewService {
	return &ReviewService{
		reviews:    deps.ReviewRepo,
		cvs:        deps.CVRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create validates and persists a new review by authorID on the referenced
// CV. Both the CV and the author must exist. No visibility check: a review
// may target a CV its author cannot see.
func (s *ReviewService) Create(ctx context.Context, authorID string, payload *dto.CreateReviewRequest) (*domain.Review, error) {
	if err := validation.ValidateReviewCreate(payload); err != nil {
		return nil, err
	}

	cv, err := s.cvs.GetByID(ctx, payload.CVID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("cv", map[string]any{"cvId": payload.CVID})
		}
		return nil, apperrors.NewInternalError(err)
	}

	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("user", map[string]any{"userId": authorID})
		}
		return nil, apperrors.NewInternalError(err)
	}

	review := &domain.Review{
		CVID:    cv.ID,
		UserID:  author.ID,
		Comment: payload.Comment,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.Event{
		Type:      events.EventReviewCreated,
		SubjectID: review.ID.Hex(),
		ActorID:   authorID,
		Timestamp: time.Now().UTC(),
		Payload: events.ReviewCreatedPayload{
			CVID:           cv.ID.Hex(),
			CVOwnerID:      cv.UserID.Hex(),
			AuthorID:       authorID,
			CommentPreview: preview(review.Comment),
		},
	})
	return review, nil
}

// GetByID returns a single review enriched with author and CV summaries.
func (s *ReviewService) GetByID(ctx context.Context, id string) (*EnrichedReview, error) {
	review, err := s.loadReview(ctx, id)
	if err != nil {
		return nil, err
	}
	enriched, err := s.enrich(ctx, []domain.Review{*review})
	if err != nil {
		return nil, err
	}
	return &enriched[0], nil
}

// ListAll returns every review, enriched.
func (s *ReviewService) ListAll(ctx context.Context) ([]EnrichedReview, error) {
	reviews, err := s.reviews.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return s.enrich(ctx, reviews)
}

// ListForCV returns all reviews referencing an existing CV, enriched.
func (s *ReviewService) ListForCV(ctx context.Context, cvID string) ([]EnrichedReview, error) {
	if _, err := s.cvs.GetByID(ctx, cvID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("cv", map[string]any{"cvId": cvID})
		}
		return nil, apperrors.NewInternalError(err)
	}
	reviews, err := s.reviews.ListByCV(ctx, cvID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return s.enrich(ctx, reviews)
}

// ListByAuthor returns all reviews written by an existing user, enriched.
func (s *ReviewService) ListByAuthor(ctx context.Context, userID string) ([]EnrichedReview, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("user", map[string]any{"userId": userID})
		}
		return nil, apperrors.NewInternalError(err)
	}
	reviews, err := s.reviews.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return s.enrich(ctx, reviews)
}

// Update replaces the comment of a review. Author only.
func (s *ReviewService) Update(ctx context.Context, id, requesterID string, payload *dto.UpdateReviewRequest) (*domain.Review, error) {
	review, err := s.loadReview(ctx, id)
	if err != nil {
		return nil, err
	}
	if !review.AuthoredBy(requesterID) {
		return nil, apperrors.NewForbidden("only the author may update this review")
	}
	if err := validation.ValidateReviewUpdate(payload); err != nil {
		return nil, err
	}

	if err := s.reviews.UpdateComment(ctx, id, payload.Comment); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("review", map[string]any{"id": id})
		}
		return nil, apperrors.NewInternalError(err)
	}
	review.Comment = payload.Comment
	review.UpdatedAt = time.Now().UTC()
	return review, nil
}

// Delete removes a review. Authority belongs to the owner of the referenced
// CV, not the review's author.
func (s *ReviewService) Delete(ctx context.Context, id, requesterID string) error {
	review, err := s.loadReview(ctx, id)
	if err != nil {
		return err
	}

	cv, err := s.cvs.GetByID(ctx, review.CVID.Hex())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NewNotFound("cv", map[string]any{"cvId": review.CVID.Hex()})
		}
		return apperrors.NewInternalError(err)
	}
	if !cv.OwnedBy(requesterID) {
		return apperrors.NewForbidden("only the CV owner may delete this review")
	}

	if err := s.reviews.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NewNotFound("review", map[string]any{"id": id})
		}
		return apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.Event{
		Type:      events.EventReviewDeleted,
		SubjectID: id,
		ActorID:   requesterID,
		Timestamp: time.Now().UTC(),
		Payload: events.ReviewDeletedPayload{
			CVID:      cv.ID.Hex(),
			RemovedBy: requesterID,
		},
	})
	return nil
}

func (s *ReviewService) loadReview(ctx context.Context, id string) (*domain.Review, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("review", map[string]any{"id": id})
		}
		return nil, apperrors.NewInternalError(err)
	}
	return review, nil
}

// enrich resolves author and CV references, caching lookups within the call
// so a list over one CV hits the store once per distinct reference. A
// dangling reference (the document was deleted) yields a nil summary; any
// other store failure propagates.
func (s *ReviewService) enrich(ctx context.Context, reviews []domain.Review) ([]EnrichedReview, error) {
	userCache := map[string]*domain.User{}
	cvCache := map[string]*domain.CV{}

	result := make([]EnrichedReview, 0, len(reviews))
	for _, review := range reviews {
		enriched := EnrichedReview{Review: review}

		authorID := review.UserID.Hex()
		if cached, ok := userCache[authorID]; ok {
			enriched.Author = cached
		} else {
			author, err := s.users.GetByID(ctx, authorID)
			if err != nil {
				if !errors.Is(err, mongo.ErrNoDocuments) {
					return nil, apperrors.NewInternalError(err)
				}
				author = nil
			}
			userCache[authorID] = author
			enriched.Author = author
		}

		cvID := review.CVID.Hex()
		if cached, ok := cvCache[cvID]; ok {
			enriched.CV = cached
		} else {
			cv, err := s.cvs.GetByID(ctx, cvID)
			if err != nil {
				if !errors.Is(err, mongo.ErrNoDocuments) {
					return nil, apperrors.NewInternalError(err)
				}
				cv = nil
			}
			cvCache[cvID] = cv
			enriched.CV = cv
		}

		result = append(result, enriched)
	}
	return result, nil
}

func (s *ReviewService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

// preview truncates on a rune boundary so multi-byte comments stay valid
// UTF-8 in event payloads.
func preview(comment string) string {
	if utf8.RuneCountInString(comment) <= commentPreviewLen {
		return comment
	}
	return string([]rune(comment)[:commentPreviewLen])
}
