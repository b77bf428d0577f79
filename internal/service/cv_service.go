package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cvforge/cv-service/internal/api/dto"
	"github.com/cvforge/cv-service/internal/domain"
	"github.com/cvforge/cv-service/internal/events"
	"github.com/cvforge/cv-service/internal/repository"
	"github.com/cvforge/cv-service/internal/validation"
	apperrors "github.com/cvforge/cv-service/pkg/util"
)

// CVService coordinates CV workflows: validation, ownership gating,
// visibility filtering and persistence.
type CVService struct {
	cvs        repository.CVRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// CVDependencies bundles repositories for the CV service.
type CVDependencies struct {
	CVRepo     repository.CVRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// NewCVService constructs the service.
func NewCVService(deps CVDependencies) *CVService {
	return &CVService{
		cvs:        deps.CVRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create validates the payload and persists a new CV owned by ownerID.
// The owner must reference an existing user; the caller is responsible for
// ownerID matching the authenticated session.
func (s *CVService) Create(ctx context.Context, ownerID string, payload *dto.CVPayload) (*domain.CV, error) {
	if err := validation.ValidateCV(payload); err != nil {
		return nil, err
	}

	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("user", map[string]any{"userId": ownerID})
		}
		return nil, apperrors.NewInternalError(err)
	}

	cv := cvFromPayload(payload)
	cv.UserID = owner.ID

	if err := s.cvs.Create(ctx, cv); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.Event{
		Type:      events.EventCVCreated,
		SubjectID: cv.ID.Hex(),
		ActorID:   ownerID,
		Timestamp: time.Now().UTC(),
		Payload: events.CVCreatedPayload{
			OwnerID:   ownerID,
			IsVisible: cv.IsVisible,
		},
	})
	return cv, nil
}

// GetByID loads a CV. Hidden CVs are readable by their owner only;
// requesterID is empty for anonymous callers and never matches an owner.
func (s *CVService) GetByID(ctx context.Context, id, requesterID string) (*domain.CV, error) {
	cv, err := s.loadCV(ctx, id)
	if err != nil {
		return nil, err
	}
	if !cv.IsVisible && !cv.OwnedBy(requesterID) {
		return nil, apperrors.NewForbidden("not allowed to view this CV")
	}
	return cv, nil
}

// ListAll returns every CV regardless of visibility. The unfiltered public
// listing leaks hidden CVs; kept as-is, see DESIGN.md.
func (s *CVService) ListAll(ctx context.Context) ([]domain.CV, error) {
	cvs, err := s.cvs.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return cvs, nil
}

// ListVisible returns only CVs whose visibility flag is set.
func (s *CVService) ListVisible(ctx context.Context) ([]domain.CV, error) {
	cvs, err := s.cvs.ListVisible(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return cvs, nil
}

// ListByOwner returns all CVs of ownerID, hidden ones included. Only the
// owner may call it for themselves.
func (s *CVService) ListByOwner(ctx context.Context, ownerID, requesterID string) ([]domain.CV, error) {
	if requesterID == "" || requesterID != ownerID {
		return nil, apperrors.NewForbidden("not allowed to list CVs of another user")
	}
	cvs, err := s.cvs.ListByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []domain.CV{}, nil
		}
		return nil, apperrors.NewInternalError(err)
	}
	return cvs, nil
}

// Update merges the validated payload into an existing CV. Owner only.
func (s *CVService) Update(ctx context.Context, id, requesterID string, payload *dto.CVPayload) (*domain.CV, error) {
	cv, err := s.loadCV(ctx, id)
	if err != nil {
		return nil, err
	}
	if !cv.OwnedBy(requesterID) {
		return nil, apperrors.NewForbidden("not allowed to update this CV")
	}
	if err := validation.ValidateCV(payload); err != nil {
		return nil, err
	}

	next := cvFromPayload(payload)
	cv.PersonalInfo = next.PersonalInfo
	cv.Education = next.Education
	cv.Experience = next.Experience
	if payload.IsVisible != nil {
		cv.IsVisible = *payload.IsVisible
	}

	if err := s.cvs.Update(ctx, cv); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("cv", map[string]any{"id": id})
		}
		return nil, apperrors.NewInternalError(err)
	}
	return cv, nil
}

// Delete removes a CV. Owner only.
func (s *CVService) Delete(ctx context.Context, id, requesterID string) error {
	cv, err := s.loadCV(ctx, id)
	if err != nil {
		return err
	}
	if !cv.OwnedBy(requesterID) {
		return apperrors.NewForbidden("not allowed to delete this CV")
	}
	if err := s.cvs.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NewNotFound("cv", map[string]any{"id": id})
		}
		return apperrors.NewInternalError(err)
	}
	return nil
}

// SetVisibility persists only the visibility flag. Owner only, idempotent.
func (s *CVService) SetVisibility(ctx context.Context, id, requesterID string, payload *dto.SetVisibilityRequest) (*domain.CV, error) {
	if err := validation.ValidateVisibility(payload); err != nil {
		return nil, err
	}

	cv, err := s.loadCV(ctx, id)
	if err != nil {
		return nil, err
	}
	if !cv.OwnedBy(requesterID) {
		return nil, apperrors.NewForbidden("not allowed to change visibility of this CV")
	}

	visible := *payload.IsVisible
	if err := s.cvs.SetVisibility(ctx, id, visible); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("cv", map[string]any{"id": id})
		}
		return nil, apperrors.NewInternalError(err)
	}
	cv.IsVisible = visible

	s.publish(ctx, events.Event{
		Type:      events.EventCVVisibilityChanged,
		SubjectID: cv.ID.Hex(),
		ActorID:   requesterID,
		Timestamp: time.Now().UTC(),
		Payload: events.CVVisibilityChangedPayload{
			OwnerID:   cv.UserID.Hex(),
			IsVisible: visible,
		},
	})
	return cv, nil
}

func (s *CVService) loadCV(ctx context.Context, id string) (*domain.CV, error) {
	cv, err := s.cvs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("cv", map[string]any{"id": id})
		}
		return nil, apperrors.NewInternalError(err)
	}
	return cv, nil
}

func (s *CVService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func cvFromPayload(payload *dto.CVPayload) *domain.CV {
	info := domain.PersonalInfo{
		FirstName: strings.TrimSpace(payload.PersonalInfo.FirstName),
		LastName:  strings.TrimSpace(payload.PersonalInfo.LastName),
	}
	if payload.PersonalInfo.Description != nil {
		info.Description = strings.TrimSpace(*payload.PersonalInfo.Description)
	}

	education := make([]domain.EducationEntry, 0, len(payload.Education))
	for _, entry := range payload.Education {
		education = append(education, domain.EducationEntry{
			Degree:      entry.Degree,
			Institution: entry.Institution,
			Year:        *entry.Year,
		})
	}

	experience := make([]domain.ExperienceEntry, 0, len(payload.Experience))
	for _, entry := range payload.Experience {
		experience = append(experience, domain.ExperienceEntry{
			JobTitle: entry.JobTitle,
			Company:  entry.Company,
			Years:    *entry.Years,
		})
	}

	visible := true
	if payload.IsVisible != nil {
		visible = *payload.IsVisible
	}

	return &domain.CV{
		PersonalInfo: info,
		Education:    education,
		Experience:   experience,
		IsVisible:    visible,
	}
}
