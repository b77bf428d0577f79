package service

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cvforge/cv-service/internal/domain"
	"github.com/cvforge/cv-service/internal/events"
)

// fakeUserRepo is an in-memory UserRepository used across service tests.
type fakeUserRepo struct {
	users map[string]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]domain.User{}}
}

func (f *fakeUserRepo) seed(name, email string) domain.User {
	user := domain.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	f.users[user.ID.Hex()] = user
	return user
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	f.users[user.ID.Hex()] = *user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := user
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := user
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.users[user.ID.Hex()]; !ok {
		return mongo.ErrNoDocuments
	}
	user.UpdatedAt = time.Now().UTC()
	f.users[user.ID.Hex()] = *user
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.users, id)
	return nil
}

// fakeCVRepo is an in-memory CVRepository.
type fakeCVRepo struct {
	cvs map[string]domain.CV
}

func newFakeCVRepo() *fakeCVRepo {
	return &fakeCVRepo{cvs: map[string]domain.CV{}}
}

func (f *fakeCVRepo) seed(owner primitive.ObjectID, firstName, lastName string, visible bool) domain.CV {
	cv := domain.CV{
		ID:     primitive.NewObjectID(),
		UserID: owner,
		PersonalInfo: domain.PersonalInfo{
			FirstName: firstName,
			LastName:  lastName,
		},
		Education:  []domain.EducationEntry{},
		Experience: []domain.ExperienceEntry{},
		IsVisible:  visible,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	f.cvs[cv.ID.Hex()] = cv
	return cv
}

func (f *fakeCVRepo) Create(_ context.Context, cv *domain.CV) error {
	cv.ID = primitive.NewObjectID()
	cv.CreatedAt = time.Now().UTC()
	cv.UpdatedAt = cv.CreatedAt
	f.cvs[cv.ID.Hex()] = *cv
	return nil
}

func (f *fakeCVRepo) GetByID(_ context.Context, id string) (*domain.CV, error) {
	cv, ok := f.cvs[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := cv
	return &copied, nil
}

func (f *fakeCVRepo) ListAll(_ context.Context) ([]domain.CV, error) {
	result := []domain.CV{}
	for _, cv := range f.cvs {
		result = append(result, cv)
	}
	return result, nil
}

func (f *fakeCVRepo) ListVisible(_ context.Context) ([]domain.CV, error) {
	result := []domain.CV{}
	for _, cv := range f.cvs {
		if cv.IsVisible {
			result = append(result, cv)
		}
	}
	return result, nil
}

func (f *fakeCVRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.CV, error) {
	result := []domain.CV{}
	for _, cv := range f.cvs {
		if cv.UserID.Hex() == ownerID {
			result = append(result, cv)
		}
	}
	return result, nil
}

func (f *fakeCVRepo) Update(_ context.Context, cv *domain.CV) error {
	if _, ok := f.cvs[cv.ID.Hex()]; !ok {
		return mongo.ErrNoDocuments
	}
	cv.UpdatedAt = time.Now().UTC()
	f.cvs[cv.ID.Hex()] = *cv
	return nil
}

func (f *fakeCVRepo) SetVisibility(_ context.Context, id string, visible bool) error {
	cv, ok := f.cvs[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	cv.IsVisible = visible
	cv.UpdatedAt = time.Now().UTC()
	f.cvs[id] = cv
	return nil
}

func (f *fakeCVRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.cvs[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.cvs, id)
	return nil
}

// fakeReviewRepo is an in-memory ReviewRepository.
type fakeReviewRepo struct {
	reviews map[string]domain.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[string]domain.Review{}}
}

func (f *fakeReviewRepo) seed(cvID, author primitive.ObjectID, comment string) domain.Review {
	review := domain.Review{
		ID:        primitive.NewObjectID(),
		CVID:      cvID,
		UserID:    author,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	f.reviews[review.ID.Hex()] = review
	return review
}

func (f *fakeReviewRepo) Create(_ context.Context, review *domain.Review) error {
	review.ID = primitive.NewObjectID()
	review.CreatedAt = time.Now().UTC()
	review.UpdatedAt = review.CreatedAt
	f.reviews[review.ID.Hex()] = *review
	return nil
}

func (f *fakeReviewRepo) GetByID(_ context.Context, id string) (*domain.Review, error) {
	review, ok := f.reviews[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := review
	return &copied, nil
}

func (f *fakeReviewRepo) ListAll(_ context.Context) ([]domain.Review, error) {
	result := []domain.Review{}
	for _, review := range f.reviews {
		result = append(result, review)
	}
	return result, nil
}

func (f *fakeReviewRepo) ListByCV(_ context.Context, cvID string) ([]domain.Review, error) {
	result := []domain.Review{}
	for _, review := range f.reviews {
		if review.CVID.Hex() == cvID {
			result = append(result, review)
		}
	}
	return result, nil
}

func (f *fakeReviewRepo) ListByAuthor(_ context.Context, userID string) ([]domain.Review, error) {
	result := []domain.Review{}
	for _, review := range f.reviews {
		if review.UserID.Hex() == userID {
			result = append(result, review)
		}
	}
	return result, nil
}

func (f *fakeReviewRepo) UpdateComment(_ context.Context, id, comment string) error {
	review, ok := f.reviews[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	review.Comment = comment
	review.UpdatedAt = time.Now().UTC()
	f.reviews[id] = review
	return nil
}

func (f *fakeReviewRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.reviews[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.reviews, id)
	return nil
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) byType(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	result := []events.Event{}
	for _, event := range d.events {
		if event.Type == eventType {
			result = append(result, event)
		}
	}
	return result
}
