package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	httptransport "github.com/cvforge/cv-service/internal/api/http"
	"github.com/cvforge/cv-service/internal/api/http/handlers"
	"github.com/cvforge/cv-service/internal/auth"
	"github.com/cvforge/cv-service/internal/config"
	"github.com/cvforge/cv-service/internal/domain"
	"github.com/cvforge/cv-service/internal/observability"
	"github.com/cvforge/cv-service/internal/service"
)

// In-memory repositories backing a full HTTP stack, so route tests cover
// middleware, handlers and services together without a running database.

type userStore struct {
	users map[string]domain.User
}

func (s *userStore) Create(_ context.Context, user *domain.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	s.users[user.ID.Hex()] = *user
	return nil
}

func (s *userStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := user
	return &copied, nil
}

func (s *userStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			copied := user
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *userStore) Update(_ context.Context, user *domain.User) error {
	if _, ok := s.users[user.ID.Hex()]; !ok {
		return mongo.ErrNoDocuments
	}
	s.users[user.ID.Hex()] = *user
	return nil
}

func (s *userStore) Delete(_ context.Context, id string) error {
	if _, ok := s.users[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(s.users, id)
	return nil
}

type cvStore struct {
	cvs map[string]domain.CV
	// Context seen by the most recent list call, so tests can assert that
	// request deadlines reach the store layer.
	lastListCtx context.Context
}

func (s *cvStore) Create(_ context.Context, cv *domain.CV) error {
	cv.ID = primitive.NewObjectID()
	cv.CreatedAt = time.Now().UTC()
	cv.UpdatedAt = cv.CreatedAt
	s.cvs[cv.ID.Hex()] = *cv
	return nil
}

func (s *cvStore) GetByID(_ context.Context, id string) (*domain.CV, error) {
	cv, ok := s.cvs[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := cv
	return &copied, nil
}

func (s *cvStore) ListAll(ctx context.Context) ([]domain.CV, error) {
	s.lastListCtx = ctx
	result := []domain.CV{}
	for _, cv := range s.cvs {
		result = append(result, cv)
	}
	return result, nil
}

func (s *cvStore) ListVisible(_ context.Context) ([]domain.CV, error) {
	result := []domain.CV{}
	for _, cv := range s.cvs {
		if cv.IsVisible {
			result = append(result, cv)
		}
	}
	return result, nil
}

func (s *cvStore) ListByOwner(_ context.Context, ownerID string) ([]domain.CV, error) {
	result := []domain.CV{}
	for _, cv := range s.cvs {
		if cv.UserID.Hex() == ownerID {
			result = append(result, cv)
		}
	}
	return result, nil
}

func (s *cvStore) Update(_ context.Context, cv *domain.CV) error {
	if _, ok := s.cvs[cv.ID.Hex()]; !ok {
		return mongo.ErrNoDocuments
	}
	s.cvs[cv.ID.Hex()] = *cv
	return nil
}

func (s *cvStore) SetVisibility(_ context.Context, id string, visible bool) error {
	cv, ok := s.cvs[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	cv.IsVisible = visible
	s.cvs[id] = cv
	return nil
}

func (s *cvStore) Delete(_ context.Context, id string) error {
	if _, ok := s.cvs[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(s.cvs, id)
	return nil
}

type reviewStore struct {
	reviews map[string]domain.Review
}

func (s *reviewStore) Create(_ context.Context, review *domain.Review) error {
	review.ID = primitive.NewObjectID()
	review.CreatedAt = time.Now().UTC()
	review.UpdatedAt = review.CreatedAt
	s.reviews[review.ID.Hex()] = *review
	return nil
}

func (s *reviewStore) GetByID(_ context.Context, id string) (*domain.Review, error) {
	review, ok := s.reviews[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := review
	return &copied, nil
}

func (s *reviewStore) ListAll(_ context.Context) ([]domain.Review, error) {
	result := []domain.Review{}
	for _, review := range s.reviews {
		result = append(result, review)
	}
	return result, nil
}

func (s *reviewStore) ListByCV(_ context.Context, cvID string) ([]domain.Review, error) {
	result := []domain.Review{}
	for _, review := range s.reviews {
		if review.CVID.Hex() == cvID {
			result = append(result, review)
		}
	}
	return result, nil
}

func (s *reviewStore) ListByAuthor(_ context.Context, userID string) ([]domain.Review, error) {
	result := []domain.Review{}
	for _, review := range s.reviews {
		if review.UserID.Hex() == userID {
			result = append(result, review)
		}
	}
	return result, nil
}

func (s *reviewStore) UpdateComment(_ context.Context, id, comment string) error {
	review, ok := s.reviews[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	review.Comment = comment
	review.UpdatedAt = time.Now().UTC()
	s.reviews[id] = review
	return nil
}

func (s *reviewStore) Delete(_ context.Context, id string) error {
	if _, ok := s.reviews[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(s.reviews, id)
	return nil
}

type memDenylist struct {
	revoked map[string]bool
}

func (d *memDenylist) Revoke(_ context.Context, jti string, _ time.Duration) error {
	d.revoked[jti] = true
	return nil
}

func (d *memDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	return d.revoked[jti], nil
}

type testEnv struct {
	app *fiber.App
	cvs *cvStore
}

func newTestApp(t *testing.T) *fiber.App {
	return newTestEnv(t, 0).app
}

func newTestEnv(t *testing.T, timeout time.Duration) *testEnv {
	t.Helper()

	users := &userStore{users: map[string]domain.User{}}
	cvs := &cvStore{cvs: map[string]domain.CV{}}
	reviews := &reviewStore{reviews: map[string]domain.Review{}}
	denylist := &memDenylist{revoked: map[string]bool{}}

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 15,
			BcryptCost:            bcrypt.MinCost,
		},
	}

	authService := service.NewAuthService(cfg, service.AuthDependencies{UserRepo: users, Denylist: denylist})
	cvService := service.NewCVService(service.CVDependencies{CVRepo: cvs, UserRepo: users})
	reviewService := service.NewReviewService(service.ReviewDependencies{
		ReviewRepo: reviews,
		CVRepo:     cvs,
		UserRepo:   users,
	})
	userService := service.NewUserService(service.UserDependencies{UserRepo: users, BcryptCost: cfg.Auth.BcryptCost})

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), timeout)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler("cv-service-test", "test", nil, nil),
		Auth:           handlers.NewAuthHandler(authService),
		CVs:            handlers.NewCVsHandler(cvService),
		Reviews:        handlers.NewReviewsHandler(reviewService),
		Users:          handlers.NewUsersHandler(userService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), users, denylist),
	})
	return &testEnv{app: app, cvs: cvs}
}

func request(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		decoded = nil
	}
	return resp.StatusCode, decoded
}

func registerUser(t *testing.T, app *fiber.App, name, email string) (string, string) {
	t.Helper()

	status, body := request(t, app, http.MethodPost, "/auth/register", "", map[string]any{
		"name":     name,
		"email":    email,
		"password": "Secret1",
	})
	require.Equal(t, http.StatusCreated, status)

	data := body["data"].(map[string]any)
	userID := data["user"].(map[string]any)["id"].(string)
	token := data["auth"].(map[string]any)["token"].(string)
	return userID, token
}

func errorCode(t *testing.T, body map[string]any) string {
	t.Helper()
	require.NotNil(t, body)
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected error envelope, got %v", body)
	return errObj["code"].(string)
}

func cvRequestBody() map[string]any {
	return map[string]any{
		"personalInfo": map[string]any{
			"firstName": "Alice",
			"lastName":  "Morgan",
		},
		"education": []map[string]any{
			{"degree": "BSc Computer Science", "institution": "ETH Zurich", "year": 2018},
		},
		"experience": []map[string]any{
			{"jobTitle": "Software Engineer", "company": "Acme", "years": 4},
		},
	}
}
