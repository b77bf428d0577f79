package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cvforge/cv-service/internal/domain"
)

// CVRepository encapsulates CV persistence.
type CVRepository interface {
	Create(ctx context.Context, cv *domain.CV) error
	GetByID(ctx context.Context, id string) (*domain.CV, error)
	ListAll(ctx context.Context) ([]domain.CV, error)
	ListVisible(ctx context.Context) ([]domain.CV, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.CV, error)
	Update(ctx context.Context, cv *domain.CV) error
	SetVisibility(ctx context.Context, id string, visible bool) error
	Delete(ctx context.Context, id string) error
}

type cvRepository struct {
	coll *mongo.Collection
}

// NewCVRepository instantiates repository.
func NewCVRepository(coll *mongo.Collection) CVRepository {
	return &cvRepository{coll: coll}
}

func (r *cvRepository) Create(ctx context.Context, cv *domain.CV) error {
	now := time.Now().UTC()
	cv.CreatedAt = now
	cv.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, cv)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		cv.ID = oid
	}
	return nil
}

func (r *cvRepository) GetByID(ctx context.Context, id string) (*domain.CV, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var cv domain.CV
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&cv); err != nil {
		return nil, err
	}
	return &cv, nil
}

func (r *cvRepository) ListAll(ctx context.Context) ([]domain.CV, error) {
	return r.list(ctx, bson.M{})
}

func (r *cvRepository) ListVisible(ctx context.Context) ([]domain.CV, error) {
	return r.list(ctx, bson.M{"isVisible": true})
}

func (r *cvRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.CV, error) {
	oid, err := parseID(ownerID)
	if err != nil {
		return nil, err
	}
	return r.list(ctx, bson.M{"userId": oid})
}

func (r *cvRepository) list(ctx context.Context, filter bson.M) ([]domain.CV, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	cvs := []domain.CV{}
	if err := cursor.All(ctx, &cvs); err != nil {
		return nil, err
	}
	return cvs, nil
}

// Update persists the mutable CV fields. UserID is deliberately excluded:
// ownership never changes after creation.
func (r *cvRepository) Update(ctx context.Context, cv *domain.CV) error {
	cv.UpdatedAt = time.Now().UTC()
	res, err := r.coll.UpdateByID(ctx, cv.ID, bson.M{"$set": bson.M{
		"personalInfo": cv.PersonalInfo,
		"education":    cv.Education,
		"experience":   cv.Experience,
		"isVisible":    cv.IsVisible,
		"updatedAt":    cv.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *cvRepository) SetVisibility(ctx context.Context, id string, visible bool) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"isVisible": visible,
		"updatedAt": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *cvRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
