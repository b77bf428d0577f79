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

// ReviewRepository encapsulates review persistence.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	GetByID(ctx context.Context, id string) (*domain.Review, error)
	ListAll(ctx context.Context) ([]domain.Review, error)
	ListByCV(ctx context.Context, cvID string) ([]domain.Review, error)
	ListByAuthor(ctx context.Context, userID string) ([]domain.Review, error)
	UpdateComment(ctx context.Context, id, comment string) error
	Delete(ctx context.Context, id string) error
}

type reviewRepository struct {
	coll *mongo.Collection
}

// NewReviewRepository instantiates repository.
func NewReviewRepository(coll *mongo.Collection) ReviewRepository {
	return &reviewRepository{coll: coll}
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	now := time.Now().UTC()
	review.CreatedAt = now
	review.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, review)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		review.ID = oid
	}
	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var review domain.Review
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListAll(ctx context.Context) ([]domain.Review, error) {
	return r.list(ctx, bson.M{})
}

func (r *reviewRepository) ListByCV(ctx context.Context, cvID string) ([]domain.Review, error) {
	oid, err := parseID(cvID)
	if err != nil {
		return nil, err
	}
	return r.list(ctx, bson.M{"cvId": oid})
}

func (r *reviewRepository) ListByAuthor(ctx context.Context, userID string) ([]domain.Review, error) {
	oid, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	return r.list(ctx, bson.M{"userId": oid})
}

func (r *reviewRepository) list(ctx context.Context, filter bson.M) ([]domain.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := []domain.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) UpdateComment(ctx context.Context, id, comment string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"comment":   comment,
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

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
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
