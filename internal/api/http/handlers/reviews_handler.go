package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/cvforge/cv-service/internal/api/dto"
	"github.com/cvforge/cv-service/internal/auth"
	"github.com/cvforge/cv-service/internal/service"
	apperrors "github.com/cvforge/cv-service/pkg/util"
)

// ReviewsHandler manages recommendation endpoints.
type ReviewsHandler struct {
	service *service.ReviewService
}

// NewReviewsHandler constructs handler.
func NewReviewsHandler(reviewService *service.ReviewService) *ReviewsHandler {
	return &ReviewsHandler{service: reviewService}
}

// Create POST /api/reviews.
func (h *ReviewsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	review, err := h.service.Create(c.UserContext(), principal.ID, &req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": review})
}

// List GET /api/reviews.
func (h *ReviewsHandler) List(c *fiber.Ctx) error {
	reviews, err := h.service.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reviewResponses(reviews)})
}

// Get GET /api/reviews/:id.
func (h *ReviewsHandler) Get(c *fiber.Ctx) error {
	review, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reviewResponse(review)})
}

// ListForCV GET /api/reviews/cv/:cvId.
func (h *ReviewsHandler) ListForCV(c *fiber.Ctx) error {
	reviews, err := h.service.ListForCV(c.UserContext(), c.Params("cvId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reviewResponses(reviews)})
}

// ListByAuthor GET /api/reviews/user/:userId.
func (h *ReviewsHandler) ListByAuthor(c *fiber.Ctx) error {
	reviews, err := h.service.ListByAuthor(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reviewResponses(reviews)})
}

// Update PUT /api/reviews/:id.
func (h *ReviewsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	review, err := h.service.Update(c.UserContext(), c.Params("id"), principal.ID, &req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": review})
}

// Delete DELETE /api/reviews/:id. Authority belongs to the CV owner.
func (h *ReviewsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.service.Delete(c.UserContext(), c.Params("id"), principal.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "review deleted successfully"}})
}

func reviewResponse(enriched *service.EnrichedReview) dto.ReviewResponse {
	resp := dto.ReviewResponse{
		ID:        enriched.Review.ID.Hex(),
		CVID:      enriched.Review.CVID.Hex(),
		UserID:    enriched.Review.UserID.Hex(),
		Comment:   enriched.Review.Comment,
		CreatedAt: enriched.Review.CreatedAt,
		UpdatedAt: enriched.Review.UpdatedAt,
	}
	if enriched.Author != nil {
		resp.Author = &dto.AuthorSummary{
			ID:    enriched.Author.ID.Hex(),
			Name:  enriched.Author.Name,
			Email: enriched.Author.Email,
		}
	}
	if enriched.CV != nil {
		resp.CV = &dto.CVSummary{
			ID:        enriched.CV.ID.Hex(),
			FirstName: enriched.CV.PersonalInfo.FirstName,
			LastName:  enriched.CV.PersonalInfo.LastName,
		}
	}
	return resp
}

func reviewResponses(enriched []service.EnrichedReview) []dto.ReviewResponse {
	items := make([]dto.ReviewResponse, 0, len(enriched))
	for i := range enriched {
		items = append(items, reviewResponse(&enriched[i]))
	}
	return items
}
