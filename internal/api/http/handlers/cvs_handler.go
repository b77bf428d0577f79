package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/cvforge/cv-service/internal/api/dto"
	"github.com/cvforge/cv-service/internal/auth"
	"github.com/cvforge/cv-service/internal/service"
	"github.com/cvforge/cv-service/internal/validation"
	apperrors "github.com/cvforge/cv-service/pkg/util"
)

// CVsHandler manages CV endpoints.
type CVsHandler struct {
	service *service.CVService
}

// NewCVsHandler constructs handler.
func NewCVsHandler(cvService *service.CVService) *CVsHandler {
	return &CVsHandler{service: cvService}
}

// Create POST /api/cv.
func (h *CVsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var payload dto.CVPayload
	if err := validation.DecodeStrict(c.Body(), &payload); err != nil {
		return err
	}

	cv, err := h.service.Create(c.UserContext(), principal.ID, &payload)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": cv})
}

// List GET /api/cv. Returns every CV, hidden ones included.
func (h *CVsHandler) List(c *fiber.Ctx) error {
	cvs, err := h.service.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": cvs})
}

// ListVisible GET /api/cv/visible.
func (h *CVsHandler) ListVisible(c *fiber.Ctx) error {
	cvs, err := h.service.ListVisible(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": cvs})
}

// Get GET /api/cv/:id. Anonymous callers may read visible CVs only.
func (h *CVsHandler) Get(c *fiber.Ctx) error {
	requesterID := ""
	if principal, ok := auth.PrincipalFromContext(c); ok {
		requesterID = principal.ID
	}

	cv, err := h.service.GetByID(c.UserContext(), c.Params("id"), requesterID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": cv})
}

// ListByOwner GET /api/cv/user/:userId.
func (h *CVsHandler) ListByOwner(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	cvs, err := h.service.ListByOwner(c.UserContext(), c.Params("userId"), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": cvs})
}

// Update PUT /api/cv/:id.
func (h *CVsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var payload dto.CVPayload
	if err := validation.DecodeStrict(c.Body(), &payload); err != nil {
		return err
	}

	cv, err := h.service.Update(c.UserContext(), c.Params("id"), principal.ID, &payload)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": cv})
}

// Delete DELETE /api/cv/:id.
func (h *CVsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.service.Delete(c.UserContext(), c.Params("id"), principal.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "CV deleted successfully"}})
}

// SetVisibility PATCH /api/cv/:id/visibility.
func (h *CVsHandler) SetVisibility(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var payload dto.SetVisibilityRequest
	if err := validation.DecodeStrict(c.Body(), &payload); err != nil {
		return err
	}

	cv, err := h.service.SetVisibility(c.UserContext(), c.Params("id"), principal.ID, &payload)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": cv})
}
