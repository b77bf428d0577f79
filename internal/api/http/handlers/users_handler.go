package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cvforge/cv-service/internal/api/dto"
	"github.com/cvforge/cv-service/internal/auth"
	"github.com/cvforge/cv-service/internal/service"
	apperrors "github.com/cvforge/cv-service/pkg/util"
)

// UsersHandler exposes self-service profile endpoints.
type UsersHandler struct {
	service *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{service: userService}
}

// Me GET /api/user/me. Answers straight from the authenticated principal;
// no arbitrary lookup by id is exposed.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"data": dto.UserProfile{
		ID:    principal.ID,
		Name:  principal.Name,
		Email: principal.Email,
	}})
}

// Update PUT /api/user/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.service.Update(c.UserContext(), c.Params("id"), principal.ID, &req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.UserProfile{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
	}})
}

// Delete DELETE /api/user/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.service.Delete(c.UserContext(), c.Params("id"), principal.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "user deleted successfully"}})
}
