package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-system/internal/api/dto"
	"github.com/spec-kit/ticket-system/internal/auth"
	"github.com/spec-kit/ticket-system/internal/domain"
	"github.com/spec-kit/ticket-system/internal/service"
	apperrors "github.com/spec-kit/ticket-system/pkg/util"
)

// UsersHandler exposes login and profile endpoints.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Login handles POST /api/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Email and password required", nil)
	}

	user, token, exp, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{
		AccessToken: token,
		ExpiresAt:   exp,
		User:        userResponse(user),
	})
}

// Me handles GET /api/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	user, err := h.auth.Resolve(c.UserContext(), principal.Email)
	if err != nil {
		if errors.Is(err, service.ErrIdentityNotFound) {
			return apperrors.NewNotFound("User", nil)
		}
		return apperrors.NewInternalError(err)
	}
	return c.JSON(userResponse(user))
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{Email: user.Email, Name: user.Name, Role: string(user.Role)}
}
