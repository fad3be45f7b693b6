package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/course-service/internal/api/dto"
	"github.com/spec-kit/course-service/internal/identity"
	apperrors "github.com/spec-kit/course-service/pkg/util"
)

// AuthHandler exposes sign-up and login endpoints.
type AuthHandler struct {
	identity *identity.Service
}

// NewAuthHandler constructs handler.
func NewAuthHandler(identityService *identity.Service) *AuthHandler {
	return &AuthHandler{identity: identityService}
}

// SignUp handles POST /signup.
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	profile, err := h.identity.SignUp(c.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		return apperrors.NewProviderError(err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.UserResponse{
				UID:       profile.UID,
				Email:     profile.Email,
				Role:      string(profile.Role),
				CreatedAt: profile.CreatedAt,
			},
		},
	})
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	account, token, exp, err := h.identity.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return apperrors.NewUnauthorized(err.Error())
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": fiber.Map{
				"uid":   account.UID,
				"email": account.Email,
				"role":  account.Role,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}
