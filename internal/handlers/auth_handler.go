package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/rahularya002/make-songs/internal/middleware"
	"github.com/rahularya002/make-songs/internal/services"
	"github.com/rahularya002/make-songs/internal/utils"
)

// AuthHandler serves signup, login and logout.
type AuthHandler struct {
	svc    *services.AuthService
	logger *zap.SugaredLogger
}

func NewAuthHandler(svc *services.AuthService, logger *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

type signupRequest struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	if !strings.Contains(c.Get("Content-Type"), "application/json") {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid content type. Expected JSON.")
	}

	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	err := h.svc.Signup(c.Context(), req.FirstName, req.LastName, req.Email, req.Password)
	switch {
	case errors.Is(err, services.ErrMissingFields):
		return utils.JSONError(c, fiber.StatusBadRequest, "All fields are required")
	case errors.Is(err, services.ErrUserExists):
		return utils.JSONError(c, fiber.StatusBadRequest, "User already exists")
	case err != nil:
		h.logger.Errorf("signup failed: %v", err)
		return utils.JSONError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return utils.JSONMessage(c, fiber.StatusCreated, "User created successfully")
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /auth/login: the credentials-grant exchange. On success
// the session token is set as a cookie and also returned for API callers.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	token, expires, user, err := h.svc.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return utils.JSONError(c, fiber.StatusUnauthorized, "Authentication failed")
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Expires:  expires,
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":    user.ID.Hex(),
			"email": user.Email,
			"name":  user.DisplayName(),
		},
	})
}

// Logout clears the session cookie. Tokens are stateless, so the cookie is the
// only thing to discard.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
	return utils.JSONMessage(c, fiber.StatusOK, "Signed out")
}
