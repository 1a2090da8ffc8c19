package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/doctor-portal/internal/api/dto"
	"github.com/spec-kit/doctor-portal/internal/auth"
	"github.com/spec-kit/doctor-portal/internal/service"
)

// AuthHandler exposes login, logout and session introspection.
type AuthHandler struct {
	auth       *service.AuthService
	sessionTTL time.Duration
	cookie     auth.CookieOptions
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, sessionTTL time.Duration, cookie auth.CookieOptions) *AuthHandler {
	return &AuthHandler{auth: authService, sessionTTL: sessionTTL, cookie: cookie}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	result, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	auth.SetSessionCookie(c, result.Token, h.sessionTTL, h.cookie)

	resp := dto.NewSessionResponse(&result.Session)
	resp.ExpiresAt = &result.ExpiresAt
	return c.Status(http.StatusOK).JSON(fiber.Map{"data": resp})
}

// Logout handles POST /api/auth/logout. It only clears the cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	auth.ClearSessionCookie(c, h.cookie)
	return c.JSON(fiber.Map{"data": fiber.Map{"logged_out": true}})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	session, err := h.auth.Me(c.UserContext(), auth.SessionFromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSessionResponse(session)})
}
