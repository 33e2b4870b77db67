package handler

import (
	"github.com/gofiber/fiber/v2"

	"employee-management-backend/internal/middleware"
	"employee-management-backend/internal/usecase"
)

type AuthHandler struct {
	users *usecase.UserUsecase
}

func NewAuthHandler(users *usecase.UserUsecase) *AuthHandler {
	return &AuthHandler{users: users}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseBody(c, &req, false); err != nil {
		return respondError(c, err)
	}
	res, err := h.users.Login(c.UserContext(), req.Username, req.Password, c.IP(), c.Get(fiber.HeaderUserAgent))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"data":    res,
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	profile, err := h.users.Me(c.UserContext(), middleware.CurrentCaller(c))
	if err != nil {
		return respondError(c, err)
	}
	return success(c, profile)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := parseBody(c, &req, false); err != nil {
		return respondError(c, err)
	}
	if err := h.users.ChangePassword(c.UserContext(), middleware.CurrentCaller(c), req.CurrentPassword, req.NewPassword); err != nil {
		return respondError(c, err)
	}
	return successMessage(c, "Password updated successfully")
}
