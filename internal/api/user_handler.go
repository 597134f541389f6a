package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"organizer-service/internal/model"
	"organizer-service/internal/service"
	"organizer-service/internal/validation"
)

type UserHandler struct {
	userService service.UserService
	validate    *validator.Validate
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    validation.New(),
	}
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=admin organizer attendee"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var request CreateUserRequest

	if err := c.BodyParser(&request); err != nil {
		return fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if err := h.validate.Struct(&request); err != nil {
		return fail(c, fiber.StatusBadRequest, createUserValidationMessage(err))
	}

	_, err := h.userService.Register(c.UserContext(), service.RegisterUserInput{
		Username: request.Username,
		Email:    request.Email,
		Password: request.Password,
		Phone:    request.Phone,
		Role:     model.Role(request.Role),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(Response{Success: true, Message: "New user created successfully"})
}

// createUserValidationMessage reports missing fields ahead of a bad role.
func createUserValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid input"
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return "All fields are required"
		}
	}
	return "Invalid role. Must be admin, organizer, or attendee"
}

func (h *UserHandler) GetAllUsers(c *fiber.Ctx) error {
	users, err := h.userService.ListUsers(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(Response{Success: true, Data: users})
}

func (h *UserHandler) Login(c *fiber.Ctx) error {
	var request LoginRequest

	if err := c.BodyParser(&request); err != nil {
		return fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if err := h.validate.Struct(&request); err != nil {
		return fail(c, fiber.StatusBadRequest, "Email and password are required")
	}

	if _, err := h.userService.Login(c.UserContext(), request.Email, request.Password); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(Response{Success: true, Message: "Login successful"})
}
