package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"organizer-service/internal/apperr"
)

const msgInternalServerError = "Internal server error"

// Response is the envelope every organizer endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return fiber.StatusBadRequest
	case apperr.KindDuplicateUser:
		return fiber.StatusConflict
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindInvalidCredentials:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Response{Success: false, Message: message})
}

func respondError(c *fiber.Ctx, err error) error {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		slog.ErrorContext(c.UserContext(), "Request failed", slog.String("path", c.Path()), slog.String("error", err.Error()))
	}

	return fail(c, statusFor(kind), apperr.MessageOf(err, msgInternalServerError))
}
