package api

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"organizer-service/internal/model"
	"organizer-service/internal/service"
	"organizer-service/internal/upload"
	"organizer-service/internal/validation"
)

type EventHandler struct {
	eventService service.EventService
	validate     *validator.Validate
}

func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		validate:     validation.New(),
	}
}

// CreateEventRequest is decoded from multipart, urlencoded or JSON bodies.
type CreateEventRequest struct {
	Title        string `json:"title" form:"title" validate:"required"`
	Description  string `json:"description" form:"description" validate:"required"`
	Date         string `json:"date" form:"date" validate:"required,calendardate"`
	StartTime    string `json:"start_time" form:"start_time" validate:"required,timeofday"`
	EndTime      string `json:"end_time" form:"end_time" validate:"required,timeofday"`
	Location     string `json:"location" form:"location" validate:"required"`
	Organization string `json:"organization" form:"organization" validate:"required"`
}

type EventResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Image        *string   `json:"image"`
	Date         string    `json:"date"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	Location     string    `json:"location"`
	Organization string    `json:"organization"`
	CreatedAt    time.Time `json:"created_at"`
}

func toEventResponse(e *model.Event) EventResponse {
	return EventResponse{
		ID:           e.ID,
		Title:        e.Title,
		Description:  e.Description,
		Image:        e.Image,
		Date:         e.Date.Format(time.DateOnly),
		StartTime:    e.StartTime,
		EndTime:      e.EndTime,
		Location:     e.Location,
		Organization: e.Organization,
		CreatedAt:    e.CreatedAt,
	}
}

// createEventValidationMessage reports, in order of precedence, missing
// fields, then a bad date, then a bad time.
func createEventValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid input"
	}

	var missing []string
	badDate, badTime := false, false
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			missing = append(missing, fe.Field())
		case "calendardate":
			badDate = true
		case "timeofday":
			badTime = true
		}
	}

	switch {
	case len(missing) > 0:
		return "Missing required fields: " + strings.Join(missing, ", ")
	case badDate:
		return "Invalid date format. Use YYYY-MM-DD format"
	case badTime:
		return service.MsgInvalidTimeFormat
	default:
		return "Invalid input"
	}
}

func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var request CreateEventRequest

	if err := c.BodyParser(&request); err != nil {
		return fail(c, fiber.StatusBadRequest, "Cannot parse request body")
	}

	if err := h.validate.Struct(&request); err != nil {
		return fail(c, fiber.StatusBadRequest, createEventValidationMessage(err))
	}

	input := service.CreateEventInput{
		Title:        request.Title,
		Description:  request.Description,
		Date:         request.Date,
		StartTime:    request.StartTime,
		EndTime:      request.EndTime,
		Location:     request.Location,
		Organization: request.Organization,
	}

	event, err := h.eventService.CreateEvent(c.UserContext(), input, upload.FromContext(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Message: "Event created successfully",
		Data:    toEventResponse(event),
	})
}
