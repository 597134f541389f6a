package service

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"organizer-service/internal/apperr"
	"organizer-service/internal/events"
	"organizer-service/internal/model"
	"organizer-service/internal/repository"
	"organizer-service/internal/upload"
	"organizer-service/internal/validation"
)

const (
	MsgRequiredEventFields = "Required fields: title, description, date, start_time, end_time, location, organization"
	MsgInvalidDate         = "Invalid date format"
	MsgInvalidTimeFormat   = "Invalid time format. Use HH:mm format (e.g., 09:00)"
	MsgEndBeforeStart      = "End time must be after start time"
)

// EventFields lists the create-event inputs that must be non-blank.
var EventFields = []string{"title", "description", "date", "start_time", "end_time", "location", "organization"}

type CreateEventInput struct {
	Title        string
	Description  string
	Date         string
	StartTime    string
	EndTime      string
	Location     string
	Organization string
}

func (in CreateEventInput) Fields() map[string]string {
	return map[string]string{
		"title":        in.Title,
		"description":  in.Description,
		"date":         in.Date,
		"start_time":   in.StartTime,
		"end_time":     in.EndTime,
		"location":     in.Location,
		"organization": in.Organization,
	}
}

type EventService interface {
	CreateEvent(ctx context.Context, in CreateEventInput, image *upload.File) (*model.Event, error)
}

type eventService struct {
	eventRepo repository.EventRepository
	publisher events.EventPublisher
}

func NewEventService(repo repository.EventRepository, pub events.EventPublisher) EventService {
	return &eventService{eventRepo: repo, publisher: pub}
}

// CreateEvent validates in again regardless of what the caller checked, then
// inserts it. image is nil when no file was uploaded.
func (s *eventService) CreateEvent(ctx context.Context, in CreateEventInput, image *upload.File) (*model.Event, error) {
	ctx, span := tracer.Start(ctx, "EventService.CreateEvent")
	defer span.End()

	if missing := validation.RequiredFields(in.Fields(), EventFields); len(missing) > 0 {
		return nil, apperr.Validation(MsgRequiredEventFields)
	}

	date, err := validation.ParseDate(in.Date)
	if err != nil {
		return nil, apperr.Validation(MsgInvalidDate)
	}

	if !validation.IsTimeOfDay(in.StartTime) || !validation.IsTimeOfDay(in.EndTime) {
		return nil, apperr.Validation(MsgInvalidTimeFormat)
	}

	if !validation.IsTimeOrdered(in.StartTime, in.EndTime) {
		return nil, apperr.Validation(MsgEndBeforeStart)
	}

	var imagePath *string
	if image != nil {
		imagePath = &image.Filename
	}

	created, err := s.eventRepo.Create(ctx, &model.Event{
		Title:        in.Title,
		Description:  in.Description,
		Image:        imagePath,
		Date:         date,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		Location:     in.Location,
		Organization: in.Organization,
		CreatedBy:    model.SystemActor,
		UpdatedBy:    model.SystemActor,
	})
	if err != nil {
		span.SetStatus(codes.Error, apperr.KindOf(err).String())
		return nil, err
	}
	span.SetAttributes(attribute.String("event.id", created.ID.String()), attribute.Bool("event.has_image", imagePath != nil))

	if err := s.publisher.PublishEventCreated(ctx, created); err != nil {
		slog.WarnContext(ctx, "event.created notification dropped", slog.String("event_id", created.ID.String()), slog.String("error", err.Error()))
	}

	return created, nil
}
