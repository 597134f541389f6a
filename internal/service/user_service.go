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
	"organizer-service/internal/tracing"
	"organizer-service/internal/validation"
)

var tracer = tracing.Tracer("organizer-service/service")

const (
	msgAllFieldsRequired = "All fields are required"
	msgInvalidRole       = "Invalid role. Must be admin, organizer, or attendee"
)

type RegisterUserInput struct {
	Username string
	Email    string
	Password string
	Phone    string
	Role     model.Role
}

type UserService interface {
	Register(ctx context.Context, in RegisterUserInput) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
}

type userService struct {
	userRepo  repository.UserRepository
	publisher events.EventPublisher
}

func NewUserService(userRepo repository.UserRepository, pub events.EventPublisher) UserService {
	return &userService{userRepo: userRepo, publisher: pub}
}

// Register stores the password exactly as submitted; login compares it the
// same way.
func (s *userService) Register(ctx context.Context, in RegisterUserInput) (*model.User, error) {
	ctx, span := tracer.Start(ctx, "UserService.Register")
	defer span.End()

	missing := validation.RequiredFields(map[string]string{
		"username": in.Username,
		"email":    in.Email,
		"password": in.Password,
		"phone":    in.Phone,
		"role":     string(in.Role),
	}, []string{"username", "email", "password", "phone", "role"})
	if len(missing) > 0 {
		return nil, apperr.Validation(msgAllFieldsRequired)
	}

	if !in.Role.Valid() {
		return nil, apperr.Validation(msgInvalidRole)
	}

	user, err := s.userRepo.Create(ctx, &model.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  in.Password,
		Phone:     in.Phone,
		Role:      in.Role,
		CreatedBy: model.SystemActor,
	})
	if err != nil {
		span.SetStatus(codes.Error, apperr.KindOf(err).String())
		return nil, err
	}
	span.SetAttributes(attribute.String("user.id", user.ID.String()), attribute.String("user.role", string(user.Role)))

	if err := s.publisher.PublishUserRegistered(ctx, user); err != nil {
		slog.WarnContext(ctx, "user.registered notification dropped", slog.String("user_id", user.ID.String()), slog.String("error", err.Error()))
	}

	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

func (s *userService) Login(ctx context.Context, email, password string) (*model.User, error) {
	return s.userRepo.FindByCredentials(ctx, email, password)
}
