package service_test

import (
	"context"
	"testing"

	"organizer-service/internal/apperr"
	"organizer-service/internal/model"
	"organizer-service/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegistration() service.RegisterUserInput {
	return service.RegisterUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret",
		Phone:    "08123",
		Role:     model.RoleOrganizer,
	}
}

func TestRegister_EchoesFields(t *testing.T) {
	repo := &fakeUserRepo{}
	pub := &recordingPublisher{}
	svc := service.NewUserService(repo, pub)

	for _, role := range []model.Role{model.RoleAdmin, model.RoleOrganizer, model.RoleAttendee} {
		in := validRegistration()
		in.Username = "user-" + string(role)
		in.Role = role

		u, err := svc.Register(context.Background(), in)
		require.NoError(t, err)
		assert.NotEmpty(t, u.ID)
		assert.Equal(t, in.Username, u.Username)
		assert.Equal(t, in.Email, u.Email)
		assert.Equal(t, in.Phone, u.Phone)
		assert.Equal(t, role, u.Role)
		assert.Equal(t, model.SystemActor, u.CreatedBy)
	}
	assert.Len(t, pub.users, 3)
}

func TestRegister_RejectsUnknownRoleBeforeStore(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := service.NewUserService(repo, &recordingPublisher{})

	for _, role := range []model.Role{"superuser", "Admin", "coach"} {
		in := validRegistration()
		in.Role = role

		_, err := svc.Register(context.Background(), in)
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		assert.Equal(t, "Invalid role. Must be admin, organizer, or attendee", apperr.MessageOf(err, ""))
	}
	assert.Zero(t, repo.calls)
}

func TestRegister_RejectsMissingFields(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := service.NewUserService(repo, &recordingPublisher{})

	in := validRegistration()
	in.Phone = " "

	_, err := svc.Register(context.Background(), in)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, "All fields are required", apperr.MessageOf(err, ""))
	assert.Zero(t, repo.calls)
}

func TestRegister_Duplicate(t *testing.T) {
	svc := service.NewUserService(&fakeUserRepo{}, &recordingPublisher{})

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), validRegistration())
	assert.Equal(t, apperr.KindDuplicateUser, apperr.KindOf(err))
}

func TestRegister_PublishFailureDoesNotFailRequest(t *testing.T) {
	svc := service.NewUserService(&fakeUserRepo{}, &recordingPublisher{err: errNatsDown})

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
}

func TestListUsers_EmptyIsNotFound(t *testing.T) {
	svc := service.NewUserService(&fakeUserRepo{}, &recordingPublisher{})

	users, err := svc.ListUsers(context.Background())
	assert.Nil(t, users)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestLogin_SameOutcomeForUnknownEmailAndWrongPassword(t *testing.T) {
	svc := service.NewUserService(&fakeUserRepo{}, &recordingPublisher{})
	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	u, err := svc.Login(context.Background(), "alice@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	_, wrongPassword := svc.Login(context.Background(), "alice@example.com", "nope")
	_, unknownEmail := svc.Login(context.Background(), "ghost@example.com", "secret")

	assert.Equal(t, apperr.KindInvalidCredentials, apperr.KindOf(wrongPassword))
	assert.Equal(t, apperr.KindOf(wrongPassword), apperr.KindOf(unknownEmail))
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}
