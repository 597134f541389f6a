package service_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"organizer-service/internal/apperr"
	"organizer-service/internal/model"

	"github.com/google/uuid"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users []model.User
	err   error
	calls int
}

func (r *fakeUserRepo) Create(_ context.Context, u *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	for _, existing := range r.users {
		if existing.Email == u.Email && existing.Username == u.Username {
			return nil, apperr.New(apperr.KindDuplicateUser, "User already exists")
		}
	}
	created := *u
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.users = append(r.users, created)
	return &created, nil
}

func (r *fakeUserRepo) List(context.Context) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if len(r.users) == 0 {
		return nil, apperr.NotFound("No users found")
	}
	return append([]model.User(nil), r.users...), nil
}

func (r *fakeUserRepo) FindByCredentials(_ context.Context, email, password string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email && u.Password == password {
			found := u
			return &found, nil
		}
	}
	return nil, apperr.New(apperr.KindInvalidCredentials, "Invalid email or password")
}

type fakeEventRepo struct {
	created []*model.Event
	err     error
}

func (r *fakeEventRepo) Create(_ context.Context, e *model.Event) (*model.Event, error) {
	if r.err != nil {
		return nil, r.err
	}
	stored := *e
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	r.created = append(r.created, &stored)
	return &stored, nil
}

type recordingPublisher struct {
	users  []*model.User
	events []*model.Event
	err    error
}

func (p *recordingPublisher) PublishUserRegistered(_ context.Context, u *model.User) error {
	p.users = append(p.users, u)
	return p.err
}

func (p *recordingPublisher) PublishEventCreated(_ context.Context, e *model.Event) error {
	p.events = append(p.events, e)
	return p.err
}

var errNatsDown = errors.New("nats: connection closed")
