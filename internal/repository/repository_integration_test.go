package repository

import (
	"context"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"organizer-service/internal/apperr"
	"organizer-service/internal/model"
	_ "organizer-service/migrations"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type RepositoryIntegrationTestSuite struct {
	suite.Suite
	db     *sqlx.DB
	users  UserRepository
	events EventRepository
	pgc    *postgres.PostgresContainer
	ctx    context.Context
}

func (s *RepositoryIntegrationTestSuite) SetupSuite() {
	s.ctx = context.Background()

	pgc, err := postgres.Run(s.ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("test-db"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		log.Fatalf("could not start postgres container: %s", err)
	}
	s.pgc = pgc

	connStr, err := pgc.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sqlx.Connect("pgx", connStr)
	s.Require().NoError(err)
	s.db = db

	s.Require().NoError(goose.SetDialect("postgres"))
	s.Require().NoError(goose.Up(db.DB, "../../migrations"))

	s.users = NewPostgresUserRepository(s.db)
	s.events = NewPostgresEventRepository(s.db)
}

func (s *RepositoryIntegrationTestSuite) TearDownSuite() {
	s.db.Close()
	if err := s.pgc.Terminate(s.ctx); err != nil {
		log.Fatalf("failed to terminate pg container: %s", err)
	}
}

func (s *RepositoryIntegrationTestSuite) SetupTest() {
	_, err := s.db.ExecContext(s.ctx, `TRUNCATE "user", events`)
	s.Require().NoError(err)
}

func (s *RepositoryIntegrationTestSuite) TestListUsers_EmptyStoreIsNotFound() {
	users, err := s.users.List(s.ctx)

	assert.Nil(s.T(), users)
	assert.Equal(s.T(), apperr.KindNotFound, apperr.KindOf(err))
}

func (s *RepositoryIntegrationTestSuite) TestCreateUserAndLogin() {
	created, err := s.users.Create(s.ctx, &model.User{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "secret",
		Phone:     "08123",
		Role:      model.RoleOrganizer,
		CreatedBy: model.SystemActor,
	})
	s.Require().NoError(err)
	assert.NotEqual(s.T(), uuid.Nil, created.ID)
	assert.Equal(s.T(), "system", created.CreatedBy)

	found, err := s.users.FindByCredentials(s.ctx, "alice@example.com", "secret")
	s.Require().NoError(err)
	assert.Equal(s.T(), created.ID, found.ID)

	_, err = s.users.FindByCredentials(s.ctx, "alice@example.com", "wrong")
	wrongPassword := apperr.KindOf(err)
	_, err = s.users.FindByCredentials(s.ctx, "nobody@example.com", "secret")
	unknownEmail := apperr.KindOf(err)

	assert.Equal(s.T(), apperr.KindInvalidCredentials, wrongPassword)
	assert.Equal(s.T(), wrongPassword, unknownEmail)

	users, err := s.users.List(s.ctx)
	s.Require().NoError(err)
	assert.Len(s.T(), users, 1)
}

func (s *RepositoryIntegrationTestSuite) TestCreateUser_ConcurrentDuplicatesYieldOneRow() {
	const attempts = 8

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.users.Create(s.ctx, &model.User{
				Username:  "dup",
				Email:     "dup@example.com",
				Password:  "pw",
				Phone:     "1",
				Role:      model.RoleAttendee,
				CreatedBy: model.SystemActor,
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.Equal(s.T(), apperr.KindDuplicateUser, apperr.KindOf(err))
	}
	assert.Equal(s.T(), 1, succeeded)
}

func (s *RepositoryIntegrationTestSuite) TestCreateEvent_RoundTrip() {
	date := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	created, err := s.events.Create(s.ctx, &model.Event{
		Title:        "Go Meetup",
		Description:  "Monthly meetup",
		Date:         date,
		StartTime:    "09:00",
		EndTime:      "10:30",
		Location:     "Hall A",
		Organization: "Gophers",
		CreatedBy:    model.SystemActor,
		UpdatedBy:    model.SystemActor,
	})
	s.Require().NoError(err)

	var stored model.Event
	err = s.db.GetContext(s.ctx, &stored, `SELECT id, title, description, image, date, start_time, end_time, location, organization, created_at FROM events WHERE id = $1`, created.ID)
	s.Require().NoError(err)

	assert.Equal(s.T(), "2025-03-01", stored.Date.Format(time.DateOnly))
	assert.Equal(s.T(), "09:00", stored.StartTime)
	assert.Equal(s.T(), "10:30", stored.EndTime)
	assert.Nil(s.T(), stored.Image)
}

func TestRepositoryIntegration(t *testing.T) {
	if os.Getenv("DOCKER_HOST") == "" {
		t.Skip("Docker is not available, skipping integration test.")
	}
	suite.Run(t, new(RepositoryIntegrationTestSuite))
}
