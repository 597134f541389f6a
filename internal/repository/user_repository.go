package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"organizer-service/internal/apperr"
	"organizer-service/internal/model"
)

const uniqueViolation = "23505"

type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	FindByCredentials(ctx context.Context, email, password string) (*model.User, error)
}

type postgresUserRepository struct {
	db *sqlx.DB
}

func NewPostgresUserRepository(db *sqlx.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

// Create inserts user and returns the stored row. The (email, username)
// unique constraint is the duplicate check.
func (r *postgresUserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
		INSERT INTO "user" (username, email, password, phone, role, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, username, email, phone, role, created_at, updated_at, created_by
	`
	var created model.User
	err := r.db.QueryRowxContext(ctx, query,
		user.Username, user.Email, user.Password, user.Phone, string(user.Role), user.CreatedBy,
	).StructScan(&created)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, &apperr.Error{Kind: apperr.KindDuplicateUser, Message: "User already exists", Err: err}
		}
		return nil, apperr.Internal("insert user", err)
	}

	created.Password = user.Password

	return &created, nil
}

// List returns every user. An empty table is reported as not found.
func (r *postgresUserRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	query := `SELECT id, username, email, password, phone, role, created_at, updated_at, created_by FROM "user" ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, apperr.Internal("select users", err)
	}

	if len(users) == 0 {
		return nil, apperr.NotFound("No users found")
	}

	return users, nil
}

// FindByCredentials matches email and password exactly. Unknown email and
// wrong password are indistinguishable to the caller.
func (r *postgresUserRepository) FindByCredentials(ctx context.Context, email, password string) (*model.User, error) {
	var user model.User
	query := `SELECT id, username, email, password, phone, role, created_at, updated_at, created_by FROM "user" WHERE email = $1 AND password = $2 LIMIT 1`
	err := r.db.GetContext(ctx, &user, query, email, password)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.KindInvalidCredentials, "Invalid email or password")
		}
		return nil, apperr.Internal("find user by credentials", err)
	}

	return &user, nil
}
