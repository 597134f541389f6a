package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"organizer-service/internal/apperr"
	"organizer-service/internal/model"
)

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
}

type postgresEventRepository struct {
	db *sqlx.DB
}

func NewPostgresEventRepository(db *sqlx.DB) EventRepository {
	return &postgresEventRepository{db: db}
}

func (r *postgresEventRepository) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	query := `
		INSERT INTO events (title, description, image, date, start_time, end_time, location, organization, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, title, description, image, date, start_time, end_time, location, organization, created_at
	`
	var created model.Event
	err := r.db.QueryRowxContext(ctx, query,
		event.Title,
		event.Description,
		event.Image,
		event.Date,
		event.StartTime,
		event.EndTime,
		event.Location,
		event.Organization,
		event.CreatedBy,
		event.UpdatedBy,
	).StructScan(&created)

	if err != nil {
		return nil, apperr.Internal("insert event", err)
	}

	return &created, nil
}
