package model

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	Description  string    `db:"description" json:"description"`
	Image        *string   `db:"image" json:"image"`
	Date         time.Time `db:"date" json:"date"`
	StartTime    string    `db:"start_time" json:"start_time"`
	EndTime      string    `db:"end_time" json:"end_time"`
	Location     string    `db:"location" json:"location"`
	Organization string    `db:"organization" json:"organization"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at,omitempty"`
	CreatedBy    string    `db:"created_by" json:"created_by,omitempty"`
	UpdatedBy    string    `db:"updated_by" json:"updated_by,omitempty"`
}
