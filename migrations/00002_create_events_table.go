package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateEventsTable, downCreateEventsTable)
}

func upCreateEventsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE IF NOT EXISTS events (
	  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	  title TEXT NOT NULL,
	  description TEXT NOT NULL,
	  image TEXT,
	  date DATE NOT NULL,
	  start_time VARCHAR(5) NOT NULL,
	  end_time VARCHAR(5) NOT NULL,
	  location TEXT NOT NULL,
	  organization TEXT NOT NULL,
	  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
	  created_by TEXT NOT NULL DEFAULT 'system',
	  updated_by TEXT NOT NULL DEFAULT 'system'
	);
	`

	_, err := tx.ExecContext(ctx, query)

	return err
}

func downCreateEventsTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS events;`)
	return err
}
