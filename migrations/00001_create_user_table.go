package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateUserTable, downCreateUserTable)
}

func upCreateUserTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE IF NOT EXISTS "user" (
	  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	  username TEXT NOT NULL,
	  email TEXT NOT NULL,
	  password TEXT NOT NULL,
	  phone TEXT NOT NULL,
	  role TEXT NOT NULL CHECK (role IN ('admin', 'organizer', 'attendee')),
	  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
	  created_by TEXT NOT NULL DEFAULT 'system'
	);
	`

	_, err := tx.ExecContext(ctx, query)

	return err
}

func downCreateUserTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS "user";`)
	return err
}
