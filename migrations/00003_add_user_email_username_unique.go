package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upAddUserEmailUsernameUnique, downAddUserEmailUsernameUnique)
}

// The constraint is the only duplicate check: repository inserts rely on it
// failing with 23505.
func upAddUserEmailUsernameUnique(tx *sql.Tx) error {
	_, err := tx.Exec(`
		ALTER TABLE "user" ADD CONSTRAINT user_email_username_key UNIQUE (email, username);
		CREATE INDEX IF NOT EXISTS user_email_password_idx ON "user" (email, password);
	`)
	return err
}

func downAddUserEmailUsernameUnique(tx *sql.Tx) error {
	_, err := tx.Exec(`
		DROP INDEX IF EXISTS user_email_password_idx;
		ALTER TABLE "user" DROP CONSTRAINT IF EXISTS user_email_username_key;
	`)
	return err
}
