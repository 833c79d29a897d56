package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// schema bootstraps the two tables the portal needs. queue_number carries a
// UNIQUE constraint: concurrent submissions race on MAX+1 and the loser
// retries, which keeps the sequence gapless.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	user_id UUID PRIMARY KEY,
	username VARCHAR(50) NOT NULL UNIQUE,
	password_hash VARCHAR(255) NOT NULL,
	name VARCHAR(100) NOT NULL,
	phone VARCHAR(30),
	role VARCHAR(10) NOT NULL CHECK (role IN ('student', 'staff')),
	created_at TIMESTAMP NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS print_jobs (
	job_id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users (user_id),
	file_name VARCHAR(255) NOT NULL,
	file_path VARCHAR(255) NOT NULL,
	copies INTEGER NOT NULL CHECK (copies >= 1),
	print_type VARCHAR(10) NOT NULL CHECK (print_type IN ('bw', 'color')),
	status VARCHAR(10) NOT NULL CHECK (status IN ('pending', 'printing', 'ready', 'completed')),
	queue_number INTEGER NOT NULL UNIQUE,
	estimated_minutes INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT NOW()
);
`

// EnsureSchema creates the users and print_jobs tables if they do not exist.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
