package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/campusprint/printqueue/internal/logger"
	"github.com/campusprint/printqueue/internal/models"
)

// pgUniqueViolation is the Postgres error code for a unique constraint violation.
const pgUniqueViolation = "23505"

// maxQueueRetries bounds the retry loop for queue number assignment.
const maxQueueRetries = 16

const jobColumns = `job_id, user_id, file_name, file_path, copies, print_type, status, queue_number, estimated_minutes, created_at`

// printJobRow is a print job joined with its owner's display columns.
type printJobRow struct {
	models.PrintJobDB
	OwnerUsername *string `db:"owner_username"`
	OwnerName     *string `db:"owner_name"`
	OwnerRole     *string `db:"owner_role"`
}

func (row printJobRow) view() models.PrintJobView {
	v := models.PrintJobView{PrintJobDB: row.PrintJobDB, Owner: models.UnknownOwner}
	if row.OwnerUsername != nil && row.OwnerName != nil && row.OwnerRole != nil {
		v.Owner = models.JobOwner{Username: *row.OwnerUsername, Name: *row.OwnerName, Role: *row.OwnerRole}
	}
	return v
}

type PrintJobReadRepository struct {
	db *sqlx.DB
}

func NewPrintJobReadRepository(db *sqlx.DB) *PrintJobReadRepository {
	return &PrintJobReadRepository{db: db}
}

// GetByID returns the print job with the given id, or nil when absent.
func (r *PrintJobReadRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.PrintJobDB, error) {
	const query = `
		SELECT ` + jobColumns + `
		FROM print_jobs
		WHERE job_id = $1
	`

	var job models.PrintJobDB
	err := r.db.GetContext(ctx, &job, query, id)

	logger.Log.Infow("print job query",
		"query", strings.Join(strings.Fields(query), " "),
		"job_id", id,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

const listQuery = `
	SELECT j.job_id, j.user_id, j.file_name, j.file_path, j.copies, j.print_type,
	       j.status, j.queue_number, j.estimated_minutes, j.created_at,
	       u.username AS owner_username, u.name AS owner_name, u.role AS owner_role
	FROM print_jobs j
	LEFT JOIN users u ON u.user_id = j.user_id
`

// ListByOwner returns the jobs owned by ownerID, newest first, each
// annotated with the owner's display info.
func (r *PrintJobReadRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.PrintJobView, error) {
	const query = listQuery + `
	WHERE j.user_id = $1
	ORDER BY j.created_at DESC, j.queue_number DESC
	`

	var rows []printJobRow
	err := r.db.SelectContext(ctx, &rows, query, ownerID)

	logger.Log.Infow("print job list",
		"query", strings.Join(strings.Fields(query), " "),
		"owner_id", ownerID,
		"rows", len(rows),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return toViews(rows), nil
}

// ListAll returns every job across all owners, newest first, annotated
// with owner display info.
func (r *PrintJobReadRepository) ListAll(ctx context.Context) ([]models.PrintJobView, error) {
	const query = listQuery + `
	ORDER BY j.created_at DESC, j.queue_number DESC
	`

	var rows []printJobRow
	err := r.db.SelectContext(ctx, &rows, query)

	logger.Log.Infow("print job list",
		"query", strings.Join(strings.Fields(query), " "),
		"rows", len(rows),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return toViews(rows), nil
}

func toViews(rows []printJobRow) []models.PrintJobView {
	views := make([]models.PrintJobView, 0, len(rows))
	for _, row := range rows {
		views = append(views, row.view())
	}
	return views
}

type PrintJobWriteRepository struct {
	db *sqlx.DB
}

func NewPrintJobWriteRepository(db *sqlx.DB) *PrintJobWriteRepository {
	return &PrintJobWriteRepository{db: db}
}

// Create inserts a new pending print job. The queue number is MAX+1 over
// all jobs; the UNIQUE constraint on queue_number makes concurrent inserts
// collide, and the losing insert retries with a fresh number. Estimated
// minutes are computed once here and never change.
func (r *PrintJobWriteRepository) Create(ctx context.Context, ownerID uuid.UUID, fileName, fileHandle string, copies int, printType string) (*models.PrintJobDB, error) {
	const query = `
		INSERT INTO print_jobs (job_id, user_id, file_name, file_path, copies, print_type, status, queue_number, estimated_minutes, created_at)
		SELECT $1, $2, $3, $4, $5, $6, 'pending', COALESCE(MAX(queue_number), 0) + 1, $7, NOW()
		FROM print_jobs
		RETURNING ` + jobColumns

	estimated := models.EstimateMinutes(copies)

	var job models.PrintJobDB
	var err error
	for attempt := 0; attempt < maxQueueRetries; attempt++ {
		err = r.db.GetContext(ctx, &job, query, uuid.New(), ownerID, fileName, fileHandle, copies, printType, estimated)

		logger.Log.Infow("print job insert",
			"query", strings.Join(strings.Fields(query), " "),
			"owner_id", ownerID,
			"attempt", attempt,
			"error", err,
		)

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			continue
		}
		break
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// UpdateStatus overwrites the job's status and returns the updated record,
// or nil when the id is absent. Status values are validated by the caller.
func (r *PrintJobWriteRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.PrintJobDB, error) {
	const query = `
		UPDATE print_jobs
		SET status = $2
		WHERE job_id = $1
		RETURNING ` + jobColumns

	var job models.PrintJobDB
	err := r.db.GetContext(ctx, &job, query, id, status)

	logger.Log.Infow("print job status update",
		"query", strings.Join(strings.Fields(query), " "),
		"job_id", id,
		"status", status,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}
