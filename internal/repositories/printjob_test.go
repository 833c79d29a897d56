package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/campusprint/printqueue/internal/models"
)

var printJobColumns = []string{
	"job_id", "user_id", "file_name", "file_path", "copies",
	"print_type", "status", "queue_number", "estimated_minutes", "created_at",
}

func jobRow(jobID, ownerID uuid.UUID, status string, queueNumber int) *sqlmock.Rows {
	return sqlmock.NewRows(printJobColumns).
		AddRow(jobID.String(), ownerID.String(), "doc.pdf", "h.pdf", 3, "bw", status, queueNumber, 2, time.Now())
}

func TestPrintJobReadRepository_GetByID(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewPrintJobReadRepository(sqlxDB)

	jobID := uuid.New()
	ownerID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("FROM print_jobs")).
		WithArgs(jobID).
		WillReturnRows(jobRow(jobID, ownerID, "pending", 4))

	job, err := repo.GetByID(context.Background(), jobID)
	assert.NoError(t, err)
	assert.NotNil(t, job)
	assert.Equal(t, jobID, job.JobID)
	assert.Equal(t, 4, job.QueueNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPrintJobReadRepository_GetByID_NotFound(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewPrintJobReadRepository(sqlxDB)

	mock.ExpectQuery(regexp.QuoteMeta("FROM print_jobs")).
		WillReturnRows(sqlmock.NewRows(printJobColumns))

	job, err := repo.GetByID(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, job)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPrintJobReadRepository_ListAll_OwnerFallback(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewPrintJobReadRepository(sqlxDB)

	cols := append(append([]string{}, printJobColumns...), "owner_username", "owner_name", "owner_role")
	rows := sqlmock.NewRows(cols).
		AddRow(uuid.New().String(), uuid.New().String(), "a.pdf", "h1.pdf", 1, "bw", "pending", 2, 2, time.Now(),
			"alice", "Alice", "student").
		AddRow(uuid.New().String(), uuid.New().String(), "b.pdf", "h2.pdf", 1, "bw", "pending", 1, 2, time.Now(),
			nil, nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN users")).WillReturnRows(rows)

	views, err := repo.ListAll(context.Background())
	assert.NoError(t, err)
	assert.Len(t, views, 2)
	assert.Equal(t, "alice", views[0].Owner.Username)
	// A dangling owner reference falls back to the placeholder identity.
	assert.Equal(t, models.UnknownOwner, views[1].Owner)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPrintJobReadRepository_ListByOwner(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewPrintJobReadRepository(sqlxDB)

	ownerID := uuid.New()
	cols := append(append([]string{}, printJobColumns...), "owner_username", "owner_name", "owner_role")
	rows := sqlmock.NewRows(cols).
		AddRow(uuid.New().String(), ownerID.String(), "a.pdf", "h1.pdf", 1, "bw", "ready", 9, 2, time.Now(),
			"bob", "Bob", "student")
	mock.ExpectQuery(regexp.QuoteMeta("WHERE j.user_id = $1")).
		WithArgs(ownerID).
		WillReturnRows(rows)

	views, err := repo.ListByOwner(context.Background(), ownerID)
	assert.NoError(t, err)
	assert.Len(t, views, 1)
	assert.Equal(t, ownerID, views[0].OwnerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPrintJobWriteRepository_Create(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewPrintJobWriteRepository(sqlxDB)

	ownerID := uuid.New()
	jobID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO print_jobs")).
		WithArgs(sqlmock.AnyArg(), ownerID, "doc.pdf", "h.pdf", 3, "bw", 2).
		WillReturnRows(jobRow(jobID, ownerID, "pending", 1))

	job, err := repo.Create(context.Background(), ownerID, "doc.pdf", "h.pdf", 3, "bw")
	assert.NoError(t, err)
	assert.NotNil(t, job)
	assert.Equal(t, "pending", job.Status)
	assert.Equal(t, 1, job.QueueNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPrintJobWriteRepository_Create_RetriesOnQueueCollision(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewPrintJobWriteRepository(sqlxDB)

	ownerID := uuid.New()
	jobID := uuid.New()

	// Two writers picked the same MAX+1; the loser retries with a fresh number.
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO print_jobs")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "print_jobs_queue_number_key"})
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO print_jobs")).
		WillReturnRows(jobRow(jobID, ownerID, "pending", 6))

	job, err := repo.Create(context.Background(), ownerID, "doc.pdf", "h.pdf", 3, "bw")
	assert.NoError(t, err)
	assert.NotNil(t, job)
	assert.Equal(t, 6, job.QueueNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPrintJobWriteRepository_Create_NonCollisionErrorFailsFast(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewPrintJobWriteRepository(sqlxDB)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO print_jobs")).
		WillReturnError(errors.New("connection reset"))

	job, err := repo.Create(context.Background(), uuid.New(), "doc.pdf", "h.pdf", 1, "bw")
	assert.Error(t, err)
	assert.Nil(t, job)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPrintJobWriteRepository_UpdateStatus(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewPrintJobWriteRepository(sqlxDB)

	jobID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE print_jobs")).
		WithArgs(jobID, "printing").
		WillReturnRows(jobRow(jobID, uuid.New(), "printing", 4))

	job, err := repo.UpdateStatus(context.Background(), jobID, "printing")
	assert.NoError(t, err)
	assert.NotNil(t, job)
	assert.Equal(t, "printing", job.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPrintJobWriteRepository_UpdateStatus_NotFound(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewPrintJobWriteRepository(sqlxDB)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE print_jobs")).
		WillReturnRows(sqlmock.NewRows(printJobColumns))

	job, err := repo.UpdateStatus(context.Background(), uuid.New(), "ready")
	assert.NoError(t, err)
	assert.Nil(t, job)
	assert.NoError(t, mock.ExpectationsWereMet())
}
