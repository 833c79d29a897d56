package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/campusprint/printqueue/internal/events"
	"github.com/campusprint/printqueue/internal/logger"
	"github.com/campusprint/printqueue/internal/models"
)

// Error variables
var (
	ErrJobNotFound      = errors.New("print job not found")
	ErrForbidden        = errors.New("operation not permitted for this user")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrInvalidCopies    = errors.New("copies must be at least 1")
	ErrInvalidPrintType = errors.New("invalid print type")
)

// statusPriority orders the staff queue view: jobs on the printer first,
// then waiting, then awaiting pickup, then done.
var statusPriority = map[string]int{
	models.StatusPrinting:  0,
	models.StatusPending:   1,
	models.StatusReady:     2,
	models.StatusCompleted: 3,
}

// JobReader defines read-only operations for print jobs.
type JobReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.PrintJobDB, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.PrintJobView, error)
	ListAll(ctx context.Context) ([]models.PrintJobView, error)
}

// JobWriter defines write operations for print jobs.
type JobWriter interface {
	Create(ctx context.Context, ownerID uuid.UUID, fileName, fileHandle string, copies int, printType string) (*models.PrintJobDB, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.PrintJobDB, error)
}

// EventPublisher publishes job lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, ev events.Event) error
}

// JobService enforces who may do what to a print job and in which state,
// layered over the store.
type JobService struct {
	reader JobReader
	writer JobWriter
	events EventPublisher
}

// NewJobService creates a new JobService instance.
func NewJobService(reader JobReader, writer JobWriter, events EventPublisher) *JobService {
	return &JobService{
		reader: reader,
		writer: writer,
		events: events,
	}
}

// List returns the jobs visible to the requester. Students get their own
// jobs newest first; staff get every job, re-sorted so the jobs they act
// on next come first (printing, pending, ready, completed; ties broken by
// queue number).
func (svc *JobService) List(ctx context.Context, who models.Identity) ([]models.PrintJobView, error) {
	if !who.IsStaff() {
		return svc.reader.ListByOwner(ctx, who.UserID)
	}

	jobs, err := svc.reader.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(jobs, func(a, b int) bool {
		pa, pb := statusPriority[jobs[a].Status], statusPriority[jobs[b].Status]
		if pa != pb {
			return pa < pb
		}
		return jobs[a].QueueNumber < jobs[b].QueueNumber
	})
	return jobs, nil
}

// Submit creates a new pending job owned by the requester. Any
// authenticated identity may submit; role is not checked here.
func (svc *JobService) Submit(ctx context.Context, who models.Identity, fileName, fileHandle string, copies int, printType string) (*models.PrintJobDB, error) {
	if copies < 1 {
		return nil, ErrInvalidCopies
	}
	if !models.ValidPrintType(printType) {
		return nil, ErrInvalidPrintType
	}

	job, err := svc.writer.Create(ctx, who.UserID, fileName, fileHandle, copies, printType)
	if err != nil {
		logger.Log.Errorw("failed to create print job", "err", err)
		return nil, err
	}

	svc.publish(ctx, events.TypeJobCreated, job)
	return job, nil
}

// Get returns a single job. Only the owner or a staff member may read it.
func (svc *JobService) Get(ctx context.Context, who models.Identity, jobID uuid.UUID) (*models.PrintJobDB, error) {
	job, err := svc.reader.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrJobNotFound
	}
	if !who.IsStaff() && job.OwnerID != who.UserID {
		return nil, ErrForbidden
	}
	return job, nil
}

// UpdateStatus overwrites a job's status. Staff only; the value must be
// one of the recognized statuses, but the transition itself is not
// restricted: staff may move a job to any status at any time.
func (svc *JobService) UpdateStatus(ctx context.Context, who models.Identity, jobID uuid.UUID, status string) (*models.PrintJobDB, error) {
	if !who.IsStaff() {
		return nil, ErrForbidden
	}

	existing, err := svc.reader.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrJobNotFound
	}

	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	job, err := svc.writer.UpdateStatus(ctx, jobID, status)
	if err != nil {
		logger.Log.Errorw("failed to update job status", "err", err)
		return nil, err
	}
	if job == nil {
		return nil, ErrJobNotFound
	}

	svc.publish(ctx, events.TypeJobStatusChanged, job)
	return job, nil
}

// publish emits a lifecycle event. Failures are logged and swallowed: the
// event stream is advisory and must never fail the request.
func (svc *JobService) publish(ctx context.Context, eventType string, job *models.PrintJobDB) {
	ev := events.Event{
		Type:        eventType,
		JobID:       job.JobID,
		OwnerID:     job.OwnerID,
		QueueNumber: job.QueueNumber,
		Status:      job.Status,
		OccurredAt:  time.Now(),
	}
	if err := svc.events.Publish(ctx, ev); err != nil {
		logger.Log.Errorw("failed to publish job event", "type", eventType, "job_id", job.JobID, "err", err)
	}
}
