package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/campusprint/printqueue/internal/models"
)

// MemoryStorage is the in-process fallback store used when Postgres is
// unreachable at startup. It implements the same read/write contracts as
// the SQL repositories; data does not survive a restart. A single mutex
// serializes all access, which in particular makes queue number
// assignment (count+1) race free.
type MemoryStorage struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.UserDB
	jobs  []*models.PrintJobDB
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{users: make(map[uuid.UUID]*models.UserDB)}
}

// MemoryUserRepository adapts a MemoryStorage to the user repository
// contracts used by the services.
type MemoryUserRepository struct {
	s *MemoryStorage
}

// Users returns the user-facing facet of the store.
func (s *MemoryStorage) Users() *MemoryUserRepository {
	return &MemoryUserRepository{s: s}
}

func (r *MemoryUserRepository) GetByUsername(ctx context.Context, username string) (*models.UserDB, error) {
	return r.s.GetByUsername(ctx, username)
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.UserDB, error) {
	return r.s.GetByID(ctx, id)
}

func (r *MemoryUserRepository) Create(ctx context.Context, username, passwordHash, name string, phone *string, role string) (*models.UserDB, error) {
	return r.s.CreateUser(ctx, username, passwordHash, name, phone, role)
}

func (r *MemoryUserRepository) Update(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (*models.UserDB, error) {
	return r.s.UpdateUser(ctx, id, upd)
}

// MemoryPrintJobRepository adapts a MemoryStorage to the print job
// repository contracts used by the services.
type MemoryPrintJobRepository struct {
	s *MemoryStorage
}

// PrintJobs returns the job-facing facet of the store.
func (s *MemoryStorage) PrintJobs() *MemoryPrintJobRepository {
	return &MemoryPrintJobRepository{s: s}
}

func (r *MemoryPrintJobRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.PrintJobDB, error) {
	return r.s.GetJobByID(ctx, id)
}

func (r *MemoryPrintJobRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.PrintJobView, error) {
	return r.s.ListJobsByOwner(ctx, ownerID)
}

func (r *MemoryPrintJobRepository) ListAll(ctx context.Context) ([]models.PrintJobView, error) {
	return r.s.ListAllJobs(ctx)
}

func (r *MemoryPrintJobRepository) Create(ctx context.Context, ownerID uuid.UUID, fileName, fileHandle string, copies int, printType string) (*models.PrintJobDB, error) {
	return r.s.CreateJob(ctx, ownerID, fileName, fileHandle, copies, printType)
}

func (r *MemoryPrintJobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.PrintJobDB, error) {
	return r.s.UpdateJobStatus(ctx, id, status)
}

// GetByUsername returns the user with the given username, or nil when absent.
func (s *MemoryStorage) GetByUsername(ctx context.Context, username string) (*models.UserDB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			user := *u
			return &user, nil
		}
	}
	return nil, nil
}

// GetByID returns the user with the given id, or nil when absent.
func (s *MemoryStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.UserDB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	user := *u
	return &user, nil
}

// CreateUser inserts a new user.
func (s *MemoryStorage) CreateUser(ctx context.Context, username, passwordHash, name string, phone *string, role string) (*models.UserDB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	user := &models.UserDB{
		UserID:       uuid.New(),
		Username:     username,
		PasswordHash: passwordHash,
		Name:         name,
		Phone:        phone,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.users[user.UserID] = user
	out := *user
	return &out, nil
}

// UpdateUser applies the non-nil fields of upd to the user, or returns
// nil when the id is absent.
func (s *MemoryStorage) UpdateUser(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (*models.UserDB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Phone != nil {
		u.Phone = upd.Phone
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	u.UpdatedAt = time.Now()
	out := *u
	return &out, nil
}

// CreateJob inserts a new pending print job. The queue number is the count
// of jobs ever created plus one, assigned under the store mutex.
func (s *MemoryStorage) CreateJob(ctx context.Context, ownerID uuid.UUID, fileName, fileHandle string, copies int, printType string) (*models.PrintJobDB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job := &models.PrintJobDB{
		JobID:            uuid.New(),
		OwnerID:          ownerID,
		FileName:         fileName,
		FileHandle:       fileHandle,
		Copies:           copies,
		PrintType:        printType,
		Status:           models.StatusPending,
		QueueNumber:      len(s.jobs) + 1,
		EstimatedMinutes: models.EstimateMinutes(copies),
		CreatedAt:        time.Now(),
	}
	s.jobs = append(s.jobs, job)
	out := *job
	return &out, nil
}

// GetJobByID returns the print job with the given id, or nil when absent.
func (s *MemoryStorage) GetJobByID(ctx context.Context, id uuid.UUID) (*models.PrintJobDB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, j := range s.jobs {
		if j.JobID == id {
			job := *j
			return &job, nil
		}
	}
	return nil, nil
}

// ListJobsByOwner returns ownerID's jobs, newest first, annotated with the
// owner's display info.
func (s *MemoryStorage) ListJobsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.PrintJobView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	views := make([]models.PrintJobView, 0)
	for _, j := range s.jobs {
		if j.OwnerID == ownerID {
			views = append(views, s.annotate(j))
		}
	}
	sortNewestFirst(views)
	return views, nil
}

// ListAllJobs returns every job, newest first, annotated with owner
// display info.
func (s *MemoryStorage) ListAllJobs(ctx context.Context) ([]models.PrintJobView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	views := make([]models.PrintJobView, 0, len(s.jobs))
	for _, j := range s.jobs {
		views = append(views, s.annotate(j))
	}
	sortNewestFirst(views)
	return views, nil
}

// UpdateJobStatus overwrites the job's status, or returns nil when the id
// is absent.
func (s *MemoryStorage) UpdateJobStatus(ctx context.Context, id uuid.UUID, status string) (*models.PrintJobDB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, j := range s.jobs {
		if j.JobID == id {
			j.Status = status
			job := *j
			return &job, nil
		}
	}
	return nil, nil
}

func (s *MemoryStorage) annotate(j *models.PrintJobDB) models.PrintJobView {
	v := models.PrintJobView{PrintJobDB: *j, Owner: models.UnknownOwner}
	if u, ok := s.users[j.OwnerID]; ok {
		v.Owner = models.JobOwner{Username: u.Username, Name: u.Name, Role: u.Role}
	}
	return v
}

func sortNewestFirst(views []models.PrintJobView) {
	sort.SliceStable(views, func(a, b int) bool {
		if !views[a].CreatedAt.Equal(views[b].CreatedAt) {
			return views[a].CreatedAt.After(views[b].CreatedAt)
		}
		return views[a].QueueNumber > views[b].QueueNumber
	})
}
