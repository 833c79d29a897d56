package models

import (
	"time"

	"github.com/google/uuid"
)

// Print job statuses, in processing order.
const (
	StatusPending   = "pending"
	StatusPrinting  = "printing"
	StatusReady     = "ready"
	StatusCompleted = "completed"
)

// Print types.
const (
	PrintTypeBW    = "bw"
	PrintTypeColor = "color"
)

// copiesPerMinute is the fixed printer throughput used for time estimates.
const copiesPerMinute = 5

// ValidStatus reports whether s is one of the four recognized job statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusPrinting, StatusReady, StatusCompleted:
		return true
	}
	return false
}

// ValidPrintType reports whether t is a recognized print type.
func ValidPrintType(t string) bool {
	return t == PrintTypeBW || t == PrintTypeColor
}

// EstimateMinutes returns the estimated print time for a copy count:
// one minute of base overhead plus one minute per five copies, rounded up.
func EstimateMinutes(copies int) int {
	return (copies+copiesPerMinute-1)/copiesPerMinute + 1
}

// PrintJobDB represents a print job record in the database
type PrintJobDB struct {
	JobID            uuid.UUID `json:"id" db:"job_id"`                        // Primary key
	OwnerID          uuid.UUID `json:"userId" db:"user_id"`                   // Owning user, immutable
	FileName         string    `json:"fileName" db:"file_name"`               // Original upload name
	FileHandle       string    `json:"filePath" db:"file_path"`               // Opaque handle into the blob store, immutable
	Copies           int       `json:"copies" db:"copies"`                    // Requested copies, >= 1
	PrintType        string    `json:"printType" db:"print_type"`             // bw or color
	Status           string    `json:"status" db:"status"`                    // Current lifecycle status
	QueueNumber      int       `json:"queueNumber" db:"queue_number"`         // Global submission position, assigned once
	EstimatedMinutes int       `json:"estimatedTime" db:"estimated_minutes"`  // Computed at creation, immutable
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`             // Creation timestamp
}

// JobOwner is the owner display info attached to jobs in listings.
type JobOwner struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// UnknownOwner is substituted when a job's owner record cannot be resolved.
var UnknownOwner = JobOwner{Username: "unknown", Name: "Unknown", Role: RoleStudent}

// PrintJobView is a print job annotated with its owner's display info,
// as returned by listings.
type PrintJobView struct {
	PrintJobDB
	Owner JobOwner `json:"user"`
}
