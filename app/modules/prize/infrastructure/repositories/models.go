package prizedb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RequestStatus tracks prize-claim handling.
type RequestStatus string

const (
	RequestPending    RequestStatus = "pending"
	RequestProcessing RequestStatus = "processing"
	RequestCompleted  RequestStatus = "completed"
	RequestRejected   RequestStatus = "rejected"
)

func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestPending, RequestProcessing, RequestCompleted, RequestRejected:
		return true
	}
	return false
}

// ComplaintStatus tracks complaint triage.
type ComplaintStatus string

const (
	ComplaintOpen      ComplaintStatus = "open"
	ComplaintInReview  ComplaintStatus = "in_review"
	ComplaintResolved  ComplaintStatus = "resolved"
	ComplaintDismissed ComplaintStatus = "dismissed"
)

func (s ComplaintStatus) IsValid() bool {
	switch s {
	case ComplaintOpen, ComplaintInReview, ComplaintResolved, ComplaintDismissed:
		return true
	}
	return false
}

// ComplaintPriority orders the admin queue.
type ComplaintPriority string

const (
	PriorityLow    ComplaintPriority = "low"
	PriorityNormal ComplaintPriority = "normal"
	PriorityHigh   ComplaintPriority = "high"
)

func (p ComplaintPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return true
	}
	return false
}

// PrizeRequest is a winner's claim for a completed contest's prize. One per
// contest and model.
type PrizeRequest struct {
	bun.BaseModel `bun:"table:prize_requests,alias:pr"`

	ID          int64         `bun:"id,pk,autoincrement" json:"id"`
	ContestID   int64         `bun:"contest_id,notnull" json:"contest_id"`
	ModelID     int64         `bun:"model_id,notnull" json:"model_id"`
	UserUUID    uuid.UUID     `bun:"user_uuid,notnull,type:uuid" json:"user_uuid"`
	Message     string        `bun:"message,notnull" json:"message"`
	ContactInfo string        `bun:"contact_info,notnull" json:"contact_info"`
	Status      RequestStatus `bun:"status,notnull,default:'pending'" json:"status"`
	AdminNotes  *string       `bun:"admin_notes,nullzero" json:"admin_notes,omitempty"`
	CreatedAt   time.Time     `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time     `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// Complaint is a visitor or user report. ReporterUUID is nil for anonymous
// submissions.
type Complaint struct {
	bun.BaseModel `bun:"table:complaints,alias:cp"`

	ID           int64             `bun:"id,pk,autoincrement" json:"id"`
	ReporterUUID *uuid.UUID        `bun:"reporter_uuid,nullzero,type:uuid" json:"reporter_uuid,omitempty"`
	Subject      string            `bun:"subject,notnull" json:"subject"`
	Message      string            `bun:"message,notnull" json:"message"`
	Status       ComplaintStatus   `bun:"status,notnull,default:'open'" json:"status"`
	Priority     ComplaintPriority `bun:"priority,notnull,default:'normal'" json:"priority"`
	AdminNotes   *string           `bun:"admin_notes,nullzero" json:"admin_notes,omitempty"`
	CreatedAt    time.Time         `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time         `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}
