package prizedb

import (
	"context"
	"errors"
)

var (
	ErrNotFound         = errors.New("prize request not found")
	ErrDuplicateRequest = errors.New("prize already claimed for this contest")
)

// Repository defines prize-request and complaint data operations.
type Repository interface {
	CreatePrizeRequest(ctx context.Context, request *PrizeRequest) error
	GetPrizeRequestByID(ctx context.Context, id int64) (*PrizeRequest, error)
	ListPrizeRequests(ctx context.Context, status RequestStatus) ([]PrizeRequest, error)
	UpdatePrizeRequestStatus(ctx context.Context, id int64, status RequestStatus, adminNotes *string) (*PrizeRequest, error)

	CreateComplaint(ctx context.Context, complaint *Complaint) error
	ListComplaints(ctx context.Context, status ComplaintStatus) ([]Complaint, error)
	UpdateComplaint(ctx context.Context, id int64, status ComplaintStatus, priority ComplaintPriority, adminNotes *string) (*Complaint, error)
}

var _ Repository = (*PrizeDBImpl)(nil)
