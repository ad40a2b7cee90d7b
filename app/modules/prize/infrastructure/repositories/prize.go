package prizedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

// PrizeDBImpl is a repository for prize requests and complaints.
type PrizeDBImpl struct {
	DB *bun.DB
}

// CreatePrizeRequest inserts a claim. The (contest, model) unique constraint
// rejects duplicates.
func (db *PrizeDBImpl) CreatePrizeRequest(ctx context.Context, request *PrizeRequest) error {
	_, err := db.DB.NewInsert().Model(request).Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateRequest
		}
		return fmt.Errorf("failed to create prize request: %w", err)
	}
	return nil
}

// GetPrizeRequestByID retrieves one claim.
func (db *PrizeDBImpl) GetPrizeRequestByID(ctx context.Context, id int64) (*PrizeRequest, error) {
	request := &PrizeRequest{}
	err := db.DB.NewSelect().Model(request).Where("pr.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return request, nil
}

// ListPrizeRequests returns claims, optionally filtered by status, oldest
// first so the admin queue is FIFO.
func (db *PrizeDBImpl) ListPrizeRequests(ctx context.Context, status RequestStatus) ([]PrizeRequest, error) {
	var requests []PrizeRequest
	q := db.DB.NewSelect().Model(&requests).OrderExpr("created_at ASC, id ASC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list prize requests: %w", err)
	}
	return requests, nil
}

// UpdatePrizeRequestStatus moves a claim through the admin workflow.
func (db *PrizeDBImpl) UpdatePrizeRequestStatus(ctx context.Context, id int64, status RequestStatus, adminNotes *string) (*PrizeRequest, error) {
	request := &PrizeRequest{}
	q := db.DB.NewUpdate().
		Model(request).
		Set("status = ?", status).
		Set("updated_at = now()").
		Where("id = ?", id).
		Returning("*")
	if adminNotes != nil {
		q = q.Set("admin_notes = ?", *adminNotes)
	}
	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update prize request: %w", err)
	}
	return request, nil
}

// CreateComplaint inserts a report.
func (db *PrizeDBImpl) CreateComplaint(ctx context.Context, complaint *Complaint) error {
	_, err := db.DB.NewInsert().Model(complaint).Returning("*").Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create complaint: %w", err)
	}
	return nil
}

// ListComplaints returns reports, high priority first within a status.
func (db *PrizeDBImpl) ListComplaints(ctx context.Context, status ComplaintStatus) ([]Complaint, error) {
	var complaints []Complaint
	q := db.DB.NewSelect().
		Model(&complaints).
		OrderExpr("CASE priority WHEN 'high' THEN 0 WHEN 'normal' THEN 1 ELSE 2 END, created_at ASC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list complaints: %w", err)
	}
	return complaints, nil
}

// UpdateComplaint moves a report through triage. Empty status or priority
// leaves that field unchanged.
func (db *PrizeDBImpl) UpdateComplaint(ctx context.Context, id int64, status ComplaintStatus, priority ComplaintPriority, adminNotes *string) (*Complaint, error) {
	complaint := &Complaint{}
	q := db.DB.NewUpdate().
		Model(complaint).
		Set("updated_at = now()").
		Where("id = ?", id).
		Returning("*")
	if status != "" {
		q = q.Set("status = ?", status)
	}
	if priority != "" {
		q = q.Set("priority = ?", priority)
	}
	if adminNotes != nil {
		q = q.Set("admin_notes = ?", *adminNotes)
	}
	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update complaint: %w", err)
	}
	return complaint, nil
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == "23505"
	}
	return strings.Contains(err.Error(), "duplicate key value")
}
