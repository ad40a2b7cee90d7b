package prizedb

import "context"

// FakeRepository is a fake implementation of Repository for testing.
type FakeRepository struct {
	CreatePrizeRequestFn       func(ctx context.Context, request *PrizeRequest) error
	GetPrizeRequestByIDFn      func(ctx context.Context, id int64) (*PrizeRequest, error)
	ListPrizeRequestsFn        func(ctx context.Context, status RequestStatus) ([]PrizeRequest, error)
	UpdatePrizeRequestStatusFn func(ctx context.Context, id int64, status RequestStatus, adminNotes *string) (*PrizeRequest, error)

	CreateComplaintFn func(ctx context.Context, complaint *Complaint) error
	ListComplaintsFn  func(ctx context.Context, status ComplaintStatus) ([]Complaint, error)
	UpdateComplaintFn func(ctx context.Context, id int64, status ComplaintStatus, priority ComplaintPriority, adminNotes *string) (*Complaint, error)
}

func (f *FakeRepository) CreatePrizeRequest(ctx context.Context, request *PrizeRequest) error {
	if f.CreatePrizeRequestFn != nil {
		return f.CreatePrizeRequestFn(ctx, request)
	}
	request.ID = 1
	return nil
}

func (f *FakeRepository) GetPrizeRequestByID(ctx context.Context, id int64) (*PrizeRequest, error) {
	if f.GetPrizeRequestByIDFn != nil {
		return f.GetPrizeRequestByIDFn(ctx, id)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) ListPrizeRequests(ctx context.Context, status RequestStatus) ([]PrizeRequest, error) {
	if f.ListPrizeRequestsFn != nil {
		return f.ListPrizeRequestsFn(ctx, status)
	}
	return nil, nil
}

func (f *FakeRepository) UpdatePrizeRequestStatus(ctx context.Context, id int64, status RequestStatus, adminNotes *string) (*PrizeRequest, error) {
	if f.UpdatePrizeRequestStatusFn != nil {
		return f.UpdatePrizeRequestStatusFn(ctx, id, status, adminNotes)
	}
	return &PrizeRequest{ID: id, Status: status, AdminNotes: adminNotes}, nil
}

func (f *FakeRepository) CreateComplaint(ctx context.Context, complaint *Complaint) error {
	if f.CreateComplaintFn != nil {
		return f.CreateComplaintFn(ctx, complaint)
	}
	complaint.ID = 1
	return nil
}

func (f *FakeRepository) ListComplaints(ctx context.Context, status ComplaintStatus) ([]Complaint, error) {
	if f.ListComplaintsFn != nil {
		return f.ListComplaintsFn(ctx, status)
	}
	return nil, nil
}

func (f *FakeRepository) UpdateComplaint(ctx context.Context, id int64, status ComplaintStatus, priority ComplaintPriority, adminNotes *string) (*Complaint, error) {
	if f.UpdateComplaintFn != nil {
		return f.UpdateComplaintFn(ctx, id, status, priority, adminNotes)
	}
	return &Complaint{ID: id, Status: status, Priority: priority, AdminNotes: adminNotes}, nil
}

var _ Repository = (*FakeRepository)(nil)
