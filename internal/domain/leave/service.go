package leave

import (
	"context"
)

// LeaveService defines business logic for leave requests
type LeaveService interface {
	// RequestLeave files a leave request for the authenticated employee
	RequestLeave(ctx context.Context, employeeID string, req CreateLeaveRequest) (Response, error)

	// ApproveLeave approves a pending request
	ApproveLeave(ctx context.Context, id string, reviewerID string) (Response, error)

	// RejectLeave rejects a pending request
	RejectLeave(ctx context.Context, id string, reviewerID string) (Response, error)

	// GetLeave retrieves a single leave request
	GetLeave(ctx context.Context, id string) (Response, error)

	// ListLeaves retrieves leave requests with filters (admin)
	ListLeaves(ctx context.Context, filter Filter) (ListResponse, error)
}
