package leave

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/staffdesk/hr-backoffice/internal/domain/calendar"
	"github.com/staffdesk/hr-backoffice/internal/domain/employee"
	"github.com/staffdesk/hr-backoffice/internal/domain/leave"
)

type LeaveServiceImpl struct {
	leaveRepo    leave.LeaveRepository
	employeeRepo employee.EmployeeRepository
}

func NewLeaveService(leaveRepo leave.LeaveRepository, employeeRepo employee.EmployeeRepository) leave.LeaveService {
	return &LeaveServiceImpl{
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
	}
}

// RequestLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) RequestLeave(ctx context.Context, employeeID string, req leave.CreateLeaveRequest) (leave.Response, error) {
	if err := req.Validate(); err != nil {
		return leave.Response{}, err
	}

	if _, err := l.employeeRepo.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return leave.Response{}, leave.ErrEmployeeNotFound
		}
		return leave.Response{}, fmt.Errorf("failed to get employee: %w", err)
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	start = calendar.DayOf(start)
	end = calendar.DayOf(end)

	overlapping, err := l.leaveRepo.HasOverlapping(ctx, employeeID, start, end)
	if err != nil {
		return leave.Response{}, fmt.Errorf("failed to check overlapping leaves: %w", err)
	}
	if overlapping {
		return leave.Response{}, leave.ErrOverlappingLeave
	}

	data := leave.Leave{
		EmployeeID: employeeID,
		LeaveType:  req.LeaveType,
		PayStatus:  leave.PayStatus(req.PayStatus),
		StartDate:  start,
		EndDate:    end,
		TotalDays:  int(end.Sub(start).Hours()/24) + 1,
		Reason:     req.Reason,
		Status:     leave.StatusPending,
	}

	created, err := l.leaveRepo.Create(ctx, data)
	if err != nil {
		return leave.Response{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return mapLeaveToResponse(created), nil
}

// ApproveLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) ApproveLeave(ctx context.Context, id string, reviewerID string) (leave.Response, error) {
	return l.review(ctx, id, reviewerID, leave.StatusApproved)
}

// RejectLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) RejectLeave(ctx context.Context, id string, reviewerID string) (leave.Response, error) {
	return l.review(ctx, id, reviewerID, leave.StatusRejected)
}

func (l *LeaveServiceImpl) review(ctx context.Context, id string, reviewerID string, verdict leave.Status) (leave.Response, error) {
	data, err := l.leaveRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveNotFound) {
			return leave.Response{}, leave.ErrLeaveNotFound
		}
		return leave.Response{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	if data.Status != leave.StatusPending {
		return leave.Response{}, leave.ErrAlreadyProcessed
	}
	if data.EmployeeID == reviewerID {
		return leave.Response{}, leave.ErrCannotReviewOwnLeave
	}

	now := time.Now().UTC()
	data.Status = verdict
	data.ReviewedBy = &reviewerID
	data.ReviewedAt = &now

	if err := l.leaveRepo.Update(ctx, data); err != nil {
		return leave.Response{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	return mapLeaveToResponse(data), nil
}

// GetLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) GetLeave(ctx context.Context, id string) (leave.Response, error) {
	data, err := l.leaveRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveNotFound) {
			return leave.Response{}, leave.ErrLeaveNotFound
		}
		return leave.Response{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return mapLeaveToResponse(data), nil
}

// ListLeaves implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeaves(ctx context.Context, filter leave.Filter) (leave.ListResponse, error) {
	leaves, total, err := l.leaveRepo.List(ctx, filter)
	if err != nil {
		return leave.ListResponse{}, fmt.Errorf("failed to list leaves: %w", err)
	}

	responses := make([]leave.Response, 0, len(leaves))
	for _, lv := range leaves {
		responses = append(responses, mapLeaveToResponse(lv))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return leave.ListResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Leaves:     responses,
	}, nil
}

// mapLeaveToResponse converts a Leave entity to Response
func mapLeaveToResponse(data leave.Leave) leave.Response {
	return leave.Response{
		ID:           data.ID,
		EmployeeID:   data.EmployeeID,
		EmployeeName: data.EmployeeName,
		LeaveType:    data.LeaveType,
		PayStatus:    string(data.PayStatus),
		StartDate:    data.StartDate.Format("2006-01-02"),
		EndDate:      data.EndDate.Format("2006-01-02"),
		TotalDays:    data.TotalDays,
		Reason:       data.Reason,
		Status:       string(data.Status),
		ReviewedBy:   data.ReviewedBy,
	}
}
