package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/staffdesk/hr-backoffice/internal/domain/leave"
	"github.com/staffdesk/hr-backoffice/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

// Create implements leave.LeaveRepository.
func (l *leaveRepository) Create(ctx context.Context, newLeave leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leaves (
			employee_id, leave_type, pay_status, start_date, end_date,
			total_days, reason, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newLeave.EmployeeID,
		newLeave.LeaveType,
		newLeave.PayStatus,
		newLeave.StartDate,
		newLeave.EndDate,
		newLeave.TotalDays,
		newLeave.Reason,
		newLeave.Status,
	).Scan(&newLeave.ID, &newLeave.CreatedAt, &newLeave.UpdatedAt)

	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return newLeave, nil
}

// GetByID implements leave.LeaveRepository.
func (l *leaveRepository) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT l.id, l.employee_id, l.leave_type, l.pay_status, l.start_date, l.end_date,
		       l.total_days, l.reason, l.status, l.reviewed_by, l.reviewed_at,
		       l.created_at, l.updated_at,
		       e.full_name AS employee_name
		FROM leaves l
		LEFT JOIN employees e ON e.id = l.employee_id
		WHERE l.id = $1
	`

	var lv leave.Leave
	err := q.QueryRow(ctx, query, id).Scan(
		&lv.ID, &lv.EmployeeID, &lv.LeaveType, &lv.PayStatus, &lv.StartDate, &lv.EndDate,
		&lv.TotalDays, &lv.Reason, &lv.Status, &lv.ReviewedBy, &lv.ReviewedAt,
		&lv.CreatedAt, &lv.UpdatedAt,
		&lv.EmployeeName,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Leave{}, leave.ErrLeaveNotFound
		}
		return leave.Leave{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return lv, nil
}

// Update implements leave.LeaveRepository.
func (l *leaveRepository) Update(ctx context.Context, lv leave.Leave) error {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leaves
		SET status = $2,
		    reviewed_by = $3,
		    reviewed_at = $4,
		    updated_at = NOW()
		WHERE id = $1
	`

	ct, err := q.Exec(ctx, query, lv.ID, lv.Status, lv.ReviewedBy, lv.ReviewedAt)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}

	return nil
}

// FindApprovedForDate implements leave.LeaveRepository.
func (l *leaveRepository) FindApprovedForDate(ctx context.Context, employeeID string, date time.Time) (*leave.Leave, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, employee_id, leave_type, pay_status, start_date, end_date,
		       total_days, reason, status, reviewed_by, reviewed_at,
		       created_at, updated_at
		FROM leaves
		WHERE employee_id = $1
		  AND status = $2
		  AND start_date <= $3
		  AND end_date >= $3
		LIMIT 1
	`

	var lv leave.Leave
	err := q.QueryRow(ctx, query, employeeID, leave.StatusApproved, date).Scan(
		&lv.ID, &lv.EmployeeID, &lv.LeaveType, &lv.PayStatus, &lv.StartDate, &lv.EndDate,
		&lv.TotalDays, &lv.Reason, &lv.Status, &lv.ReviewedBy, &lv.ReviewedAt,
		&lv.CreatedAt, &lv.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find approved leave: %w", err)
	}

	return &lv, nil
}

// ListApprovedInRange implements leave.LeaveRepository.
func (l *leaveRepository) ListApprovedInRange(ctx context.Context, employeeID string, from, to time.Time) ([]leave.Leave, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, employee_id, leave_type, pay_status, start_date, end_date,
		       total_days, reason, status, reviewed_by, reviewed_at,
		       created_at, updated_at
		FROM leaves
		WHERE employee_id = $1
		  AND status = $2
		  AND start_date <= $4
		  AND end_date >= $3
		ORDER BY start_date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, leave.StatusApproved, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query approved leaves: %w", err)
	}
	defer rows.Close()

	var leaves []leave.Leave
	for rows.Next() {
		var lv leave.Leave
		err := rows.Scan(
			&lv.ID, &lv.EmployeeID, &lv.LeaveType, &lv.PayStatus, &lv.StartDate, &lv.EndDate,
			&lv.TotalDays, &lv.Reason, &lv.Status, &lv.ReviewedBy, &lv.ReviewedAt,
			&lv.CreatedAt, &lv.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave: %w", err)
		}
		leaves = append(leaves, lv)
	}

	return leaves, rows.Err()
}

// HasOverlapping implements leave.LeaveRepository.
func (l *leaveRepository) HasOverlapping(ctx context.Context, employeeID string, from, to time.Time) (bool, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leaves
			WHERE employee_id = $1
			  AND status IN ($2, $3)
			  AND start_date <= $5
			  AND end_date >= $4
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, employeeID, leave.StatusPending, leave.StatusApproved, from, to).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check overlapping leaves: %w", err)
	}

	return exists, nil
}

// List implements leave.LeaveRepository.
func (l *leaveRepository) List(ctx context.Context, filter leave.Filter) ([]leave.Leave, int64, error) {
	q := GetQuerier(ctx, l.db)

	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND l.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND l.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.DateFrom != nil && *filter.DateFrom != "" {
		baseWhere += fmt.Sprintf(" AND l.end_date >= $%d", argIdx)
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil && *filter.DateTo != "" {
		baseWhere += fmt.Sprintf(" AND l.start_date <= $%d", argIdx)
		args = append(args, *filter.DateTo)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM leaves l WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leaves: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT l.id, l.employee_id, l.leave_type, l.pay_status, l.start_date, l.end_date,
		       l.total_days, l.reason, l.status, l.reviewed_by, l.reviewed_at,
		       l.created_at, l.updated_at,
		       e.full_name AS employee_name
		FROM leaves l
		LEFT JOIN employees e ON e.id = l.employee_id
		WHERE %s
		ORDER BY l.created_at DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query leaves: %w", err)
	}
	defer rows.Close()

	var leaves []leave.Leave
	for rows.Next() {
		var lv leave.Leave
		err := rows.Scan(
			&lv.ID, &lv.EmployeeID, &lv.LeaveType, &lv.PayStatus, &lv.StartDate, &lv.EndDate,
			&lv.TotalDays, &lv.Reason, &lv.Status, &lv.ReviewedBy, &lv.ReviewedAt,
			&lv.CreatedAt, &lv.UpdatedAt,
			&lv.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave: %w", err)
		}
		leaves = append(leaves, lv)
	}

	return leaves, total, rows.Err()
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}
