package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/staffdesk/hr-backoffice/internal/domain/attendance"
	"github.com/staffdesk/hr-backoffice/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			employee_id, date, clock_in, clock_out, total_minutes, late_minutes,
			status, auto_clocked_out, corrected_by_admin
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAttendance.EmployeeID,
		newAttendance.Date,
		newAttendance.ClockIn,
		newAttendance.ClockOut,
		newAttendance.TotalMinutes,
		newAttendance.LateMinutes,
		newAttendance.Status,
		newAttendance.AutoClockedOut,
		newAttendance.CorrectedByAdmin,
	).Scan(&newAttendance.ID, &newAttendance.CreatedAt, &newAttendance.UpdatedAt)

	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT a.id, a.employee_id, a.date, a.clock_in, a.clock_out,
		       a.total_minutes, a.late_minutes, a.status,
		       a.auto_clocked_out, a.corrected_by_admin,
		       a.created_at, a.updated_at,
		       e.full_name AS employee_name
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, id).Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.ClockIn, &att.ClockOut,
		&att.TotalMinutes, &att.LateMinutes, &att.Status,
		&att.AutoClockedOut, &att.CorrectedByAdmin,
		&att.CreatedAt, &att.UpdatedAt,
		&att.EmployeeName,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_id, date, clock_in, clock_out,
		       total_minutes, late_minutes, status,
		       auto_clocked_out, corrected_by_admin,
		       created_at, updated_at
		FROM attendances
		WHERE employee_id = $1
		  AND date = $2
		LIMIT 1
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.ClockIn, &att.ClockOut,
		&att.TotalMinutes, &att.LateMinutes, &att.Status,
		&att.AutoClockedOut, &att.CorrectedByAdmin,
		&att.CreatedAt, &att.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET clock_in = $2,
		    clock_out = $3,
		    total_minutes = $4,
		    late_minutes = $5,
		    status = $6,
		    auto_clocked_out = $7,
		    corrected_by_admin = $8,
		    updated_at = NOW()
		WHERE id = $1
	`

	ct, err := q.Exec(ctx, query,
		att.ID,
		att.ClockIn,
		att.ClockOut,
		att.TotalMinutes,
		att.LateMinutes,
		att.Status,
		att.AutoClockedOut,
		att.CorrectedByAdmin,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// CloseOpenSession implements attendance.AttendanceRepository. The clock_out
// guard in the WHERE clause makes the close conditional, so the sweep and a
// live clock-out cannot both win.
func (a *attendanceRepository) CloseOpenSession(ctx context.Context, id string, clockOut time.Time, totalMinutes int, status attendance.Status, auto bool) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET clock_out = $2,
		    total_minutes = $3,
		    status = $4,
		    auto_clocked_out = $5,
		    updated_at = NOW()
		WHERE id = $1
		  AND clock_out IS NULL
	`

	ct, err := q.Exec(ctx, query, id, clockOut, totalMinutes, status, auto)
	if err != nil {
		return false, fmt.Errorf("failed to close attendance session: %w", err)
	}

	return ct.RowsAffected() > 0, nil
}

// GetOpenSessionsBefore implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetOpenSessionsBefore(ctx context.Context, day time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_id, date, clock_in, clock_out,
		       total_minutes, late_minutes, status,
		       auto_clocked_out, corrected_by_admin,
		       created_at, updated_at
		FROM attendances
		WHERE clock_in IS NOT NULL
		  AND clock_out IS NULL
		  AND date < $1
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query open sessions: %w", err)
	}
	defer rows.Close()

	return scanAttendances(rows)
}

// ListByEmployeeAndRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_id, date, clock_in, clock_out,
		       total_minutes, late_minutes, status,
		       auto_clocked_out, corrected_by_admin,
		       created_at, updated_at
		FROM attendances
		WHERE employee_id = $1
		  AND date >= $2
		  AND date <= $3
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	return scanAttendances(rows)
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.DateFrom != nil && *filter.DateFrom != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil && *filter.DateTo != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.DateTo)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM attendances a WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT a.id, a.employee_id, a.date, a.clock_in, a.clock_out,
		       a.total_minutes, a.late_minutes, a.status,
		       a.auto_clocked_out, a.corrected_by_admin,
		       a.created_at, a.updated_at,
		       e.full_name AS employee_name
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY a.date DESC, e.full_name ASC
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
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.EmployeeID, &att.Date, &att.ClockIn, &att.ClockOut,
			&att.TotalMinutes, &att.LateMinutes, &att.Status,
			&att.AutoClockedOut, &att.CorrectedByAdmin,
			&att.CreatedAt, &att.UpdatedAt,
			&att.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}

	return attendances, total, rows.Err()
}

// BulkCreate implements attendance.AttendanceRepository. Existing
// (employee, date) pairs are skipped, which keeps the day-status sweep
// idempotent.
func (a *attendanceRepository) BulkCreate(ctx context.Context, records []attendance.Attendance) (int, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			employee_id, date, clock_in, clock_out, total_minutes, late_minutes,
			status, auto_clocked_out, corrected_by_admin
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		ON CONFLICT (employee_id, date) DO NOTHING
	`

	created := 0
	for _, rec := range records {
		ct, err := q.Exec(ctx, query,
			rec.EmployeeID,
			rec.Date,
			rec.ClockIn,
			rec.ClockOut,
			rec.TotalMinutes,
			rec.LateMinutes,
			rec.Status,
			rec.AutoClockedOut,
			rec.CorrectedByAdmin,
		)
		if err != nil {
			return created, fmt.Errorf("failed to bulk create attendance: %w", err)
		}
		created += int(ct.RowsAffected())
	}

	return created, nil
}

func scanAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	var attendances []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.EmployeeID, &att.Date, &att.ClockIn, &att.ClockOut,
			&att.TotalMinutes, &att.LateMinutes, &att.Status,
			&att.AutoClockedOut, &att.CorrectedByAdmin,
			&att.CreatedAt, &att.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	return attendances, rows.Err()
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
