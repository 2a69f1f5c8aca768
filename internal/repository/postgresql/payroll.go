package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/staffdesk/hr-backoffice/internal/domain/payroll"
	"github.com/staffdesk/hr-backoffice/internal/pkg/database"
)

const uniqueViolationCode = "23505"

type payrollRepository struct {
	db *database.DB
}

// Create implements payroll.PayrollRepository. The unique index on
// (employee_id, period_start, period_end) settles concurrent generations.
func (p *payrollRepository) Create(ctx context.Context, record payroll.Payroll) (payroll.Payroll, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		INSERT INTO payrolls (
			employee_id, salary_rule_id, period_start, period_end,
			working_days, present_days, late_days, paid_leave_days, unpaid_leave_days,
			basic_pay, overtime_pay, bonus, leave_deduction, late_deduction, net_payable,
			status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.EmployeeID,
		record.SalaryRuleID,
		record.PeriodStart,
		record.PeriodEnd,
		record.WorkingDays,
		record.PresentDays,
		record.LateDays,
		record.PaidLeaveDays,
		record.UnpaidLeaveDays,
		record.BasicPay,
		record.OvertimePay,
		record.Bonus,
		record.LeaveDeduction,
		record.LateDeduction,
		record.NetPayable,
		record.Status,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return payroll.Payroll{}, payroll.ErrDuplicatePayrollPeriod
		}
		return payroll.Payroll{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return record, nil
}

// GetByID implements payroll.PayrollRepository.
func (p *payrollRepository) GetByID(ctx context.Context, id string) (payroll.Payroll, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT p.id, p.employee_id, p.salary_rule_id, p.period_start, p.period_end,
		       p.working_days, p.present_days, p.late_days, p.paid_leave_days, p.unpaid_leave_days,
		       p.basic_pay, p.overtime_pay, p.bonus, p.leave_deduction, p.late_deduction, p.net_payable,
		       p.status, p.paid_at, p.paid_by, p.created_at, p.updated_at,
		       e.full_name AS employee_name
		FROM payrolls p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1
	`

	var record payroll.Payroll
	err := q.QueryRow(ctx, query, id).Scan(
		&record.ID, &record.EmployeeID, &record.SalaryRuleID, &record.PeriodStart, &record.PeriodEnd,
		&record.WorkingDays, &record.PresentDays, &record.LateDays, &record.PaidLeaveDays, &record.UnpaidLeaveDays,
		&record.BasicPay, &record.OvertimePay, &record.Bonus, &record.LeaveDeduction, &record.LateDeduction, &record.NetPayable,
		&record.Status, &record.PaidAt, &record.PaidBy, &record.CreatedAt, &record.UpdatedAt,
		&record.EmployeeName,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payroll{}, payroll.ErrPayrollNotFound
		}
		return payroll.Payroll{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return record, nil
}

// GetByEmployeeAndPeriod implements payroll.PayrollRepository.
func (p *payrollRepository) GetByEmployeeAndPeriod(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (*payroll.Payroll, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, employee_id, salary_rule_id, period_start, period_end,
		       working_days, present_days, late_days, paid_leave_days, unpaid_leave_days,
		       basic_pay, overtime_pay, bonus, leave_deduction, late_deduction, net_payable,
		       status, paid_at, paid_by, created_at, updated_at
		FROM payrolls
		WHERE employee_id = $1
		  AND period_start = $2
		  AND period_end = $3
		LIMIT 1
	`

	var record payroll.Payroll
	err := q.QueryRow(ctx, query, employeeID, periodStart, periodEnd).Scan(
		&record.ID, &record.EmployeeID, &record.SalaryRuleID, &record.PeriodStart, &record.PeriodEnd,
		&record.WorkingDays, &record.PresentDays, &record.LateDays, &record.PaidLeaveDays, &record.UnpaidLeaveDays,
		&record.BasicPay, &record.OvertimePay, &record.Bonus, &record.LeaveDeduction, &record.LateDeduction, &record.NetPayable,
		&record.Status, &record.PaidAt, &record.PaidBy, &record.CreatedAt, &record.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payroll by employee and period: %w", err)
	}

	return &record, nil
}

// List implements payroll.PayrollRepository.
func (p *payrollRepository) List(ctx context.Context, filter payroll.Filter) ([]payroll.Payroll, int64, error) {
	q := GetQuerier(ctx, p.db)

	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND p.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND p.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM payrolls p WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payrolls: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT p.id, p.employee_id, p.salary_rule_id, p.period_start, p.period_end,
		       p.working_days, p.present_days, p.late_days, p.paid_leave_days, p.unpaid_leave_days,
		       p.basic_pay, p.overtime_pay, p.bonus, p.leave_deduction, p.late_deduction, p.net_payable,
		       p.status, p.paid_at, p.paid_by, p.created_at, p.updated_at,
		       e.full_name AS employee_name
		FROM payrolls p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE %s
		ORDER BY p.period_start DESC, e.full_name ASC
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
		return nil, 0, fmt.Errorf("failed to query payrolls: %w", err)
	}
	defer rows.Close()

	var records []payroll.Payroll
	for rows.Next() {
		var record payroll.Payroll
		err := rows.Scan(
			&record.ID, &record.EmployeeID, &record.SalaryRuleID, &record.PeriodStart, &record.PeriodEnd,
			&record.WorkingDays, &record.PresentDays, &record.LateDays, &record.PaidLeaveDays, &record.UnpaidLeaveDays,
			&record.BasicPay, &record.OvertimePay, &record.Bonus, &record.LeaveDeduction, &record.LateDeduction, &record.NetPayable,
			&record.Status, &record.PaidAt, &record.PaidBy, &record.CreatedAt, &record.UpdatedAt,
			&record.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, record)
	}

	return records, total, rows.Err()
}

// MarkPaid implements payroll.PayrollRepository. The status guard keeps paid
// records immutable.
func (p *payrollRepository) MarkPaid(ctx context.Context, id string, paidBy string, paidAt time.Time) error {
	q := GetQuerier(ctx, p.db)

	query := `
		UPDATE payrolls
		SET status = $2,
		    paid_by = $3,
		    paid_at = $4,
		    updated_at = NOW()
		WHERE id = $1
		  AND status = $5
	`

	ct, err := q.Exec(ctx, query, id, payroll.StatusPaid, paidBy, paidAt, payroll.StatusPending)
	if err != nil {
		return fmt.Errorf("failed to mark payroll as paid: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return payroll.ErrPayrollAlreadyPaid
	}

	return nil
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}
