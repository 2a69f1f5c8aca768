package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/staffdesk/hr-backoffice/internal/domain/payroll"
	"github.com/staffdesk/hr-backoffice/internal/pkg/database"
)

type salaryRuleRepository struct {
	db *database.DB
}

// Create implements payroll.SalaryRuleRepository.
func (s *salaryRuleRepository) Create(ctx context.Context, rule payroll.SalaryRule) (payroll.SalaryRule, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO salary_rules (
			title, salary_type, rate, overtime_rate, bonus,
			leave_rule_enabled, leave_per_day_deduction,
			late_rule_enabled, late_days_threshold, late_equivalent_leave_days,
			is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rule.Title,
		rule.SalaryType,
		rule.Rate,
		rule.OvertimeRate,
		rule.Bonus,
		rule.LeaveRule.Enabled,
		rule.LeaveRule.PerDayDeduction,
		rule.LateRule.Enabled,
		rule.LateRule.LateDaysThreshold,
		rule.LateRule.EquivalentLeaveDays,
		rule.IsActive,
	).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)

	if err != nil {
		return payroll.SalaryRule{}, fmt.Errorf("failed to create salary rule: %w", err)
	}

	return rule, nil
}

// GetByID implements payroll.SalaryRuleRepository.
func (s *salaryRuleRepository) GetByID(ctx context.Context, id string) (payroll.SalaryRule, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, title, salary_type, rate, overtime_rate, bonus,
		       leave_rule_enabled, leave_per_day_deduction,
		       late_rule_enabled, late_days_threshold, late_equivalent_leave_days,
		       is_active, created_at, updated_at
		FROM salary_rules
		WHERE id = $1
	`

	var rule payroll.SalaryRule
	err := q.QueryRow(ctx, query, id).Scan(
		&rule.ID, &rule.Title, &rule.SalaryType, &rule.Rate, &rule.OvertimeRate, &rule.Bonus,
		&rule.LeaveRule.Enabled, &rule.LeaveRule.PerDayDeduction,
		&rule.LateRule.Enabled, &rule.LateRule.LateDaysThreshold, &rule.LateRule.EquivalentLeaveDays,
		&rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.SalaryRule{}, payroll.ErrSalaryRuleNotFound
		}
		return payroll.SalaryRule{}, fmt.Errorf("failed to get salary rule: %w", err)
	}

	return rule, nil
}

// List implements payroll.SalaryRuleRepository.
func (s *salaryRuleRepository) List(ctx context.Context, activeOnly bool) ([]payroll.SalaryRule, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, title, salary_type, rate, overtime_rate, bonus,
		       leave_rule_enabled, leave_per_day_deduction,
		       late_rule_enabled, late_days_threshold, late_equivalent_leave_days,
		       is_active, created_at, updated_at
		FROM salary_rules
	`
	if activeOnly {
		query += " WHERE is_active = TRUE"
	}
	query += " ORDER BY title ASC"

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query salary rules: %w", err)
	}
	defer rows.Close()

	var rules []payroll.SalaryRule
	for rows.Next() {
		var rule payroll.SalaryRule
		err := rows.Scan(
			&rule.ID, &rule.Title, &rule.SalaryType, &rule.Rate, &rule.OvertimeRate, &rule.Bonus,
			&rule.LeaveRule.Enabled, &rule.LeaveRule.PerDayDeduction,
			&rule.LateRule.Enabled, &rule.LateRule.LateDaysThreshold, &rule.LateRule.EquivalentLeaveDays,
			&rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary rule: %w", err)
		}
		rules = append(rules, rule)
	}

	return rules, rows.Err()
}

// Update implements payroll.SalaryRuleRepository.
func (s *salaryRuleRepository) Update(ctx context.Context, rule payroll.SalaryRule) error {
	q := GetQuerier(ctx, s.db)

	query := `
		UPDATE salary_rules
		SET title = $2,
		    rate = $3,
		    overtime_rate = $4,
		    bonus = $5,
		    leave_rule_enabled = $6,
		    leave_per_day_deduction = $7,
		    late_rule_enabled = $8,
		    late_days_threshold = $9,
		    late_equivalent_leave_days = $10,
		    is_active = $11,
		    updated_at = NOW()
		WHERE id = $1
	`

	ct, err := q.Exec(ctx, query,
		rule.ID,
		rule.Title,
		rule.Rate,
		rule.OvertimeRate,
		rule.Bonus,
		rule.LeaveRule.Enabled,
		rule.LeaveRule.PerDayDeduction,
		rule.LateRule.Enabled,
		rule.LateRule.LateDaysThreshold,
		rule.LateRule.EquivalentLeaveDays,
		rule.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to update salary rule: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return payroll.ErrSalaryRuleNotFound
	}

	return nil
}

// Deactivate implements payroll.SalaryRuleRepository.
func (s *salaryRuleRepository) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, s.db)

	query := `
		UPDATE salary_rules
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1
	`

	ct, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate salary rule: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return payroll.ErrSalaryRuleNotFound
	}

	return nil
}

// IsReferencedByPaidPayroll implements payroll.SalaryRuleRepository.
func (s *salaryRuleRepository) IsReferencedByPaidPayroll(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM payrolls
			WHERE salary_rule_id = $1
			  AND status = $2
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, id, payroll.StatusPaid).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check salary rule references: %w", err)
	}

	return exists, nil
}

func NewSalaryRuleRepository(db *database.DB) payroll.SalaryRuleRepository {
	return &salaryRuleRepository{db: db}
}
