package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/staffdesk/hr-backoffice/internal/domain/employee"
	"github.com/staffdesk/hr-backoffice/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (full_name, email, code, password_hash, role, salary_rule_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		emp.FullName,
		emp.Email,
		emp.Code,
		emp.PasswordHash,
		emp.Role,
		emp.SalaryRuleID,
		emp.IsActive,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			if pgErr.ConstraintName == "employees_code_key" {
				return employee.Employee{}, employee.ErrCodeExists
			}
			return employee.Employee{}, employee.ErrEmailExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, full_name, email, code, password_hash, role, salary_rule_id, is_active, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.FullName, &emp.Email, &emp.Code, &emp.PasswordHash,
		&emp.Role, &emp.SalaryRuleID, &emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// GetByEmail implements employee.EmployeeRepository.
func (e *employeeRepository) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, full_name, email, code, password_hash, role, salary_rule_id, is_active, created_at, updated_at
		FROM employees
		WHERE email = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, email).Scan(
		&emp.ID, &emp.FullName, &emp.Email, &emp.Code, &emp.PasswordHash,
		&emp.Role, &emp.SalaryRuleID, &emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by email: %w", err)
	}

	return emp, nil
}

// GetActive implements employee.EmployeeRepository.
func (e *employeeRepository) GetActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, full_name, email, code, password_hash, role, salary_rule_id, is_active, created_at, updated_at
		FROM employees
		WHERE is_active = TRUE
		ORDER BY full_name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		err := rows.Scan(
			&emp.ID, &emp.FullName, &emp.Email, &emp.Code, &emp.PasswordHash,
			&emp.Role, &emp.SalaryRuleID, &emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, rows.Err()
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepository) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET full_name = $2,
		    email = $3,
		    role = $4,
		    salary_rule_id = $5,
		    updated_at = NOW()
		WHERE id = $1
	`

	ct, err := q.Exec(ctx, query, emp.ID, emp.FullName, emp.Email, emp.Role, emp.SalaryRuleID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return employee.ErrEmailExists
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// Deactivate implements employee.EmployeeRepository.
func (e *employeeRepository) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1
	`

	ct, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}
