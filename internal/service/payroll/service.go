package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/staffdesk/hr-backoffice/internal/domain/calendar"
	"github.com/staffdesk/hr-backoffice/internal/domain/employee"
	"github.com/staffdesk/hr-backoffice/internal/domain/leave"
	"github.com/staffdesk/hr-backoffice/internal/domain/notification"
	"github.com/staffdesk/hr-backoffice/internal/domain/payroll"
	"github.com/staffdesk/hr-backoffice/internal/pkg/database"
	"github.com/staffdesk/hr-backoffice/internal/pkg/validator"
	"github.com/staffdesk/hr-backoffice/internal/repository/postgresql"

	attendancedomain "github.com/staffdesk/hr-backoffice/internal/domain/attendance"
)

type PayrollServiceImpl struct {
	db             *database.DB
	salaryRuleRepo payroll.SalaryRuleRepository
	payrollRepo    payroll.PayrollRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendancedomain.AttendanceRepository
	leaveRepo      leave.LeaveRepository
	calendarSvc    calendar.Service
	sink           notification.Sink

	shiftMinutes      int
	lateBasisFullRate bool
}

func NewPayrollService(
	db *database.DB,
	salaryRuleRepo payroll.SalaryRuleRepository,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendancedomain.AttendanceRepository,
	leaveRepo leave.LeaveRepository,
	calendarSvc calendar.Service,
	sink notification.Sink,
	shiftMinutes int,
	lateBasisFullRate bool,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:                db,
		salaryRuleRepo:    salaryRuleRepo,
		payrollRepo:       payrollRepo,
		employeeRepo:      employeeRepo,
		attendanceRepo:    attendanceRepo,
		leaveRepo:         leaveRepo,
		calendarSvc:       calendarSvc,
		sink:              sink,
		shiftMinutes:      shiftMinutes,
		lateBasisFullRate: lateBasisFullRate,
	}
}

// ========== SALARY RULES ==========

// CreateSalaryRule implements payroll.PayrollService.
func (p *PayrollServiceImpl) CreateSalaryRule(ctx context.Context, req payroll.CreateSalaryRuleRequest) (payroll.SalaryRuleResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SalaryRuleResponse{}, err
	}

	rule := payroll.SalaryRule{
		Title:        req.Title,
		SalaryType:   payroll.SalaryType(req.SalaryType),
		Rate:         req.Rate,
		OvertimeRate: req.OvertimeRate,
		Bonus:        req.Bonus,
		LeaveRule:    req.LeaveRule,
		LateRule:     req.LateRule,
		IsActive:     true,
	}

	created, err := p.salaryRuleRepo.Create(ctx, rule)
	if err != nil {
		return payroll.SalaryRuleResponse{}, fmt.Errorf("failed to create salary rule: %w", err)
	}

	return mapSalaryRuleToResponse(created), nil
}

// GetSalaryRule implements payroll.PayrollService.
func (p *PayrollServiceImpl) GetSalaryRule(ctx context.Context, id string) (payroll.SalaryRuleResponse, error) {
	rule, err := p.salaryRuleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, payroll.ErrSalaryRuleNotFound) {
			return payroll.SalaryRuleResponse{}, payroll.ErrSalaryRuleNotFound
		}
		return payroll.SalaryRuleResponse{}, fmt.Errorf("failed to get salary rule: %w", err)
	}
	return mapSalaryRuleToResponse(rule), nil
}

// ListSalaryRules implements payroll.PayrollService.
func (p *PayrollServiceImpl) ListSalaryRules(ctx context.Context, activeOnly bool) ([]payroll.SalaryRuleResponse, error) {
	rules, err := p.salaryRuleRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary rules: %w", err)
	}

	responses := make([]payroll.SalaryRuleResponse, 0, len(rules))
	for _, rule := range rules {
		responses = append(responses, mapSalaryRuleToResponse(rule))
	}
	return responses, nil
}

// UpdateSalaryRule implements payroll.PayrollService. Rules referenced by a
// paid payslip are frozen so historical records stay reproducible.
func (p *PayrollServiceImpl) UpdateSalaryRule(ctx context.Context, req payroll.UpdateSalaryRuleRequest) (payroll.SalaryRuleResponse, error) {
	rule, err := p.salaryRuleRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, payroll.ErrSalaryRuleNotFound) {
			return payroll.SalaryRuleResponse{}, payroll.ErrSalaryRuleNotFound
		}
		return payroll.SalaryRuleResponse{}, fmt.Errorf("failed to get salary rule: %w", err)
	}

	referenced, err := p.salaryRuleRepo.IsReferencedByPaidPayroll(ctx, req.ID)
	if err != nil {
		return payroll.SalaryRuleResponse{}, fmt.Errorf("failed to check salary rule references: %w", err)
	}
	if referenced {
		return payroll.SalaryRuleResponse{}, payroll.ErrSalaryRuleInUse
	}

	if req.Title != nil {
		rule.Title = *req.Title
	}
	if req.Rate != nil {
		if req.Rate.IsNegative() {
			return payroll.SalaryRuleResponse{}, validator.ValidationErrors{
				{Field: "rate", Message: "must be non-negative"},
			}
		}
		rule.Rate = *req.Rate
	}
	if req.OvertimeRate != nil {
		rule.OvertimeRate = *req.OvertimeRate
	}
	if req.Bonus != nil {
		rule.Bonus = *req.Bonus
	}
	if req.LeaveRule != nil {
		rule.LeaveRule = *req.LeaveRule
	}
	if req.LateRule != nil {
		rule.LateRule = *req.LateRule
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}

	if err := p.salaryRuleRepo.Update(ctx, rule); err != nil {
		return payroll.SalaryRuleResponse{}, fmt.Errorf("failed to update salary rule: %w", err)
	}

	return mapSalaryRuleToResponse(rule), nil
}

// DeactivateSalaryRule implements payroll.PayrollService.
func (p *PayrollServiceImpl) DeactivateSalaryRule(ctx context.Context, id string) error {
	if _, err := p.salaryRuleRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, payroll.ErrSalaryRuleNotFound) {
			return payroll.ErrSalaryRuleNotFound
		}
		return fmt.Errorf("failed to get salary rule: %w", err)
	}

	if err := p.salaryRuleRepo.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("failed to deactivate salary rule: %w", err)
	}
	return nil
}

// ========== PAYROLL ==========

// GeneratePayroll implements payroll.PayrollService. Exactly one record may
// exist per (employee, period). The pre-check gives a friendly conflict for
// the common case; the storage uniqueness constraint settles races, so two
// concurrent generations never both succeed.
func (p *PayrollServiceImpl) GeneratePayroll(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	periodStart, _ := time.Parse("2006-01-02", req.PeriodStart)
	periodEnd, _ := time.Parse("2006-01-02", req.PeriodEnd)
	periodStart = calendar.DayOf(periodStart)
	periodEnd = calendar.DayOf(periodEnd)

	emp, err := p.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return payroll.PayrollResponse{}, payroll.ErrEmployeeNotFound
		}
		return payroll.PayrollResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if emp.SalaryRuleID == nil {
		return payroll.PayrollResponse{}, payroll.ErrMissingSalaryRule
	}

	rule, err := p.salaryRuleRepo.GetByID(ctx, *emp.SalaryRuleID)
	if err != nil {
		if errors.Is(err, payroll.ErrSalaryRuleNotFound) {
			return payroll.PayrollResponse{}, payroll.ErrMissingSalaryRule
		}
		return payroll.PayrollResponse{}, fmt.Errorf("failed to get salary rule: %w", err)
	}
	if !rule.IsActive {
		return payroll.PayrollResponse{}, payroll.ErrMissingSalaryRule
	}

	var created payroll.Payroll
	err = postgresql.WithTransaction(ctx, p.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		existing, err := p.payrollRepo.GetByEmployeeAndPeriod(txCtx, req.EmployeeID, periodStart, periodEnd)
		if err != nil {
			return fmt.Errorf("failed to check existing payroll: %w", err)
		}
		if existing != nil {
			p.reportConflict(ctx, req.EmployeeID, periodStart, periodEnd, existing.Status)
			return payroll.ErrDuplicatePayrollPeriod
		}

		workingDays, err := p.calendarSvc.WorkingDaysBetween(txCtx, periodStart, periodEnd)
		if err != nil {
			return fmt.Errorf("failed to count working days: %w", err)
		}

		records, err := p.attendanceRepo.ListByEmployeeAndRange(txCtx, req.EmployeeID, periodStart, periodEnd)
		if err != nil {
			return fmt.Errorf("failed to get attendance records: %w", err)
		}

		leaves, err := p.leaveRepo.ListApprovedInRange(txCtx, req.EmployeeID, periodStart, periodEnd)
		if err != nil {
			return fmt.Errorf("failed to get leave records: %w", err)
		}

		result, err := Compute(ComputeInput{
			Rule:              rule,
			PeriodStart:       periodStart,
			PeriodEnd:         periodEnd,
			WorkingDays:       workingDays,
			Attendance:        records,
			Leaves:            leaves,
			ShiftMinutes:      p.shiftMinutes,
			LateBasisFullRate: p.lateBasisFullRate,
		})
		if err != nil {
			return err
		}

		record := payroll.Payroll{
			EmployeeID:      req.EmployeeID,
			SalaryRuleID:    rule.ID,
			PeriodStart:     periodStart,
			PeriodEnd:       periodEnd,
			WorkingDays:     result.WorkingDays,
			PresentDays:     result.PresentDays,
			LateDays:        result.LateDays,
			PaidLeaveDays:   result.PaidLeaveDays,
			UnpaidLeaveDays: result.UnpaidLeaveDays,
			BasicPay:        result.BasicPay,
			OvertimePay:     result.OvertimePay,
			Bonus:           result.Bonus,
			LeaveDeduction:  result.LeaveDeduction,
			LateDeduction:   result.LateDeduction,
			NetPayable:      result.NetPayable,
			Status:          payroll.StatusPending,
		}

		created, err = p.payrollRepo.Create(txCtx, record)
		if err != nil {
			if errors.Is(err, payroll.ErrDuplicatePayrollPeriod) {
				p.reportConflict(ctx, req.EmployeeID, periodStart, periodEnd, payroll.StatusPending)
				return payroll.ErrDuplicatePayrollPeriod
			}
			return fmt.Errorf("failed to create payroll record: %w", err)
		}
		return nil
	})
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	return mapPayrollToResponse(created), nil
}

// GetPayroll implements payroll.PayrollService.
func (p *PayrollServiceImpl) GetPayroll(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	record, err := p.payrollRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, payroll.ErrPayrollNotFound) {
			return payroll.PayrollResponse{}, payroll.ErrPayrollNotFound
		}
		return payroll.PayrollResponse{}, fmt.Errorf("failed to get payroll: %w", err)
	}
	return mapPayrollToResponse(record), nil
}

// ListPayrolls implements payroll.PayrollService.
func (p *PayrollServiceImpl) ListPayrolls(ctx context.Context, filter payroll.Filter) (payroll.ListPayrollResponse, error) {
	records, total, err := p.payrollRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListPayrollResponse{}, fmt.Errorf("failed to list payrolls: %w", err)
	}

	responses := make([]payroll.PayrollResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, mapPayrollToResponse(record))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return payroll.ListPayrollResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Payrolls:   responses,
	}, nil
}

// MarkPaid implements payroll.PayrollService.
func (p *PayrollServiceImpl) MarkPaid(ctx context.Context, id string, paidBy string) (payroll.PayrollResponse, error) {
	record, err := p.payrollRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, payroll.ErrPayrollNotFound) {
			return payroll.PayrollResponse{}, payroll.ErrPayrollNotFound
		}
		return payroll.PayrollResponse{}, fmt.Errorf("failed to get payroll: %w", err)
	}
	if record.Status == payroll.StatusPaid {
		return payroll.PayrollResponse{}, payroll.ErrPayrollAlreadyPaid
	}

	now := time.Now().UTC()
	if err := p.payrollRepo.MarkPaid(ctx, id, paidBy, now); err != nil {
		return payroll.PayrollResponse{}, fmt.Errorf("failed to mark payroll as paid: %w", err)
	}

	record.Status = payroll.StatusPaid
	record.PaidAt = &now
	record.PaidBy = &paidBy

	return mapPayrollToResponse(record), nil
}

// reportConflict logs a rejected recomputation and records it for auditing.
// The existing payslip is never touched.
func (p *PayrollServiceImpl) reportConflict(ctx context.Context, employeeID string, periodStart, periodEnd time.Time, existingStatus payroll.Status) {
	slog.Warn("payroll recomputation rejected",
		"employee_id", employeeID,
		"period_start", periodStart.Format("2006-01-02"),
		"period_end", periodEnd.Format("2006-01-02"),
		"existing_status", string(existingStatus))

	if p.sink != nil {
		p.sink.Record(ctx, notification.Event{
			Kind:       notification.KindPayrollConflict,
			Message:    fmt.Sprintf("payroll for %s to %s already exists with status %s", periodStart.Format("2006-01-02"), periodEnd.Format("2006-01-02"), existingStatus),
			EmployeeID: &employeeID,
		})
	}
}

// mapSalaryRuleToResponse converts a SalaryRule entity to SalaryRuleResponse
func mapSalaryRuleToResponse(rule payroll.SalaryRule) payroll.SalaryRuleResponse {
	return payroll.SalaryRuleResponse{
		ID:           rule.ID,
		Title:        rule.Title,
		SalaryType:   string(rule.SalaryType),
		Rate:         rule.Rate,
		OvertimeRate: rule.OvertimeRate,
		Bonus:        rule.Bonus,
		LeaveRule:    rule.LeaveRule,
		LateRule:     rule.LateRule,
		IsActive:     rule.IsActive,
	}
}

// mapPayrollToResponse converts a Payroll entity to PayrollResponse
func mapPayrollToResponse(record payroll.Payroll) payroll.PayrollResponse {
	var paidAt *string
	if record.PaidAt != nil {
		formatted := record.PaidAt.Format(time.RFC3339)
		paidAt = &formatted
	}

	return payroll.PayrollResponse{
		ID:              record.ID,
		EmployeeID:      record.EmployeeID,
		EmployeeName:    record.EmployeeName,
		SalaryRuleID:    record.SalaryRuleID,
		PeriodStart:     record.PeriodStart.Format("2006-01-02"),
		PeriodEnd:       record.PeriodEnd.Format("2006-01-02"),
		WorkingDays:     record.WorkingDays,
		PresentDays:     record.PresentDays,
		LateDays:        record.LateDays,
		PaidLeaveDays:   record.PaidLeaveDays,
		UnpaidLeaveDays: record.UnpaidLeaveDays,
		BasicPay:        record.BasicPay,
		OvertimePay:     record.OvertimePay,
		Bonus:           record.Bonus,
		LeaveDeduction:  record.LeaveDeduction,
		LateDeduction:   record.LateDeduction,
		NetPayable:      record.NetPayable,
		Status:          string(record.Status),
		PaidAt:          paidAt,
	}
}
