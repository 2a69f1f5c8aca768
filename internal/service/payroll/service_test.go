package payroll

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffdesk/hr-backoffice/internal/config"
	"github.com/staffdesk/hr-backoffice/internal/domain/payroll"
	"github.com/staffdesk/hr-backoffice/internal/pkg/database"
	"github.com/staffdesk/hr-backoffice/internal/pkg/holidayapi"
	"github.com/staffdesk/hr-backoffice/internal/repository/postgresql"
	calendarService "github.com/staffdesk/hr-backoffice/internal/service/calendar"
	notificationService "github.com/staffdesk/hr-backoffice/internal/service/notification"
)

var testPayrollDB *database.DB

func payrollTestInit(t *testing.T) {
	if testPayrollDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	var err error
	testPayrollDB, err = database.NewPostgreSQLDB(dsn, 5, 1)
	if err != nil {
		panic("Failed to connect to test database: " + err.Error())
	}
}

func truncatePayrollTables(t *testing.T, ctx context.Context) {
	tables := []string{"payrolls", "attendances", "leaves", "notification_events", "employees", "salary_rules"}
	for _, table := range tables {
		_, err := testPayrollDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func createPayrollTestEmployee(t *testing.T, ctx context.Context, code string, salaryRuleID string) string {
	var employeeID string
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	email := fmt.Sprintf("employee-%s-%d@example.com", code, time.Now().UnixNano())

	err := testPayrollDB.QueryRow(ctx, `
		INSERT INTO employees (full_name, email, code, password_hash, role, salary_rule_id, is_active)
		VALUES ('Test Employee', $1, $2, $3, 'employee', $4, TRUE)
		RETURNING id
	`, email, code, string(hashed), salaryRuleID).Scan(&employeeID)
	require.NoError(t, err)
	return employeeID
}

func createPayrollTestRule(t *testing.T, ctx context.Context) string {
	var ruleID string
	err := testPayrollDB.QueryRow(ctx, `
		INSERT INTO salary_rules (
			title, salary_type, rate, overtime_rate, bonus,
			leave_rule_enabled, leave_per_day_deduction,
			late_rule_enabled, late_days_threshold, late_equivalent_leave_days,
			is_active
		) VALUES ('Standard Monthly', 'Monthly', 30000, 0, 0, FALSE, 0, FALSE, 0, 0, TRUE)
		RETURNING id
	`).Scan(&ruleID)
	require.NoError(t, err)
	return ruleID
}

func newPayrollTestService() payroll.PayrollService {
	holidayRepo := postgresql.NewHolidayRepository(testPayrollDB)
	scheduleRepo := postgresql.NewScheduleRepository(testPayrollDB)
	notificationRepo := postgresql.NewNotificationRepository(testPayrollDB)

	sink := notificationService.NewStoreSink(notificationRepo)
	feed := holidayapi.NewClient(config.HolidayFeedConfig{
		BaseURL:     "http://localhost:0",
		CountryCode: "BD",
		Timeout:     time.Second,
	})
	calendarSvc := calendarService.NewCalendarService(holidayRepo, scheduleRepo, feed, sink)

	return NewPayrollService(
		testPayrollDB,
		postgresql.NewSalaryRuleRepository(testPayrollDB),
		postgresql.NewPayrollRepository(testPayrollDB),
		postgresql.NewEmployeeRepository(testPayrollDB),
		postgresql.NewAttendanceRepository(testPayrollDB),
		postgresql.NewLeaveRepository(testPayrollDB),
		calendarSvc,
		sink,
		480,
		false,
	)
}

func TestPayrollService_GeneratePayroll_RejectsExistingPaidPeriod(t *testing.T) {
	payrollTestInit(t)
	ctx := context.Background()
	truncatePayrollTables(t, ctx)

	ruleID := createPayrollTestRule(t, ctx)
	employeeID := createPayrollTestEmployee(t, ctx, "2000-0001", ruleID)

	var payrollID string
	err := testPayrollDB.QueryRow(ctx, `
		INSERT INTO payrolls (
			employee_id, salary_rule_id, period_start, period_end,
			working_days, present_days, late_days, paid_leave_days, unpaid_leave_days,
			basic_pay, overtime_pay, bonus, leave_deduction, late_deduction, net_payable,
			status, paid_at
		) VALUES ($1, $2, '2026-03-01', '2026-03-31', 22, 22, 0, 0, 0, 30000, 0, 0, 0, 0, 30000, 'paid', NOW())
		RETURNING id
	`, employeeID, ruleID).Scan(&payrollID)
	require.NoError(t, err)

	svc := newPayrollTestService()
	_, err = svc.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{
		EmployeeID:  employeeID,
		PeriodStart: "2026-03-01",
		PeriodEnd:   "2026-03-31",
	})
	assert.ErrorIs(t, err, payroll.ErrDuplicatePayrollPeriod)

	// Existing record untouched.
	var net decimal.Decimal
	var status string
	err = testPayrollDB.QueryRow(ctx,
		`SELECT net_payable, status FROM payrolls WHERE id = $1`, payrollID,
	).Scan(&net, &status)
	require.NoError(t, err)
	assert.True(t, net.Equal(decimal.NewFromInt(30000)))
	assert.Equal(t, "paid", status)
}

func TestPayrollService_MarkPaid(t *testing.T) {
	payrollTestInit(t)
	ctx := context.Background()
	truncatePayrollTables(t, ctx)

	ruleID := createPayrollTestRule(t, ctx)
	employeeID := createPayrollTestEmployee(t, ctx, "2000-0002", ruleID)
	adminID := createPayrollTestEmployee(t, ctx, "2000-0003", ruleID)

	var payrollID string
	err := testPayrollDB.QueryRow(ctx, `
		INSERT INTO payrolls (
			employee_id, salary_rule_id, period_start, period_end,
			working_days, present_days, late_days, paid_leave_days, unpaid_leave_days,
			basic_pay, overtime_pay, bonus, leave_deduction, late_deduction, net_payable,
			status
		) VALUES ($1, $2, '2026-04-01', '2026-04-30', 22, 22, 0, 0, 0, 30000, 0, 0, 0, 0, 30000, 'pending')
		RETURNING id
	`, employeeID, ruleID).Scan(&payrollID)
	require.NoError(t, err)

	svc := newPayrollTestService()
	result, err := svc.MarkPaid(ctx, payrollID, adminID)
	require.NoError(t, err)
	assert.Equal(t, string(payroll.StatusPaid), result.Status)

	_, err = svc.MarkPaid(ctx, payrollID, adminID)
	assert.ErrorIs(t, err, payroll.ErrPayrollAlreadyPaid)
}
