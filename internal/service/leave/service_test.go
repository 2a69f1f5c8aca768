package leave

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffdesk/hr-backoffice/internal/domain/leave"
	"github.com/staffdesk/hr-backoffice/internal/pkg/database"
	"github.com/staffdesk/hr-backoffice/internal/repository/postgresql"
)

var testLeaveDB *database.DB

func leaveTestInit(t *testing.T) {
	if testLeaveDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	var err error
	testLeaveDB, err = database.NewPostgreSQLDB(dsn, 5, 1)
	if err != nil {
		panic("Failed to connect to test database: " + err.Error())
	}
}

func truncateLeaveTables(t *testing.T, ctx context.Context) {
	tables := []string{"leaves", "employees"}
	for _, table := range tables {
		_, err := testLeaveDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func createLeaveTestEmployee(t *testing.T, ctx context.Context, code string) string {
	var employeeID string
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	email := fmt.Sprintf("employee-%s-%d@example.com", code, time.Now().UnixNano())

	err := testLeaveDB.QueryRow(ctx, `
		INSERT INTO employees (full_name, email, code, password_hash, role, is_active)
		VALUES ('Test Employee', $1, $2, $3, 'employee', TRUE)
		RETURNING id
	`, email, code, string(hashed)).Scan(&employeeID)
	require.NoError(t, err)
	return employeeID
}

func newLeaveTestService() leave.LeaveService {
	leaveRepo := postgresql.NewLeaveRepository(testLeaveDB)
	employeeRepo := postgresql.NewEmployeeRepository(testLeaveDB)
	return NewLeaveService(leaveRepo, employeeRepo)
}

func TestLeaveService_RequestLeave(t *testing.T) {
	leaveTestInit(t)
	ctx := context.Background()
	truncateLeaveTables(t, ctx)

	employeeID := createLeaveTestEmployee(t, ctx, "1000-0001")
	svc := newLeaveTestService()

	result, err := svc.RequestLeave(ctx, employeeID, leave.CreateLeaveRequest{
		LeaveType: "Annual",
		PayStatus: "Paid",
		StartDate: "2026-03-02",
		EndDate:   "2026-03-04",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalDays)
	assert.Equal(t, string(leave.StatusPending), result.Status)
}

func TestLeaveService_RequestLeave_Overlapping(t *testing.T) {
	leaveTestInit(t)
	ctx := context.Background()
	truncateLeaveTables(t, ctx)

	employeeID := createLeaveTestEmployee(t, ctx, "1000-0002")
	svc := newLeaveTestService()

	_, err := svc.RequestLeave(ctx, employeeID, leave.CreateLeaveRequest{
		LeaveType: "Annual",
		PayStatus: "Paid",
		StartDate: "2026-03-02",
		EndDate:   "2026-03-06",
	})
	require.NoError(t, err)

	// Second request touching the same window must be rejected.
	_, err = svc.RequestLeave(ctx, employeeID, leave.CreateLeaveRequest{
		LeaveType: "Sick",
		PayStatus: "Unpaid",
		StartDate: "2026-03-05",
		EndDate:   "2026-03-09",
	})
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
}

func TestLeaveService_ApproveLeave(t *testing.T) {
	leaveTestInit(t)
	ctx := context.Background()
	truncateLeaveTables(t, ctx)

	employeeID := createLeaveTestEmployee(t, ctx, "1000-0003")
	reviewerID := createLeaveTestEmployee(t, ctx, "1000-0004")
	svc := newLeaveTestService()

	created, err := svc.RequestLeave(ctx, employeeID, leave.CreateLeaveRequest{
		LeaveType: "Annual",
		PayStatus: "Paid",
		StartDate: "2026-03-02",
		EndDate:   "2026-03-03",
	})
	require.NoError(t, err)

	approved, err := svc.ApproveLeave(ctx, created.ID, reviewerID)
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApproved), approved.Status)
	require.NotNil(t, approved.ReviewedBy)
	assert.Equal(t, reviewerID, *approved.ReviewedBy)

	// Re-reviewing a settled request is rejected.
	_, err = svc.RejectLeave(ctx, created.ID, reviewerID)
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
}

func TestLeaveService_CannotReviewOwnLeave(t *testing.T) {
	leaveTestInit(t)
	ctx := context.Background()
	truncateLeaveTables(t, ctx)

	employeeID := createLeaveTestEmployee(t, ctx, "1000-0005")
	svc := newLeaveTestService()

	created, err := svc.RequestLeave(ctx, employeeID, leave.CreateLeaveRequest{
		LeaveType: "Annual",
		PayStatus: "Paid",
		StartDate: "2026-03-02",
		EndDate:   "2026-03-02",
	})
	require.NoError(t, err)

	_, err = svc.ApproveLeave(ctx, created.ID, employeeID)
	assert.ErrorIs(t, err, leave.ErrCannotReviewOwnLeave)
}
