package postgresql

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffdesk/hr-backoffice/internal/domain/calendar"
	"github.com/staffdesk/hr-backoffice/internal/pkg/database"
)

var testScheduleDB *database.DB

func scheduleTestInit(t *testing.T) {
	if testScheduleDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	var err error
	testScheduleDB, err = database.NewPostgreSQLDB(dsn, 5, 1)
	if err != nil {
		panic("Failed to connect to test database: " + err.Error())
	}
}

func truncateScheduleTables(t *testing.T, ctx context.Context) {
	_, err := testScheduleDB.Exec(ctx, "TRUNCATE TABLE office_schedules CASCADE")
	require.NoError(t, err)
}

func TestScheduleRepository_EnsureDefaultSchedule(t *testing.T) {
	scheduleTestInit(t)
	ctx := context.Background()
	truncateScheduleTables(t, ctx)

	repo := NewScheduleRepository(testScheduleDB)

	first, err := repo.EnsureDefaultSchedule(ctx)
	require.NoError(t, err)
	assert.Equal(t, calendar.DefaultWeeklyOffDays(), first.WeeklyOffDays)
	assert.True(t, first.IsActive)

	// A second call finds the existing row instead of inserting another.
	second, err := repo.EnsureDefaultSchedule(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int
	err = testScheduleDB.QueryRow(ctx, "SELECT COUNT(*) FROM office_schedules").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
