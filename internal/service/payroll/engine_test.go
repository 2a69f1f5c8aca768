package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffdesk/hr-backoffice/internal/domain/attendance"
	"github.com/staffdesk/hr-backoffice/internal/domain/leave"
	"github.com/staffdesk/hr-backoffice/internal/domain/payroll"
)

func day(dayOfMonth int) time.Time {
	return time.Date(2026, time.March, dayOfMonth, 0, 0, 0, 0, time.UTC)
}

func presentRecords(count, minutesEach int) []attendance.Attendance {
	records := make([]attendance.Attendance, 0, count)
	for i := 0; i < count; i++ {
		minutes := minutesEach
		records = append(records, attendance.Attendance{
			Date:         day(i + 1),
			Status:       attendance.StatusPresent,
			TotalMinutes: &minutes,
		})
	}
	return records
}

func monthlyRule(rate int64) payroll.SalaryRule {
	return payroll.SalaryRule{
		SalaryType: payroll.SalaryTypeMonthly,
		Rate:       decimal.NewFromInt(rate),
	}
}

func TestCompute_MonthlyProrationWithLeave(t *testing.T) {
	// Rate 30000 over 22 working days, 20 present plus 1 paid leave day
	// prorates to 30000*21/22; the unpaid day deducts 1000 flat.
	rule := monthlyRule(30000)
	rule.LeaveRule = payroll.LeaveRule{Enabled: true, PerDayDeduction: decimal.NewFromInt(1000)}

	paidReason := leave.Leave{
		Status:    leave.StatusApproved,
		PayStatus: leave.PayStatusPaid,
		StartDate: day(23),
		EndDate:   day(23),
	}
	unpaidReason := leave.Leave{
		Status:    leave.StatusApproved,
		PayStatus: leave.PayStatusUnpaid,
		StartDate: day(24),
		EndDate:   day(24),
	}

	got, err := Compute(ComputeInput{
		Rule:         rule,
		PeriodStart:  day(1),
		PeriodEnd:    day(31),
		WorkingDays:  22,
		Attendance:   presentRecords(20, 480),
		Leaves:       []leave.Leave{paidReason, unpaidReason},
		ShiftMinutes: 480,
	})
	require.NoError(t, err)

	assert.Equal(t, 20, got.PresentDays)
	assert.True(t, got.PaidLeaveDays.Equal(decimal.NewFromInt(1)))
	assert.True(t, got.UnpaidLeaveDays.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, "28636.36", got.BasicPay.StringFixed(2))
	assert.Equal(t, "1000.00", got.LeaveDeduction.StringFixed(2))
	assert.Equal(t, "27636.36", got.NetPayable.StringFixed(2))
}

func TestCompute_HourlyWithOvertime(t *testing.T) {
	// 8 full 8h days and 2 days of 10h against an 8h shift: 80 regular hours
	// at 200 plus 4 overtime hours at 300.
	rule := payroll.SalaryRule{
		SalaryType:   payroll.SalaryTypeHourly,
		Rate:         decimal.NewFromInt(200),
		OvertimeRate: decimal.NewFromInt(300),
	}

	records := presentRecords(8, 480)
	for i := 0; i < 2; i++ {
		minutes := 600
		records = append(records, attendance.Attendance{
			Date:         day(20 + i),
			Status:       attendance.StatusPresent,
			TotalMinutes: &minutes,
		})
	}

	got, err := Compute(ComputeInput{
		Rule:         rule,
		PeriodStart:  day(1),
		PeriodEnd:    day(31),
		WorkingDays:  22,
		Attendance:   records,
		ShiftMinutes: 480,
	})
	require.NoError(t, err)

	assert.Equal(t, "16000.00", got.BasicPay.StringFixed(2))
	assert.Equal(t, "1200.00", got.OvertimePay.StringFixed(2))
	assert.Equal(t, "17200.00", got.NetPayable.StringFixed(2))
}

func TestCompute_ProjectFlatRateIgnoresAttendance(t *testing.T) {
	rule := payroll.SalaryRule{
		SalaryType:   payroll.SalaryTypeProject,
		Rate:         decimal.NewFromInt(50000),
		OvertimeRate: decimal.NewFromInt(300),
	}

	got, err := Compute(ComputeInput{
		Rule:         rule,
		PeriodStart:  day(1),
		PeriodEnd:    day(31),
		WorkingDays:  22,
		Attendance:   presentRecords(3, 700),
		ShiftMinutes: 480,
	})
	require.NoError(t, err)

	assert.Equal(t, "50000.00", got.BasicPay.StringFixed(2))
	assert.True(t, got.OvertimePay.IsZero(), "project pay never accrues overtime")
	assert.Equal(t, "50000.00", got.NetPayable.StringFixed(2))
}

func TestCompute_LateDeduction(t *testing.T) {
	rule := monthlyRule(22000)
	rule.LateRule = payroll.LateRule{Enabled: true, LateDaysThreshold: 3, EquivalentLeaveDays: 1}

	records := presentRecords(19, 480)
	for i := 0; i < 3; i++ {
		minutes := 480
		records = append(records, attendance.Attendance{
			Date:         day(25 + i),
			Status:       attendance.StatusLate,
			TotalMinutes: &minutes,
		})
	}

	t.Run("prorated basis", func(t *testing.T) {
		got, err := Compute(ComputeInput{
			Rule:         rule,
			PeriodStart:  day(1),
			PeriodEnd:    day(31),
			WorkingDays:  22,
			Attendance:   records,
			ShiftMinutes: 480,
		})
		require.NoError(t, err)

		assert.Equal(t, 3, got.LateDays)
		// All 22 days attended, so basic is the full rate and one equivalent
		// day costs 22000/22.
		assert.Equal(t, "1000.00", got.LateDeduction.StringFixed(2))
		assert.Equal(t, "21000.00", got.NetPayable.StringFixed(2))
	})

	t.Run("full rate basis", func(t *testing.T) {
		// Only 13 of 22 days attended, so the prorated basic would give a
		// smaller per-day basis; the full-rate policy still charges 22000/22.
		partial := append(presentRecords(10, 480), records[19], records[20], records[21])

		got, err := Compute(ComputeInput{
			Rule:              rule,
			PeriodStart:       day(1),
			PeriodEnd:         day(31),
			WorkingDays:       22,
			Attendance:        partial,
			ShiftMinutes:      480,
			LateBasisFullRate: true,
		})
		require.NoError(t, err)

		assert.Equal(t, 3, got.LateDays)
		assert.Equal(t, "1000.00", got.LateDeduction.StringFixed(2))
	})

	t.Run("below threshold deducts nothing", func(t *testing.T) {
		got, err := Compute(ComputeInput{
			Rule:         rule,
			PeriodStart:  day(1),
			PeriodEnd:    day(31),
			WorkingDays:  22,
			Attendance:   append(presentRecords(20, 480), records[20], records[21]),
			ShiftMinutes: 480,
		})
		require.NoError(t, err)
		assert.True(t, got.LateDeduction.IsZero())
	})
}

func TestCompute_HalfPaidLeaveSplitsBothWays(t *testing.T) {
	rule := monthlyRule(22000)
	rule.LeaveRule = payroll.LeaveRule{Enabled: true, PerDayDeduction: decimal.NewFromInt(500)}

	halfPaid := leave.Leave{
		Status:    leave.StatusApproved,
		PayStatus: leave.PayStatusHalfPaid,
		StartDate: day(10),
		EndDate:   day(11),
	}

	got, err := Compute(ComputeInput{
		Rule:         rule,
		PeriodStart:  day(1),
		PeriodEnd:    day(31),
		WorkingDays:  22,
		Attendance:   presentRecords(20, 480),
		Leaves:       []leave.Leave{halfPaid},
		ShiftMinutes: 480,
	})
	require.NoError(t, err)

	assert.Equal(t, "1.00", got.PaidLeaveDays.StringFixed(2))
	assert.Equal(t, "1.00", got.UnpaidLeaveDays.StringFixed(2))
	assert.Equal(t, "500.00", got.LeaveDeduction.StringFixed(2))
	// 22000 * 21 / 22 = 21000, minus the half-pay deduction.
	assert.Equal(t, "20500.00", got.NetPayable.StringFixed(2))
}

func TestCompute_LeaveOutsidePeriodClipped(t *testing.T) {
	rule := monthlyRule(22000)

	spanning := leave.Leave{
		Status:    leave.StatusApproved,
		PayStatus: leave.PayStatusPaid,
		StartDate: time.Date(2026, time.February, 26, 0, 0, 0, 0, time.UTC),
		EndDate:   day(2),
	}

	got, err := Compute(ComputeInput{
		Rule:         rule,
		PeriodStart:  day(1),
		PeriodEnd:    day(31),
		WorkingDays:  22,
		Leaves:       []leave.Leave{spanning},
		ShiftMinutes: 480,
	})
	require.NoError(t, err)

	assert.Equal(t, "2.00", got.PaidLeaveDays.StringFixed(2), "only the in-period days count")
}

func TestCompute_OpenSessionIsStaleData(t *testing.T) {
	clockIn := day(5).Add(9 * time.Hour)
	open := attendance.Attendance{
		Date:    day(5),
		Status:  attendance.StatusPresent,
		ClockIn: &clockIn,
	}

	_, err := Compute(ComputeInput{
		Rule:         monthlyRule(22000),
		PeriodStart:  day(1),
		PeriodEnd:    day(31),
		WorkingDays:  22,
		Attendance:   []attendance.Attendance{open},
		ShiftMinutes: 480,
	})

	assert.ErrorIs(t, err, payroll.ErrStaleAttendanceData)
}

func TestCompute_InvalidPeriod(t *testing.T) {
	_, err := Compute(ComputeInput{
		Rule:        monthlyRule(22000),
		PeriodStart: day(10),
		PeriodEnd:   day(1),
		WorkingDays: 22,
	})

	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
}

func TestCompute_NetNeverNegative(t *testing.T) {
	rule := monthlyRule(1000)
	rule.LeaveRule = payroll.LeaveRule{Enabled: true, PerDayDeduction: decimal.NewFromInt(5000)}

	unpaid := leave.Leave{
		Status:    leave.StatusApproved,
		PayStatus: leave.PayStatusUnpaid,
		StartDate: day(1),
		EndDate:   day(10),
	}

	got, err := Compute(ComputeInput{
		Rule:         rule,
		PeriodStart:  day(1),
		PeriodEnd:    day(31),
		WorkingDays:  22,
		Attendance:   presentRecords(2, 480),
		Leaves:       []leave.Leave{unpaid},
		ShiftMinutes: 480,
	})
	require.NoError(t, err)

	assert.True(t, got.NetPayable.IsZero())
}

// Two inputs differing only by currency amounts that round identically must
// produce identical net payable.
func TestCompute_SingleRoundingAtTheEnd(t *testing.T) {
	base := func(rate decimal.Decimal) decimal.Decimal {
		got, err := Compute(ComputeInput{
			Rule: payroll.SalaryRule{
				SalaryType: payroll.SalaryTypeMonthly,
				Rate:       rate,
			},
			PeriodStart:  day(1),
			PeriodEnd:    day(31),
			WorkingDays:  22,
			Attendance:   presentRecords(21, 480),
			ShiftMinutes: 480,
		})
		require.NoError(t, err)
		return got.NetPayable
	}

	a := base(decimal.RequireFromString("30000.0001"))
	b := base(decimal.RequireFromString("30000.0002"))
	assert.True(t, a.Equal(b), "want %s == %s", a, b)

	// Half-up at the boundary: 21/22 of 22000.11 is 21000.105, which must
	// round to .11, not .10.
	c := base(decimal.RequireFromString("22000.11"))
	assert.Equal(t, "21000.11", c.StringFixed(2))
}

func TestCompute_RejectedLeaveIgnored(t *testing.T) {
	rejected := leave.Leave{
		Status:    leave.StatusRejected,
		PayStatus: leave.PayStatusPaid,
		StartDate: day(5),
		EndDate:   day(6),
	}

	got, err := Compute(ComputeInput{
		Rule:         monthlyRule(22000),
		PeriodStart:  day(1),
		PeriodEnd:    day(31),
		WorkingDays:  22,
		Leaves:       []leave.Leave{rejected},
		ShiftMinutes: 480,
	})
	require.NoError(t, err)

	assert.True(t, got.PaidLeaveDays.IsZero())
	assert.True(t, got.UnpaidLeaveDays.IsZero())
}
