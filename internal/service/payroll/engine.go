package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/staffdesk/hr-backoffice/internal/domain/attendance"
	"github.com/staffdesk/hr-backoffice/internal/domain/calendar"
	"github.com/staffdesk/hr-backoffice/internal/domain/leave"
	"github.com/staffdesk/hr-backoffice/internal/domain/payroll"
)

var (
	sixty      = decimal.NewFromInt(60)
	oneDay     = decimal.NewFromInt(1)
	roundScale = int32(2)
)

// ComputeInput is everything the payroll engine needs for one employee and
// pay period. All data is already fetched; the engine itself never touches
// storage.
type ComputeInput struct {
	Rule        payroll.SalaryRule
	PeriodStart time.Time
	PeriodEnd   time.Time

	// WorkingDays is the number of working days in the period per the
	// company calendar.
	WorkingDays int

	Attendance []attendance.Attendance
	Leaves     []leave.Leave

	// ShiftMinutes is the shift length a day's hours are judged against when
	// splitting regular time from overtime.
	ShiftMinutes int

	// LateBasisFullRate switches the late-deduction basis from the prorated
	// basic pay to the rule's full monthly rate.
	LateBasisFullRate bool
}

// Result is a fully computed payslip breakdown. All currency amounts carry
// the final 2-decimal rounding; nothing intermediate was rounded.
type Result struct {
	WorkingDays     int
	PresentDays     int
	LateDays        int
	PaidLeaveDays   decimal.Decimal
	UnpaidLeaveDays decimal.Decimal
	BasicPay        decimal.Decimal
	OvertimePay     decimal.Decimal
	Bonus           decimal.Decimal
	LeaveDeduction  decimal.Decimal
	LateDeduction   decimal.Decimal
	NetPayable      decimal.Decimal
}

// Compute produces the payslip for one employee and period. It either
// succeeds with a complete breakdown or fails with no partial result.
func Compute(in ComputeInput) (Result, error) {
	if in.PeriodEnd.Before(in.PeriodStart) {
		return Result{}, payroll.ErrInvalidPeriod
	}

	presentDays := 0
	lateDays := 0
	regularMinutes := 0
	overtimeMinutes := 0

	for _, rec := range in.Attendance {
		switch rec.Status {
		case attendance.StatusPresent, attendance.StatusLate:
		default:
			continue
		}
		if rec.IsOpenSession() {
			return Result{}, payroll.ErrStaleAttendanceData
		}

		presentDays++
		if rec.Status == attendance.StatusLate {
			lateDays++
		}

		minutes := 0
		if rec.TotalMinutes != nil {
			minutes = *rec.TotalMinutes
		}
		if in.ShiftMinutes > 0 && minutes > in.ShiftMinutes {
			regularMinutes += in.ShiftMinutes
			overtimeMinutes += minutes - in.ShiftMinutes
		} else {
			regularMinutes += minutes
		}
	}

	paidLeaveDays, unpaidLeaveDays := countLeaveDays(in.Leaves, in.PeriodStart, in.PeriodEnd)

	basicPay := basicPayFor(in, presentDays, paidLeaveDays, regularMinutes)
	overtimePay := overtimePayFor(in.Rule, overtimeMinutes)

	leaveDeduction := decimal.Zero
	if in.Rule.LeaveRule.Enabled {
		leaveDeduction = in.Rule.LeaveRule.PerDayDeduction.Mul(unpaidLeaveDays)
	}

	lateDeduction := decimal.Zero
	if in.Rule.LateRule.Enabled && in.Rule.LateRule.LateDaysThreshold > 0 &&
		lateDays >= in.Rule.LateRule.LateDaysThreshold && in.WorkingDays > 0 {
		basis := basicPay
		if in.LateBasisFullRate && in.Rule.SalaryType == payroll.SalaryTypeMonthly {
			basis = in.Rule.Rate
		}
		perDay := basis.Div(decimal.NewFromInt(int64(in.WorkingDays)))
		lateDeduction = perDay.Mul(decimal.NewFromInt(int64(in.Rule.LateRule.EquivalentLeaveDays)))
	}

	netPayable := basicPay.Add(overtimePay).Add(in.Rule.Bonus).Sub(leaveDeduction).Sub(lateDeduction)
	if netPayable.IsNegative() {
		netPayable = decimal.Zero
	}

	return Result{
		WorkingDays:     in.WorkingDays,
		PresentDays:     presentDays,
		LateDays:        lateDays,
		PaidLeaveDays:   paidLeaveDays,
		UnpaidLeaveDays: unpaidLeaveDays,
		BasicPay:        basicPay.Round(roundScale),
		OvertimePay:     overtimePay.Round(roundScale),
		Bonus:           in.Rule.Bonus.Round(roundScale),
		LeaveDeduction:  leaveDeduction.Round(roundScale),
		LateDeduction:   lateDeduction.Round(roundScale),
		NetPayable:      netPayable.Round(roundScale),
	}, nil
}

// basicPayFor computes the unrounded basic pay per salary type. Overtime
// minutes are excluded here and paid at the overtime rate only.
func basicPayFor(in ComputeInput, presentDays int, paidLeaveDays decimal.Decimal, regularMinutes int) decimal.Decimal {
	switch in.Rule.SalaryType {
	case payroll.SalaryTypeMonthly:
		if in.WorkingDays <= 0 {
			return decimal.Zero
		}
		payableDays := decimal.NewFromInt(int64(presentDays)).Add(paidLeaveDays)
		return in.Rule.Rate.Mul(payableDays).Div(decimal.NewFromInt(int64(in.WorkingDays)))
	case payroll.SalaryTypeHourly:
		hours := decimal.NewFromInt(int64(regularMinutes)).Div(sixty)
		return in.Rule.Rate.Mul(hours)
	case payroll.SalaryTypeProject:
		return in.Rule.Rate
	}
	return decimal.Zero
}

func overtimePayFor(rule payroll.SalaryRule, overtimeMinutes int) decimal.Decimal {
	if rule.SalaryType == payroll.SalaryTypeProject || overtimeMinutes <= 0 {
		return decimal.Zero
	}
	hours := decimal.NewFromInt(int64(overtimeMinutes)).Div(sixty)
	return rule.OvertimeRate.Mul(hours)
}

// countLeaveDays splits approved leave overlapping the period into its paid
// and unpaid day portions. HalfPaid leave contributes half a day to each.
func countLeaveDays(leaves []leave.Leave, periodStart, periodEnd time.Time) (paid, unpaid decimal.Decimal) {
	paid = decimal.Zero
	unpaid = decimal.Zero

	periodStart = calendar.DayOf(periodStart)
	periodEnd = calendar.DayOf(periodEnd)

	for _, lv := range leaves {
		if lv.Status != leave.StatusApproved {
			continue
		}
		from := calendar.DayOf(lv.StartDate)
		if from.Before(periodStart) {
			from = periodStart
		}
		to := calendar.DayOf(lv.EndDate)
		if to.After(periodEnd) {
			to = periodEnd
		}
		if to.Before(from) {
			continue
		}

		days := decimal.NewFromInt(int64(to.Sub(from).Hours()/24) + 1)
		weight := decimal.NewFromFloat(lv.PayStatus.PayWeight())
		paid = paid.Add(days.Mul(weight))
		unpaid = unpaid.Add(days.Mul(oneDay.Sub(weight)))
	}
	return paid, unpaid
}
