package emi

import (
	"time"

	"microfin-backend/internal/domain"
)

// DateOnly truncates t to its calendar day in UTC. All schedule arithmetic
// and ledger matching runs on these normalized dates so that time-of-day and
// zone offsets on stored timestamps cannot shift a due date.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}

// DaysInMonth returns the length of a calendar month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DueDates generates the EMI due dates for a loan inside the inclusive
// window [windowStart, windowEnd], in ascending order. Generation depends
// only on the loan's cadence and EMI start date: Daily steps one day,
// Weekly seven, Monthly emits the start date's day-of-month once per
// calendar month, clamped to the month's last day (start day 31 in a
// 30-day month yields the 30th).
//
// A zero emiStart or an inverted window yields nil.
func DueDates(loanType domain.LoanType, emiStart, windowStart, windowEnd time.Time) []time.Time {
	if emiStart.IsZero() {
		return nil
	}
	start := DateOnly(emiStart)
	lo := DateOnly(windowStart)
	hi := DateOnly(windowEnd)
	if hi.Before(lo) {
		return nil
	}
	// No installment falls due before the EMI start date.
	if lo.Before(start) {
		lo = start
	}
	if hi.Before(start) {
		return nil
	}

	switch loanType {
	case domain.LoanTypeDaily:
		return stepDates(start, lo, hi, 1)
	case domain.LoanTypeWeekly:
		return stepDates(start, lo, hi, 7)
	case domain.LoanTypeMonthly:
		return monthlyDates(start, lo, hi)
	default:
		return nil
	}
}

// NextDueDate returns the first due date strictly after the given day, or
// the zero time when the cadence is unknown. Used to maintain a loan's
// next-EMI pointer after a payment is applied.
func NextDueDate(loanType domain.LoanType, emiStart, after time.Time) time.Time {
	lo := DateOnly(after).AddDate(0, 0, 1)
	// Two months bounds every cadence's next occurrence, clamping included.
	hi := lo.AddDate(0, 2, 0)
	dates := DueDates(loanType, emiStart, lo, hi)
	if len(dates) == 0 {
		return time.Time{}
	}
	return dates[0]
}

// stepDates emits dates on a fixed day grid anchored at start.
func stepDates(start, lo, hi time.Time, stepDays int) []time.Time {
	first := start
	if lo.After(start) {
		elapsed := daysBetween(start, lo)
		steps := elapsed / stepDays
		if elapsed%stepDays != 0 {
			steps++
		}
		first = start.AddDate(0, 0, steps*stepDays)
	}

	var dates []time.Time
	for d := first; !d.After(hi); d = d.AddDate(0, 0, stepDays) {
		dates = append(dates, d)
	}
	return dates
}

// monthlyDates emits one clamped candidate per calendar month in the window.
func monthlyDates(start, lo, hi time.Time) []time.Time {
	dayOfMonth := start.Day()

	var dates []time.Time
	year, month := lo.Year(), lo.Month()
	for {
		cursor := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		if cursor.After(hi) {
			break
		}
		day := dayOfMonth
		if max := DaysInMonth(year, month); day > max {
			day = max
		}
		candidate := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		if !candidate.Before(start) && !candidate.Before(lo) && !candidate.After(hi) {
			dates = append(dates, candidate)
		}
		year, month = nextMonth(year, month)
	}
	return dates
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

// daysBetween counts whole days from a to b; both must be date-only UTC.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}
