package emi

import (
	"time"

	"microfin-backend/internal/domain"
)

// BuildMonthCalendar composes the due-date generator and ledger matcher
// across a customer's loans into a per-day view of one calendar month. The
// result has exactly one CalendarDay per day of month, ascending.
//
// Loans that have been renewed away are superseded by their successor and
// never appear. Pending loans (not yet disbursed) and completed loans are
// skipped; overdue loans are still being collected and stay on the calendar.
// A loan with no EMI start date or a non-positive EMI amount contributes no
// due dates rather than failing the whole build — customer records are not
// guaranteed clean.
//
// When several loans share a due date the amounts are summed, the loan
// numbers accumulated, and the day status merged worst-first (missed >
// partial > due > advance > paid).
func BuildMonthCalendar(loans []domain.Loan, year int, month time.Month, today time.Time) []domain.CalendarDay {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	numDays := DaysInMonth(year, month)
	last := time.Date(year, month, numDays, 0, 0, 0, 0, time.UTC)

	type dayAggregate struct {
		status      domain.DayStatus
		amount      float64
		loanNumbers []string
	}
	due := make(map[int]*dayAggregate)

	for i := range loans {
		loan := &loans[i]
		if !scheduledForCollection(loan) {
			continue
		}
		for _, d := range DueDates(loan.LoanType, loan.EmiStartDate, first, last) {
			cls := Classify(d, loan.EmiHistory, today)
			agg := due[d.Day()]
			if agg == nil {
				agg = &dayAggregate{}
				due[d.Day()] = agg
			}
			agg.amount += cls.Amount
			agg.status = WorseStatus(agg.status, cls.Status)
			agg.loanNumbers = append(agg.loanNumbers, loan.LoanNumber)
		}
	}

	todayDate := DateOnly(today)
	days := make([]domain.CalendarDay, 0, numDays)
	for dayNum := 1; dayNum <= numDays; dayNum++ {
		date := time.Date(year, month, dayNum, 0, 0, 0, 0, time.UTC)
		day := domain.CalendarDay{
			Date:      date,
			IsWeekend: date.Weekday() == time.Saturday || date.Weekday() == time.Sunday,
			IsToday:   date.Equal(todayDate),
			IsPast:    date.Before(todayDate),
		}
		if agg, ok := due[dayNum]; ok {
			day.IsEmiDue = true
			day.Status = agg.status
			day.Amount = agg.amount
			day.LoanNumbers = agg.loanNumbers
		}
		days = append(days, day)
	}
	return days
}

func scheduledForCollection(loan *domain.Loan) bool {
	if loan.IsRenewed {
		return false
	}
	if loan.Status != domain.LoanStatusActive && loan.Status != domain.LoanStatusOverdue {
		return false
	}
	return loan.EmiAmount > 0 && !loan.EmiStartDate.IsZero()
}
