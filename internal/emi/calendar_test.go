package emi

import (
	"testing"
	"time"

	"microfin-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dailyLoan(number string, start time.Time, history ...domain.PaymentRecord) domain.Loan {
	return domain.Loan{
		LoanNumber:   number,
		LoanType:     domain.LoanTypeDaily,
		EmiType:      domain.EmiTypeFixed,
		EmiAmount:    500,
		LoanDays:     100,
		EmiStartDate: start,
		Status:       domain.LoanStatusActive,
		EmiHistory:   history,
	}
}

func TestBuildMonthCalendar_Shape(t *testing.T) {
	today := date(2024, time.March, 10)
	days := BuildMonthCalendar(nil, 2024, time.March, today)

	require.Len(t, days, 31)
	assert.Equal(t, date(2024, time.March, 1), days[0].Date)
	assert.Equal(t, date(2024, time.March, 31), days[30].Date)

	for _, d := range days {
		assert.False(t, d.IsEmiDue)
		assert.Empty(t, d.Status)
	}

	// 2024-03-09 was a Saturday.
	assert.True(t, days[8].IsWeekend)
	assert.True(t, days[9].IsWeekend)
	assert.False(t, days[10].IsWeekend)

	assert.True(t, days[9].IsToday)
	assert.True(t, days[8].IsPast)
	assert.False(t, days[10].IsPast)
}

func TestBuildMonthCalendar_MergesLoansOnSharedDueDate(t *testing.T) {
	today := date(2024, time.March, 10)
	loans := []domain.Loan{
		dailyLoan("LN1", date(2024, time.March, 1),
			payment(date(2024, time.March, 5), 500, domain.PaymentStatusPaid)),
		dailyLoan("LN2", date(2024, time.March, 1)),
	}

	days := BuildMonthCalendar(loans, 2024, time.March, today)
	march5 := days[4]

	assert.True(t, march5.IsEmiDue)
	assert.Equal(t, 500.0, march5.Amount)
	assert.ElementsMatch(t, []string{"LN1", "LN2"}, march5.LoanNumbers)
	// LN2 has no payment for a past date: the unpaid loan dominates.
	assert.Equal(t, domain.DayStatusMissed, march5.Status)
}

func TestBuildMonthCalendar_FiltersLoans(t *testing.T) {
	today := date(2024, time.March, 10)

	renewed := dailyLoan("LN1", date(2024, time.March, 1))
	renewed.IsRenewed = true
	completed := dailyLoan("LN2", date(2024, time.March, 1))
	completed.Status = domain.LoanStatusCompleted
	pending := dailyLoan("LN3", date(2024, time.March, 1))
	pending.Status = domain.LoanStatusPending
	noStart := dailyLoan("LN4", time.Time{})
	noAmount := dailyLoan("LN5", date(2024, time.March, 1))
	noAmount.EmiAmount = 0
	overdue := dailyLoan("LN6", date(2024, time.March, 1))
	overdue.Status = domain.LoanStatusOverdue

	days := BuildMonthCalendar([]domain.Loan{renewed, completed, pending, noStart, noAmount, overdue}, 2024, time.March, today)

	// Only the overdue loan survives the filter; overdue loans are still
	// being collected.
	for _, d := range days {
		if d.IsEmiDue {
			assert.Equal(t, []string{"LN6"}, d.LoanNumbers)
		}
	}
	assert.True(t, days[0].IsEmiDue)
}

func TestBuildMonthCalendar_MonthlyClampLandsOnLastDay(t *testing.T) {
	today := date(2024, time.February, 1)
	loan := domain.Loan{
		LoanNumber:   "LN1",
		LoanType:     domain.LoanTypeMonthly,
		EmiType:      domain.EmiTypeFixed,
		EmiAmount:    2000,
		LoanDays:     12,
		EmiStartDate: date(2024, time.January, 31),
		Status:       domain.LoanStatusActive,
	}

	days := BuildMonthCalendar([]domain.Loan{loan}, 2024, time.February, today)
	require.Len(t, days, 29)

	var dueCount int
	for _, d := range days {
		if d.IsEmiDue {
			dueCount++
			assert.Equal(t, date(2024, time.February, 29), d.Date)
		}
	}
	assert.Equal(t, 1, dueCount)
}

func TestBuildMonthCalendar_Idempotent(t *testing.T) {
	today := date(2024, time.March, 10)
	loans := []domain.Loan{
		dailyLoan("LN1", date(2024, time.March, 1),
			payment(date(2024, time.March, 3), 500, domain.PaymentStatusPaid),
			payment(date(2024, time.March, 4), 250, domain.PaymentStatusPartial)),
	}

	first := BuildMonthCalendar(loans, 2024, time.March, today)
	second := BuildMonthCalendar(loans, 2024, time.March, today)
	assert.Equal(t, first, second)
}
