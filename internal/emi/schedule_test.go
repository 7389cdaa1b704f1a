package emi

import (
	"testing"
	"time"

	"microfin-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year     int
		month    time.Month
		expected int
	}{
		{2024, time.January, 31},
		{2024, time.February, 29}, // leap year
		{2023, time.February, 28},
		{2024, time.April, 30},
		{2024, time.December, 31},
		{2000, time.February, 29}, // divisible by 400
		{1900, time.February, 28}, // divisible by 100 but not 400
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, DaysInMonth(tt.year, tt.month))
	}
}

func TestDueDates_Daily(t *testing.T) {
	t.Run("One date per day across January", func(t *testing.T) {
		dates := DueDates(domain.LoanTypeDaily, date(2024, time.January, 1), date(2024, time.January, 1), date(2024, time.January, 31))
		require.Len(t, dates, 31)
		for i, d := range dates {
			assert.Equal(t, date(2024, time.January, i+1), d)
		}
	})

	t.Run("Window starts before EMI start", func(t *testing.T) {
		dates := DueDates(domain.LoanTypeDaily, date(2024, time.January, 15), date(2024, time.January, 1), date(2024, time.January, 31))
		require.Len(t, dates, 17)
		assert.Equal(t, date(2024, time.January, 15), dates[0])
	})

	t.Run("Window entirely before EMI start", func(t *testing.T) {
		dates := DueDates(domain.LoanTypeDaily, date(2024, time.March, 1), date(2024, time.January, 1), date(2024, time.January, 31))
		assert.Empty(t, dates)
	})
}

func TestDueDates_Weekly(t *testing.T) {
	t.Run("Every seventh day", func(t *testing.T) {
		dates := DueDates(domain.LoanTypeWeekly, date(2024, time.January, 1), date(2024, time.January, 1), date(2024, time.January, 31))
		assert.Equal(t, []time.Time{
			date(2024, time.January, 1),
			date(2024, time.January, 8),
			date(2024, time.January, 15),
			date(2024, time.January, 22),
			date(2024, time.January, 29),
		}, dates)
	})

	t.Run("Later window stays on the seven-day grid", func(t *testing.T) {
		// Loan started Jan 1; February dues must stay anchored to it.
		dates := DueDates(domain.LoanTypeWeekly, date(2024, time.January, 1), date(2024, time.February, 1), date(2024, time.February, 29))
		assert.Equal(t, []time.Time{
			date(2024, time.February, 5),
			date(2024, time.February, 12),
			date(2024, time.February, 19),
			date(2024, time.February, 26),
		}, dates)
	})
}

func TestDueDates_Monthly(t *testing.T) {
	t.Run("Day of month carried forward", func(t *testing.T) {
		dates := DueDates(domain.LoanTypeMonthly, date(2024, time.January, 15), date(2024, time.March, 1), date(2024, time.March, 31))
		assert.Equal(t, []time.Time{date(2024, time.March, 15)}, dates)
	})

	t.Run("Start day 31 clamps to leap February 29", func(t *testing.T) {
		dates := DueDates(domain.LoanTypeMonthly, date(2024, time.January, 31), date(2024, time.February, 1), date(2024, time.February, 29))
		assert.Equal(t, []time.Time{date(2024, time.February, 29)}, dates)
	})

	t.Run("Start day 31 clamps to 30-day month", func(t *testing.T) {
		dates := DueDates(domain.LoanTypeMonthly, date(2024, time.January, 31), date(2024, time.April, 1), date(2024, time.April, 30))
		assert.Equal(t, []time.Time{date(2024, time.April, 30)}, dates)
	})

	t.Run("Multi-month window emits one date per month", func(t *testing.T) {
		dates := DueDates(domain.LoanTypeMonthly, date(2024, time.January, 31), date(2024, time.January, 1), date(2024, time.April, 30))
		assert.Equal(t, []time.Time{
			date(2024, time.January, 31),
			date(2024, time.February, 29),
			date(2024, time.March, 31),
			date(2024, time.April, 30),
		}, dates)
	})

	t.Run("No due before EMI start even when day matches", func(t *testing.T) {
		dates := DueDates(domain.LoanTypeMonthly, date(2024, time.March, 15), date(2024, time.February, 1), date(2024, time.February, 29))
		assert.Empty(t, dates)
	})
}

func TestDueDates_Degenerate(t *testing.T) {
	t.Run("Zero start date", func(t *testing.T) {
		assert.Nil(t, DueDates(domain.LoanTypeDaily, time.Time{}, date(2024, time.January, 1), date(2024, time.January, 31)))
	})

	t.Run("Inverted window", func(t *testing.T) {
		assert.Nil(t, DueDates(domain.LoanTypeDaily, date(2024, time.January, 1), date(2024, time.January, 31), date(2024, time.January, 1)))
	})

	t.Run("Unknown loan type", func(t *testing.T) {
		assert.Nil(t, DueDates(domain.LoanType("Quarterly"), date(2024, time.January, 1), date(2024, time.January, 1), date(2024, time.January, 31)))
	})
}

func TestDueDates_TimeOfDayIrrelevant(t *testing.T) {
	// Timestamps with clock components normalize to their calendar day.
	noisy := time.Date(2024, time.January, 1, 23, 50, 12, 0, time.UTC)
	dates := DueDates(domain.LoanTypeWeekly, noisy, date(2024, time.January, 1), date(2024, time.January, 14))
	assert.Equal(t, []time.Time{date(2024, time.January, 1), date(2024, time.January, 8)}, dates)
}
