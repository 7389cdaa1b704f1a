package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"microfin-backend/internal/domain"
)

func fixedNow() time.Time {
	return time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)
}

func dailyInput(amount float64, days int) LoanInput {
	return LoanInput{
		Amount:       amount,
		EmiAmount:    amount / float64(days),
		LoanType:     domain.LoanTypeDaily,
		EmiType:      domain.EmiTypeFixed,
		LoanDays:     days,
		EmiStartDate: time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC),
	}
}

func TestLoanService_Issue(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		loanRepo := new(MockLoanRepo)
		customerRepo := new(MockCustomerRepo)
		svc := NewLoanService(loanRepo, customerRepo, fixedNow)

		customerRepo.On("GetByID", ctx, "cust-1").Return(&domain.Customer{ID: "cust-1"}, nil)
		loanRepo.On("ListByCustomer", ctx, "cust-1").Return([]domain.Loan{{LoanNumber: "LN1"}}, nil)
		loanRepo.On("Create", ctx, mock.AnythingOfType("*domain.Loan")).Return(nil)

		loan, err := svc.Issue(ctx, "cust-1", dailyInput(10000, 100))
		assert.NoError(t, err)
		assert.Equal(t, "LN2", loan.LoanNumber)
		assert.Equal(t, domain.LoanStatusActive, loan.Status)
		assert.InDelta(t, 10000, loan.TotalAmount, 0.001)
		assert.InDelta(t, 10000, loan.RemainingAmount, 0.001)
		assert.NotNil(t, loan.NextEmiDate)
		assert.Equal(t, loan.EmiStartDate, *loan.NextEmiDate)
	})

	t.Run("NumberingSkipsDeletedLoans", func(t *testing.T) {
		loanRepo := new(MockLoanRepo)
		customerRepo := new(MockCustomerRepo)
		svc := NewLoanService(loanRepo, customerRepo, fixedNow)

		customerRepo.On("GetByID", ctx, "cust-1").Return(&domain.Customer{ID: "cust-1"}, nil)
		// LN2 was deleted; the survivors keep their numbers.
		loanRepo.On("ListByCustomer", ctx, "cust-1").Return([]domain.Loan{
			{LoanNumber: "LN1"},
			{LoanNumber: "LN3"},
		}, nil)
		loanRepo.On("Create", ctx, mock.AnythingOfType("*domain.Loan")).Return(nil)

		loan, err := svc.Issue(ctx, "cust-1", dailyInput(10000, 100))
		assert.NoError(t, err)
		assert.Equal(t, "LN4", loan.LoanNumber)
	})

	t.Run("LimitReached", func(t *testing.T) {
		loanRepo := new(MockLoanRepo)
		customerRepo := new(MockCustomerRepo)
		svc := NewLoanService(loanRepo, customerRepo, fixedNow)

		customerRepo.On("GetByID", ctx, "cust-1").Return(&domain.Customer{ID: "cust-1"}, nil)
		existing := make([]domain.Loan, domain.MaxLoansPerCustomer)
		for i := range existing {
			existing[i].LoanNumber = fmt.Sprintf("LN%d", i+1)
		}
		loanRepo.On("ListByCustomer", ctx, "cust-1").Return(existing, nil)

		_, err := svc.Issue(ctx, "cust-1", dailyInput(10000, 100))
		assert.ErrorIs(t, err, ErrLoanLimitReached)
	})

	t.Run("LimitCountsDeletedNumbers", func(t *testing.T) {
		loanRepo := new(MockLoanRepo)
		customerRepo := new(MockCustomerRepo)
		svc := NewLoanService(loanRepo, customerRepo, fixedNow)

		customerRepo.On("GetByID", ctx, "cust-1").Return(&domain.Customer{ID: "cust-1"}, nil)
		// Only one survivor, but it already carries the last number.
		loanRepo.On("ListByCustomer", ctx, "cust-1").Return([]domain.Loan{
			{LoanNumber: fmt.Sprintf("LN%d", domain.MaxLoansPerCustomer)},
		}, nil)

		_, err := svc.Issue(ctx, "cust-1", dailyInput(10000, 100))
		assert.ErrorIs(t, err, ErrLoanLimitReached)
	})

	t.Run("ZeroEmiRejected", func(t *testing.T) {
		loanRepo := new(MockLoanRepo)
		customerRepo := new(MockCustomerRepo)
		svc := NewLoanService(loanRepo, customerRepo, fixedNow)

		customerRepo.On("GetByID", ctx, "cust-1").Return(&domain.Customer{ID: "cust-1"}, nil)
		loanRepo.On("ListByCustomer", ctx, "cust-1").Return([]domain.Loan{}, nil)

		in := dailyInput(10000, 100)
		in.EmiAmount = 0
		_, err := svc.Issue(ctx, "cust-1", in)
		assert.ErrorIs(t, err, ErrInvalidLoanTerms)
	})

	t.Run("DailyCustomRejected", func(t *testing.T) {
		loanRepo := new(MockLoanRepo)
		customerRepo := new(MockCustomerRepo)
		svc := NewLoanService(loanRepo, customerRepo, fixedNow)

		customerRepo.On("GetByID", ctx, "cust-1").Return(&domain.Customer{ID: "cust-1"}, nil)
		loanRepo.On("ListByCustomer", ctx, "cust-1").Return([]domain.Loan{}, nil)

		in := dailyInput(10000, 100)
		in.EmiType = domain.EmiTypeCustom
		last := 500.0
		in.CustomEmiAmount = &last
		_, err := svc.Issue(ctx, "cust-1", in)
		assert.ErrorIs(t, err, ErrInvalidLoanTerms)
	})
}

func TestLoanService_Renew(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		loanRepo := new(MockLoanRepo)
		customerRepo := new(MockCustomerRepo)
		svc := NewLoanService(loanRepo, customerRepo, fixedNow)

		old := &domain.Loan{
			ID:         "loan-1",
			CustomerID: "cust-1",
			LoanNumber: "LN1",
			Status:     domain.LoanStatusActive,
		}
		loanRepo.On("GetByID", ctx, "loan-1").Return(old, nil)
		loanRepo.On("ListByCustomer", ctx, "cust-1").Return([]domain.Loan{*old}, nil)
		loanRepo.On("Create", ctx, mock.AnythingOfType("*domain.Loan")).Return(nil)
		loanRepo.On("Update", ctx, old).Return(nil)

		successor, err := svc.Renew(ctx, "loan-1", dailyInput(20000, 200))
		assert.NoError(t, err)
		assert.Equal(t, "LN2", successor.LoanNumber)
		assert.Equal(t, "LN1", successor.OriginalLoanNumber)
		assert.True(t, old.IsRenewed)
		assert.Equal(t, "LN2", old.RenewedLoanNumber)
		assert.Equal(t, domain.LoanStatusCompleted, old.Status)
	})

	t.Run("SuccessorSkipsDeletedNumbers", func(t *testing.T) {
		loanRepo := new(MockLoanRepo)
		customerRepo := new(MockCustomerRepo)
		svc := NewLoanService(loanRepo, customerRepo, fixedNow)

		old := &domain.Loan{
			ID:         "loan-1",
			CustomerID: "cust-1",
			LoanNumber: "LN1",
			Status:     domain.LoanStatusActive,
		}
		loanRepo.On("GetByID", ctx, "loan-1").Return(old, nil)
		loanRepo.On("ListByCustomer", ctx, "cust-1").Return([]domain.Loan{
			*old,
			{LoanNumber: "LN4"},
		}, nil)
		loanRepo.On("Create", ctx, mock.AnythingOfType("*domain.Loan")).Return(nil)
		loanRepo.On("Update", ctx, old).Return(nil)

		successor, err := svc.Renew(ctx, "loan-1", dailyInput(20000, 200))
		assert.NoError(t, err)
		assert.Equal(t, "LN5", successor.LoanNumber)
	})

	t.Run("AlreadyRenewed", func(t *testing.T) {
		loanRepo := new(MockLoanRepo)
		customerRepo := new(MockCustomerRepo)
		svc := NewLoanService(loanRepo, customerRepo, fixedNow)

		loanRepo.On("GetByID", ctx, "loan-1").Return(&domain.Loan{
			ID:        "loan-1",
			Status:    domain.LoanStatusActive,
			IsRenewed: true,
		}, nil)

		_, err := svc.Renew(ctx, "loan-1", dailyInput(20000, 200))
		assert.ErrorIs(t, err, ErrLoanNotRenewable)
	})

	t.Run("CompletedNotRenewable", func(t *testing.T) {
		loanRepo := new(MockLoanRepo)
		customerRepo := new(MockCustomerRepo)
		svc := NewLoanService(loanRepo, customerRepo, fixedNow)

		loanRepo.On("GetByID", ctx, "loan-1").Return(&domain.Loan{
			ID:     "loan-1",
			Status: domain.LoanStatusCompleted,
		}, nil)

		_, err := svc.Renew(ctx, "loan-1", dailyInput(20000, 200))
		assert.ErrorIs(t, err, ErrLoanNotRenewable)
	})
}

func TestLoanService_Completion(t *testing.T) {
	ctx := context.Background()
	loanRepo := new(MockLoanRepo)
	customerRepo := new(MockCustomerRepo)
	svc := NewLoanService(loanRepo, customerRepo, fixedNow)

	loanRepo.On("GetByID", ctx, "loan-1").Return(&domain.Loan{
		ID:              "loan-1",
		LoanType:        domain.LoanTypeDaily,
		EmiType:         domain.EmiTypeFixed,
		EmiAmount:       100,
		LoanDays:        100,
		TotalAmount:     10000,
		EmiPaidCount:    40,
		TotalPaidAmount: 4000,
		RemainingAmount: 6000,
	}, nil)

	summary, err := svc.Completion(ctx, "loan-1")
	assert.NoError(t, err)
	assert.Equal(t, 40, summary.PaidCount)
	assert.Equal(t, 100, summary.TotalCount)
	assert.InDelta(t, 40.0, summary.CompletionPercentage, 0.001)
	assert.InDelta(t, 6000.0, summary.RemainingAmount, 0.001)
}

func TestLoanService_MonthCalendar(t *testing.T) {
	ctx := context.Background()
	loanRepo := new(MockLoanRepo)
	customerRepo := new(MockCustomerRepo)
	svc := NewLoanService(loanRepo, customerRepo, fixedNow)

	customerRepo.On("GetByID", ctx, "cust-1").Return(&domain.Customer{ID: "cust-1"}, nil)
	loanRepo.On("ListByCustomer", ctx, "cust-1").Return([]domain.Loan{
		{
			LoanNumber:   "LN1",
			LoanType:     domain.LoanTypeDaily,
			EmiAmount:    100,
			EmiStartDate: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			Status:       domain.LoanStatusActive,
		},
	}, nil)

	days, err := svc.MonthCalendar(ctx, "cust-1", 2024, time.March)
	assert.NoError(t, err)
	assert.Len(t, days, 31)
	assert.True(t, days[0].IsEmiDue)
	assert.Equal(t, domain.DayStatusMissed, days[0].Status)
}
