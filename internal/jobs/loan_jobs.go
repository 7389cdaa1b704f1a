package jobs

import (
	"context"
	"time"

	"microfin-backend/internal/domain"
	"microfin-backend/internal/emi"
	"microfin-backend/internal/logger"
)

// MarkOverdueLoans flags active loans that carry at least one missed EMI.
func (jr *JobRunner) MarkOverdueLoans() {
	jr.runWithRecovery("MarkOverdueLoans", func() {
		ctx := context.Background()
		today := emi.DateOnly(jr.now())
		yesterday := today.AddDate(0, 0, -1)

		loans, err := jr.store.Loans.ListByStatus(ctx, domain.LoanStatusActive)
		if err != nil {
			logger.Error("Failed to list active loans", "error", err)
			return
		}

		count := 0
		for i := range loans {
			if loans[i].IsRenewed || loans[i].EmiStartDate.IsZero() {
				continue
			}

			// Only GetByID guarantees the ledger is loaded.
			loan, err := jr.store.Loans.GetByID(ctx, loans[i].ID)
			if err != nil {
				logger.Error("Failed to load loan", "loan_id", loans[i].ID, "error", err)
				continue
			}

			if !hasMissedInstallment(loan, yesterday, today) {
				continue
			}

			loan.Status = domain.LoanStatusOverdue
			if err := jr.store.Loans.Update(ctx, loan); err != nil {
				logger.Error("Failed to mark loan overdue", "loan_id", loan.ID, "error", err)
				continue
			}
			count++
			logger.Debug("Marked loan as overdue",
				"loan_id", loan.ID,
				"customer_id", loan.CustomerID,
				"loan_number", loan.LoanNumber)
		}

		logger.Info("Marked loans as overdue", "count", count)
	})
}

// hasMissedInstallment reports whether any due date up to and including upTo
// has no covering ledger entry.
func hasMissedInstallment(loan *domain.Loan, upTo, today time.Time) bool {
	dues := emi.DueDates(loan.LoanType, loan.EmiStartDate, loan.EmiStartDate, upTo)
	for _, due := range dues {
		cls := emi.Classify(due, loan.EmiHistory, today)
		if cls.Status == domain.DayStatusMissed {
			return true
		}
	}
	return false
}

// SweepCompletedLoans closes loans whose ledger has fully covered the total.
func (jr *JobRunner) SweepCompletedLoans() {
	jr.runWithRecovery("SweepCompletedLoans", func() {
		ctx := context.Background()

		count := 0
		for _, status := range []domain.LoanStatus{domain.LoanStatusActive, domain.LoanStatusOverdue} {
			loans, err := jr.store.Loans.ListByStatus(ctx, status)
			if err != nil {
				logger.Error("Failed to list loans", "status", status, "error", err)
				continue
			}

			for i := range loans {
				loan := &loans[i]
				if loan.TotalAmount <= 0 || loan.TotalPaidAmount < loan.TotalAmount {
					continue
				}

				loan.Status = domain.LoanStatusCompleted
				loan.RemainingAmount = 0
				loan.NextEmiDate = nil
				if err := jr.store.Loans.Update(ctx, loan); err != nil {
					logger.Error("Failed to close loan", "loan_id", loan.ID, "error", err)
					continue
				}
				count++
				logger.Debug("Closed fully paid loan",
					"loan_id", loan.ID,
					"loan_number", loan.LoanNumber)
			}
		}

		logger.Info("Swept fully paid loans", "count", count)
	})
}
