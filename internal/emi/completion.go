package emi

import "microfin-backend/internal/domain"

// CompletionSummary aggregates a loan's repayment progress.
type CompletionSummary struct {
	PaidCount            int     `json:"paid_count"`
	TotalCount           int     `json:"total_count"`
	PaidAmount           float64 `json:"paid_amount"`
	TotalAmount          float64 `json:"total_amount"`
	RemainingAmount      float64 `json:"remaining_amount"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

// LedgerDrift is the disagreement between a loan's stored counters and what
// its payment ledger actually sums to.
type LedgerDrift struct {
	CountDelta  int     `json:"count_delta"`  // stored paid count minus ledger entry count
	AmountDelta float64 `json:"amount_delta"` // stored paid amount minus ledger amount sum
}

func (d LedgerDrift) Zero() bool {
	return d.CountDelta == 0 && d.AmountDelta == 0
}

// Completion summarizes repayment progress from the loan's stored counters.
// The counters are the write-path invariant (every applied payment bumps
// them), so they are trusted here; ReconcileCompletion checks them against
// the ledger.
//
// The percentage is clamped to [0, 100] and a zero period count yields 0.
func Completion(loan *domain.Loan) CompletionSummary {
	total := TotalLoanAmount(loan.LoanType, loan.EmiType, loan.EmiAmount, loan.LoanDays, loan.CustomLastAmount())

	remaining := total - loan.TotalPaidAmount
	if remaining < 0 {
		remaining = 0
	}

	var pct float64
	if loan.LoanDays > 0 {
		pct = float64(loan.EmiPaidCount) / float64(loan.LoanDays) * 100
		if pct > 100 {
			pct = 100
		}
		if pct < 0 {
			pct = 0
		}
	}

	return CompletionSummary{
		PaidCount:            loan.EmiPaidCount,
		TotalCount:           loan.LoanDays,
		PaidAmount:           loan.TotalPaidAmount,
		TotalAmount:          total,
		RemainingAmount:      remaining,
		CompletionPercentage: pct,
	}
}

// ReconcileCompletion recomputes paid count and amount from the ledger and
// returns the drift against the stored counters. Callers log non-zero drift;
// the stored counters still win for reporting (the ledger may legitimately
// carry several partial entries for one period).
func ReconcileCompletion(loan *domain.Loan) LedgerDrift {
	var sum float64
	for _, rec := range loan.EmiHistory {
		sum += rec.Amount
	}
	return LedgerDrift{
		CountDelta:  loan.EmiPaidCount - len(loan.EmiHistory),
		AmountDelta: loan.TotalPaidAmount - sum,
	}
}
