// Package emi holds the EMI scheduling and completion engine: total-amount
// arithmetic, due-date generation, ledger classification and the month
// calendar view. Everything here is a pure function of its inputs; "today"
// is always an explicit parameter, never a clock read.
package emi

import "microfin-backend/internal/domain"

// TotalLoanAmount computes the total repayable amount for a loan.
//
// Daily loans never carry a custom last installment, so the amount is always
// emiAmount * periodCount. Weekly/Monthly loans with the custom variant pay
// periodCount-1 equal installments plus a differing final one.
//
// Incomplete inputs (non-positive emiAmount or periodCount, or a missing
// custom amount where one is required) compute to 0: an unfinished entry
// form is "not yet computable", not an error.
func TotalLoanAmount(loanType domain.LoanType, emiType domain.EmiType, emiAmount float64, periodCount int, customLast float64) float64 {
	if emiAmount <= 0 || periodCount <= 0 {
		return 0
	}
	if loanType != domain.LoanTypeDaily && emiType == domain.EmiTypeCustom {
		if customLast <= 0 {
			return 0
		}
		return emiAmount*float64(periodCount-1) + customLast
	}
	return emiAmount * float64(periodCount)
}

// PeriodLabel names the scheduling unit of a loan type.
func PeriodLabel(loanType domain.LoanType) string {
	switch loanType {
	case domain.LoanTypeDaily:
		return "days"
	case domain.LoanTypeWeekly:
		return "weeks"
	case domain.LoanTypeMonthly:
		return "months"
	default:
		return ""
	}
}
