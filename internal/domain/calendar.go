package domain

import "time"

// DayStatus classifies a due date against the payment ledger.
type DayStatus string

const (
	DayStatusPaid    DayStatus = "paid"
	DayStatusPartial DayStatus = "partial"
	DayStatusAdvance DayStatus = "advance"
	DayStatusMissed  DayStatus = "missed"
	DayStatusDue     DayStatus = "due"
)

// CalendarDay is one day of a customer's EMI month view. Derived per render,
// never persisted.
type CalendarDay struct {
	Date        time.Time `json:"date"`
	IsEmiDue    bool      `json:"is_emi_due"`
	Status      DayStatus `json:"status,omitempty"`
	Amount      float64   `json:"amount,omitempty"`
	LoanNumbers []string  `json:"loan_numbers,omitempty"`
	IsWeekend   bool      `json:"is_weekend"`
	IsToday     bool      `json:"is_today"`
	IsPast      bool      `json:"is_past"`
}
