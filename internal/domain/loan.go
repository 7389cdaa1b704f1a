package domain

import "time"

type LoanType string

const (
	LoanTypeDaily   LoanType = "Daily"
	LoanTypeWeekly  LoanType = "Weekly"
	LoanTypeMonthly LoanType = "Monthly"
)

type EmiType string

const (
	EmiTypeFixed  EmiType = "fixed"
	EmiTypeCustom EmiType = "custom"
)

type LoanStatus string

const (
	LoanStatusActive    LoanStatus = "active"
	LoanStatusPending   LoanStatus = "pending"
	LoanStatusOverdue   LoanStatus = "overdue"
	LoanStatusCompleted LoanStatus = "completed"
)

// MaxLoansPerCustomer bounds the LN<n> numbering per customer.
const MaxLoansPerCustomer = 15

// Loan is one credit extended to a customer. EmiHistory is append-only:
// corrections are modeled as new entries, never edits.
type Loan struct {
	ID              string   `json:"id"`
	CustomerID      string   `json:"customer_id"`
	LoanNumber      string   `json:"loan_number"` // LN1..LN15, customer-scoped
	Amount          float64  `json:"amount"`      // principal
	TotalAmount     float64  `json:"total_amount"`
	EmiAmount       float64  `json:"emi_amount"`
	LoanType        LoanType `json:"loan_type"`
	EmiType         EmiType  `json:"emi_type"`
	CustomEmiAmount *float64 `json:"custom_emi_amount,omitempty"` // last installment, custom variant only
	LoanDays        int      `json:"loan_days"`                   // scheduled period count, any cadence
	DateApplied     time.Time `json:"date_applied"`
	EmiStartDate    time.Time `json:"emi_start_date"`

	EmiPaidCount    int        `json:"emi_paid_count"`
	TotalPaidAmount float64    `json:"total_paid_amount"`
	RemainingAmount float64    `json:"remaining_amount"`
	LastEmiDate     *time.Time `json:"last_emi_date,omitempty"`
	NextEmiDate     *time.Time `json:"next_emi_date,omitempty"`

	Status             LoanStatus `json:"status"`
	IsRenewed          bool       `json:"is_renewed"`
	RenewedLoanNumber  string     `json:"renewed_loan_number,omitempty"`
	OriginalLoanNumber string     `json:"original_loan_number,omitempty"`

	EmiHistory []PaymentRecord `json:"emi_history,omitempty"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// CustomLastAmount returns the custom final installment, or 0 when the loan
// carries none.
func (l *Loan) CustomLastAmount() float64 {
	if l.CustomEmiAmount == nil {
		return 0
	}
	return *l.CustomEmiAmount
}
