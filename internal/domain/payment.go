package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusPartial PaymentStatus = "Partial"
	PaymentStatusAdvance PaymentStatus = "Advance"
)

// PaymentRecord is one recorded transaction against a loan. Immutable once
// written; only the calendar day of PaymentDate is significant for matching.
type PaymentRecord struct {
	ID             string        `json:"id"`
	LoanID         string        `json:"loan_id"`
	PaymentDate    time.Time     `json:"payment_date"`
	Amount         float64       `json:"amount"`
	Status         PaymentStatus `json:"status"`
	Method         string        `json:"method"`
	CollectedBy    string        `json:"collected_by"` // team member id
	OfficeCategory string        `json:"office_category"`
	CreatedOn      time.Time     `json:"created_on"`
}
