package domain

import (
	"encoding/json"
	"time"
)

type ApprovalType string

const (
	ApprovalTypeRecordPayment  ApprovalType = "record_payment"
	ApprovalTypeUpdateCustomer ApprovalType = "update_customer"
	ApprovalTypeRenewLoan      ApprovalType = "renew_loan"
	ApprovalTypeDeleteLoan     ApprovalType = "delete_loan"
)

type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

// ApprovalRequest holds a sensitive mutation submitted by an operator until
// an admin decides it. Payload carries the deferred mutation verbatim.
type ApprovalRequest struct {
	ID           string          `json:"id"`
	Type         ApprovalType    `json:"type"`
	RequestedBy  string          `json:"requested_by"`
	CustomerID   string          `json:"customer_id,omitempty"`
	LoanID       string          `json:"loan_id,omitempty"`
	Payload      json.RawMessage `json:"payload"`
	Status       ApprovalStatus  `json:"status"`
	DecidedBy    string          `json:"decided_by,omitempty"`
	DecisionNote string          `json:"decision_note,omitempty"`
	CreatedOn    time.Time       `json:"created_on"`
	DecidedOn    *time.Time      `json:"decided_on,omitempty"`
}
