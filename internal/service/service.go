package service

import (
	"context"
	"time"

	"microfin-backend/internal/domain"
	"microfin-backend/internal/emi"
)

// Actor identifies the authenticated team member behind a request.
type Actor struct {
	MemberID string
	Role     domain.MemberRole
}

func (a Actor) IsAdmin() bool {
	return a.Role == domain.MemberRoleAdmin
}

// PaymentInput is an operator's payment entry for one loan.
type PaymentInput struct {
	PaymentDate    time.Time            `json:"payment_date"`
	Amount         float64              `json:"amount"`
	Status         domain.PaymentStatus `json:"status"`
	Method         string               `json:"method"`
	OfficeCategory string               `json:"office_category"`
}

// LoanInput carries the terms for issuing or renewing a loan.
type LoanInput struct {
	Amount          float64         `json:"amount"`
	EmiAmount       float64         `json:"emi_amount"`
	LoanType        domain.LoanType `json:"loan_type"`
	EmiType         domain.EmiType  `json:"emi_type"`
	CustomEmiAmount *float64        `json:"custom_emi_amount,omitempty"`
	LoanDays        int             `json:"loan_days"`
	DateApplied     time.Time       `json:"date_applied"`
	EmiStartDate    time.Time       `json:"emi_start_date"`
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, member *domain.TeamMember, err error)
	Refresh(ctx context.Context, refreshToken string) (accessToken, newRefreshToken string, err error)
	Register(ctx context.Context, actor Actor, name, email, phone, password string, role domain.MemberRole) (*domain.TeamMember, error)
}

type CustomerService interface {
	Create(ctx context.Context, c *domain.Customer) error
	Get(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context, office string, page, pageSize int) ([]domain.Customer, int, error)
	Update(ctx context.Context, c *domain.Customer) error
	Assign(ctx context.Context, customerID, memberID string) error
}

type LoanService interface {
	Issue(ctx context.Context, customerID string, in LoanInput) (*domain.Loan, error)
	Get(ctx context.Context, id string) (*domain.Loan, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Loan, error)
	// Renew closes the loan and opens its successor carrying the renewal
	// linkage; a loan renews at most once.
	Renew(ctx context.Context, loanID string, in LoanInput) (*domain.Loan, error)
	Delete(ctx context.Context, loanID string) error
	Completion(ctx context.Context, loanID string) (*emi.CompletionSummary, error)
	MonthCalendar(ctx context.Context, customerID string, year int, month time.Month) ([]domain.CalendarDay, error)
}

type PaymentService interface {
	// Apply writes a payment to the loan's ledger and rolls the loan's
	// counters forward. Callers are expected to have passed moderation.
	Apply(ctx context.Context, loanID string, in PaymentInput, collectedBy string) (*domain.PaymentRecord, error)
	ListByLoan(ctx context.Context, loanID string) ([]domain.PaymentRecord, error)
}

type ApprovalService interface {
	// SubmitPayment applies directly for admins and queues an approval
	// request for operators; exactly one of the two results is non-nil.
	SubmitPayment(ctx context.Context, actor Actor, loanID string, in PaymentInput) (*domain.ApprovalRequest, *domain.PaymentRecord, error)
	SubmitCustomerUpdate(ctx context.Context, actor Actor, c *domain.Customer) (*domain.ApprovalRequest, error)
	SubmitLoanRenewal(ctx context.Context, actor Actor, loanID string, in LoanInput) (*domain.ApprovalRequest, *domain.Loan, error)
	SubmitLoanDeletion(ctx context.Context, actor Actor, loanID, reason string) (*domain.ApprovalRequest, error)
	List(ctx context.Context, status domain.ApprovalStatus) ([]domain.ApprovalRequest, error)
	Approve(ctx context.Context, adminID, requestID, note string) (*domain.ApprovalRequest, error)
	Reject(ctx context.Context, adminID, requestID, note string) (*domain.ApprovalRequest, error)
}

type NotificationService interface {
	List(ctx context.Context, memberID string, limit int) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, id, memberID string) error
}

type MemberService interface {
	List(ctx context.Context) ([]domain.TeamMember, error)
	Get(ctx context.Context, id string) (*domain.TeamMember, error)
}

// OfficeTotal is one office's share of a day's collections.
type OfficeTotal struct {
	Office string
	Amount float64
	Count  int
}

type EmailService interface {
	SendApprovalRequested(ctx context.Context, adminEmail, requesterName string, reqType domain.ApprovalType) error
	SendApprovalDecision(ctx context.Context, requesterEmail string, reqType domain.ApprovalType, status domain.ApprovalStatus, note string) error
	SendCollectionSummary(ctx context.Context, adminEmail string, day time.Time, totalAmount float64, totalCount int, perOffice []OfficeTotal) error
}
