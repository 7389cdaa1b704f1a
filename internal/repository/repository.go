package repository

import (
	"context"
	"errors"
	"time"

	"microfin-backend/internal/domain"
)

var ErrNotFound = errors.New("record not found")

type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context, office string, page, pageSize int) ([]domain.Customer, int, error)
	Update(ctx context.Context, c *domain.Customer) error
	Assign(ctx context.Context, customerID, memberID string) error
}

type LoanRepository interface {
	Create(ctx context.Context, l *domain.Loan) error
	// GetByID loads the loan with its full EMI history, oldest entry first.
	GetByID(ctx context.Context, id string) (*domain.Loan, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Loan, error)
	ListByStatus(ctx context.Context, status domain.LoanStatus) ([]domain.Loan, error)
	Update(ctx context.Context, l *domain.Loan) error
	Delete(ctx context.Context, id string) error
	// ApplyPayment appends one ledger entry and writes the loan's updated
	// counters and status in a single transaction. The ledger is append-only;
	// there is no payment update or delete.
	ApplyPayment(ctx context.Context, l *domain.Loan, rec *domain.PaymentRecord) error
	ListPayments(ctx context.Context, loanID string) ([]domain.PaymentRecord, error)
	// PaymentsRecordedOn lists every payment whose payment date falls on the
	// given calendar day, across all loans.
	PaymentsRecordedOn(ctx context.Context, day time.Time) ([]domain.PaymentRecord, error)
}

type MemberRepository interface {
	Create(ctx context.Context, m *domain.TeamMember) error
	GetByID(ctx context.Context, id string) (*domain.TeamMember, error)
	GetByEmail(ctx context.Context, email string) (*domain.TeamMember, error)
	List(ctx context.Context) ([]domain.TeamMember, error)
	Update(ctx context.Context, m *domain.TeamMember) error
}

type ApprovalRepository interface {
	Create(ctx context.Context, req *domain.ApprovalRequest) error
	GetByID(ctx context.Context, id string) (*domain.ApprovalRequest, error)
	ListByStatus(ctx context.Context, status domain.ApprovalStatus) ([]domain.ApprovalRequest, error)
	Update(ctx context.Context, req *domain.ApprovalRequest) error
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	List(ctx context.Context, memberID string, limit int) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, id, memberID string) error
}

// Store bundles the repositories behind one handle so the two backends
// (Postgres, Firestore) stay interchangeable at wiring time.
type Store struct {
	Customers     CustomerRepository
	Loans         LoanRepository
	Members       MemberRepository
	Approvals     ApprovalRepository
	Notifications NotificationRepository
}
