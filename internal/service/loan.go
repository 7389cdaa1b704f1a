package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"microfin-backend/internal/domain"
	"microfin-backend/internal/emi"
	"microfin-backend/internal/logger"
	"microfin-backend/internal/repository"
)

var (
	ErrInvalidLoanTerms  = errors.New("loan terms are incomplete or invalid")
	ErrLoanLimitReached  = errors.New("customer has reached the loan limit")
	ErrLoanNotRenewable  = errors.New("loan cannot be renewed")
	ErrLoanAlreadyClosed = errors.New("loan is already closed")
)

type loanService struct {
	loanRepo     repository.LoanRepository
	customerRepo repository.CustomerRepository
	now          func() time.Time
}

func NewLoanService(loanRepo repository.LoanRepository, customerRepo repository.CustomerRepository, now func() time.Time) LoanService {
	if now == nil {
		now = time.Now
	}
	return &loanService{loanRepo: loanRepo, customerRepo: customerRepo, now: now}
}

func (s *loanService) Issue(ctx context.Context, customerID string, in LoanInput) (*domain.Loan, error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		return nil, err
	}

	existing, err := s.loanRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	number, err := nextLoanNumber(existing)
	if err != nil {
		return nil, err
	}

	loan, err := s.buildLoan(customerID, number, in)
	if err != nil {
		return nil, err
	}
	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}
	return loan, nil
}

// nextLoanNumber continues the customer's LN<n> sequence from the highest
// number on record. Deleted loans leave gaps; a number is never reused.
func nextLoanNumber(existing []domain.Loan) (string, error) {
	highest := 0
	for i := range existing {
		n, err := strconv.Atoi(strings.TrimPrefix(existing[i].LoanNumber, "LN"))
		if err != nil || n <= highest {
			continue
		}
		highest = n
	}
	if highest >= domain.MaxLoansPerCustomer {
		return "", ErrLoanLimitReached
	}
	return fmt.Sprintf("LN%d", highest+1), nil
}

func (s *loanService) buildLoan(customerID, loanNumber string, in LoanInput) (*domain.Loan, error) {
	// Daily loans never carry a custom last installment.
	if in.LoanType == domain.LoanTypeDaily && in.EmiType == domain.EmiTypeCustom {
		return nil, ErrInvalidLoanTerms
	}
	var customLast float64
	if in.CustomEmiAmount != nil {
		customLast = *in.CustomEmiAmount
	}
	total := emi.TotalLoanAmount(in.LoanType, in.EmiType, in.EmiAmount, in.LoanDays, customLast)
	if total <= 0 || in.EmiStartDate.IsZero() {
		return nil, ErrInvalidLoanTerms
	}

	start := emi.DateOnly(in.EmiStartDate)
	dateApplied := in.DateApplied
	if dateApplied.IsZero() {
		dateApplied = s.now()
	}

	return &domain.Loan{
		ID:              uuid.NewString(),
		CustomerID:      customerID,
		LoanNumber:      loanNumber,
		Amount:          in.Amount,
		TotalAmount:     total,
		EmiAmount:       in.EmiAmount,
		LoanType:        in.LoanType,
		EmiType:         in.EmiType,
		CustomEmiAmount: in.CustomEmiAmount,
		LoanDays:        in.LoanDays,
		DateApplied:     emi.DateOnly(dateApplied),
		EmiStartDate:    start,
		RemainingAmount: total,
		NextEmiDate:     &start,
		Status:          domain.LoanStatusActive,
	}, nil
}

func (s *loanService) Get(ctx context.Context, id string) (*domain.Loan, error) {
	return s.loanRepo.GetByID(ctx, id)
}

func (s *loanService) ListByCustomer(ctx context.Context, customerID string) ([]domain.Loan, error) {
	return s.loanRepo.ListByCustomer(ctx, customerID)
}

// Renew closes the loan and opens its successor. The predecessor keeps its
// ledger but leaves active scheduling; the successor starts a fresh one.
func (s *loanService) Renew(ctx context.Context, loanID string, in LoanInput) (*domain.Loan, error) {
	old, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if old.IsRenewed || old.Status == domain.LoanStatusCompleted || old.Status == domain.LoanStatusPending {
		return nil, ErrLoanNotRenewable
	}

	existing, err := s.loanRepo.ListByCustomer(ctx, old.CustomerID)
	if err != nil {
		return nil, err
	}
	number, err := nextLoanNumber(existing)
	if err != nil {
		return nil, err
	}

	successor, err := s.buildLoan(old.CustomerID, number, in)
	if err != nil {
		return nil, err
	}
	successor.OriginalLoanNumber = old.LoanNumber

	if err := s.loanRepo.Create(ctx, successor); err != nil {
		return nil, err
	}

	old.IsRenewed = true
	old.RenewedLoanNumber = successor.LoanNumber
	old.Status = domain.LoanStatusCompleted
	if err := s.loanRepo.Update(ctx, old); err != nil {
		return nil, err
	}
	return successor, nil
}

func (s *loanService) Delete(ctx context.Context, loanID string) error {
	if _, err := s.loanRepo.GetByID(ctx, loanID); err != nil {
		return err
	}
	return s.loanRepo.Delete(ctx, loanID)
}

func (s *loanService) Completion(ctx context.Context, loanID string) (*emi.CompletionSummary, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	summary := emi.Completion(loan)

	if drift := emi.ReconcileCompletion(loan); !drift.Zero() {
		logger.Warn("loan counters disagree with payment ledger",
			"loan_id", loan.ID,
			"loan_number", loan.LoanNumber,
			"count_delta", drift.CountDelta,
			"amount_delta", drift.AmountDelta)
	}
	return &summary, nil
}

func (s *loanService) MonthCalendar(ctx context.Context, customerID string, year int, month time.Month) ([]domain.CalendarDay, error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		return nil, err
	}
	loans, err := s.loanRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return emi.BuildMonthCalendar(loans, year, month, s.now()), nil
}
