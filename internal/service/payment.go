package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"microfin-backend/internal/domain"
	"microfin-backend/internal/emi"
	"microfin-backend/internal/repository"
)

var (
	ErrInvalidPaymentAmount = errors.New("payment amount must be positive")
	ErrInvalidPaymentStatus = errors.New("unknown payment status")
)

type paymentService struct {
	loanRepo repository.LoanRepository
	now      func() time.Time
}

func NewPaymentService(loanRepo repository.LoanRepository, now func() time.Time) PaymentService {
	if now == nil {
		now = time.Now
	}
	return &paymentService{loanRepo: loanRepo, now: now}
}

func (s *paymentService) Apply(ctx context.Context, loanID string, in PaymentInput, collectedBy string) (*domain.PaymentRecord, error) {
	if in.Amount <= 0 {
		return nil, ErrInvalidPaymentAmount
	}
	switch in.Status {
	case domain.PaymentStatusPaid, domain.PaymentStatusPartial, domain.PaymentStatusAdvance:
	default:
		return nil, ErrInvalidPaymentStatus
	}

	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.Status == domain.LoanStatusCompleted {
		return nil, ErrLoanAlreadyClosed
	}

	paymentDate := in.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = s.now()
	}

	rec := &domain.PaymentRecord{
		ID:             uuid.NewString(),
		LoanID:         loan.ID,
		PaymentDate:    paymentDate,
		Amount:         in.Amount,
		Status:         in.Status,
		Method:         in.Method,
		CollectedBy:    collectedBy,
		OfficeCategory: in.OfficeCategory,
		CreatedOn:      s.now(),
	}

	day := emi.DateOnly(paymentDate)
	loan.EmiPaidCount++
	loan.TotalPaidAmount += in.Amount
	loan.RemainingAmount = loan.TotalAmount - loan.TotalPaidAmount
	if loan.RemainingAmount < 0 {
		loan.RemainingAmount = 0
	}
	loan.LastEmiDate = &day
	if next := emi.NextDueDate(loan.LoanType, loan.EmiStartDate, day); !next.IsZero() {
		loan.NextEmiDate = &next
	} else {
		loan.NextEmiDate = nil
	}
	if loan.RemainingAmount == 0 {
		loan.Status = domain.LoanStatusCompleted
		loan.NextEmiDate = nil
	}

	if err := s.loanRepo.ApplyPayment(ctx, loan, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *paymentService) ListByLoan(ctx context.Context, loanID string) ([]domain.PaymentRecord, error) {
	if _, err := s.loanRepo.GetByID(ctx, loanID); err != nil {
		return nil, err
	}
	return s.loanRepo.ListPayments(ctx, loanID)
}
