package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"microfin-backend/internal/domain"
	"microfin-backend/internal/repository"
)

var loanColumnList = []string{
	"id", "customer_id", "loan_number", "amount", "total_amount", "emi_amount", "loan_type", "emi_type", "custom_emi_amount",
	"loan_days", "date_applied", "emi_start_date", "emi_paid_count", "total_paid_amount", "remaining_amount",
	"last_emi_date", "next_emi_date", "status", "is_renewed", "renewed_loan_number", "original_loan_number", "created_on", "updated_on",
}

var paymentColumnList = []string{
	"id", "loan_id", "payment_date", "amount", "status", "method", "collected_by", "office_category", "created_on",
}

func addLoanRow(rows *sqlmock.Rows, id, customerID, loanNumber string) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(
		id, customerID, loanNumber, 10000.0, 10000.0, 100.0, "Daily", "fixed", nil,
		100, now, now, 0, 0.0, 10000.0,
		nil, nil, "active", false, "", "", now, now,
	)
}

func TestLoanRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewLoanRepository(db)
	ctx := context.Background()

	t.Run("LoadsLedgerWithLoan", func(t *testing.T) {
		mock.ExpectQuery("FROM loans WHERE id = \\$1").
			WithArgs("loan-1").
			WillReturnRows(addLoanRow(sqlmock.NewRows(loanColumnList), "loan-1", "cust-1", "LN1"))
		mock.ExpectQuery("FROM payments WHERE loan_id = \\$1").
			WithArgs("loan-1").
			WillReturnRows(sqlmock.NewRows(paymentColumnList).
				AddRow("pay-1", "loan-1", time.Now(), 100.0, "Paid", "cash", "member-1", "main", time.Now()))

		loan, err := repo.GetByID(ctx, "loan-1")
		assert.NoError(t, err)
		assert.Equal(t, "LN1", loan.LoanNumber)
		assert.Len(t, loan.EmiHistory, 1)
		assert.Equal(t, domain.PaymentStatusPaid, loan.EmiHistory[0].Status)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("FROM loans WHERE id = \\$1").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(loanColumnList))

		_, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestLoanRepository_ApplyPayment(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewLoanRepository(db)
	ctx := context.Background()

	t.Run("LedgerAndCountersInOneTransaction", func(t *testing.T) {
		loan := &domain.Loan{ID: "loan-1", EmiPaidCount: 1, TotalPaidAmount: 100, RemainingAmount: 9900, Status: domain.LoanStatusActive}
		rec := &domain.PaymentRecord{ID: "pay-1", LoanID: "loan-1", PaymentDate: time.Now(), Amount: 100, Status: domain.PaymentStatusPaid}

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO payments").
			WithArgs(rec.ID, rec.LoanID, rec.PaymentDate, rec.Amount, rec.Status, rec.Method, rec.CollectedBy, rec.OfficeCategory, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE loans SET").
			WithArgs(loan.EmiPaidCount, loan.TotalPaidAmount, loan.RemainingAmount, loan.LastEmiDate, loan.NextEmiDate, loan.Status, sqlmock.AnyArg(), loan.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.ApplyPayment(ctx, loan, rec)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollsBackOnLedgerFailure", func(t *testing.T) {
		loan := &domain.Loan{ID: "loan-1"}
		rec := &domain.PaymentRecord{ID: "pay-1", LoanID: "loan-1"}

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO payments").
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := repo.ApplyPayment(ctx, loan, rec)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLoanRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewLoanRepository(db)
	ctx := context.Background()

	t.Run("RemovesLedgerFirst", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM payments WHERE loan_id = \\$1").
			WithArgs("loan-1").
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec("DELETE FROM loans WHERE id = \\$1").
			WithArgs("loan-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Delete(ctx, "loan-1")
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM payments WHERE loan_id = \\$1").
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM loans WHERE id = \\$1").
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Delete(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestLoanRepository_PaymentsRecordedOn(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewLoanRepository(db)
	ctx := context.Background()

	day := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM payments WHERE payment_date::date = \\$1::date").
		WithArgs(day).
		WillReturnRows(sqlmock.NewRows(paymentColumnList).
			AddRow("pay-1", "loan-1", day, 100.0, "Paid", "cash", "member-1", "main", day).
			AddRow("pay-2", "loan-2", day, 250.0, "Partial", "cash", "member-2", "east", day))

	payments, err := repo.PaymentsRecordedOn(ctx, day)
	assert.NoError(t, err)
	assert.Len(t, payments, 2)
	assert.Equal(t, "east", payments[1].OfficeCategory)
}
