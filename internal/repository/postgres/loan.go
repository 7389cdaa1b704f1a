package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"microfin-backend/internal/domain"
	"microfin-backend/internal/repository"
)

type loanRepository struct {
	db *sql.DB
}

func NewLoanRepository(db *sql.DB) repository.LoanRepository {
	return &loanRepository{db: db}
}

const loanColumns = `id, customer_id, loan_number, amount, total_amount, emi_amount, loan_type, emi_type, custom_emi_amount,
	loan_days, date_applied, emi_start_date, emi_paid_count, total_paid_amount, remaining_amount,
	last_emi_date, next_emi_date, status, is_renewed, renewed_loan_number, original_loan_number, created_on, updated_on`

func (r *loanRepository) Create(ctx context.Context, l *domain.Loan) error {
	query := `INSERT INTO loans (` + loanColumns + `)
	          VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)`
	now := time.Now()
	l.CreatedOn = now
	l.UpdatedOn = now
	_, err := r.db.ExecContext(ctx, query,
		l.ID, l.CustomerID, l.LoanNumber, l.Amount, l.TotalAmount, l.EmiAmount, l.LoanType, l.EmiType, l.CustomEmiAmount,
		l.LoanDays, l.DateApplied, l.EmiStartDate, l.EmiPaidCount, l.TotalPaidAmount, l.RemainingAmount,
		l.LastEmiDate, l.NextEmiDate, l.Status, l.IsRenewed, l.RenewedLoanNumber, l.OriginalLoanNumber, l.CreatedOn, l.UpdatedOn)
	return err
}

func scanLoan(scanner interface{ Scan(...interface{}) error }) (*domain.Loan, error) {
	l := &domain.Loan{}
	err := scanner.Scan(
		&l.ID, &l.CustomerID, &l.LoanNumber, &l.Amount, &l.TotalAmount, &l.EmiAmount, &l.LoanType, &l.EmiType, &l.CustomEmiAmount,
		&l.LoanDays, &l.DateApplied, &l.EmiStartDate, &l.EmiPaidCount, &l.TotalPaidAmount, &l.RemainingAmount,
		&l.LastEmiDate, &l.NextEmiDate, &l.Status, &l.IsRenewed, &l.RenewedLoanNumber, &l.OriginalLoanNumber, &l.CreatedOn, &l.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *loanRepository) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`
	l, err := scanLoan(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	history, err := r.ListPayments(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	l.EmiHistory = history
	return l, nil
}

func (r *loanRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE customer_id = $1 ORDER BY created_on ASC`
	return r.listWithHistory(ctx, query, customerID)
}

func (r *loanRepository) ListByStatus(ctx context.Context, status domain.LoanStatus) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE status = $1 ORDER BY created_on ASC`
	return r.listWithHistory(ctx, query, status)
}

func (r *loanRepository) listWithHistory(ctx context.Context, query string, args ...interface{}) ([]domain.Loan, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range loans {
		history, err := r.ListPayments(ctx, loans[i].ID)
		if err != nil {
			return nil, err
		}
		loans[i].EmiHistory = history
	}
	return loans, nil
}

func (r *loanRepository) Update(ctx context.Context, l *domain.Loan) error {
	query := `UPDATE loans SET emi_paid_count=$1, total_paid_amount=$2, remaining_amount=$3, last_emi_date=$4, next_emi_date=$5,
	          status=$6, is_renewed=$7, renewed_loan_number=$8, updated_on=$9 WHERE id=$10`
	l.UpdatedOn = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		l.EmiPaidCount, l.TotalPaidAmount, l.RemainingAmount, l.LastEmiDate, l.NextEmiDate,
		l.Status, l.IsRenewed, l.RenewedLoanNumber, l.UpdatedOn, l.ID)
	return err
}

func (r *loanRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM payments WHERE loan_id = $1`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM loans WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return tx.Commit()
}

// ApplyPayment appends the ledger entry and persists the loan's updated
// counters in one transaction, keeping counter and ledger in step.
func (r *loanRepository) ApplyPayment(ctx context.Context, l *domain.Loan, rec *domain.PaymentRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	rec.CreatedOn = time.Now()
	insert := `INSERT INTO payments (id, loan_id, payment_date, amount, status, method, collected_by, office_category, created_on)
	           VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	if _, err := tx.ExecContext(ctx, insert, rec.ID, rec.LoanID, rec.PaymentDate, rec.Amount, rec.Status, rec.Method, rec.CollectedBy, rec.OfficeCategory, rec.CreatedOn); err != nil {
		return err
	}

	l.UpdatedOn = time.Now()
	update := `UPDATE loans SET emi_paid_count=$1, total_paid_amount=$2, remaining_amount=$3, last_emi_date=$4, next_emi_date=$5, status=$6, updated_on=$7 WHERE id=$8`
	if _, err := tx.ExecContext(ctx, update, l.EmiPaidCount, l.TotalPaidAmount, l.RemainingAmount, l.LastEmiDate, l.NextEmiDate, l.Status, l.UpdatedOn, l.ID); err != nil {
		return err
	}

	return tx.Commit()
}

const paymentColumns = `id, loan_id, payment_date, amount, status, method, collected_by, office_category, created_on`

func (r *loanRepository) ListPayments(ctx context.Context, loanID string) ([]domain.PaymentRecord, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE loan_id = $1 ORDER BY payment_date ASC, created_on ASC`
	return r.listPayments(ctx, query, loanID)
}

func (r *loanRepository) PaymentsRecordedOn(ctx context.Context, day time.Time) ([]domain.PaymentRecord, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_date::date = $1::date ORDER BY created_on ASC`
	return r.listPayments(ctx, query, day)
}

func (r *loanRepository) listPayments(ctx context.Context, query string, args ...interface{}) ([]domain.PaymentRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.PaymentRecord
	for rows.Next() {
		var rec domain.PaymentRecord
		if err := rows.Scan(&rec.ID, &rec.LoanID, &rec.PaymentDate, &rec.Amount, &rec.Status, &rec.Method, &rec.CollectedBy, &rec.OfficeCategory, &rec.CreatedOn); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
