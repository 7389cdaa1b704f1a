package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"microfin-backend/internal/domain"
	"microfin-backend/internal/emi"
	"microfin-backend/internal/repository"
)

type loanDoc struct {
	ID                 string     `firestore:"id"`
	CustomerID         string     `firestore:"customer_id"`
	LoanNumber         string     `firestore:"loan_number"`
	Amount             float64    `firestore:"amount"`
	TotalAmount        float64    `firestore:"total_amount"`
	EmiAmount          float64    `firestore:"emi_amount"`
	LoanType           string     `firestore:"loan_type"`
	EmiType            string     `firestore:"emi_type"`
	CustomEmiAmount    *float64   `firestore:"custom_emi_amount"`
	LoanDays           int        `firestore:"loan_days"`
	DateApplied        time.Time  `firestore:"date_applied"`
	EmiStartDate       time.Time  `firestore:"emi_start_date"`
	EmiPaidCount       int        `firestore:"emi_paid_count"`
	TotalPaidAmount    float64    `firestore:"total_paid_amount"`
	RemainingAmount    float64    `firestore:"remaining_amount"`
	LastEmiDate        *time.Time `firestore:"last_emi_date"`
	NextEmiDate        *time.Time `firestore:"next_emi_date"`
	Status             string     `firestore:"status"`
	IsRenewed          bool       `firestore:"is_renewed"`
	RenewedLoanNumber  string     `firestore:"renewed_loan_number"`
	OriginalLoanNumber string     `firestore:"original_loan_number"`
	CreatedOn          time.Time  `firestore:"created_on"`
	UpdatedOn          time.Time  `firestore:"updated_on"`
}

type paymentDoc struct {
	ID             string    `firestore:"id"`
	LoanID         string    `firestore:"loan_id"`
	PaymentDate    time.Time `firestore:"payment_date"`
	Amount         float64   `firestore:"amount"`
	Status         string    `firestore:"status"`
	Method         string    `firestore:"method"`
	CollectedBy    string    `firestore:"collected_by"`
	OfficeCategory string    `firestore:"office_category"`
	CreatedOn      time.Time `firestore:"created_on"`
}

func toLoanDoc(l *domain.Loan) loanDoc {
	return loanDoc{
		ID: l.ID, CustomerID: l.CustomerID, LoanNumber: l.LoanNumber,
		Amount: l.Amount, TotalAmount: l.TotalAmount, EmiAmount: l.EmiAmount,
		LoanType: string(l.LoanType), EmiType: string(l.EmiType),
		CustomEmiAmount: l.CustomEmiAmount, LoanDays: l.LoanDays,
		DateApplied: l.DateApplied, EmiStartDate: l.EmiStartDate,
		EmiPaidCount: l.EmiPaidCount, TotalPaidAmount: l.TotalPaidAmount,
		RemainingAmount: l.RemainingAmount, LastEmiDate: l.LastEmiDate,
		NextEmiDate: l.NextEmiDate, Status: string(l.Status),
		IsRenewed: l.IsRenewed, RenewedLoanNumber: l.RenewedLoanNumber,
		OriginalLoanNumber: l.OriginalLoanNumber,
		CreatedOn:          l.CreatedOn, UpdatedOn: l.UpdatedOn,
	}
}

func (d loanDoc) toDomain() domain.Loan {
	return domain.Loan{
		ID: d.ID, CustomerID: d.CustomerID, LoanNumber: d.LoanNumber,
		Amount: d.Amount, TotalAmount: d.TotalAmount, EmiAmount: d.EmiAmount,
		LoanType: domain.LoanType(d.LoanType), EmiType: domain.EmiType(d.EmiType),
		CustomEmiAmount: d.CustomEmiAmount, LoanDays: d.LoanDays,
		DateApplied: d.DateApplied, EmiStartDate: d.EmiStartDate,
		EmiPaidCount: d.EmiPaidCount, TotalPaidAmount: d.TotalPaidAmount,
		RemainingAmount: d.RemainingAmount, LastEmiDate: d.LastEmiDate,
		NextEmiDate: d.NextEmiDate, Status: domain.LoanStatus(d.Status),
		IsRenewed: d.IsRenewed, RenewedLoanNumber: d.RenewedLoanNumber,
		OriginalLoanNumber: d.OriginalLoanNumber,
		CreatedOn:          d.CreatedOn, UpdatedOn: d.UpdatedOn,
	}
}

func toPaymentDoc(p *domain.PaymentRecord) paymentDoc {
	return paymentDoc{
		ID: p.ID, LoanID: p.LoanID, PaymentDate: p.PaymentDate,
		Amount: p.Amount, Status: string(p.Status), Method: p.Method,
		CollectedBy: p.CollectedBy, OfficeCategory: p.OfficeCategory,
		CreatedOn: p.CreatedOn,
	}
}

func (d paymentDoc) toDomain() domain.PaymentRecord {
	return domain.PaymentRecord{
		ID: d.ID, LoanID: d.LoanID, PaymentDate: d.PaymentDate,
		Amount: d.Amount, Status: domain.PaymentStatus(d.Status), Method: d.Method,
		CollectedBy: d.CollectedBy, OfficeCategory: d.OfficeCategory,
		CreatedOn: d.CreatedOn,
	}
}

type loanRepository struct {
	client *firestore.Client
}

func NewLoanRepository(client *firestore.Client) repository.LoanRepository {
	return &loanRepository{client: client}
}

func (r *loanRepository) Create(ctx context.Context, l *domain.Loan) error {
	now := time.Now()
	l.CreatedOn = now
	l.UpdatedOn = now
	_, err := r.client.Collection(colLoans).Doc(l.ID).Set(ctx, toLoanDoc(l))
	return err
}

func (r *loanRepository) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	snap, err := getDoc(ctx, r.client.Collection(colLoans).Doc(id))
	if err != nil {
		return nil, err
	}
	var doc loanDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}
	l := doc.toDomain()
	history, err := r.ListPayments(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	l.EmiHistory = history
	return &l, nil
}

func (r *loanRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Loan, error) {
	q := r.client.Collection(colLoans).Where("customer_id", "==", customerID).OrderBy("created_on", firestore.Asc)
	return r.listWithHistory(ctx, q)
}

func (r *loanRepository) ListByStatus(ctx context.Context, status domain.LoanStatus) ([]domain.Loan, error) {
	q := r.client.Collection(colLoans).Where("status", "==", string(status)).OrderBy("created_on", firestore.Asc)
	return r.listWithHistory(ctx, q)
}

func (r *loanRepository) listWithHistory(ctx context.Context, q firestore.Query) ([]domain.Loan, error) {
	it := q.Documents(ctx)
	defer it.Stop()

	var loans []domain.Loan
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var doc loanDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, err
		}
		loans = append(loans, doc.toDomain())
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
	l.UpdatedOn = time.Now()
	_, err := r.client.Collection(colLoans).Doc(l.ID).Update(ctx, loanCounterUpdates(l))
	return err
}

func (r *loanRepository) Delete(ctx context.Context, id string) error {
	// Remove the loan's ledger first so no orphan payments survive.
	it := r.client.Collection(colPayments).Where("loan_id", "==", id).Documents(ctx)
	defer it.Stop()

	batch := r.client.Batch()
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return err
		}
		batch.Delete(snap.Ref)
	}
	batch.Delete(r.client.Collection(colLoans).Doc(id))
	_, err := batch.Commit(ctx)
	return err
}

func (r *loanRepository) ApplyPayment(ctx context.Context, l *domain.Loan, rec *domain.PaymentRecord) error {
	rec.CreatedOn = time.Now()
	l.UpdatedOn = rec.CreatedOn

	loanRef := r.client.Collection(colLoans).Doc(l.ID)
	paymentRef := r.client.Collection(colPayments).Doc(rec.ID)

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Set(paymentRef, toPaymentDoc(rec)); err != nil {
			return err
		}
		return tx.Update(loanRef, loanCounterUpdates(l))
	})
}

func loanCounterUpdates(l *domain.Loan) []firestore.Update {
	return []firestore.Update{
		{Path: "emi_paid_count", Value: l.EmiPaidCount},
		{Path: "total_paid_amount", Value: l.TotalPaidAmount},
		{Path: "remaining_amount", Value: l.RemainingAmount},
		{Path: "last_emi_date", Value: l.LastEmiDate},
		{Path: "next_emi_date", Value: l.NextEmiDate},
		{Path: "status", Value: string(l.Status)},
		{Path: "is_renewed", Value: l.IsRenewed},
		{Path: "renewed_loan_number", Value: l.RenewedLoanNumber},
		{Path: "updated_on", Value: l.UpdatedOn},
	}
}

func (r *loanRepository) ListPayments(ctx context.Context, loanID string) ([]domain.PaymentRecord, error) {
	q := r.client.Collection(colPayments).Where("loan_id", "==", loanID).OrderBy("payment_date", firestore.Asc)
	return r.listPayments(ctx, q)
}

func (r *loanRepository) PaymentsRecordedOn(ctx context.Context, day time.Time) ([]domain.PaymentRecord, error) {
	start := emi.DateOnly(day)
	end := start.AddDate(0, 0, 1)
	q := r.client.Collection(colPayments).
		Where("payment_date", ">=", start).
		Where("payment_date", "<", end).
		OrderBy("payment_date", firestore.Asc)
	return r.listPayments(ctx, q)
}

func (r *loanRepository) listPayments(ctx context.Context, q firestore.Query) ([]domain.PaymentRecord, error) {
	it := q.Documents(ctx)
	defer it.Stop()

	var records []domain.PaymentRecord
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var doc paymentDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, err
		}
		records = append(records, doc.toDomain())
	}
	return records, nil
}
