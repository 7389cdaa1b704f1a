package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"microfin-backend/internal/domain"
	"microfin-backend/internal/repository"
)

type approvalRepository struct {
	db *sql.DB
}

func NewApprovalRepository(db *sql.DB) repository.ApprovalRepository {
	return &approvalRepository{db: db}
}

const approvalColumns = `id, type, requested_by, customer_id, loan_id, payload, status, decided_by, decision_note, created_on, decided_on`

func (r *approvalRepository) Create(ctx context.Context, req *domain.ApprovalRequest) error {
	query := `INSERT INTO approval_requests (` + approvalColumns + `) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
	req.CreatedOn = time.Now()
	_, err := r.db.ExecContext(ctx, query, req.ID, req.Type, req.RequestedBy, req.CustomerID, req.LoanID, []byte(req.Payload), req.Status, req.DecidedBy, req.DecisionNote, req.CreatedOn, req.DecidedOn)
	return err
}

func (r *approvalRepository) GetByID(ctx context.Context, id string) (*domain.ApprovalRequest, error) {
	query := `SELECT ` + approvalColumns + ` FROM approval_requests WHERE id = $1`
	req := &domain.ApprovalRequest{}
	var payload []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(&req.ID, &req.Type, &req.RequestedBy, &req.CustomerID, &req.LoanID, &payload, &req.Status, &req.DecidedBy, &req.DecisionNote, &req.CreatedOn, &req.DecidedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	req.Payload = payload
	return req, nil
}

func (r *approvalRepository) ListByStatus(ctx context.Context, status domain.ApprovalStatus) ([]domain.ApprovalRequest, error) {
	query := `SELECT ` + approvalColumns + ` FROM approval_requests WHERE status = $1 ORDER BY created_on ASC`
	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []domain.ApprovalRequest
	for rows.Next() {
		var req domain.ApprovalRequest
		var payload []byte
		if err := rows.Scan(&req.ID, &req.Type, &req.RequestedBy, &req.CustomerID, &req.LoanID, &payload, &req.Status, &req.DecidedBy, &req.DecisionNote, &req.CreatedOn, &req.DecidedOn); err != nil {
			return nil, err
		}
		req.Payload = payload
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (r *approvalRepository) Update(ctx context.Context, req *domain.ApprovalRequest) error {
	query := `UPDATE approval_requests SET status=$1, decided_by=$2, decision_note=$3, decided_on=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, req.Status, req.DecidedBy, req.DecisionNote, req.DecidedOn, req.ID)
	return err
}
