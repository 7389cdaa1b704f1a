package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"microfin-backend/internal/domain"
	"microfin-backend/internal/repository"
)

type approvalDoc struct {
	ID           string     `firestore:"id"`
	Type         string     `firestore:"type"`
	RequestedBy  string     `firestore:"requested_by"`
	CustomerID   string     `firestore:"customer_id"`
	LoanID       string     `firestore:"loan_id"`
	Payload      []byte     `firestore:"payload"`
	Status       string     `firestore:"status"`
	DecidedBy    string     `firestore:"decided_by"`
	DecisionNote string     `firestore:"decision_note"`
	CreatedOn    time.Time  `firestore:"created_on"`
	DecidedOn    *time.Time `firestore:"decided_on"`
}

func toApprovalDoc(req *domain.ApprovalRequest) approvalDoc {
	return approvalDoc{
		ID: req.ID, Type: string(req.Type), RequestedBy: req.RequestedBy,
		CustomerID: req.CustomerID, LoanID: req.LoanID, Payload: []byte(req.Payload),
		Status: string(req.Status), DecidedBy: req.DecidedBy, DecisionNote: req.DecisionNote,
		CreatedOn: req.CreatedOn, DecidedOn: req.DecidedOn,
	}
}

func (d approvalDoc) toDomain() domain.ApprovalRequest {
	return domain.ApprovalRequest{
		ID: d.ID, Type: domain.ApprovalType(d.Type), RequestedBy: d.RequestedBy,
		CustomerID: d.CustomerID, LoanID: d.LoanID, Payload: d.Payload,
		Status: domain.ApprovalStatus(d.Status), DecidedBy: d.DecidedBy, DecisionNote: d.DecisionNote,
		CreatedOn: d.CreatedOn, DecidedOn: d.DecidedOn,
	}
}

type approvalRepository struct {
	client *firestore.Client
}

func NewApprovalRepository(client *firestore.Client) repository.ApprovalRepository {
	return &approvalRepository{client: client}
}

func (r *approvalRepository) Create(ctx context.Context, req *domain.ApprovalRequest) error {
	req.CreatedOn = time.Now()
	_, err := r.client.Collection(colApprovals).Doc(req.ID).Set(ctx, toApprovalDoc(req))
	return err
}

func (r *approvalRepository) GetByID(ctx context.Context, id string) (*domain.ApprovalRequest, error) {
	snap, err := getDoc(ctx, r.client.Collection(colApprovals).Doc(id))
	if err != nil {
		return nil, err
	}
	var doc approvalDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}
	req := doc.toDomain()
	return &req, nil
}

func (r *approvalRepository) ListByStatus(ctx context.Context, status domain.ApprovalStatus) ([]domain.ApprovalRequest, error) {
	it := r.client.Collection(colApprovals).
		Where("status", "==", string(status)).
		OrderBy("created_on", firestore.Asc).
		Documents(ctx)
	defer it.Stop()

	var requests []domain.ApprovalRequest
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var doc approvalDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, err
		}
		requests = append(requests, doc.toDomain())
	}
	return requests, nil
}

func (r *approvalRepository) Update(ctx context.Context, req *domain.ApprovalRequest) error {
	_, err := r.client.Collection(colApprovals).Doc(req.ID).Update(ctx, []firestore.Update{
		{Path: "status", Value: string(req.Status)},
		{Path: "decided_by", Value: req.DecidedBy},
		{Path: "decision_note", Value: req.DecisionNote},
		{Path: "decided_on", Value: req.DecidedOn},
	})
	return err
}
