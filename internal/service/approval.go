package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"microfin-backend/internal/domain"
	"microfin-backend/internal/logger"
	"microfin-backend/internal/repository"
)

var (
	ErrApprovalAlreadyDecided = errors.New("approval request already decided")
	ErrUnknownApprovalType    = errors.New("unknown approval request type")
)

// deletionPayload is the payload body of a delete_loan request.
type deletionPayload struct {
	Reason string `json:"reason"`
}

type approvalService struct {
	approvalRepo repository.ApprovalRepository
	memberRepo   repository.MemberRepository
	notifRepo    repository.NotificationRepository

	payments  PaymentService
	loans     LoanService
	customers CustomerService
	email     EmailService

	now func() time.Time
}

func NewApprovalService(
	approvalRepo repository.ApprovalRepository,
	memberRepo repository.MemberRepository,
	notifRepo repository.NotificationRepository,
	payments PaymentService,
	loans LoanService,
	customers CustomerService,
	email EmailService,
	now func() time.Time,
) ApprovalService {
	if now == nil {
		now = time.Now
	}
	return &approvalService{
		approvalRepo: approvalRepo,
		memberRepo:   memberRepo,
		notifRepo:    notifRepo,
		payments:     payments,
		loans:        loans,
		customers:    customers,
		email:        email,
		now:          now,
	}
}

func (s *approvalService) SubmitPayment(ctx context.Context, actor Actor, loanID string, in PaymentInput) (*domain.ApprovalRequest, *domain.PaymentRecord, error) {
	if actor.IsAdmin() {
		rec, err := s.payments.Apply(ctx, loanID, in, actor.MemberID)
		if err != nil {
			return nil, nil, err
		}
		return nil, rec, nil
	}

	req, err := s.queue(ctx, actor, domain.ApprovalTypeRecordPayment, "", loanID, in)
	if err != nil {
		return nil, nil, err
	}
	return req, nil, nil
}

func (s *approvalService) SubmitCustomerUpdate(ctx context.Context, actor Actor, c *domain.Customer) (*domain.ApprovalRequest, error) {
	if actor.IsAdmin() {
		return nil, s.customers.Update(ctx, c)
	}
	return s.queue(ctx, actor, domain.ApprovalTypeUpdateCustomer, c.ID, "", c)
}

func (s *approvalService) SubmitLoanRenewal(ctx context.Context, actor Actor, loanID string, in LoanInput) (*domain.ApprovalRequest, *domain.Loan, error) {
	if actor.IsAdmin() {
		successor, err := s.loans.Renew(ctx, loanID, in)
		if err != nil {
			return nil, nil, err
		}
		return nil, successor, nil
	}

	req, err := s.queue(ctx, actor, domain.ApprovalTypeRenewLoan, "", loanID, in)
	if err != nil {
		return nil, nil, err
	}
	return req, nil, nil
}

func (s *approvalService) SubmitLoanDeletion(ctx context.Context, actor Actor, loanID, reason string) (*domain.ApprovalRequest, error) {
	if actor.IsAdmin() {
		return nil, s.loans.Delete(ctx, loanID)
	}
	return s.queue(ctx, actor, domain.ApprovalTypeDeleteLoan, "", loanID, deletionPayload{Reason: reason})
}

// queue stores the deferred mutation and pings every active admin.
func (s *approvalService) queue(ctx context.Context, actor Actor, reqType domain.ApprovalType, customerID, loanID string, payload any) (*domain.ApprovalRequest, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req := &domain.ApprovalRequest{
		ID:          uuid.NewString(),
		Type:        reqType,
		RequestedBy: actor.MemberID,
		CustomerID:  customerID,
		LoanID:      loanID,
		Payload:     body,
		Status:      domain.ApprovalStatusPending,
		CreatedOn:   s.now(),
	}
	if err := s.approvalRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.notifyAdmins(ctx, req)
	return req, nil
}

func (s *approvalService) notifyAdmins(ctx context.Context, req *domain.ApprovalRequest) {
	requester, err := s.memberRepo.GetByID(ctx, req.RequestedBy)
	if err != nil {
		logger.Warn("approval requester lookup failed", "member_id", req.RequestedBy, "error", err)
		return
	}

	members, err := s.memberRepo.List(ctx)
	if err != nil {
		logger.Warn("admin list lookup failed", "error", err)
		return
	}
	for _, m := range members {
		if m.Role != domain.MemberRoleAdmin || !m.Active {
			continue
		}
		n := &domain.Notification{
			ID:       uuid.NewString(),
			MemberID: m.ID,
			Title:    "Approval requested",
			Message:  fmt.Sprintf("%s submitted a %s request", requester.Name, req.Type),
			Attributes: map[string]string{
				"request_id":   req.ID,
				"request_type": string(req.Type),
			},
			CreatedOn: s.now(),
		}
		if err := s.notifRepo.Create(ctx, n); err != nil {
			logger.Warn("notification create failed", "member_id", m.ID, "error", err)
		}
		if s.email != nil {
			if err := s.email.SendApprovalRequested(ctx, m.Email, requester.Name, req.Type); err != nil {
				logger.Warn("approval email failed", "admin_email", m.Email, "error", err)
			}
		}
	}
}

func (s *approvalService) List(ctx context.Context, status domain.ApprovalStatus) ([]domain.ApprovalRequest, error) {
	return s.approvalRepo.ListByStatus(ctx, status)
}

func (s *approvalService) Approve(ctx context.Context, adminID, requestID, note string) (*domain.ApprovalRequest, error) {
	req, err := s.approvalRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.ApprovalStatusPending {
		return nil, ErrApprovalAlreadyDecided
	}

	if err := s.execute(ctx, req); err != nil {
		return nil, err
	}

	return s.decide(ctx, req, adminID, note, domain.ApprovalStatusApproved)
}

func (s *approvalService) Reject(ctx context.Context, adminID, requestID, note string) (*domain.ApprovalRequest, error) {
	req, err := s.approvalRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.ApprovalStatusPending {
		return nil, ErrApprovalAlreadyDecided
	}
	return s.decide(ctx, req, adminID, note, domain.ApprovalStatusRejected)
}

// execute replays the deferred mutation, attributed to the original requester.
func (s *approvalService) execute(ctx context.Context, req *domain.ApprovalRequest) error {
	switch req.Type {
	case domain.ApprovalTypeRecordPayment:
		var in PaymentInput
		if err := json.Unmarshal(req.Payload, &in); err != nil {
			return err
		}
		_, err := s.payments.Apply(ctx, req.LoanID, in, req.RequestedBy)
		return err
	case domain.ApprovalTypeUpdateCustomer:
		var c domain.Customer
		if err := json.Unmarshal(req.Payload, &c); err != nil {
			return err
		}
		return s.customers.Update(ctx, &c)
	case domain.ApprovalTypeRenewLoan:
		var in LoanInput
		if err := json.Unmarshal(req.Payload, &in); err != nil {
			return err
		}
		_, err := s.loans.Renew(ctx, req.LoanID, in)
		return err
	case domain.ApprovalTypeDeleteLoan:
		return s.loans.Delete(ctx, req.LoanID)
	default:
		return ErrUnknownApprovalType
	}
}

func (s *approvalService) decide(ctx context.Context, req *domain.ApprovalRequest, adminID, note string, status domain.ApprovalStatus) (*domain.ApprovalRequest, error) {
	decidedOn := s.now()
	req.Status = status
	req.DecidedBy = adminID
	req.DecisionNote = note
	req.DecidedOn = &decidedOn
	if err := s.approvalRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	s.notifyRequester(ctx, req)
	return req, nil
}

func (s *approvalService) notifyRequester(ctx context.Context, req *domain.ApprovalRequest) {
	n := &domain.Notification{
		ID:       uuid.NewString(),
		MemberID: req.RequestedBy,
		Title:    fmt.Sprintf("Request %s", req.Status),
		Message:  fmt.Sprintf("Your %s request was %s", req.Type, req.Status),
		Attributes: map[string]string{
			"request_id":   req.ID,
			"request_type": string(req.Type),
		},
		CreatedOn: s.now(),
	}
	if err := s.notifRepo.Create(ctx, n); err != nil {
		logger.Warn("notification create failed", "member_id", req.RequestedBy, "error", err)
	}

	if s.email == nil {
		return
	}
	requester, err := s.memberRepo.GetByID(ctx, req.RequestedBy)
	if err != nil {
		logger.Warn("approval requester lookup failed", "member_id", req.RequestedBy, "error", err)
		return
	}
	if err := s.email.SendApprovalDecision(ctx, requester.Email, req.Type, req.Status, req.DecisionNote); err != nil {
		logger.Warn("decision email failed", "email", requester.Email, "error", err)
	}
}
