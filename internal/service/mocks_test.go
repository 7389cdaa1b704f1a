package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"microfin-backend/internal/domain"
)

// MockCustomerRepo
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCustomerRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) List(ctx context.Context, office string, page, pageSize int) ([]domain.Customer, int, error) {
	args := m.Called(ctx, office, page, pageSize)
	return args.Get(0).([]domain.Customer), args.Int(1), args.Error(2)
}
func (m *MockCustomerRepo) Update(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCustomerRepo) Assign(ctx context.Context, customerID, memberID string) error {
	args := m.Called(ctx, customerID, memberID)
	return args.Error(0)
}

// MockLoanRepo
type MockLoanRepo struct {
	mock.Mock
}

func (m *MockLoanRepo) Create(ctx context.Context, l *domain.Loan) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}
func (m *MockLoanRepo) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Loan, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) ListByStatus(ctx context.Context, status domain.LoanStatus) ([]domain.Loan, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) Update(ctx context.Context, l *domain.Loan) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}
func (m *MockLoanRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockLoanRepo) ApplyPayment(ctx context.Context, l *domain.Loan, rec *domain.PaymentRecord) error {
	args := m.Called(ctx, l, rec)
	return args.Error(0)
}
func (m *MockLoanRepo) ListPayments(ctx context.Context, loanID string) ([]domain.PaymentRecord, error) {
	args := m.Called(ctx, loanID)
	return args.Get(0).([]domain.PaymentRecord), args.Error(1)
}
func (m *MockLoanRepo) PaymentsRecordedOn(ctx context.Context, day time.Time) ([]domain.PaymentRecord, error) {
	args := m.Called(ctx, day)
	return args.Get(0).([]domain.PaymentRecord), args.Error(1)
}

// MockMemberRepo
type MockMemberRepo struct {
	mock.Mock
}

func (m *MockMemberRepo) Create(ctx context.Context, tm *domain.TeamMember) error {
	args := m.Called(ctx, tm)
	return args.Error(0)
}
func (m *MockMemberRepo) GetByID(ctx context.Context, id string) (*domain.TeamMember, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamMember), args.Error(1)
}
func (m *MockMemberRepo) GetByEmail(ctx context.Context, email string) (*domain.TeamMember, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamMember), args.Error(1)
}
func (m *MockMemberRepo) List(ctx context.Context) ([]domain.TeamMember, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.TeamMember), args.Error(1)
}
func (m *MockMemberRepo) Update(ctx context.Context, tm *domain.TeamMember) error {
	args := m.Called(ctx, tm)
	return args.Error(0)
}

// MockApprovalRepo
type MockApprovalRepo struct {
	mock.Mock
}

func (m *MockApprovalRepo) Create(ctx context.Context, req *domain.ApprovalRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockApprovalRepo) GetByID(ctx context.Context, id string) (*domain.ApprovalRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalRequest), args.Error(1)
}
func (m *MockApprovalRepo) ListByStatus(ctx context.Context, status domain.ApprovalStatus) ([]domain.ApprovalRequest, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.ApprovalRequest), args.Error(1)
}
func (m *MockApprovalRepo) Update(ctx context.Context, req *domain.ApprovalRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, memberID string, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, memberID, limit)
	return args.Get(0).([]domain.Notification), args.Error(1)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, memberID string) error {
	args := m.Called(ctx, id, memberID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendApprovalRequested(ctx context.Context, adminEmail, requesterName string, reqType domain.ApprovalType) error {
	args := m.Called(ctx, adminEmail, requesterName, reqType)
	return args.Error(0)
}
func (m *MockEmailService) SendApprovalDecision(ctx context.Context, requesterEmail string, reqType domain.ApprovalType, status domain.ApprovalStatus, note string) error {
	args := m.Called(ctx, requesterEmail, reqType, status, note)
	return args.Error(0)
}
func (m *MockEmailService) SendCollectionSummary(ctx context.Context, adminEmail string, day time.Time, totalAmount float64, totalCount int, perOffice []OfficeTotal) error {
	args := m.Called(ctx, adminEmail, day, totalAmount, totalCount, perOffice)
	return args.Error(0)
}
