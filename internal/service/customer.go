package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"microfin-backend/internal/domain"
	"microfin-backend/internal/repository"
)

var ErrCustomerNameRequired = errors.New("customer name is required")

type customerService struct {
	customerRepo repository.CustomerRepository
	memberRepo   repository.MemberRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository, memberRepo repository.MemberRepository) CustomerService {
	return &customerService{customerRepo: customerRepo, memberRepo: memberRepo}
}

func (s *customerService) Create(ctx context.Context, c *domain.Customer) error {
	if c.Name == "" {
		return ErrCustomerNameRequired
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return s.customerRepo.Create(ctx, c)
}

func (s *customerService) Get(ctx context.Context, id string) (*domain.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

func (s *customerService) List(ctx context.Context, office string, page, pageSize int) ([]domain.Customer, int, error) {
	return s.customerRepo.List(ctx, office, page, pageSize)
}

func (s *customerService) Update(ctx context.Context, c *domain.Customer) error {
	if c.Name == "" {
		return ErrCustomerNameRequired
	}
	if _, err := s.customerRepo.GetByID(ctx, c.ID); err != nil {
		return err
	}
	return s.customerRepo.Update(ctx, c)
}

func (s *customerService) Assign(ctx context.Context, customerID, memberID string) error {
	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		return err
	}
	return s.customerRepo.Assign(ctx, customerID, memberID)
}
