package service

import (
	"context"

	"microfin-backend/internal/domain"
	"microfin-backend/internal/repository"
)

type memberService struct {
	memberRepo repository.MemberRepository
}

func NewMemberService(memberRepo repository.MemberRepository) MemberService {
	return &memberService{memberRepo: memberRepo}
}

func (s *memberService) List(ctx context.Context) ([]domain.TeamMember, error) {
	return s.memberRepo.List(ctx)
}

func (s *memberService) Get(ctx context.Context, id string) (*domain.TeamMember, error) {
	return s.memberRepo.GetByID(ctx, id)
}
