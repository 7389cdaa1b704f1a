package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"microfin-backend/internal/domain"
	"microfin-backend/internal/repository"
	"microfin-backend/internal/security"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrUnauthorized       = errors.New("unauthorized")
)

type authService struct {
	memberRepo repository.MemberRepository
	tokens     security.TokenManager
}

func NewAuthService(memberRepo repository.MemberRepository, tokens security.TokenManager) AuthService {
	return &authService{memberRepo: memberRepo, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, string, *domain.TeamMember, error) {
	member, err := s.memberRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", "", nil, ErrInvalidCredentials
		}
		return "", "", nil, err
	}
	if !member.Active {
		return "", "", nil, ErrAccountDisabled
	}
	if bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)) != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	access, err := s.tokens.GenerateAccessToken(member)
	if err != nil {
		return "", "", nil, err
	}
	refresh, err := s.tokens.GenerateRefreshToken(member)
	if err != nil {
		return "", "", nil, err
	}
	return access, refresh, member, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return "", "", err
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", security.ErrWrongTokenType
	}

	member, err := s.memberRepo.GetByID(ctx, claims.MemberID)
	if err != nil {
		return "", "", err
	}
	if !member.Active {
		return "", "", ErrAccountDisabled
	}

	access, err := s.tokens.GenerateAccessToken(member)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(member)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Register creates a team member; only admins may add members.
func (s *authService) Register(ctx context.Context, actor Actor, name, email, phone, password string, role domain.MemberRole) (*domain.TeamMember, error) {
	if !actor.IsAdmin() {
		return nil, ErrUnauthorized
	}
	if role != domain.MemberRoleAdmin && role != domain.MemberRoleOperator {
		role = domain.MemberRoleOperator
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	member := &domain.TeamMember{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		Phone:        phone,
		Role:         role,
		Active:       true,
		CreatedOn:    time.Now(),
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}
