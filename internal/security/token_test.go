package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microfin-backend/internal/domain"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret-at-least-32-characters!!", 60, 60*24)
	member := &domain.TeamMember{ID: "member-1", Email: "op@example.com", Role: domain.MemberRoleOperator}

	access, err := tm.GenerateAccessToken(member)
	require.NoError(t, err)

	claims, err := tm.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, "member-1", claims.MemberID)
	assert.Equal(t, domain.MemberRoleOperator, claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.Type)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenManager_RefreshTokenType(t *testing.T) {
	tm := NewTokenManager("test-secret-at-least-32-characters!!", 60, 60*24)
	member := &domain.TeamMember{ID: "member-1", Role: domain.MemberRoleAdmin}

	refresh, err := tm.GenerateRefreshToken(member)
	require.NoError(t, err)

	claims, err := tm.ValidateToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.Type)
}

func TestTokenManager_RejectsForeignSignature(t *testing.T) {
	tm := NewTokenManager("test-secret-at-least-32-characters!!", 60, 60*24)
	other := NewTokenManager("a-completely-different-32-char-secret!", 60, 60*24)
	member := &domain.TeamMember{ID: "member-1"}

	token, err := other.GenerateAccessToken(member)
	require.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	tm := NewTokenManager("test-secret-at-least-32-characters!!", -1, -1)
	member := &domain.TeamMember{ID: "member-1"}

	token, err := tm.GenerateAccessToken(member)
	require.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
