package domain

import "time"

type MemberRole string

const (
	MemberRoleAdmin    MemberRole = "admin"
	MemberRoleOperator MemberRole = "operator"
)

// TeamMember is a back-office user: an operator records collections in the
// field, an admin moderates the approval queue.
type TeamMember struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Phone        string     `json:"phone,omitempty"`
	Role         MemberRole `json:"role"`
	Active       bool       `json:"active"`
	CreatedOn    time.Time  `json:"created_on"`
}
