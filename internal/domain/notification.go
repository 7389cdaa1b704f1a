package domain

import "time"

// Notification is an in-app message for a team member (approval decisions,
// job reports).
type Notification struct {
	ID         string            `json:"id"`
	MemberID   string            `json:"member_id"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	Attributes map[string]string `json:"attributes,omitempty"`
	IsRead     bool              `json:"is_read"`
	CreatedOn  time.Time         `json:"created_on"`
}
