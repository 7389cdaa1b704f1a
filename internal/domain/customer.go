package domain

import "time"

// Customer owns zero or more loans; a loan's lifetime is bounded by its
// customer's.
type Customer struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	AltPhone       string    `json:"alt_phone,omitempty"`
	Address        string    `json:"address"`
	OfficeCategory string    `json:"office_category"`
	AssignedTo     string    `json:"assigned_to,omitempty"` // collecting team member id
	Notes          string    `json:"notes,omitempty"`
	CreatedOn      time.Time `json:"created_on"`
	UpdatedOn      time.Time `json:"updated_on"`
}
