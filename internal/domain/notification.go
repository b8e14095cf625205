package domain

import "github.com/google/uuid"

// Notification is an in-app message addressed to a user within a company.
type Notification struct {
	Meta
	UserID    uuid.UUID `json:"user_id"`
	CompanyID uuid.UUID `json:"company_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
}
