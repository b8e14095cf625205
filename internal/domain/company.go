package domain

import "github.com/google/uuid"

// Company is a tenant. Non-admin principals are scoped to their company via
// an implicit company_id condition merged into every compiled filter.
type Company struct {
	Meta
	Name     string    `json:"name"`
	Industry string    `json:"industry"`
	Website  string    `json:"website"`
	OwnerID  uuid.UUID `json:"owner_id"`
}

// CompanyView is the hydrated read model of a company.
type CompanyView struct {
	Company
	Owner *PublicUser `json:"owner,omitempty"`
}
