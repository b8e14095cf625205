package domain

import "github.com/google/uuid"

// CustomerQuery is an inbound enquiry submitted through the public site.
type CustomerQuery struct {
	Meta
	CompanyID uuid.UUID `json:"company_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	Answer    string    `json:"answer"`
}
