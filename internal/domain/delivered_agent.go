package domain

import "github.com/google/uuid"

// MaintenanceStatus is the post-delivery lifecycle state of a delivered agent.
type MaintenanceStatus string

const (
	MaintenanceStatusActive                MaintenanceStatus = "Active"
	MaintenanceStatusUnderMaintenance      MaintenanceStatus = "Under Maintenance"
	MaintenanceStatusTerminated            MaintenanceStatus = "Terminated"
	MaintenanceStatusSubscriptionCancelled MaintenanceStatus = "Subscription Cancelled"
)

// MaintenanceStatuses lists every valid maintenance state.
var MaintenanceStatuses = []MaintenanceStatus{
	MaintenanceStatusActive,
	MaintenanceStatusUnderMaintenance,
	MaintenanceStatusTerminated,
	MaintenanceStatusSubscriptionCancelled,
}

// Valid reports whether the status is one of the known maintenance states.
func (s MaintenanceStatus) Valid() bool {
	for _, known := range MaintenanceStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// DeliveredAgent is derived from an agent request when it enters the
// Delivered status, at most once per request. It carries a verbatim copy of
// the request's pricing and invoice plus a mutable maintenance status.
type DeliveredAgent struct {
	Meta
	RequestID         uuid.UUID         `json:"request_id"`
	AgentID           uuid.UUID         `json:"agent_id"`
	CompanyID         uuid.UUID         `json:"company_id"`
	CompanyOwnerID    uuid.UUID         `json:"company_owner_id"`
	AssistantID       string            `json:"assistant_id"`
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	Image             string            `json:"image"`
	Workflows         []Workflow        `json:"work_flows"`
	Invoice           Invoice           `json:"invoice"`
	MaintenanceStatus MaintenanceStatus `json:"maintenance_status"`
	CreatedByID       uuid.UUID         `json:"created_by_id"`
	UpdatedByID       uuid.UUID         `json:"updated_by_id"`
}

// DeliveredFromRequest derives the delivered agent created by the
// fulfillment transition. Pricing and references copy verbatim from the
// request at the moment of transition; maintenance starts Active.
func DeliveredFromRequest(req AgentRequest, companyOwnerID, actorID uuid.UUID) DeliveredAgent {
	return DeliveredAgent{
		RequestID:         req.ID,
		AgentID:           req.AgentID,
		CompanyID:         req.CompanyID,
		CompanyOwnerID:    companyOwnerID,
		AssistantID:       req.AssistantID,
		Title:             req.Title,
		Description:       req.Description,
		Image:             req.Image,
		Workflows:         req.Workflows,
		Invoice:           req.Invoice,
		MaintenanceStatus: MaintenanceStatusActive,
		CreatedByID:       actorID,
		UpdatedByID:       actorID,
	}
}

// DeliveredAgentView is the hydrated read model of a delivered agent.
type DeliveredAgentView struct {
	DeliveredAgent
	Request   *AgentRequest `json:"request,omitempty"`
	Agent     *AgentView    `json:"agent,omitempty"`
	Company   *CompanyView  `json:"company,omitempty"`
	CreatedBy *PublicUser   `json:"created_by,omitempty"`
	UpdatedBy *PublicUser   `json:"updated_by,omitempty"`
}
