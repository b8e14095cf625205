package domain

import "github.com/google/uuid"

// RequestStatus is the lifecycle state of an agent request.
type RequestStatus string

const (
	RequestStatusPendingCredentials RequestStatus = "Pending Credentials"
	RequestStatusSubmitted          RequestStatus = "Submitted"
	RequestStatusUnderDevelopment   RequestStatus = "Under Development"
	RequestStatusDelivered          RequestStatus = "Delivered"
	RequestStatusInstallation       RequestStatus = "Installation"
)

// RequestStatuses lists every valid lifecycle state.
var RequestStatuses = []RequestStatus{
	RequestStatusPendingCredentials,
	RequestStatusSubmitted,
	RequestStatusUnderDevelopment,
	RequestStatusDelivered,
	RequestStatusInstallation,
}

// Valid reports whether the status is one of the known lifecycle states.
func (s RequestStatus) Valid() bool {
	for _, known := range RequestStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Invoice holds the server-computed pricing for a request: the sum of the
// selected workflow prices plus the agent's installation and subscription
// fees. Copied verbatim onto the delivered agent at fulfillment.
type Invoice struct {
	Number           string  `json:"number"`
	WorkflowsTotal   float64 `json:"workflows_total"`
	InstallationCost float64 `json:"installation_cost"`
	SubscriptionCost float64 `json:"subscription_cost"`
	Total            float64 `json:"total"`
}

// AgentRequest is a proposed engagement: a company asking for a catalog
// agent with a selected subset of its workflows. Soft-deleted, never
// physically removed.
type AgentRequest struct {
	Meta
	CompanyID   uuid.UUID     `json:"company_id"`
	AgentID     uuid.UUID     `json:"agent_id"`
	AssistantID string        `json:"assistant_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Image       string        `json:"image"`
	Workflows   []Workflow    `json:"work_flows"`
	Invoice     Invoice       `json:"invoice"`
	Status      RequestStatus `json:"status"`
	CreatedByID uuid.UUID     `json:"created_by_id"`
	UpdatedByID uuid.UUID     `json:"updated_by_id"`
}

// AgentRequestView is the hydrated read model returned by list and detail
// endpoints. Every embedded document is transient; none of it is persisted.
type AgentRequestView struct {
	AgentRequest
	Agent          *AgentView      `json:"agent,omitempty"`
	Company        *CompanyView    `json:"company,omitempty"`
	CreatedBy      *PublicUser     `json:"created_by,omitempty"`
	UpdatedBy      *PublicUser     `json:"updated_by,omitempty"`
	DeliveredAgent *DeliveredAgent `json:"delivered_agent,omitempty"`
}
