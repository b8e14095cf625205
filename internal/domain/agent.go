package domain

import "github.com/google/uuid"

// Agent is a catalog entry describing a deployable agent and the workflows
// it offers. Agent requests select a subset of these workflows.
type Agent struct {
	Meta
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Image             string     `json:"image"`
	AssistantID       string     `json:"assistant_id"`
	Workflows         []Workflow `json:"work_flows"`
	InstallationPrice float64    `json:"installation_price"`
	SubscriptionPrice float64    `json:"subscription_price"`
}

// Workflow is one unit of functionality an agent offers. IntegrationIDs
// reference the integrations collection; the order of the list is the order
// hydration preserves when embedding integration documents.
type Workflow struct {
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	Price          float64     `json:"price"`
	IntegrationIDs []uuid.UUID `json:"integration_ids"`
}

// WorkflowByName returns the workflow with the given name, if present.
func (a Agent) WorkflowByName(name string) (Workflow, bool) {
	for _, wf := range a.Workflows {
		if wf.Name == name {
			return wf, true
		}
	}
	return Workflow{}, false
}

// AgentView is the hydrated read model of a catalog agent: each workflow
// carries only the integration documents its own id list references.
type AgentView struct {
	Agent
	Workflows []WorkflowView `json:"work_flows"`
}

// WorkflowView embeds the integrations referenced by one workflow.
type WorkflowView struct {
	Workflow
	Integrations []Integration `json:"integrations"`
}
