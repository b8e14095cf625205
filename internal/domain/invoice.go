package domain

import (
	"strings"

	"github.com/google/uuid"
)

// BuildInvoice computes the server-side invoice for a request: the sum of
// the selected workflow prices plus the agent's installation and
// subscription fees. Clients never supply pricing.
func BuildInvoice(agent Agent, selected []Workflow) Invoice {
	workflowsTotal := 0.0
	for _, wf := range selected {
		workflowsTotal += wf.Price
	}

	return Invoice{
		Number:           newInvoiceNumber(),
		WorkflowsTotal:   workflowsTotal,
		InstallationCost: agent.InstallationPrice,
		SubscriptionCost: agent.SubscriptionPrice,
		Total:            workflowsTotal + agent.InstallationPrice + agent.SubscriptionPrice,
	}
}

func newInvoiceNumber() string {
	return "INV-" + strings.ToUpper(uuid.NewString()[:8])
}
