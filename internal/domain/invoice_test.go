package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newID(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.New()
}

func TestBuildInvoice(t *testing.T) {
	agent := Agent{
		InstallationPrice: 200,
		SubscriptionPrice: 25,
	}
	selected := []Workflow{{Name: "triage", Price: 100}, {Name: "sync", Price: 50}}

	invoice := BuildInvoice(agent, selected)

	assert.Equal(t, 150.0, invoice.WorkflowsTotal)
	assert.Equal(t, 200.0, invoice.InstallationCost)
	assert.Equal(t, 25.0, invoice.SubscriptionCost)
	assert.Equal(t, 375.0, invoice.Total)
	assert.True(t, strings.HasPrefix(invoice.Number, "INV-"))
	assert.Len(t, invoice.Number, 12)
}

func TestBuildInvoiceNoWorkflows(t *testing.T) {
	agent := Agent{InstallationPrice: 10, SubscriptionPrice: 5}

	invoice := BuildInvoice(agent, nil)

	assert.Equal(t, 0.0, invoice.WorkflowsTotal)
	assert.Equal(t, 15.0, invoice.Total)
}

func TestDeliveredFromRequest(t *testing.T) {
	req := AgentRequest{
		Meta:        Meta{ID: newID(t)},
		AgentID:     newID(t),
		CompanyID:   newID(t),
		AssistantID: "asst_1",
		Title:       "Support Agent",
		Workflows:   []Workflow{{Name: "triage", Price: 100}},
		Invoice:     Invoice{Number: "INV-AAAA1111", Total: 375},
		Status:      RequestStatusUnderDevelopment,
	}
	ownerID := newID(t)
	actorID := newID(t)

	delivered := DeliveredFromRequest(req, ownerID, actorID)

	assert.Equal(t, req.ID, delivered.RequestID)
	assert.Equal(t, req.AgentID, delivered.AgentID)
	assert.Equal(t, req.CompanyID, delivered.CompanyID)
	assert.Equal(t, ownerID, delivered.CompanyOwnerID)
	assert.Equal(t, req.Invoice, delivered.Invoice)
	assert.Equal(t, req.Workflows, delivered.Workflows)
	assert.Equal(t, MaintenanceStatusActive, delivered.MaintenanceStatus)
	assert.Equal(t, actorID, delivered.CreatedByID)
	assert.Equal(t, actorID, delivered.UpdatedByID)
}
