package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rpattn/agenthub/internal/auth"
	"github.com/rpattn/agenthub/internal/domain"
	"github.com/rpattn/agenthub/internal/hydrate"
	"github.com/rpattn/agenthub/internal/query"
)

type requestHarness struct {
	service   *RequestService
	requests  *memRequests
	delivered *memDelivered
	agents    *memAgents
	companies *memCompanies

	agent     domain.Agent
	owner     domain.User
	company   domain.Company
	principal auth.Principal
	admin     auth.Principal
}

func newRequestHarness() *requestHarness {
	agent := domain.Agent{
		Meta:  domain.Meta{ID: uuid.New()},
		Title: "Support Agent",
		Workflows: []domain.Workflow{
			{Name: "triage", Price: 100},
			{Name: "escalation", Price: 50},
		},
		InstallationPrice: 200,
		SubscriptionPrice: 25,
	}
	owner := domain.User{Meta: domain.Meta{ID: uuid.New()}, Name: "Owner"}
	company := domain.Company{Meta: domain.Meta{ID: uuid.New()}, Name: "Acme", OwnerID: owner.ID}

	h := &requestHarness{
		requests:  newMemRequests(),
		delivered: newMemDelivered(),
		agents:    &memAgents{rows: map[uuid.UUID]domain.Agent{agent.ID: agent}},
		companies: &memCompanies{rows: map[uuid.UUID]domain.Company{company.ID: company}},
		agent:     agent,
		owner:     owner,
		company:   company,
		principal: auth.Principal{UserID: uuid.New(), CompanyID: company.ID, Role: "member"},
		admin:     auth.Principal{UserID: uuid.New(), Role: auth.RoleAdmin},
	}

	users := &memUsers{rows: map[uuid.UUID]domain.User{owner.ID: owner}}
	integrations := &memIntegrations{rows: map[uuid.UUID]domain.Integration{}}
	hydrator := hydrate.New(h.agents, users, h.companies, integrations, h.requests, h.delivered)

	h.service = NewRequestService(h.requests, h.delivered, h.agents, h.companies, hydrator, zap.NewNop())
	return h
}

func (h *requestHarness) submit(t *testing.T, workflows ...string) domain.AgentRequestView {
	t.Helper()
	view, err := h.service.Submit(context.Background(), h.principal, SubmitRequestInput{
		AgentID:   h.agent.ID,
		Workflows: workflows,
	})
	require.NoError(t, err)
	return view
}

func TestSubmitComputesInvoice(t *testing.T) {
	h := newRequestHarness()

	view := h.submit(t, "triage")

	assert.Equal(t, domain.RequestStatusSubmitted, view.Status)
	assert.Equal(t, h.company.ID, view.CompanyID)
	assert.Equal(t, "Support Agent", view.Title)
	assert.Equal(t, h.principal.UserID, view.CreatedByID)

	assert.Equal(t, 100.0, view.Invoice.WorkflowsTotal)
	assert.Equal(t, 200.0, view.Invoice.InstallationCost)
	assert.Equal(t, 25.0, view.Invoice.SubscriptionCost)
	assert.Equal(t, 325.0, view.Invoice.Total)
	assert.NotEmpty(t, view.Invoice.Number)
}

func TestSubmitSumsSelectedWorkflows(t *testing.T) {
	h := newRequestHarness()

	view := h.submit(t, "triage", "escalation")

	assert.Equal(t, 150.0, view.Invoice.WorkflowsTotal)
	assert.Equal(t, 375.0, view.Invoice.Total)
	require.Len(t, view.Workflows, 2)
}

func TestSubmitRejectsUnknownWorkflow(t *testing.T) {
	h := newRequestHarness()

	_, err := h.service.Submit(context.Background(), h.principal, SubmitRequestInput{
		AgentID:   h.agent.ID,
		Workflows: []string{"nonexistent"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSubmitRejectsEmptySelection(t *testing.T) {
	h := newRequestHarness()

	_, err := h.service.Submit(context.Background(), h.principal, SubmitRequestInput{AgentID: h.agent.ID})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateToDeliveredDerivesDeliveredAgent(t *testing.T) {
	h := newRequestHarness()
	req := h.submit(t, "triage")

	status := domain.RequestStatusDelivered
	view, err := h.service.Update(context.Background(), h.principal, req.ID, UpdateRequestInput{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, domain.RequestStatusDelivered, view.Status)
	require.Equal(t, 1, h.delivered.count())

	require.NotNil(t, view.DeliveredAgent)
	derived := view.DeliveredAgent
	assert.Equal(t, req.ID, derived.RequestID)
	assert.Equal(t, req.Invoice, derived.Invoice)
	assert.Equal(t, h.owner.ID, derived.CompanyOwnerID)
	assert.Equal(t, domain.MaintenanceStatusActive, derived.MaintenanceStatus)
	assert.Equal(t, h.principal.UserID, derived.CreatedByID)
}

func TestRedeliverySucceedsAtMostOnce(t *testing.T) {
	h := newRequestHarness()
	req := h.submit(t, "triage")

	delivered := domain.RequestStatusDelivered
	_, err := h.service.Update(context.Background(), h.principal, req.ID, UpdateRequestInput{Status: &delivered})
	require.NoError(t, err)

	// Move away from Delivered, then attempt the transition again.
	development := domain.RequestStatusUnderDevelopment
	_, err = h.service.Update(context.Background(), h.principal, req.ID, UpdateRequestInput{Status: &development})
	require.NoError(t, err)

	_, err = h.service.Update(context.Background(), h.principal, req.ID, UpdateRequestInput{Status: &delivered})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAlreadyDelivered)
	assert.Equal(t, 1, h.delivered.count())

	// The failed transition must not have moved the status.
	current, err := h.service.Get(context.Background(), h.principal, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusUnderDevelopment, current.Status)
}

func TestDeliveryFailsWhenCompanyLookupErrors(t *testing.T) {
	h := newRequestHarness()
	req := h.submit(t, "triage")

	h.companies.err = errors.New("timeout")

	status := domain.RequestStatusDelivered
	_, err := h.service.Update(context.Background(), h.principal, req.ID, UpdateRequestInput{Status: &status})
	require.Error(t, err)
	assert.Equal(t, 0, h.delivered.count())

	current, err := h.requests.GetByID(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusSubmitted, current.Status)
}

func TestDeliveryToleratesMissingCompany(t *testing.T) {
	h := newRequestHarness()
	req := h.submit(t, "triage")

	delete(h.companies.rows, h.company.ID)

	status := domain.RequestStatusDelivered
	view, err := h.service.Update(context.Background(), h.principal, req.ID, UpdateRequestInput{Status: &status})
	require.NoError(t, err)

	require.NotNil(t, view.DeliveredAgent)
	assert.Equal(t, uuid.Nil, view.DeliveredAgent.CompanyOwnerID)
}

func TestUpdateSameStatusIsNoOp(t *testing.T) {
	h := newRequestHarness()
	req := h.submit(t, "triage")

	status := domain.RequestStatusSubmitted
	view, err := h.service.Update(context.Background(), h.principal, req.ID, UpdateRequestInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusSubmitted, view.Status)
	assert.Equal(t, 0, h.delivered.count())
}

func TestUpdatePartialFields(t *testing.T) {
	h := newRequestHarness()
	req := h.submit(t, "triage")

	title := "Renamed"
	view, err := h.service.Update(context.Background(), h.principal, req.ID, UpdateRequestInput{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", view.Title)
	assert.Equal(t, req.Description, view.Description)
	assert.Equal(t, req.Status, view.Status)
}

func TestGetHidesOtherTenants(t *testing.T) {
	h := newRequestHarness()
	req := h.submit(t, "triage")

	stranger := auth.Principal{UserID: uuid.New(), CompanyID: uuid.New(), Role: "member"}
	_, err := h.service.Get(context.Background(), stranger, req.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Admins read across tenants.
	_, err = h.service.Get(context.Background(), h.admin, req.ID)
	require.NoError(t, err)
}

func TestListAppliesTenancyScope(t *testing.T) {
	h := newRequestHarness()
	h.submit(t, "triage")

	page, rpp := 1, 10
	result, err := h.service.List(context.Background(), h.principal, ListParams{Page: &page, RPP: &rpp})
	require.NoError(t, err)

	assert.True(t, result.Paginated)
	assert.Equal(t, "Page 1 of 1", result.Page.Label())
	require.Len(t, result.Items, 1)

	scope := h.requests.lastFilter.Scope
	require.Len(t, scope, 2)
	assert.Equal(t, query.Condition{Field: query.FieldIsDeleted, Operator: query.OpEq, Value: "false"}, scope[0])
	assert.Equal(t, query.Condition{Field: "company_id", Operator: query.OpEq, Value: h.company.ID.String()}, scope[1])
}

func TestListAdminUnscoped(t *testing.T) {
	h := newRequestHarness()
	h.submit(t, "triage")

	_, err := h.service.List(context.Background(), h.admin, ListParams{})
	require.NoError(t, err)

	scope := h.requests.lastFilter.Scope
	require.Len(t, scope, 1)
	assert.Equal(t, query.FieldIsDeleted, scope[0].Field)
}

func TestListRejectsBadFilter(t *testing.T) {
	h := newRequestHarness()

	_, err := h.service.List(context.Background(), h.principal, ListParams{Filter: "status equals x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidFilterSyntax)
}

func TestDeleteIsSoft(t *testing.T) {
	h := newRequestHarness()
	req := h.submit(t, "triage")

	err := h.service.Delete(context.Background(), h.principal, req.ID)
	require.NoError(t, err)

	_, err = h.service.Get(context.Background(), h.principal, req.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExportRowsIgnoresPagination(t *testing.T) {
	h := newRequestHarness()
	h.submit(t, "triage")
	h.submit(t, "escalation")

	page, rpp := 1, 1
	rows, err := h.service.ExportRows(context.Background(), h.principal, ListParams{Page: &page, RPP: &rpp})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
