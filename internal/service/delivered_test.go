package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rpattn/agenthub/internal/auth"
	"github.com/rpattn/agenthub/internal/domain"
	"github.com/rpattn/agenthub/internal/hydrate"
)

type deliveredHarness struct {
	service   *DeliveredService
	delivered *memDelivered
	principal auth.Principal
	row       domain.DeliveredAgent
}

func newDeliveredHarness(t *testing.T) *deliveredHarness {
	t.Helper()

	delivered := newMemDelivered()
	companyID := uuid.New()

	row, err := delivered.Create(context.Background(), domain.DeliveredAgent{
		RequestID:         uuid.New(),
		CompanyID:         companyID,
		Title:             "Support Agent",
		MaintenanceStatus: domain.MaintenanceStatusActive,
	})
	require.NoError(t, err)

	requests := newMemRequests()
	agents := &memAgents{rows: map[uuid.UUID]domain.Agent{}}
	users := &memUsers{rows: map[uuid.UUID]domain.User{}}
	companies := &memCompanies{rows: map[uuid.UUID]domain.Company{}}
	integrations := &memIntegrations{rows: map[uuid.UUID]domain.Integration{}}
	hydrator := hydrate.New(agents, users, companies, integrations, requests, delivered)

	return &deliveredHarness{
		service:   NewDeliveredService(delivered, hydrator, zap.NewNop()),
		delivered: delivered,
		principal: auth.Principal{UserID: uuid.New(), CompanyID: companyID, Role: "member"},
		row:       row,
	}
}

func TestUpdateMaintenanceStatus(t *testing.T) {
	h := newDeliveredHarness(t)

	view, err := h.service.UpdateMaintenanceStatus(context.Background(), h.principal, h.row.ID, domain.MaintenanceStatusUnderMaintenance)
	require.NoError(t, err)

	assert.Equal(t, domain.MaintenanceStatusUnderMaintenance, view.MaintenanceStatus)
	assert.Equal(t, h.principal.UserID, view.UpdatedByID)
}

func TestUpdateMaintenanceStatusRejectsUnknown(t *testing.T) {
	h := newDeliveredHarness(t)

	_, err := h.service.UpdateMaintenanceStatus(context.Background(), h.principal, h.row.ID, domain.MaintenanceStatus("Paused"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeliveredGetHidesOtherTenants(t *testing.T) {
	h := newDeliveredHarness(t)

	stranger := auth.Principal{UserID: uuid.New(), CompanyID: uuid.New(), Role: "member"}
	_, err := h.service.Get(context.Background(), stranger, h.row.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeliveredListScope(t *testing.T) {
	h := newDeliveredHarness(t)

	result, err := h.service.List(context.Background(), h.principal, ListParams{})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.False(t, result.Paginated)

	scope := h.delivered.lastFilter.Scope
	require.Len(t, scope, 2)
	assert.Equal(t, "company_id", scope[1].Field)
}
