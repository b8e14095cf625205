package httpapi

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/rpattn/agenthub/internal/domain"
	"github.com/rpattn/agenthub/internal/service"
)

type deliveredHandlers struct {
	delivered *service.DeliveredService
}

func (h *deliveredHandlers) list(c *gin.Context) {
	params, err := listParams(c)
	if err != nil {
		respondError(c, err)
		return
	}
	result, err := h.delivered.List(c.Request.Context(), principal(c), params)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, "delivered agents fetched", result)
}

func (h *deliveredHandlers) get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	view, err := h.delivered.Get(c.Request.Context(), principal(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "delivered agent fetched", view)
}

type maintenanceStatusBody struct {
	MaintenanceStatus domain.MaintenanceStatus `json:"maintenance_status" binding:"required"`
}

func (h *deliveredHandlers) updateMaintenance(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var body maintenanceStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err))
		return
	}

	view, err := h.delivered.UpdateMaintenanceStatus(c.Request.Context(), principal(c), id, body.MaintenanceStatus)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "maintenance status updated", view)
}
