package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rpattn/agenthub/internal/domain"
	"github.com/rpattn/agenthub/internal/export"
	"github.com/rpattn/agenthub/internal/service"
)

type requestHandlers struct {
	requests *service.RequestService
}

func (h *requestHandlers) list(c *gin.Context) {
	params, err := listParams(c)
	if err != nil {
		respondError(c, err)
		return
	}
	result, err := h.requests.List(c.Request.Context(), principal(c), params)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, "agent requests fetched", result)
}

type submitRequestBody struct {
	AgentID     uuid.UUID `json:"agent_id" binding:"required"`
	Workflows   []string  `json:"work_flows" binding:"required"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}

func (h *requestHandlers) create(c *gin.Context) {
	var body submitRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err))
		return
	}

	view, err := h.requests.Submit(c.Request.Context(), principal(c), service.SubmitRequestInput{
		AgentID:     body.AgentID,
		Workflows:   body.Workflows,
		Title:       body.Title,
		Description: body.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "agent request submitted", view)
}

func (h *requestHandlers) get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	view, err := h.requests.Get(c.Request.Context(), principal(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "agent request fetched", view)
}

type updateRequestBody struct {
	Title       *string               `json:"title"`
	Description *string               `json:"description"`
	Image       *string               `json:"image"`
	Status      *domain.RequestStatus `json:"status"`
}

func (h *requestHandlers) update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var body updateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err))
		return
	}

	view, err := h.requests.Update(c.Request.Context(), principal(c), id, service.UpdateRequestInput{
		Title:       body.Title,
		Description: body.Description,
		Image:       body.Image,
		Status:      body.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "agent request updated", view)
}

func (h *requestHandlers) remove(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.requests.Delete(c.Request.Context(), principal(c), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "agent request deleted", nil)
}

func (h *requestHandlers) export(c *gin.Context) {
	params, err := listParams(c)
	if err != nil {
		respondError(c, err)
		return
	}
	rows, err := h.requests.ExportRows(c.Request.Context(), principal(c), params)
	if err != nil {
		respondError(c, err)
		return
	}

	workbook, err := export.AgentRequestsWorkbook(rows)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="agent_requests.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)
	if err := workbook.Write(c.Writer); err != nil {
		// Headers are already sent; nothing useful left to answer.
		_ = c.Error(err)
	}
}
