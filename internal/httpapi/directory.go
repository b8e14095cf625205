package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/rpattn/agenthub/internal/service"
)

type directoryHandlers struct {
	directory *service.DirectoryService
}

func (h *directoryHandlers) agents(c *gin.Context) {
	params, err := listParams(c)
	if err != nil {
		respondError(c, err)
		return
	}
	result, err := h.directory.Agents(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, "agents fetched", result)
}

func (h *directoryHandlers) companies(c *gin.Context) {
	params, err := listParams(c)
	if err != nil {
		respondError(c, err)
		return
	}
	result, err := h.directory.Companies(c.Request.Context(), principal(c), params)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, "companies fetched", result)
}

func (h *directoryHandlers) integrations(c *gin.Context) {
	params, err := listParams(c)
	if err != nil {
		respondError(c, err)
		return
	}
	result, err := h.directory.Integrations(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, "integrations fetched", result)
}

func (h *directoryHandlers) notifications(c *gin.Context) {
	params, err := listParams(c)
	if err != nil {
		respondError(c, err)
		return
	}
	result, err := h.directory.Notifications(c.Request.Context(), principal(c), params)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, "notifications fetched", result)
}

func (h *directoryHandlers) customerQueries(c *gin.Context) {
	params, err := listParams(c)
	if err != nil {
		respondError(c, err)
		return
	}
	result, err := h.directory.CustomerQueries(c.Request.Context(), principal(c), params)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, "queries fetched", result)
}
