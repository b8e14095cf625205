package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rpattn/agenthub/internal/domain"
	"github.com/rpattn/agenthub/internal/service"
)

// Envelope is the uniform response wrapper of every endpoint.
type Envelope struct {
	Status     bool   `json:"status"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
}

// PagedData is the data payload of a paginated list response.
type PagedData struct {
	Pages        string `json:"pages"`
	CurrentPage  int    `json:"current_page"`
	TotalPages   int    `json:"total_pages"`
	TotalRecords int    `json:"total_records"`
	Data         any    `json:"data"`
}

func respondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Envelope{
		Status:     true,
		StatusCode: http.StatusOK,
		Message:    message,
		Data:       data,
	})
}

// respondList wraps a list result: a pagination envelope in paginated mode,
// a bare array otherwise.
func respondList[T any](c *gin.Context, message string, result service.ListResult[T]) {
	items := result.Items
	if items == nil {
		items = []T{}
	}
	if !result.Paginated {
		respondOK(c, message, items)
		return
	}
	respondOK(c, message, PagedData{
		Pages:        result.Page.Label(),
		CurrentPage:  result.Page.Current,
		TotalPages:   result.Page.TotalPages,
		TotalRecords: result.Page.TotalRecords,
		Data:         items,
	})
}

// respondError maps the error taxonomy onto status codes: syntax, duplicate
// delivery, bad references and bad input answer 400, missing documents 404,
// anything unrecognized propagates as 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidFilterSyntax),
		errors.Is(err, domain.ErrAlreadyDelivered),
		errors.Is(err, domain.ErrInvalidReference),
		errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	}

	c.JSON(status, Envelope{
		Status:     false,
		StatusCode: status,
		Message:    err.Error(),
	})
}
