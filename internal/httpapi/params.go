package httpapi

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rpattn/agenthub/internal/auth"
	"github.com/rpattn/agenthub/internal/domain"
	"github.com/rpattn/agenthub/internal/service"
)

// listParams reads the query surface of a list endpoint. $page and $rpp only
// trigger paginated mode together; supplying one without the other is a
// caller error.
func listParams(c *gin.Context) (service.ListParams, error) {
	params := service.ListParams{
		Filter:  c.Query("$filter"),
		OrderBy: c.Query("$orderBy"),
	}

	pageRaw, hasPage := c.GetQuery("$page")
	rppRaw, hasRPP := c.GetQuery("$rpp")
	if hasPage != hasRPP {
		return service.ListParams{}, fmt.Errorf("%w: $page and $rpp must be supplied together", domain.ErrInvalidInput)
	}
	if !hasPage {
		return params, nil
	}

	page, err := strconv.Atoi(pageRaw)
	if err != nil {
		return service.ListParams{}, fmt.Errorf("%w: $page must be an integer", domain.ErrInvalidInput)
	}
	rpp, err := strconv.Atoi(rppRaw)
	if err != nil || rpp < 1 {
		return service.ListParams{}, fmt.Errorf("%w: $rpp must be a positive integer", domain.ErrInvalidInput)
	}

	params.Page = &page
	params.RPP = &rpp
	return params, nil
}

func pathID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid id %q", domain.ErrInvalidInput, c.Param("id"))
	}
	return id, nil
}

func principal(c *gin.Context) auth.Principal {
	p, _ := auth.PrincipalFromContext(c.Request.Context())
	return p
}
