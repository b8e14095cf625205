package httpapi

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpattn/agenthub/internal/domain"
)

func testContext(t *testing.T, target string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	return c
}

func TestListParamsUnpaginated(t *testing.T) {
	c := testContext(t, "/api/agent-requests?$filter=status+eq+Submitted&$orderBy=created_at+desc")

	params, err := listParams(c)
	require.NoError(t, err)

	assert.Equal(t, "status eq Submitted", params.Filter)
	assert.Equal(t, "created_at desc", params.OrderBy)
	assert.False(t, params.Paged())
}

func TestListParamsPaginated(t *testing.T) {
	c := testContext(t, "/api/agent-requests?$page=2&$rpp=10")

	params, err := listParams(c)
	require.NoError(t, err)

	require.True(t, params.Paged())
	assert.Equal(t, 2, *params.Page)
	assert.Equal(t, 10, *params.RPP)
}

func TestListParamsRejectsLonePage(t *testing.T) {
	for _, target := range []string{"/api/agent-requests?$page=2", "/api/agent-requests?$rpp=10"} {
		c := testContext(t, target)
		_, err := listParams(c)
		require.Errorf(t, err, "target %s", target)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestListParamsRejectsBadNumbers(t *testing.T) {
	for _, target := range []string{
		"/api/agent-requests?$page=abc&$rpp=10",
		"/api/agent-requests?$page=1&$rpp=0",
		"/api/agent-requests?$page=1&$rpp=-5",
	} {
		c := testContext(t, target)
		_, err := listParams(c)
		assert.ErrorIsf(t, err, domain.ErrInvalidInput, "target %s", target)
	}
}
