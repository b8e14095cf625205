package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rpattn/agenthub/internal/auth"
)

// Identity headers set by the upstream gateway after JWT validation. This
// service trusts them; it never sees raw tokens.
const (
	HeaderUserID    = "X-User-Id"
	HeaderCompanyID = "X-Company-Id"
	HeaderUserRole  = "X-User-Role"
)

// Authenticate places the gateway-supplied principal on the request context.
// Requests without a user identity are rejected before reaching a handler.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := uuid.Parse(c.GetHeader(HeaderUserID))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":     false,
				"statusCode": http.StatusUnauthorized,
				"message":    "missing or invalid user identity",
			})
			return
		}

		principal := auth.Principal{
			UserID: userID,
			Role:   c.GetHeader(HeaderUserRole),
		}
		if companyID, err := uuid.Parse(c.GetHeader(HeaderCompanyID)); err == nil {
			principal.CompanyID = companyID
		}

		c.Request = c.Request.WithContext(auth.ContextWithPrincipal(c.Request.Context(), principal))
		c.Next()
	}
}
