package http_api

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gizaresult/resultdesk/internal/errs"
)

// adminClaimsKey holds the verified *models.AdminClaims in the gin context.
const adminClaimsKey = "admin"

// corsMiddleware adds CORS headers to all responses
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// bearerToken returns the credential part of an "Authorization: <scheme> <token>"
// header, or "" when there is none.
func bearerToken(header string) string {
	fields := strings.Fields(header)
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}

// authMiddleware rejects the request before the handler runs unless it
// carries a valid admin token. No token is 401, a bad or expired one 403.
func (s *HTTPServer) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			s.abortWithError(c, errs.ErrUnauthenticated)
			return
		}

		claims, err := s.gate.Verify(token)
		if err != nil {
			s.logger.Debug("Rejected admin token", "path", c.FullPath(), "error", err)
			s.abortWithError(c, err)
			return
		}

		c.Set(adminClaimsKey, claims)
		c.Next()
	}
}
