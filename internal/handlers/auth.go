package handlers

import (
	"net/http"
	"strings"

	"github.com/SAP-F-2025/certification-service/internal/config"
	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"
)

const userIDHeader = "X-User-ID"

// TokenParser validates a bearer token and returns its claims
type TokenParser interface {
	ParseJwtToken(token string) (*casdoorsdk.Claims, error)
}

// NewCasdoorTokenParser builds a parser checking tokens against the Casdoor certificate
func NewCasdoorTokenParser(cfg config.AuthConfig) TokenParser {
	return casdoorsdk.NewClient(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Certificate,
		cfg.OrganizationName,
		cfg.ApplicationName,
	)
}

// AuthMiddleware stores the authenticated user id under "user_id". A nil
// parser trusts the X-User-ID header, for development only.
func AuthMiddleware(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if parser == nil {
			if userID := strings.TrimSpace(c.GetHeader(userIDHeader)); userID != "" {
				c.Set(userIDKey, userID)
			}
			c.Next()
			return
		}

		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "Missing bearer token"})
			return
		}

		claims, err := parser.ParseJwtToken(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid token",
				Details: err.Error(),
			})
			return
		}

		userID := claims.User.Id
		if userID == "" {
			userID = claims.User.Name
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}
