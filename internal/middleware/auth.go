package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/salonova/booking-api/internal/auth"
	"github.com/salonova/booking-api/internal/config"
	domain "github.com/salonova/booking-api/internal/domain/booking"
)

const (
	ContextPrincipal = "principal"
	ContextTokenJTI  = "tokenJTI"
	ContextTokenExp  = "tokenExp"
)

// AccessGuard verifies the bearer token and re-resolves the declared
// principal against the credential store on every request. The token is
// a hint, not the source of truth: a token for a deactivated or deleted
// record never authorizes. Every failure is a 401; callers cannot tell
// "disabled" from "never existed".
func AccessGuard(
	cfg *config.Config,
	creds *auth.CredentialStore,
	tokens auth.TokenStore,
) gin.HandlerFunc {

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error_code": "missing_authorization_header", "message": "Authorization required."})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error_code": "invalid_authorization_header", "message": "Authorization required."})
			return
		}

		claims, err := auth.ParseToken(cfg, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error_code": "invalid_token", "message": "Invalid or expired token."})
			return
		}

		if !claims.Role.IsValid() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error_code": "invalid_token_payload", "message": "Invalid or expired token."})
			return
		}

		if claims.JTI != "" && tokens != nil {
			revoked, err := tokens.IsRevoked(c.Request.Context(), claims.JTI)
			if err != nil {
				// Revocation store outage must not take the API down.
				log.Println("token store error:", err)
			}
			if revoked {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error_code": "invalid_token", "message": "Invalid or expired token."})
				return
			}
		}

		principal, err := creds.FindPrincipal(c.Request.Context(), claims.SubjectID, claims.Role)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error_code": "principal_not_found", "message": "Invalid or expired token."})
			return
		}

		c.Set(ContextPrincipal, principal)
		c.Set(ContextTokenJTI, claims.JTI)
		c.Set(ContextTokenExp, claims.ExpiresAt)

		c.Next()
	}
}

// RequireRoles gates a route group to the given roles. Must run after
// AccessGuard.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		p := MustPrincipal(c)
		if !allowed[p.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error_code": "forbidden", "message": "Insufficient permissions."})
			return
		}
		c.Next()
	}
}

// MustPrincipal returns the resolved principal; panics if the guard did
// not run, which is a routing bug.
func MustPrincipal(c *gin.Context) *domain.Principal {
	return c.MustGet(ContextPrincipal).(*domain.Principal)
}

// TokenLifetime returns the jti and remaining TTL of the presented token.
func TokenLifetime(c *gin.Context) (string, time.Duration) {
	jti, _ := c.Get(ContextTokenJTI)
	exp, _ := c.Get(ContextTokenExp)

	jtiStr, _ := jti.(string)
	expAt, _ := exp.(time.Time)

	return jtiStr, time.Until(expAt)
}
