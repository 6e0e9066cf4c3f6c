package middleware

import (
	"net/http"
	"strings"

	"hotel-desk/models"
	"hotel-desk/services"
	"hotel-desk/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	ctxClaims   = "claims"
	ctxUserID   = "userID"
	ctxUserRole = "userRole"
)

// AuthMiddleware requires a valid, unrevoked bearer token; with roles given,
// the token's role must be one of them.
func AuthMiddleware(tokens *utils.TokenIssuer, sessions services.SessionStore, log *zerolog.Logger, roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if authHeader == "" || raw == "" {
			utils.JSONError(c, http.StatusUnauthorized, "error.missingToken", "authorization token is required")
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "error.invalidOrExpiredToken", "token is invalid or expired")
			return
		}

		revoked, err := sessions.IsRevoked(c.Request.Context(), claims.Id)
		if err != nil {
			log.Error().Err(err).Msg("session store lookup failed")
			utils.JSONError(c, http.StatusServiceUnavailable, "error.sessionStore", "session store unavailable")
			return
		}
		if revoked {
			utils.JSONError(c, http.StatusUnauthorized, "error.invalidOrExpiredToken", "token has been revoked")
			return
		}

		if !hasRole(claims.Role, roles) {
			utils.JSONError(c, http.StatusForbidden, "error.forbidden", "insufficient role")
			return
		}

		c.Set(ctxClaims, claims)
		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUserRole, claims.Role)
		c.Request = c.Request.WithContext(services.WithActor(c.Request.Context(), claims.Username))
		c.Next()
	}
}

// RoleMiddleware narrows an authenticated group to the given roles.
func RoleMiddleware(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(ctxUserRole)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "error.missingToken", "authorization token is required")
			return
		}
		if !hasRole(role.(models.UserRole), roles) {
			utils.JSONError(c, http.StatusForbidden, "error.forbidden", "insufficient role")
			return
		}
		c.Next()
	}
}

func hasRole(role models.UserRole, allowed []models.UserRole) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// ClaimsFrom returns the claims set by AuthMiddleware.
func ClaimsFrom(c *gin.Context) (*utils.Claims, bool) {
	v, ok := c.Get(ctxClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*utils.Claims)
	return claims, ok
}
