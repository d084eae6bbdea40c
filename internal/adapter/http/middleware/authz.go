package middleware

import (
	"net/http"
	"strings"

	"github.com/dzmitrysafronau/shop-project/internal/security"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

type Authz struct {
	tokens *security.TokenService
}

func NewAuthz(tokens *security.TokenService) *Authz {
	return &Authz{tokens: tokens}
}

// Require validates the bearer access token and stores the caller identity
// in the gin context.
func (a *Authz) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := a.identity(c)
		if !ok {
			abortUnauthenticated(c)
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// RequireAdmin additionally demands the is_admin claim; non-admin callers
// get 403.
func (a *Authz) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := a.identity(c)
		if !ok {
			abortUnauthenticated(c)
			return
		}
		if !id.IsAdmin {
			abortForbidden(c)
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

func (a *Authz) identity(c *gin.Context) (security.Identity, bool) {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return security.Identity{}, false
	}
	raw := strings.TrimPrefix(auth, "Bearer ")
	id, err := a.tokens.Verify(raw, security.TokenAccess)
	if err != nil {
		return security.Identity{}, false
	}
	return id, true
}

// IdentityFrom reads the identity set by Require/RequireAdmin. Handlers on
// endpoints that defer the auth check (cart add validates the payload shape
// first) call this directly and handle the missing case themselves.
func IdentityFrom(c *gin.Context) (security.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return security.Identity{}, false
	}
	id, ok := v.(security.Identity)
	return id, ok
}

// IdentityFromHeader verifies the bearer token without requiring a prior
// middleware pass.
func (a *Authz) IdentityFromHeader(c *gin.Context) (security.Identity, bool) {
	return a.identity(c)
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{
		"type":   "NotAuthenticated",
		"status": http.StatusUnauthorized,
		"detail": "Authentication credentials were not provided.",
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	}})
}

func abortForbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": gin.H{
		"type":   "PermissionDenied",
		"status": http.StatusForbidden,
		"detail": "You do not have permission to perform this action.",
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	}})
}
