package middleware

import (
	"net/http"

	"staffhub/internal/domain"
	"staffhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireRoles ensures the authenticated user holds one of the given roles.
// Used for route-level restrictions tighter than the prefix table.
func RequireRoles(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleAny, exists := c.Get("role")
		if !exists {
			response.AbortError(c, http.StatusUnauthorized, response.CodeUnauthorized, "Role not found in session")
			return
		}

		role := domain.UserRole(roleAny.(string))
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		response.AbortError(c, http.StatusForbidden, response.CodeForbidden, "Access denied: insufficient permissions")
	}
}

// AdminOnly middleware requires the ADMIN role
func AdminOnly() gin.HandlerFunc {
	return RequireRoles(domain.RoleAdmin)
}
