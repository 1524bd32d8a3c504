package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Alvarezzzzz/charlotte-seguridad/internal/apierror"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/auth"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/model"

	"github.com/gin-gonic/gin"
)

const (
	PrincipalKey = "principal"
)

// JWTAuth validates the Bearer session token on every protected route.
// Location and guest tokens are rejected here.
func JWTAuth(codec *auth.TokenCodec) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token no proporcionado"))
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		claims, err := codec.VerifyType(tokenStr, auth.TypeSession)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token inválido o expirado"))
			return
		}
		p, err := auth.PrincipalFromClaims(claims)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token inválido o expirado"))
			return
		}

		c.Set(PrincipalKey, p)
		c.Next()
	}
}

// PermissionChecker is the slice of the authorization engine the gate needs.
type PermissionChecker interface {
	RequierePermiso(ctx context.Context, userID uint, r model.Resource, m model.Method) error
}

// RequirePermission rejects the request unless the caller's current roles
// grant (r, m). Must run after JWTAuth.
func RequirePermission(checker PermissionChecker, r model.Resource, m model.Method) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := GetPrincipal(c)
		if p == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token no proporcionado"))
			return
		}
		if err := checker.RequierePermiso(c.Request.Context(), p.UserID, r, m); err != nil {
			abortWithError(c, err)
			return
		}
		c.Next()
	}
}

// GetPrincipal is a helper to retrieve the authenticated caller from the Gin context.
func GetPrincipal(c *gin.Context) *auth.Principal {
	v, ok := c.Get(PrincipalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*auth.Principal)
	return p
}

// abortWithError answers with the domain status. Unexpected errors are
// attached to the context so ErrorHandler logs them.
func abortWithError(c *gin.Context, err error) {
	status, body := apierror.Response(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, body)
}
