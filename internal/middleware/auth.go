package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-auth-api/pkg/jwtauth"
	"user-auth-api/pkg/logger"
)

// ClaimsKey is the gin context key the guard stores verified claims under.
const ClaimsKey = "claims"

// AuthMiddleware guards protected routes. A request without a bearer token is
// rejected with 401; a request whose token fails verification (bad signature,
// unknown key, expired) is rejected with 403. On success the decoded claims
// are attached to the request context.
type AuthMiddleware struct {
	tokens *jwtauth.TokenService
	logger logger.Logger
}

func NewAuthMiddleware(tokens *jwtauth.TokenService, logger logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		logger: logger.With(zap.String("module", "auth_middleware")),
	}
}

func (m *AuthMiddleware) Handle() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := extractBearerToken(ctx)
		if token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "access token required"})
			return
		}

		claims, err := m.tokens.Parse(token)
		if err != nil {
			m.logger.Warn("token rejected", zap.Error(err))
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "invalid or expired token"})
			return
		}

		ctx.Set(ClaimsKey, claims)
		ctx.Next()
	}
}

// CurrentClaims returns the claims the guard attached to the context, or nil
// when the route was not guarded.
func CurrentClaims(ctx *gin.Context) *jwtauth.Claims {
	v, ok := ctx.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*jwtauth.Claims)
	return claims
}

func extractBearerToken(ctx *gin.Context) string {
	auth := ctx.GetHeader("Authorization")
	if auth == "" {
		return ""
	}
	const prefix = "Bearer "
	if len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
		return auth[len(prefix):]
	}
	return ""
}
