package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/grandline-driver/pkg/response"
)

const CtxAccessTokenKey = "accessToken"

// TokenChecker reports whether an access token was issued by this server.
type TokenChecker interface {
	IsAccessToken(token string) bool
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Auth requires an "Authorization: Bearer <token>" header carrying an issued
// access token and stores the token in the Gin context.
func Auth(tokens TokenChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Abort(c, response.Error[any](c, http.StatusUnauthorized, "Missing access token", nil))
			return
		}
		if !tokens.IsAccessToken(token) {
			response.Abort(c, response.Error[any](c, http.StatusUnauthorized, "Invalid access token", nil))
			return
		}
		c.Set(CtxAccessTokenKey, token)
		c.Next()
	}
}
