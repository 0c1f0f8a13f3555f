package util

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Mensagem writes a plain `{"mensagem": ...}` body with the given status.
func Mensagem(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"mensagem": msg})
}

// MensagemCom writes a `mensagem` body with extra payload fields.
func MensagemCom(c *gin.Context, msg string, extra gin.H) {
	body := gin.H{"mensagem": msg}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Erro writes an error body. Kept separate from Mensagem so handlers read
// clearly even though the envelope is the same.
func Erro(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"mensagem": msg})
}

// TokenFromContext extracts the session token from the request, trying the
// session cookie, then the Authorization header, then the token query param
// (for download links that cannot set headers).
func TokenFromContext(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}

	return c.Query("token")
}
