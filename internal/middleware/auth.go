package middleware

import (
	"errors"
	"net/http"

	"github.com/Lais666/API-Biblioteca-Pytest/internal/models"
	"github.com/Lais666/API-Biblioteca-Pytest/internal/session"
	"github.com/Lais666/API-Biblioteca-Pytest/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware validates the session token and puts the current user and
// session into the gin context.
func AuthMiddleware(store *session.Store, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := util.TokenFromContext(c, session.CookieName)
		if tokenStr == "" {
			util.Erro(c, http.StatusUnauthorized, "Não autenticado")
			c.Abort()
			return
		}

		sess, err := store.Validate(tokenStr)
		if err != nil {
			if errors.Is(err, session.ErrInvalidToken) || errors.Is(err, session.ErrSessionExpired) {
				util.Erro(c, http.StatusUnauthorized, "Sessão inválida ou expirada")
			} else {
				util.Erro(c, http.StatusInternalServerError, "Erro ao consultar sessão")
			}
			c.Abort()
			return
		}

		var usuario models.Usuario
		if err := db.First(&usuario, sess.IDUsuario).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				util.Erro(c, http.StatusUnauthorized, "Usuário não existe")
			} else {
				util.Erro(c, http.StatusInternalServerError, "Erro ao consultar usuário")
			}
			c.Abort()
			return
		}

		c.Set("currentUser", &usuario)
		c.Set("currentSession", sess)
		c.Next()
	}
}

// CurrentUsuario returns the authenticated user set by AuthMiddleware.
func CurrentUsuario(c *gin.Context) (*models.Usuario, bool) {
	v, ok := c.Get("currentUser")
	if !ok {
		return nil, false
	}
	usuario, ok := v.(*models.Usuario)
	if !ok || usuario == nil {
		return nil, false
	}
	return usuario, true
}
