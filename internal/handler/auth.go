package handler

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/Lais666/API-Biblioteca-Pytest/internal/models"
	"github.com/Lais666/API-Biblioteca-Pytest/internal/session"
	"github.com/Lais666/API-Biblioteca-Pytest/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler serves login and logout.
type AuthHandler struct {
	DB       *gorm.DB
	Sessions *session.Store
}

func NewAuthHandler(db *gorm.DB, sessions *session.Store) *AuthHandler {
	return &AuthHandler{DB: db, Sessions: sessions}
}

type loginReq struct {
	Email string `json:"email" binding:"required"`
	Senha string `json:"senha" binding:"required"`
}

// Login authenticates by email and senha and opens a session. The session
// token is returned in the body and set as a cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Erro(c, http.StatusBadRequest, "Dados inválidos")
		return
	}

	var usuario models.Usuario
	if err := h.DB.Where("email = ?", req.Email).First(&usuario).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Erro(c, http.StatusUnauthorized, "Email ou senha inválidos")
		} else {
			util.Erro(c, http.StatusInternalServerError, "Erro ao consultar usuário")
		}
		return
	}

	if !h.checkSenha(&usuario, req.Senha) {
		util.Erro(c, http.StatusUnauthorized, "Email ou senha inválidos")
		return
	}

	token, _, err := h.Sessions.Create(usuario.IDUsuario)
	if err != nil {
		util.Erro(c, http.StatusInternalServerError, "Erro ao criar sessão")
		return
	}

	maxAge := int(h.Sessions.TTL.Seconds())
	c.SetCookie(session.CookieName, token, maxAge, "/", "", false, true)

	util.MensagemCom(c, "Login com sucesso", gin.H{
		"token": token,
		"usuario": gin.H{
			"id_usuario": usuario.IDUsuario,
			"email":      usuario.Email,
		},
	})
}

// Logout revokes the current session, if any. Always succeeds so repeated
// logouts do not error.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := util.TokenFromContext(c, session.CookieName); token != "" {
		_ = h.Sessions.RevokeToken(token)
	}
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
	util.Mensagem(c, http.StatusOK, "Logout bem Sucedido")
}

// checkSenha verifies the senha against the stored value. Rows written by the
// application hold a bcrypt hash; rows seeded directly into the table may hold
// the plain senha, which is accepted once and upgraded to a hash.
func (h *AuthHandler) checkSenha(usuario *models.Usuario, senha string) bool {
	if isBcryptHash(usuario.Senha) {
		return bcrypt.CompareHashAndPassword([]byte(usuario.Senha), []byte(senha)) == nil
	}

	if subtle.ConstantTimeCompare([]byte(usuario.Senha), []byte(senha)) != 1 {
		return false
	}

	// legacy plain row: upgrade in place, best effort
	if hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost); err == nil {
		_ = h.DB.Model(usuario).Update("senha", string(hash)).Error
	}
	return true
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
