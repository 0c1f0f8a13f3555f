package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Lais666/API-Biblioteca-Pytest/internal/config"
	"github.com/Lais666/API-Biblioteca-Pytest/internal/database"
	"github.com/Lais666/API-Biblioteca-Pytest/internal/models"
	"github.com/Lais666/API-Biblioteca-Pytest/internal/router"
	"github.com/Lais666/API-Biblioteca-Pytest/internal/session"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// setupRouter builds a router backed by a fresh in-memory database.
func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB, *session.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode},
		Database: config.DatabaseConfig{
			Driver: "sqlite",
			DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_")),
		},
		Session: config.SessionConfig{Secret: "test-secret", ExpireHours: 1},
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		t.Fatalf("init database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	r := router.SetupRouter(cfg, db)
	store := session.NewStore(db, cfg.Session.Secret, cfg.Session.ExpireHours)
	return r, db, store
}

// seedUsuario inserts a user row directly, the way the reference fixtures do.
func seedUsuario(t *testing.T, db *gorm.DB, id uint, email, senha string) {
	t.Helper()
	u := models.Usuario{IDUsuario: id, Email: email, Senha: senha}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed usuario: %v", err)
	}
}

func seedLivro(t *testing.T, db *gorm.DB, id uint, titulo, autor string, ano int) {
	t.Helper()
	l := models.Livro{IDLivro: id, Titulo: titulo, Autor: autor, AnoPublicacao: ano}
	if err := db.Create(&l).Error; err != nil {
		t.Fatalf("seed livro: %v", err)
	}
}

// openSession seeds a user (if missing) and returns a valid session token,
// the equivalent of presetting id_usuario on the test client session.
func openSession(t *testing.T, db *gorm.DB, store *session.Store, idUsuario uint) string {
	t.Helper()
	var count int64
	db.Model(&models.Usuario{}).Where("id_usuario = ?", idUsuario).Count(&count)
	if count == 0 {
		seedUsuario(t, db, idUsuario, fmt.Sprintf("user%d@example.com", idUsuario), "123456")
	}
	token, _, err := store.Create(idUsuario)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return token
}

// doJSON performs a request with an optional JSON body and session token.
func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
