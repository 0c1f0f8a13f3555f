package handler_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/Lais666/API-Biblioteca-Pytest/internal/models"
	"github.com/Lais666/API-Biblioteca-Pytest/internal/session"
)

// TestLogin: correct email+senha opens a session and sets the cookie.
func TestLogin(t *testing.T) {
	r, db, _ := setupRouter(t)
	seedUsuario(t, db, 1, "test@example.com", "123456")

	w := doJSON(r, http.MethodPost, "/login", "", map[string]string{
		"email": "test@example.com",
		"senha": "123456",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Login com sucesso") {
		t.Errorf("body = %s, want login success message", w.Body.String())
	}

	var cookie string
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName && c.Value != "" {
			cookie = c.Value
		}
	}
	if cookie == "" {
		t.Fatal("no session cookie set on login")
	}

	// session row must carry the user id
	var sess models.Session
	if err := db.Where("id_usuario = ?", 1).First(&sess).Error; err != nil {
		t.Fatalf("no session row for user 1: %v", err)
	}
	if sess.Revoked {
		t.Error("fresh session is revoked")
	}
}

// TestLoginSenhaErrada: wrong senha is rejected without the success string.
func TestLoginSenhaErrada(t *testing.T) {
	r, db, _ := setupRouter(t)
	seedUsuario(t, db, 1, "test@example.com", "123456")

	w := doJSON(r, http.MethodPost, "/login", "", map[string]string{
		"email": "test@example.com",
		"senha": "errada",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if strings.Contains(w.Body.String(), "Login com sucesso") {
		t.Errorf("failed login body contains the success message: %s", w.Body.String())
	}
}

// TestLoginEmailInexistente: unknown email behaves like a wrong senha.
func TestLoginEmailInexistente(t *testing.T) {
	r, _, _ := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/login", "", map[string]string{
		"email": "ninguem@example.com",
		"senha": "123456",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

// TestLoginUpgradesSenha: a directly-seeded plain senha is rehashed on first login.
func TestLoginUpgradesSenha(t *testing.T) {
	r, db, _ := setupRouter(t)
	seedUsuario(t, db, 1, "test@example.com", "123456")

	w := doJSON(r, http.MethodPost, "/login", "", map[string]string{
		"email": "test@example.com",
		"senha": "123456",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var u models.Usuario
	if err := db.First(&u, 1).Error; err != nil {
		t.Fatalf("reload usuario: %v", err)
	}
	if !strings.HasPrefix(u.Senha, "$2") {
		t.Errorf("senha was not upgraded to a bcrypt hash: %q", u.Senha)
	}

	// the hashed senha must still log in
	w = doJSON(r, http.MethodPost, "/login", "", map[string]string{
		"email": "test@example.com",
		"senha": "123456",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("second login status = %d, want 200", w.Code)
	}
}

// TestLogout: logout revokes the session; the token no longer authorizes mutations.
func TestLogout(t *testing.T) {
	r, db, store := setupRouter(t)
	token := openSession(t, db, store, 1)

	w := doJSON(r, http.MethodPost, "/logout", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Logout bem Sucedido") {
		t.Errorf("body = %s, want logout message", w.Body.String())
	}

	w = doJSON(r, http.MethodPost, "/livro", token, map[string]interface{}{
		"titulo":         "Depois do logout",
		"autor":          "Alguém",
		"ano_publicacao": 2021,
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("mutation after logout status = %d, want 401", w.Code)
	}
}

// TestLogoutSemSessao: logout without a session is a no-op, not an error.
func TestLogoutSemSessao(t *testing.T) {
	r, _, _ := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/logout", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Logout bem Sucedido") {
		t.Errorf("body = %s, want logout message", w.Body.String())
	}
}

// TestLogoutCookieLimpo: logout clears the session cookie.
func TestLogoutCookieLimpo(t *testing.T) {
	r, db, store := setupRouter(t)
	token := openSession(t, db, store, 1)

	w := doJSON(r, http.MethodPost, "/logout", token, nil)
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName && c.MaxAge >= 0 && c.Value != "" {
			t.Errorf("session cookie not cleared: %+v", c)
		}
	}
}
