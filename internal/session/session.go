package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/Lais666/API-Biblioteca-Pytest/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CookieName is the cookie carrying the session token.
const CookieName = "biblioteca_token"

var (
	ErrInvalidToken   = errors.New("invalid session token")
	ErrSessionExpired = errors.New("session expired or revoked")
)

// Claims is the signed payload carried by the session cookie. The cookie holds
// only the session id; all session state lives in the session table.
type Claims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// Store manages server-side sessions persisted through gorm.
type Store struct {
	DB     *gorm.DB
	Secret string
	TTL    time.Duration
}

func NewStore(db *gorm.DB, secret string, expireHours int) *Store {
	if expireHours <= 0 {
		expireHours = 24
	}
	return &Store{
		DB:     db,
		Secret: secret,
		TTL:    time.Duration(expireHours) * time.Hour,
	}
}

// Create opens a new session for the given user and returns the signed token
// to be delivered via cookie.
func (s *Store) Create(idUsuario uint) (string, *models.Session, error) {
	now := time.Now()
	sess := &models.Session{
		ID:        uuid.NewString(),
		IDUsuario: idUsuario,
		ExpiresAt: now.Add(s.TTL),
	}
	if err := s.DB.Create(sess).Error; err != nil {
		return "", nil, fmt.Errorf("create session: %w", err)
	}

	claims := &Claims{
		SessionID: sess.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.Secret))
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}
	return token, sess, nil
}

// Validate parses a signed token and loads the matching live session row.
func (s *Store) Validate(tokenStr string) (*models.Session, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.Secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}

	var sess models.Session
	if err := s.DB.First(&sess, "id = ?", claims.SessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sess.Revoked || time.Now().After(sess.ExpiresAt) {
		return nil, ErrSessionExpired
	}
	return &sess, nil
}

// Revoke marks the session as logged out. The row is kept for audit.
func (s *Store) Revoke(sess *models.Session) error {
	if err := s.DB.Model(sess).Update("revoked", true).Error; err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// RevokeToken revokes the session referenced by the token, if any. Unknown or
// malformed tokens are ignored so logout stays idempotent.
func (s *Store) RevokeToken(tokenStr string) error {
	sess, err := s.Validate(tokenStr)
	if err != nil {
		return nil
	}
	return s.Revoke(sess)
}
