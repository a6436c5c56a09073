// Package auth holds the storefront's own session plumbing: a cookie
// session that remembers which backend session token belongs to the
// browser, plus the CSRF and security-header middleware. Credential
// verification itself happens on the backend; nothing here stores
// passwords.
package auth

import (
	"database/sql"
	"encoding/gob"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/greenbasket/storefront/internal/config"
)

// Session data keys
const (
	SessionKeyBackendToken = "backend_token"
	SessionKeyEmail        = "email"
	SessionKeyLoginAt      = "login_at"
)

func init() {
	gob.Register(time.Time{})
}

// SessionManager wraps scs.SessionManager with storefront-specific
// methods.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates a configured session manager backed by the
// main SQLite database. The sqlDB parameter should be the underlying
// *sql.DB from GORM.
func NewSessionManager(sqlDB *sql.DB, cfg config.Auth) (*SessionManager, error) {
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)

	sm.Lifetime = cfg.SessionLifetime
	sm.IdleTimeout = cfg.SessionLifetime / 2

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteStrictMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}, nil
}

// CreateSession binds a backend session to the browser cookie after a
// successful login.
func (sm *SessionManager) CreateSession(r *http.Request, email, backendToken string) error {
	// Renew token to prevent session fixation
	if err := sm.RenewToken(r.Context()); err != nil {
		return err
	}

	sm.Put(r.Context(), SessionKeyBackendToken, backendToken)
	sm.Put(r.Context(), SessionKeyEmail, email)
	sm.Put(r.Context(), SessionKeyLoginAt, time.Now())

	return nil
}

// DestroySession removes all session data and invalidates the session.
func (sm *SessionManager) DestroySession(r *http.Request) error {
	return sm.Destroy(r.Context())
}

// BackendToken retrieves the stored backend session token.
// Returns "" when the browser is not signed in.
func (sm *SessionManager) BackendToken(r *http.Request) string {
	return sm.GetString(r.Context(), SessionKeyBackendToken)
}

// Email retrieves the signed-in email from the session.
func (sm *SessionManager) Email(r *http.Request) string {
	return sm.GetString(r.Context(), SessionKeyEmail)
}

// IsAuthenticated returns true if the request carries a bound backend
// session.
func (sm *SessionManager) IsAuthenticated(r *http.Request) bool {
	return sm.BackendToken(r) != ""
}

// SessionData holds the session information for a request.
type SessionData struct {
	Email   string
	LoginAt time.Time
}

// GetSessionData retrieves all session data at once, or nil when the
// request is anonymous.
func (sm *SessionManager) GetSessionData(r *http.Request) *SessionData {
	if !sm.IsAuthenticated(r) {
		return nil
	}

	loginAt, _ := sm.Get(r.Context(), SessionKeyLoginAt).(time.Time)

	return &SessionData{
		Email:   sm.Email(r),
		LoginAt: loginAt,
	}
}
