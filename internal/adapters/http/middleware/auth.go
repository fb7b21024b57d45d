package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/securecookie"

	"fittrack/internal/application/authz"
)

const sessionCookieName = "fittrack_session"

// Sessions ties a SessionStore to the signed cookie that carries its token.
type Sessions struct {
	store  SessionStore
	codec  *securecookie.SecureCookie
	secure bool
}

// NewSessions creates a cookie-backed session manager.
// PRE: hashKey is at least 32 bytes
func NewSessions(store SessionStore, hashKey []byte, secure bool) *Sessions {
	codec := securecookie.New(hashKey, nil)
	codec.MaxAge(int(SessionTTL.Seconds()))
	return &Sessions{store: store, codec: codec, secure: secure}
}

// Start creates a session and sets its cookie on the response.
// POST: Session is stored, cookie is set
func (s *Sessions) Start(ctx context.Context, w http.ResponseWriter, sess Session) error {
	token, err := s.store.Create(ctx, sess)
	if err != nil {
		return err
	}
	encoded, err := s.codec.Encode(sessionCookieName, token)
	if err != nil {
		return err
	}
	http.SetCookie(w, s.cookie(encoded, int(SessionTTL.Seconds())))
	return nil
}

// End deletes the caller's session, if any, and clears the cookie.
func (s *Sessions) End(w http.ResponseWriter, r *http.Request) error {
	var err error
	if token, ok := s.token(r); ok {
		err = s.store.Delete(r.Context(), token)
	}
	http.SetCookie(w, s.cookie("", -1))
	return err
}

// Load returns the session referenced by the request cookie.
func (s *Sessions) Load(r *http.Request) (Session, bool) {
	token, ok := s.token(r)
	if !ok {
		return Session{}, false
	}
	return s.store.Get(r.Context(), token)
}

func (s *Sessions) token(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	var token string
	if err := s.codec.Decode(sessionCookieName, cookie.Value, &token); err != nil {
		return "", false
	}
	return token, true
}

func (s *Sessions) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   maxAge,
	}
}

// Auth returns middleware that resolves the caller from a bearer token or the session
// cookie and places the identity in the request context.
// It does NOT block unauthenticated requests; the action layer decides that.
// A request carrying a bearer header never falls back to the cookie.
func Auth(sessions *Sessions, tokens *TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if raw, ok := BearerToken(r); ok {
				if tokens != nil {
					if id, err := tokens.Parse(raw); err == nil {
						r = r.WithContext(authz.WithIdentity(r.Context(), id))
					}
				}
				next.ServeHTTP(w, r)
				return
			}
			if sessions != nil {
				if sess, ok := sessions.Load(r); ok {
					r = r.WithContext(authz.WithIdentity(r.Context(), sess.Identity()))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// BearerToken returns the token of an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(h[len(prefix):]), true
}
