package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"fittrack/internal/application/authz"
)

// SessionTTL is how long a login session stays valid.
const SessionTTL = 24 * time.Hour

// Session represents an authenticated session.
type Session struct {
	AccountID string    `json:"account_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Identity returns the caller identity carried by the session.
func (s Session) Identity() authz.Identity {
	return authz.Identity{ID: s.AccountID, Email: s.Email, Role: s.Role, Name: s.Name}
}

// SessionStore keeps sessions by opaque token.
type SessionStore interface {
	Create(ctx context.Context, s Session) (string, error)
	Get(ctx context.Context, token string) (Session, bool)
	Delete(ctx context.Context, token string) error
}

// MemorySessionStore is an in-process session store.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	now      func() time.Time
}

// Compile-time check that *MemorySessionStore satisfies SessionStore.
var _ SessionStore = (*MemorySessionStore)(nil)

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

// Create stores a new session and returns the token.
// PRE: s.AccountID, s.Email, s.Role are non-empty
// POST: Session is stored with CreatedAt set, token is returned
func (ms *MemorySessionStore) Create(_ context.Context, s Session) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	s.CreatedAt = ms.now()
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.sessions[token] = s
	return token, nil
}

// Get retrieves a session by token.
// POST: Returns session if present and not expired; expired sessions are removed
func (ms *MemorySessionStore) Get(_ context.Context, token string) (Session, bool) {
	ms.mu.RLock()
	s, ok := ms.sessions[token]
	ms.mu.RUnlock()
	if !ok {
		return Session{}, false
	}
	if ms.now().Sub(s.CreatedAt) > SessionTTL {
		ms.mu.Lock()
		delete(ms.sessions, token)
		ms.mu.Unlock()
		return Session{}, false
	}
	return s, true
}

// Delete removes a session by token.
func (ms *MemorySessionStore) Delete(_ context.Context, token string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.sessions, token)
	return nil
}

// RedisSessionStore keeps sessions in Redis so several server processes can share them.
// Expiry is delegated to the key TTL.
type RedisSessionStore struct {
	client redis.Cmdable
	prefix string
}

// Compile-time check that *RedisSessionStore satisfies SessionStore.
var _ SessionStore = (*RedisSessionStore)(nil)

// NewRedisSessionStore wraps client. Keys are written as "fittrack:session:<token>".
func NewRedisSessionStore(client redis.Cmdable) *RedisSessionStore {
	return &RedisSessionStore{client: client, prefix: "fittrack:session:"}
}

// Create stores s as JSON with a SessionTTL expiry.
func (rs *RedisSessionStore) Create(ctx context.Context, s Session) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	s.CreatedAt = time.Now().UTC()
	payload, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}
	if err := rs.client.Set(ctx, rs.prefix+token, payload, SessionTTL).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Get reads a session. A Redis failure is logged and treated as no session.
func (rs *RedisSessionStore) Get(ctx context.Context, token string) (Session, bool) {
	payload, err := rs.client.Get(ctx, rs.prefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, false
	}
	if err != nil {
		slog.Warn("session_lookup_failed", "store", "redis", "error", err.Error())
		return Session{}, false
	}
	var s Session
	if err := json.Unmarshal(payload, &s); err != nil {
		slog.Warn("session_decode_failed", "store", "redis", "error", err.Error())
		return Session{}, false
	}
	return s, true
}

// Delete removes a session by token.
func (rs *RedisSessionStore) Delete(ctx context.Context, token string) error {
	if err := rs.client.Del(ctx, rs.prefix+token).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
