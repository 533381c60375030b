package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"
)

const (
	sessionKeyPrefix  = "session:"
	defaultSessionTTL = 24 * time.Hour
)

// Session is what the web frontend knows about a logged-in user: the OIDC
// subject and the token set for calling the API on their behalf.
type Session struct {
	Subject string        `json:"subject"`
	Token   *oauth2.Token `json:"token"`
}

// SessionStore keeps sessions in Redis under random ids with a TTL.
type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{rdb: rdb, ttl: ttl}
}

// Create stores a new session and returns its id.
func (s *SessionStore) Create(ctx context.Context, sess Session) (string, error) {
	id, err := newSessionID()
	if err != nil {
		return "", err
	}
	if err := s.write(ctx, id, sess); err != nil {
		return "", err
	}
	return id, nil
}

// Get returns the session for id, or false when it is missing or expired.
func (s *SessionStore) Get(ctx context.Context, id string) (Session, bool) {
	b, err := s.rdb.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		// redis.Nil (missing/expired) and transport errors both mean
		// "no usable session".
		return Session{}, false
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return Session{}, false
	}
	return sess, true
}

// Save overwrites an existing session, e.g. after a token refresh. The TTL
// starts over; the session is a sliding window.
func (s *SessionStore) Save(ctx context.Context, id string, sess Session) error {
	return s.write(ctx, id, sess)
}

// Delete removes a session by id.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+id).Err()
}

func (s *SessionStore) write(ctx context.Context, id string, sess Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.rdb.Set(ctx, sessionKeyPrefix+id, b, s.ttl).Err()
}

func newSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return hex.EncodeToString(b), nil
}
