// Package session keeps the editor's in-progress greeting between requests.
// Sessions are identified by a cookie and stored as JSON in Valkey with
// automatic TTL expiry. An in-memory store serves local mode and tests.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"hola/internal/models"
)

const (
	// CookieName is the name of the session cookie sent to the browser.
	CookieName = "hola_session"

	// DefaultTTL is how long an idle draft lives before automatic expiry.
	DefaultTTL = 24 * time.Hour

	// keyPrefix namespaces session keys in Valkey to avoid collisions.
	keyPrefix = "session:"

	// idLength is the byte length of the random session ID (32 bytes = 64 hex chars).
	idLength = 32
)

// Flash is a one-time notification shown on the next rendered page.
type Flash struct {
	Type    string `json:"type"` // "success", "error", "info"
	Message string `json:"message"`
}

// Data holds the editor state stored in the session.
type Data struct {
	ID            string          `json:"-"`
	Draft         models.Greeting `json:"draft"`
	TextAnimation string          `json:"text_animation,omitempty"`
	ScrollEffect  string          `json:"scroll_effect,omitempty"`
	Flashes       []Flash         `json:"flashes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// AddFlash queues a notification for the next page render.
func (d *Data) AddFlash(kind, message string) {
	d.Flashes = append(d.Flashes, Flash{Type: kind, Message: message})
}

// PopFlashes returns the queued notifications and clears them.
func (d *Data) PopFlashes() []Flash {
	f := d.Flashes
	d.Flashes = nil
	return f
}

// kv is the key-value backend a Store writes through.
type kv interface {
	get(ctx context.Context, key string) ([]byte, error) // errMissing when absent
	set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	del(ctx context.Context, key string) error
}

var errMissing = errors.New("session missing")

// Store manages session lifecycle.
type Store struct {
	kv     kv
	ttl    time.Duration
	secure bool
}

// NewStore creates a session store backed by the given Valkey client.
// secure marks the cookie Secure, for deployments behind TLS.
func NewStore(client *redis.Client, secure bool) *Store {
	return &Store{kv: valkeyKV{client: client}, ttl: DefaultTTL, secure: secure}
}

// NewMemoryStore creates a process-local session store.
func NewMemoryStore(secure bool) *Store {
	return &Store{kv: &memoryKV{entries: make(map[string]memoryEntry)}, ttl: DefaultTTL, secure: secure}
}

// Create generates a new session, stores it, and sets the session cookie on
// the response. Returns the session ID, which is also written to data.ID.
func (s *Store) Create(ctx context.Context, w http.ResponseWriter, data *Data) (string, error) {
	id, err := generateID()
	if err != nil {
		return "", fmt.Errorf("session create: %w", err)
	}

	data.ID = id
	data.CreatedAt = time.Now()
	if err := s.Save(ctx, data); err != nil {
		return "", err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.ttl.Seconds()),
	})

	return id, nil
}

// Get retrieves session data using the session ID from the request cookie.
// Returns nil if no valid session exists.
func (s *Store) Get(ctx context.Context, r *http.Request) (*Data, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil // No cookie = no session (not an error)
	}

	payload, err := s.kv.get(ctx, keyPrefix+cookie.Value)
	if errors.Is(err, errMissing) {
		return nil, nil // Session expired or doesn't exist
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("session unmarshal: %w", err)
	}
	data.ID = cookie.Value

	return &data, nil
}

// Save writes data under data.ID and resets the TTL.
func (s *Store) Save(ctx context.Context, data *Data) error {
	if data.ID == "" {
		return errors.New("session save: missing id")
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("session marshal: %w", err)
	}

	if err := s.kv.set(ctx, keyPrefix+data.ID, payload, s.ttl); err != nil {
		return fmt.Errorf("session store: %w", err)
	}
	return nil
}

// Destroy removes the session and clears the cookie.
func (s *Store) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil // No cookie, nothing to destroy
	}

	if err := s.kv.del(ctx, keyPrefix+cookie.Value); err != nil {
		return fmt.Errorf("session destroy: %w", err)
	}

	// Expire the cookie immediately.
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		MaxAge:   -1,
	})

	return nil
}

// generateID creates a cryptographically random session identifier.
func generateID() (string, error) {
	b := make([]byte, idLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

type valkeyKV struct {
	client *redis.Client
}

func (v valkeyKV) get(ctx context.Context, key string) ([]byte, error) {
	payload, err := v.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, errMissing
	}
	return payload, err
}

func (v valkeyKV) set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return v.client.Set(ctx, key, value, ttl).Err()
}

func (v valkeyKV) del(ctx context.Context, key string) error {
	return v.client.Del(ctx, key).Err()
}

type memoryEntry struct {
	value   []byte
	expires time.Time
}

type memoryKV struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

func (m *memoryKV) get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, errMissing
	}
	if time.Now().After(e.expires) {
		delete(m.entries, key)
		return nil, errMissing
	}
	return e.value, nil
}

func (m *memoryKV) set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{value: value, expires: time.Now().Add(ttl)}
	return nil
}

func (m *memoryKV) del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}
