package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/phlebotomy-portal/internal/models"
	appErrors "github.com/noah-isme/phlebotomy-portal/pkg/errors"
)

const sessionKeyPrefix = "portal:session:"

// Sealer protects the credential before it leaves the process.
type Sealer interface {
	Seal(plain string) (string, error)
	Open(sealed string) (string, error)
}

// RedisSessionRepository persists sessions in Redis with the credential sealed.
type RedisSessionRepository struct {
	client *redis.Client
	sealer Sealer
}

// NewRedisSessionRepository constructs the repository.
func NewRedisSessionRepository(client *redis.Client, sealer Sealer) *RedisSessionRepository {
	return &RedisSessionRepository{client: client, sealer: sealer}
}

// Save stores the session until ttl elapses.
func (r *RedisSessionRepository) Save(ctx context.Context, session models.Session, ttl time.Duration) error {
	sealed, err := r.sealer.Seal(session.Token)
	if err != nil {
		return fmt.Errorf("seal session credential: %w", err)
	}
	session.Token = sealed
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+session.ID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

// Find loads a session by id.
func (r *RedisSessionRepository) Find(ctx context.Context, id string) (*models.Session, error) {
	raw, err := r.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, appErrors.ErrNotFound
		}
		return nil, fmt.Errorf("redis get session: %w", err)
	}
	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	token, err := r.sealer.Open(session.Token)
	if err != nil {
		return nil, appErrors.ErrNotFound
	}
	session.Token = token
	return &session, nil
}

// Delete removes a session.
func (r *RedisSessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}

type memorySession struct {
	session   models.Session
	expiresAt time.Time
}

// MemorySessionRepository keeps sessions in process memory. It is used when Redis is disabled.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
	now      func() time.Time
}

// NewMemorySessionRepository constructs an empty repository.
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[string]memorySession), now: time.Now}
}

// Save stores the session until ttl elapses.
func (r *MemorySessionRepository) Save(_ context.Context, session models.Session, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = memorySession{session: session, expiresAt: r.now().Add(ttl)}
	return nil
}

// Find loads a session by id.
func (r *MemorySessionRepository) Find(_ context.Context, id string) (*models.Session, error) {
	r.mu.RLock()
	entry, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, appErrors.ErrNotFound
	}
	if !r.now().Before(entry.expiresAt) {
		r.mu.Lock()
		delete(r.sessions, id)
		r.mu.Unlock()
		return nil, appErrors.ErrNotFound
	}
	session := entry.session
	return &session, nil
}

// Delete removes a session.
func (r *MemorySessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}
