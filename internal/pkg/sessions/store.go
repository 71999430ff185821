package sessions

import (
	"time"

	"github.com/futig/cookbook-backend/internal/config"
	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Entry is one live session. Payload is owned by the application that
// created the session and is never inspected here.
type Entry struct {
	ID        string
	App       string
	CreatedAt time.Time
	Payload   any
}

// Store is the TTL session registry. Sessions are deliberately not
// persisted: expiry is the cleanup mechanism for everything a session
// owns, including its database rows via the eviction hook.
type Store struct {
	cache  *cache.Cache
	logger *zap.Logger
}

func NewStore(cfg config.SessionConfig, logger *zap.Logger) *Store {
	return &Store{
		cache:  cache.New(cfg.TTL, cfg.CleanupInterval),
		logger: logger,
	}
}

// OnExpired registers a hook fired when a session is evicted or
// explicitly deleted.
func (s *Store) OnExpired(fn func(Entry)) {
	s.cache.OnEvicted(func(key string, value any) {
		entry, ok := value.(*Entry)
		if !ok {
			return
		}
		s.logger.Info("session expired",
			zap.String("session_id", entry.ID),
			zap.String("app", entry.App),
		)
		fn(*entry)
	})
}

// Create registers a new session for the given application.
func (s *Store) Create(app string, payload any) *Entry {
	entry := &Entry{
		ID:        uuid.New().String(),
		App:       app,
		CreatedAt: time.Now().UTC(),
		Payload:   payload,
	}
	s.cache.Set(entry.ID, entry, cache.DefaultExpiration)
	return entry
}

// Get returns the session if it belongs to the given application.
func (s *Store) Get(id, app string) (*Entry, error) {
	value, ok := s.cache.Get(id)
	if !ok {
		return nil, entity.ErrSessionNotFound
	}

	entry := value.(*Entry)
	if entry.App != app {
		return nil, entity.ErrWrongSessionApp
	}
	return entry, nil
}

// Update replaces the payload and refreshes the TTL.
func (s *Store) Update(id string, payload any) error {
	value, ok := s.cache.Get(id)
	if !ok {
		return entity.ErrSessionNotFound
	}

	entry := value.(*Entry)
	entry.Payload = payload
	s.cache.Set(id, entry, cache.DefaultExpiration)
	return nil
}

// Delete removes a session, firing the eviction hook.
func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}
