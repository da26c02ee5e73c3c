package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog/log"
)

// DefaultTTL is how long an untouched session is kept.
const DefaultTTL = 30 * time.Minute

// Store keeps sessions in memory. Every lookup extends the session's TTL;
// evicted sessions have their timers stopped.
type Store struct {
	cache *ttlcache.Cache[string, *Session]
	opts  Options
}

func NewStore(ttl time.Duration, opts Options) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	cache := ttlcache.New(ttlcache.WithTTL[string, *Session](ttl))
	cache.OnEviction(func(_ context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[string, *Session]) {
		item.Value().Close()
		if reason == ttlcache.EvictionReasonExpired {
			log.Debug().Str("session", item.Key()).Msg("Session expired")
		}
	})
	go cache.Start()
	return &Store{cache: cache, opts: opts}
}

// Create starts a session with default style and empty content.
func (st *Store) Create() *Session {
	s := newSession(uuid.NewString(), st.opts)
	st.cache.Set(s.ID, s, ttlcache.DefaultTTL)
	return s
}

func (st *Store) Get(id string) (*Session, error) {
	item := st.cache.Get(id)
	if item == nil {
		return nil, ErrNotFound
	}
	return item.Value(), nil
}

func (st *Store) Delete(id string) error {
	if !st.cache.Has(id) {
		return ErrNotFound
	}
	st.cache.Delete(id)
	return nil
}

func (st *Store) Len() int { return st.cache.Len() }

// Close stops the expiry loop and closes every session.
func (st *Store) Close() {
	st.cache.Stop()
	st.cache.DeleteAll()
}
