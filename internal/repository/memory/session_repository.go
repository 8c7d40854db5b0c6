package memory

import (
	"time"

	"second-brain-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository is a hot cache over the durable session store. Paused
// sessions waiting on review are usually resumed within minutes, so reads
// rarely hit the database.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Default expiration of 1 hour, purge of expired items every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

// Save stores a copy. The orchestrator keeps mutating the live session, and
// those mutations must not reach the cache before the next checkpoint.
func (r *SessionRepository) Save(session *store.PipelineSession) {
	r.cache.Set(session.Id.String(), session.Clone(), cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.PipelineSession, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.PipelineSession).Clone(), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
