package memory

import (
	"time"

	"ankibridge-be/internal/staging"

	"github.com/patrickmn/go-cache"
)

// StagingRepository keeps batch staging engines in memory, keyed by session
// id. Sessions expire after an hour of inactivity; there is no persistence,
// a staged batch is strictly per-session state.
type StagingRepository struct {
	cache *cache.Cache
}

func NewStagingRepository() *StagingRepository {
	// Default expiration of 1 hour, purge sweep every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &StagingRepository{
		cache: c,
	}
}

func (r *StagingRepository) Save(sessionID string, engine *staging.Engine) {
	r.cache.Set(sessionID, engine, cache.DefaultExpiration)
}

func (r *StagingRepository) Get(sessionID string) (*staging.Engine, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*staging.Engine), true
	}
	return nil, false
}

func (r *StagingRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
