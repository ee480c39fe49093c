package memory

import (
	"time"

	"ankibridge-be/internal/browse"

	"github.com/patrickmn/go-cache"
)

// BrowseRepository keeps note-management sessions in memory, keyed by session
// id, so cross-page selections survive navigation within one session.
type BrowseRepository struct {
	cache *cache.Cache
}

func NewBrowseRepository() *BrowseRepository {
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &BrowseRepository{
		cache: c,
	}
}

func (r *BrowseRepository) Save(session *browse.Session) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *BrowseRepository) Get(sessionID string) (*browse.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*browse.Session), true
	}
	return nil, false
}

func (r *BrowseRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
