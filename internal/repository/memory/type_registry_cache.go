package memory

import (
	"time"

	"github.com/daohd2003/FRECS-sub006/internal/model"

	"github.com/patrickmn/go-cache"
)

// TypeRegistryCache keeps notification-type registry rows in memory so the
// event worker does not hit the database once per event.
type TypeRegistryCache struct {
	cache *cache.Cache
}

func NewTypeRegistryCache() *TypeRegistryCache {
	// Registry rows change rarely; a 10 minute TTL keeps admin edits visible
	// without a restart.
	c := cache.New(10*time.Minute, 30*time.Minute)
	return &TypeRegistryCache{
		cache: c,
	}
}

func (r *TypeRegistryCache) Save(notifType *model.NotificationType) {
	r.cache.Set(notifType.Code, notifType, cache.DefaultExpiration)
}

func (r *TypeRegistryCache) Get(code string) (*model.NotificationType, bool) {
	if x, found := r.cache.Get(code); found {
		return x.(*model.NotificationType), true
	}
	return nil, false
}

func (r *TypeRegistryCache) Invalidate(code string) {
	r.cache.Delete(code)
}
