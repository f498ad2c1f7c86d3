package policy

import (
	"context"
	"sync"
	"time"

	"github.com/movehub/moving-app/internal/models"
	"gorm.io/gorm"
)

// Identity is the request-scoped authenticated-identity value: zero UserID
// means anonymous, Staff mirrors the account's is_staff flag.
type Identity struct {
	UserID uint
	Staff  bool
}

func (i Identity) Anonymous() bool { return i.UserID == 0 }

// IdentityResolver turns a session user id into an Identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, uid uint) (Identity, error)
}

type dbResolver struct{ db *gorm.DB }

// NewDBResolver resolves identities from the users table.
func NewDBResolver(db *gorm.DB) IdentityResolver { return &dbResolver{db: db} }

func (r *dbResolver) Resolve(ctx context.Context, uid uint) (Identity, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Select("id", "is_staff").First(&user, uid).Error; err != nil {
		return Identity{}, err
	}
	return Identity{UserID: user.ID, Staff: user.IsStaff}, nil
}

// CachedResolver wraps an IdentityResolver with TTL caching so the staff
// check does not hit the database on every request.
type CachedResolver struct {
	inner IdentityResolver
	ttl   time.Duration

	mu    sync.RWMutex
	cache map[uint]cacheEntry
}

type cacheEntry struct {
	ident     Identity
	expiresAt time.Time
}

func NewCachedResolver(inner IdentityResolver, ttl time.Duration) *CachedResolver {
	return &CachedResolver{inner: inner, ttl: ttl, cache: make(map[uint]cacheEntry)}
}

func (r *CachedResolver) Resolve(ctx context.Context, uid uint) (Identity, error) {
	r.mu.RLock()
	entry, ok := r.cache[uid]
	r.mu.RUnlock()
	if ok && time.Now().Before(entry.expiresAt) {
		return entry.ident, nil
	}

	ident, err := r.inner.Resolve(ctx, uid)
	if err != nil {
		return Identity{}, err
	}

	r.mu.Lock()
	r.cache[uid] = cacheEntry{ident: ident, expiresAt: time.Now().Add(r.ttl)}
	r.mu.Unlock()
	return ident, nil
}

// Invalidate drops a cached identity. Call after changing a user's role.
func (r *CachedResolver) Invalidate(uid uint) {
	r.mu.Lock()
	delete(r.cache, uid)
	r.mu.Unlock()
}

func (r *CachedResolver) InvalidateAll() {
	r.mu.Lock()
	r.cache = make(map[uint]cacheEntry)
	r.mu.Unlock()
}
