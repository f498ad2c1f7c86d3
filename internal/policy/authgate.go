package policy

import (
	"context"
	"net/http"
	"time"

	"github.com/movehub/moving-app/internal/auth"
	"gorm.io/gorm"
)

// Resource names registered on the application gate.
const (
	ResourceQuote    = "quote"
	ResourceClaim    = "claim"
	ResourceSchedule = "schedule"
)

// AuthGate bundles the Gate with a cached identity resolver and exposes
// http middleware. One instance is shared by the whole router.
type AuthGate struct {
	Gate     *Gate
	Resolver *CachedResolver
}

// NewAuthGate wires the application's authorization rules: status overrides
// on quotes and claims are staff-only, scheduling is staff-only end to end,
// everything else only needs a session.
func NewAuthGate(db *gorm.DB, cacheTTL time.Duration) *AuthGate {
	g := NewGate()
	g.Register(ResourceQuote, func(id Identity, a Action) bool {
		if a == ActionUpdateStatus {
			return id.Staff
		}
		return true
	})
	g.Register(ResourceClaim, func(id Identity, a Action) bool {
		if a == ActionUpdateStatus {
			return id.Staff
		}
		return true
	})
	g.Register(ResourceSchedule, StaffOnly)

	return &AuthGate{
		Gate:     g,
		Resolver: NewCachedResolver(NewDBResolver(db), cacheTTL),
	}
}

// IdentityFrom resolves the session user in ctx to an Identity. Anonymous
// (zero) identity when there is no session or the account is gone.
func (ag *AuthGate) IdentityFrom(ctx context.Context) Identity {
	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return Identity{}
	}
	ident, err := ag.Resolver.Resolve(ctx, uid)
	if err != nil {
		return Identity{}
	}
	return ident
}

// Require returns middleware enforcing the gate before the handler runs:
// anonymous callers are sent to login, authenticated-but-denied get 403.
func (ag *AuthGate) Require(resource string, action Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident := ag.IdentityFrom(r.Context())
			switch err := ag.Gate.Authorize(ident, action, resource); err {
			case nil:
				next.ServeHTTP(w, r)
			case ErrUnauthenticated:
				auth.RedirectToLogin(w, r)
			default:
				http.Error(w, "Forbidden", http.StatusForbidden)
			}
		})
	}
}

// Invalidate clears the cached identity for a user (role change, deletion).
func (ag *AuthGate) Invalidate(uid uint) { ag.Resolver.Invalidate(uid) }
