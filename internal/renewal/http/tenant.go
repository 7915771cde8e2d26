package http

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
	"github.com/aussiebroadwan/renewal/internal/renewal/service"
	"github.com/aussiebroadwan/renewal/pkg/httpx"
	"github.com/aussiebroadwan/renewal/pkg/renewalsdk"
	"github.com/aussiebroadwan/renewal/pkg/slogx"
)

type tenantCtxKey struct{}

// maxKnownUsers caps knownUsers; the cache is dropped when it fills.
const maxKnownUsers = 10_000

// knownUsers remembers the last email stored per user so Ensure only runs
// for new users or changed emails.
type knownUsers struct {
	mu     sync.Mutex
	emails map[string]string
	limit  int
}

func newKnownUsers(limit int) *knownUsers {
	return &knownUsers{emails: make(map[string]string), limit: limit}
}

func (k *knownUsers) current(userID, email string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	stored, ok := k.emails[userID]
	return ok && stored == email
}

func (k *knownUsers) remember(userID, email string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if _, ok := k.emails[userID]; !ok && len(k.emails) >= k.limit {
		clear(k.emails)
	}
	k.emails[userID] = email
}

// TenantMiddleware records the authenticated user, refreshing a changed
// email, and resolves the organization selected by the X-Organization-ID
// header. It must run after httpx.AuthnMiddleware.
func TenantMiddleware(users *service.UserService, orgs *service.OrganizationService) httpx.Middleware {
	return tenantMiddleware(users, orgs, newKnownUsers(maxKnownUsers))
}

func tenantMiddleware(users *service.UserService, orgs *service.OrganizationService, seen *knownUsers) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			userID, ok := httpx.UserIDFromContext(ctx)
			if !ok {
				writeError(w, http.StatusUnauthorized, renewalsdk.CodeUnauthenticated, "Authentication required")
				return
			}
			email := httpx.EmailFromContext(ctx)

			if !seen.current(userID, email) {
				if err := users.Ensure(ctx, userID, email); err != nil {
					writeServiceError(w, r, err, "load user")
					return
				}
				seen.remember(userID, email)
			}

			orgID := strings.TrimSpace(r.Header.Get(renewalsdk.OrganizationHeader))
			t, err := orgs.ResolveTenant(ctx, userID, email, orgID)
			if err != nil {
				writeServiceError(w, r, err, "resolve organization")
				return
			}

			ctx = context.WithValue(ctx, tenantCtxKey{}, t)
			if t.InOrganization() {
				ctx = slogx.With(ctx, "organization_id", t.OrganizationID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// tenantFrom returns the tenant stored by TenantMiddleware.
func tenantFrom(ctx context.Context) domain.Tenant {
	t, _ := ctx.Value(tenantCtxKey{}).(domain.Tenant)
	return t
}
