package service

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
	"github.com/aussiebroadwan/renewal/internal/renewal/store"
	"github.com/aussiebroadwan/renewal/pkg/slogx"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type GuideService struct {
	Store store.Store
	Now   Clock
}

func (s *GuideService) List(ctx context.Context) ([]domain.CancellationGuide, error) {
	return s.Store.Guides().List(ctx)
}

func (s *GuideService) Get(ctx context.Context, slug string) (domain.CancellationGuide, error) {
	g, err := s.Store.Guides().Get(ctx, slug)
	if errors.Is(err, store.ErrNotFound) {
		return domain.CancellationGuide{}, ErrGuideNotFound
	}
	return g, err
}

// Upsert creates or replaces a guide. Only super admins may edit guides.
func (s *GuideService) Upsert(ctx context.Context, t domain.Tenant, g domain.CancellationGuide) (domain.CancellationGuide, error) {
	admin, err := s.Store.Users().IsSuperAdmin(ctx, t.UserID)
	if err != nil {
		return domain.CancellationGuide{}, err
	}
	if !admin {
		return domain.CancellationGuide{}, ErrForbidden
	}

	g.ServiceName = strings.TrimSpace(g.ServiceName)
	switch {
	case !slugPattern.MatchString(g.Slug):
		return domain.CancellationGuide{}, invalid(ErrInvalidGuide, "slug must be lowercase words joined by hyphens")
	case g.ServiceName == "":
		return domain.CancellationGuide{}, invalid(ErrInvalidGuide, "service_name is required")
	}
	if g.URL != "" {
		if u, err := url.Parse(g.URL); err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
			return domain.CancellationGuide{}, invalid(ErrInvalidGuide, "url must be an absolute http(s) URL")
		}
	}
	if g.Steps == nil {
		g.Steps = []string{}
	}
	g.UpdatedAt = s.Now.now()

	if err := s.Store.Guides().Upsert(ctx, g); err != nil {
		return domain.CancellationGuide{}, err
	}
	slogx.FromContext(ctx).Info("cancellation guide saved", slog.String("slug", g.Slug))
	return g, nil
}
