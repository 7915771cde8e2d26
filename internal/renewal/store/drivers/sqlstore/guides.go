package sqlstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
)

type guidesRepo struct {
	c conn
}

// stepsCol decodes the JSON array stored in steps.
type stepsCol struct {
	dst *[]string
}

func (c stepsCol) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*c.dst = []string{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("sqlstore: cannot scan %T into steps", src)
	}
	steps := []string{}
	if err := json.Unmarshal(raw, &steps); err != nil {
		return fmt.Errorf("sqlstore: decode steps: %w", err)
	}
	*c.dst = steps
	return nil
}

func guideDest(g *domain.CancellationGuide, _ []string) []any {
	return []any{&g.Slug, &g.ServiceName, &g.URL, stepsCol{&g.Steps}, nullStringCol{&g.Notes}, timeCol{dst: &g.UpdatedAt}}
}

const guideColumns = `slug, service_name, url, steps, notes, updated_at`

func (r *guidesRepo) List(ctx context.Context) ([]domain.CancellationGuide, error) {
	rows, err := r.c.query(ctx, `SELECT `+guideColumns+` FROM cancellation_guides ORDER BY service_name, slug`)
	if err != nil {
		return nil, err
	}
	return scanRows(rows, guideDest)
}

func (r *guidesRepo) Get(ctx context.Context, slug string) (domain.CancellationGuide, error) {
	var g domain.CancellationGuide
	err := r.c.queryRow(ctx, `SELECT `+guideColumns+` FROM cancellation_guides WHERE slug = ?`,
		[]any{slug}, guideDest(&g, nil)...)
	return g, err
}

func (r *guidesRepo) Upsert(ctx context.Context, g domain.CancellationGuide) error {
	if g.Steps == nil {
		g.Steps = []string{}
	}
	steps, err := json.Marshal(g.Steps)
	if err != nil {
		return err
	}
	_, err = r.c.exec(ctx, `
		INSERT INTO cancellation_guides (slug, service_name, url, steps, notes, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (slug) DO UPDATE SET
			service_name = excluded.service_name,
			url = excluded.url,
			steps = excluded.steps,
			notes = excluded.notes,
			updated_at = excluded.updated_at`,
		g.Slug, g.ServiceName, g.URL, string(steps), g.Notes, ts(g.UpdatedAt))
	return err
}
