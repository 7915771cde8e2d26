package domain

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

const (
	PlanFree     = "free"
	PlanPro      = "pro"
	PlanBusiness = "business"
)

// FeatureOrganizations gates creating organizations and inviting members.
const FeatureOrganizations = "organizations"

type Plan struct {
	Name         string   `yaml:"-"`
	MaxContracts int      `yaml:"max_contracts"` // 0 means unlimited
	AlertWindows []int    `yaml:"alert_windows"`
	Features     []string `yaml:"features"`
}

func (p Plan) Unlimited() bool { return p.MaxContracts <= 0 }

func (p Plan) Has(feature string) bool { return slices.Contains(p.Features, feature) }

// AllowsWindow reports whether the plan sends reminders leadDays ahead.
func (p Plan) AllowsWindow(leadDays int) bool { return slices.Contains(p.AlertWindows, leadDays) }

// Plans maps a tier name to its limits.
type Plans map[string]Plan

func DefaultPlans() Plans {
	return Plans{
		PlanFree:     {Name: PlanFree, MaxContracts: 5, AlertWindows: []int{30, 7}},
		PlanPro:      {Name: PlanPro, MaxContracts: 100, AlertWindows: []int{90, 30, 7, 1}, Features: []string{FeatureOrganizations}},
		PlanBusiness: {Name: PlanBusiness, MaxContracts: 0, AlertWindows: []int{90, 30, 7, 1}, Features: []string{FeatureOrganizations}},
	}
}

// Lookup returns the named plan. Unknown tiers get the free plan.
func (p Plans) Lookup(name string) Plan {
	if plan, ok := p[name]; ok {
		return plan
	}
	if plan, ok := p[PlanFree]; ok {
		return plan
	}
	return DefaultPlans()[PlanFree]
}

// List returns the plans ordered by contract allowance, unlimited last.
func (p Plans) List() []Plan {
	out := make([]Plan, 0, len(p))
	for _, plan := range p {
		out = append(out, plan)
	}
	slices.SortFunc(out, func(a, b Plan) int {
		switch {
		case a.Unlimited() && !b.Unlimited():
			return 1
		case !a.Unlimited() && b.Unlimited():
			return -1
		case a.MaxContracts != b.MaxContracts:
			return a.MaxContracts - b.MaxContracts
		}
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})
	return out
}

type plansFile struct {
	Plans map[string]Plan `yaml:"plans"`
}

// ParsePlans reads a YAML plan table:
//
//	plans:
//	  free:
//	    max_contracts: 5
//	    alert_windows: [30, 7]
//	    features: []
func ParsePlans(data []byte) (Plans, error) {
	var f plansFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse plans: %w", err)
	}
	if len(f.Plans) == 0 {
		return nil, fmt.Errorf("parse plans: no plans defined")
	}

	out := make(Plans, len(f.Plans))
	for name, plan := range f.Plans {
		if plan.MaxContracts < 0 {
			return nil, fmt.Errorf("parse plans: %s: max_contracts must not be negative", name)
		}
		for _, w := range plan.AlertWindows {
			if w <= 0 {
				return nil, fmt.Errorf("parse plans: %s: alert window %d must be positive", name, w)
			}
		}
		plan.Name = name
		out[name] = plan
	}
	return out, nil
}
