// Package billing provides the subscription plan catalog and plan switching.
// Plans gate the number of content items a user may keep; the content use
// case consults this package for quota checks.
package billing

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Plan describes one subscription tier.
type Plan struct {
	Code       string   `yaml:"code" json:"code"`
	Name       string   `yaml:"name" json:"name"`
	ItemLimit  int64    `yaml:"item_limit" json:"item_limit"` // 0 = unlimited
	PriceCents int64    `yaml:"price_cents" json:"price_cents"`
	Features   []string `yaml:"features" json:"features"`
}

// Catalog is an ordered set of plans, cheapest first.
type Catalog struct {
	Plans []Plan `yaml:"plans"`
}

// DefaultCatalog returns the built-in plan catalog used when no catalog file
// is configured.
func DefaultCatalog() Catalog {
	return Catalog{Plans: []Plan{
		{
			Code:      "free",
			Name:      "Free",
			ItemLimit: 30,
			Features: []string{
				"calendar view",
				"up to 30 content items",
			},
		},
		{
			Code:       "pro",
			Name:       "Pro",
			ItemLimit:  0,
			PriceCents: 900,
			Features: []string{
				"calendar view",
				"unlimited content items",
				"bulk scheduling",
				"analytics",
			},
		},
	}}
}

// LoadCatalog reads the plan catalog from the YAML file named by
// PLAN_CATALOG_PATH. An unset variable yields the built-in catalog; a set
// but unreadable or invalid file is an error so a typo cannot silently
// downgrade every customer to the defaults.
func LoadCatalog() (Catalog, error) {
	path := os.Getenv("PLAN_CATALOG_PATH")
	if path == "" {
		return DefaultCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read plan catalog: %w", err)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return Catalog{}, fmt.Errorf("parse plan catalog: %w", err)
	}
	if err := catalog.validate(); err != nil {
		return Catalog{}, fmt.Errorf("invalid plan catalog: %w", err)
	}
	return catalog, nil
}

func (c Catalog) validate() error {
	if len(c.Plans) == 0 {
		return fmt.Errorf("no plans defined")
	}
	seen := make(map[string]bool, len(c.Plans))
	for _, plan := range c.Plans {
		if plan.Code == "" {
			return fmt.Errorf("plan with empty code")
		}
		if seen[plan.Code] {
			return fmt.Errorf("duplicate plan code %q", plan.Code)
		}
		seen[plan.Code] = true
	}
	return nil
}

// Find returns the plan with the given code, or nil.
func (c Catalog) Find(code string) *Plan {
	for i := range c.Plans {
		if c.Plans[i].Code == code {
			return &c.Plans[i]
		}
	}
	return nil
}
