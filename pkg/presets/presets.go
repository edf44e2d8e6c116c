// Package presets holds the onboarding templates for each business type:
// theme colours, starter categories, units and demo products.
package presets

import (
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

const (
	// DemoLifetime is how long seeded demo products stay visible.
	DemoLifetime = 7 * 24 * time.Hour
	// DemoStock is the decorative stock quantity given to demo products.
	DemoStock = 100
)

type Preset struct {
	Type              enums.BusinessType
	Label             string
	Emoji             string
	IconName          string
	Description       string
	Theme             types.ThemeConfig
	DefaultCategories []CategoryPreset
	DefaultUnits      []string
	HeroPlaceholder   string
	DemoProducts      []DemoProduct
}

type CategoryPreset struct {
	Name     string
	IconName string
}

// DemoProduct references its category by index into DefaultCategories.
type DemoProduct struct {
	Name          string
	Description   string
	PriceCents    int64
	Unit          string
	CategoryIndex int
	Image         string
}

// All returns every preset in display order.
func All() []Preset {
	out := make([]Preset, len(catalog))
	copy(out, catalog)
	return out
}

// Get returns the preset for the business type, falling back to the first preset.
func Get(businessType enums.BusinessType) Preset {
	for _, p := range catalog {
		if p.Type == businessType {
			return p
		}
	}
	return catalog[0]
}

// DemoExpiry returns when demo products seeded at now should disappear.
func DemoExpiry(now time.Time) time.Time {
	return now.Add(DemoLifetime)
}
