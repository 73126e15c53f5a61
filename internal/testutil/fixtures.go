// Package testutil provides shared fixtures for engine and operator tests.
package testutil

import (
	"github.com/variantlab/evolve-go/pkg/schema"
)

// BannerMethodID is the method id registered by BannerRegistry.
const BannerMethodID = "banner-v1"

// BannerSchema returns a method schema covering every mutable parameter type:
// a categorical style, a numeric font size with a declared range, an
// unbounded numeric padding, a background color, and a free-text headline
// that no operator touches.
func BannerSchema() *schema.MethodSchema {
	minSize := 8.0
	maxSize := 96.0
	return &schema.MethodSchema{
		ID:   BannerMethodID,
		Name: "Banner Generator",
		Parameters: []schema.ParameterDefinition{
			{Name: "style", Type: schema.Categorical, Options: []string{"modern", "classic", "bold", "minimal"}},
			{Name: "font_size", Type: schema.Numeric, Min: &minSize, Max: &maxSize},
			{Name: "padding", Type: schema.Numeric},
			{Name: "background", Type: schema.Color},
			{Name: "headline", Type: schema.Other},
		},
	}
}

// BannerRegistry returns a registry with the banner schema preloaded.
func BannerRegistry() *schema.StaticRegistry {
	return schema.NewStaticRegistry(BannerSchema())
}

// BannerParams returns a parameter map exercising every parameter of the
// banner schema.
func BannerParams() map[string]interface{} {
	return map[string]interface{}{
		"style":      "modern",
		"font_size":  24.0,
		"padding":    16.0,
		"background": "#3366cc",
		"headline":   "Summer Sale",
	}
}
