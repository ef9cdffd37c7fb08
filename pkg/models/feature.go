package models

import (
	"slices"
	"strings"
)

// FeatureFlag names an optional group of template files.
type FeatureFlag string

const (
	FeatureTailwind     FeatureFlag = "tailwind"
	FeatureReadme       FeatureFlag = "readme"
	FeatureLicense      FeatureFlag = "license"
	FeatureEditorConfig FeatureFlag = "editorconfig"
)

// AllFeatures returns every known feature flag in display order.
func AllFeatures() []FeatureFlag {
	return []FeatureFlag{FeatureTailwind, FeatureReadme, FeatureLicense, FeatureEditorConfig}
}

// DefaultFeatures returns the flags enabled when the user changes nothing.
func DefaultFeatures() []FeatureFlag {
	return []FeatureFlag{FeatureReadme, FeatureLicense, FeatureEditorConfig}
}

// IsValid checks if the feature flag is known.
func (f FeatureFlag) IsValid() bool {
	return slices.Contains(AllFeatures(), f)
}

// ParseFeatureFlag converts a user supplied name into a FeatureFlag.
func ParseFeatureFlag(s string) (FeatureFlag, bool) {
	f := FeatureFlag(strings.ToLower(strings.TrimSpace(s)))
	return f, f.IsValid()
}

// FeatureSet is an immutable set of enabled feature flags.
type FeatureSet struct {
	flags map[FeatureFlag]struct{}
}

// NewFeatureSet builds a set from the given flags. Duplicates are ignored.
func NewFeatureSet(flags ...FeatureFlag) FeatureSet {
	s := FeatureSet{flags: make(map[FeatureFlag]struct{}, len(flags))}
	for _, f := range flags {
		s.flags[f] = struct{}{}
	}
	return s
}

// Has reports whether the flag is enabled.
func (s FeatureSet) Has(f FeatureFlag) bool {
	_, ok := s.flags[f]
	return ok
}

// HasAll reports whether every flag in required is enabled.
// An empty requirement is always satisfied.
func (s FeatureSet) HasAll(required []FeatureFlag) bool {
	for _, f := range required {
		if !s.Has(f) {
			return false
		}
	}
	return true
}

// With returns a copy of the set with f switched on or off.
func (s FeatureSet) With(f FeatureFlag, enabled bool) FeatureSet {
	out := NewFeatureSet(s.List()...)
	if enabled {
		out.flags[f] = struct{}{}
	} else {
		delete(out.flags, f)
	}
	return out
}

// List returns the enabled flags sorted by name.
func (s FeatureSet) List() []FeatureFlag {
	out := make([]FeatureFlag, 0, len(s.flags))
	for f := range s.flags {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// Len returns the number of enabled flags.
func (s FeatureSet) Len() int {
	return len(s.flags)
}
