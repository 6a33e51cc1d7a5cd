package rating

import (
	"fmt"
	"sort"
	"strings"
)

// Built-in weight profile names.
const (
	DefaultProfile  = "default"
	PositionProfile = "position"
)

// Profiles resolves a weight profile name to a Scorer. It is read-only after
// construction and safe to share.
type Profiles struct {
	presets map[string]Weights
}

// NewProfiles builds a resolver over named presets. Presets named like a
// built-in profile are ignored.
func NewProfiles(presets map[string]Weights) *Profiles {
	p := &Profiles{presets: make(map[string]Weights, len(presets))}
	for name, w := range presets {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || name == DefaultProfile || name == PositionProfile {
			continue
		}
		p.presets[name] = w
	}
	return p
}

// Scorer returns the scorer for name. An empty name means the default profile.
func (p *Profiles) Scorer(name string) (Scorer, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "", DefaultProfile:
		return NewFixedScorer(DefaultProfile, DefaultWeights()), nil
	case PositionProfile:
		return NewPositionScorer(), nil
	}
	if p != nil {
		if w, ok := p.presets[name]; ok {
			return NewFixedScorer(name, w), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownWeights, name)
}

// Names lists every resolvable profile name.
func (p *Profiles) Names() []string {
	names := []string{DefaultProfile, PositionProfile}
	if p == nil {
		return names
	}
	extra := make([]string, 0, len(p.presets))
	for n := range p.presets {
		extra = append(extra, n)
	}
	sort.Strings(extra)
	return append(names, extra...)
}
