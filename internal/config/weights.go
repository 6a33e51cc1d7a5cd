package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/okian/pele/internal/domain/rating"
)

// presetFile is the TOML layout of a weights file:
//
//	[presets.attacking]
//	w_g = 1.5
//	w_xg = 0.6
type presetFile struct {
	Presets map[string]map[string]float64 `toml:"presets"`
}

// LoadWeightPresets reads named weight presets from a TOML file. Keys a preset
// leaves out keep their default value.
func LoadWeightPresets(path string) (map[string]rating.Weights, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
	}
	return ParseWeightPresets(raw)
}

// ParseWeightPresets decodes the TOML preset document in raw.
func ParseWeightPresets(raw []byte) (map[string]rating.Weights, error) {
	var doc presetFile
	if err := toml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: weights: %w", ErrLoadConfig, err)
	}
	out := make(map[string]rating.Weights, len(doc.Presets))
	for name, overrides := range doc.Presets {
		w, err := rating.WeightsFrom(overrides)
		if err != nil {
			return nil, fmt.Errorf("%w: preset %q: %w", ErrUnknownWeightKey, name, err)
		}
		out[name] = w
	}
	return out, nil
}
