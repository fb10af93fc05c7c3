package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

const multipliersKey = "q_multipliers"

// ErrInvalid marks a configuration that decoded but makes no sense.
var ErrInvalid = errors.New("invalid config")

// Merge layers overrides on top of the defaults and returns the resolved
// key/value map.
func Merge(overrides map[string]any) map[string]any {
	return MergeMaps(Default().ToMap(), overrides)
}

// MergeMaps applies overrides over a copy of base. Top-level keys replace
// base values; the quadrant multiplier table is merged key by key so a
// partial table keeps the remaining defaults. Neither input is modified.
func MergeMaps(base, overrides map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(overrides))
	for k, v := range base {
		if k == multipliersKey {
			v = copyTable(v)
		}
		out[k] = v
	}

	for k, v := range overrides {
		k = strings.ToLower(k)
		if k != multipliersKey {
			out[k] = v
			continue
		}

		table, ok := asTable(v)
		if !ok {
			out[k] = v
			continue
		}
		merged, _ := asTable(out[k])
		if merged == nil {
			merged = make(map[string]any, len(table))
		}
		for qk, qv := range table {
			merged[strings.ToUpper(qk)] = qv
		}
		out[k] = merged
	}

	return out
}

// Build decodes a key/value map into a Config. Keys absent from values keep
// their defaults; values are weakly typed, so "2.5" decodes into a float.
// Unknown keys are ignored.
func Build(values map[string]any) (*Config, error) {
	cfg := Default()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating decoder: %w", err)
	}
	if err := decoder.Decode(values); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply returns a new Config with overrides layered on top of c.
func (c *Config) Apply(overrides map[string]any) (*Config, error) {
	if len(overrides) == 0 {
		return c.Clone(), nil
	}
	return Build(MergeMaps(c.ToMap(), overrides))
}

// Validate checks the application-level ranges. Scoring values are not
// checked: unknown urgency modes degrade to a zero urgency instead.
func (c *Config) Validate() error {
	if c.MinImportance > c.MaxImportance {
		return fmt.Errorf("%w: min_importance %d exceeds max_importance %d", ErrInvalid, c.MinImportance, c.MaxImportance)
	}
	if c.DefaultEstimatedHours <= 0 {
		return fmt.Errorf("%w: default_estimated_hours must be positive", ErrInvalid)
	}
	if c.FarFutureDays < 0 {
		return fmt.Errorf("%w: far_future_days must not be negative", ErrInvalid)
	}
	return nil
}

func asTable(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[string]float64:
		out := make(map[string]any, len(m))
		for k, f := range m {
			out[k] = f
		}
		return out, true
	}
	return nil, false
}

func copyTable(v any) any {
	table, ok := asTable(v)
	if !ok {
		return v
	}
	out := make(map[string]any, len(table))
	for k, f := range table {
		out[k] = f
	}
	return out
}
