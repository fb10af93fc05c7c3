package config

import (
	"maps"

	"github.com/aristath/taskrank/internal/scoring"
)

// Config is the resolved analysis configuration: the scoring weights plus
// the application-level knobs used by normalization and ranking.
type Config struct {
	scoring.Config `mapstructure:",squash"`

	DefaultEstimatedHours float64            `json:"default_estimated_hours" mapstructure:"default_estimated_hours"` // Used when a task's estimate is missing or invalid
	MinImportance         int                `json:"min_importance" mapstructure:"min_importance"`
	MaxImportance         int                `json:"max_importance" mapstructure:"max_importance"`
	FarFutureDays         int                `json:"far_future_days" mapstructure:"far_future_days"`         // Offset for tasks without a usable due date
	EnableEisenhower      bool               `json:"enable_eisenhower" mapstructure:"enable_eisenhower"`     // Apply quadrant multipliers to scores
	ImportantThreshold    int                `json:"important_threshold" mapstructure:"important_threshold"` // Importance at which a task counts as important
	QMultipliers          map[string]float64 `json:"q_multipliers" mapstructure:"q_multipliers"`
}

// Scoring returns the scoring section of the config.
func (c *Config) Scoring() scoring.Config {
	return c.Config
}

// Multiplier returns the score multiplier for quadrant q, or 1 when unset.
func (c *Config) Multiplier(q scoring.Quadrant) float64 {
	if m, ok := c.QMultipliers[string(q)]; ok {
		return m
	}
	return 1
}

// ToMap flattens the config into its key/value form. The result is safe to
// mutate and round-trips through Build.
func (c *Config) ToMap() map[string]any {
	qm := make(map[string]any, len(c.QMultipliers))
	for k, v := range c.QMultipliers {
		qm[k] = v
	}

	return map[string]any{
		"weight_urgency":          c.WeightUrgency,
		"weight_importance":       c.WeightImportance,
		"weight_effort":           c.WeightEffort,
		"weight_dependency":       c.WeightDependency,
		"urgency_mode":            string(c.UrgencyMode),
		"overdue_base":            c.OverdueBase,
		"overdue_growth":          c.OverdueGrowth,
		"urgency_threshold":       c.UrgencyThreshold,
		"high_urgency_value":      c.HighUrgencyValue,
		"low_urgency_value":       c.LowUrgencyValue,
		"default_estimated_hours": c.DefaultEstimatedHours,
		"min_importance":          c.MinImportance,
		"max_importance":          c.MaxImportance,
		"far_future_days":         c.FarFutureDays,
		"enable_eisenhower":       c.EnableEisenhower,
		"important_threshold":     c.ImportantThreshold,
		"q_multipliers":           qm,
	}
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	out.QMultipliers = maps.Clone(c.QMultipliers)
	return &out
}
