package scoring

// UrgencyMode selects how urgency decays for tasks that are not yet overdue.
type UrgencyMode string

const (
	ModeLinear      UrgencyMode = "linear"      // 1 / max(days, 1)
	ModeExponential UrgencyMode = "exponential" // e^(-days)
	ModeThreshold   UrgencyMode = "threshold"   // High inside the threshold window, low outside
)

// Config holds the weights and urgency model used by the Engine.
// A Config is built once per analysis and passed by value afterwards.
type Config struct {
	WeightUrgency    float64 `json:"weight_urgency" mapstructure:"weight_urgency"`
	WeightImportance float64 `json:"weight_importance" mapstructure:"weight_importance"`
	WeightEffort     float64 `json:"weight_effort" mapstructure:"weight_effort"`
	WeightDependency float64 `json:"weight_dependency" mapstructure:"weight_dependency"`

	UrgencyMode UrgencyMode `json:"urgency_mode" mapstructure:"urgency_mode"`

	OverdueBase   float64 `json:"overdue_base" mapstructure:"overdue_base"`     // Urgency floor once a task is late
	OverdueGrowth float64 `json:"overdue_growth" mapstructure:"overdue_growth"` // Added per overdue day

	UrgencyThreshold int     `json:"urgency_threshold" mapstructure:"urgency_threshold"` // Days, threshold mode
	HighUrgencyValue float64 `json:"high_urgency_value" mapstructure:"high_urgency_value"`
	LowUrgencyValue  float64 `json:"low_urgency_value" mapstructure:"low_urgency_value"`
}

// DefaultConfig returns the default scoring configuration.
func DefaultConfig() Config {
	return Config{
		WeightUrgency:    1.0,
		WeightImportance: 1.0,
		WeightEffort:     0.5,
		WeightDependency: 1.0,
		UrgencyMode:      ModeLinear,
		OverdueBase:      5,
		OverdueGrowth:    1,
		UrgencyThreshold: 2,
		HighUrgencyValue: 2,
		LowUrgencyValue:  0.5,
	}
}
