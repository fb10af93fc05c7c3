package config

import "github.com/aristath/taskrank/internal/scoring"

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Config:                scoring.DefaultConfig(),
		DefaultEstimatedHours: 4.0,
		MinImportance:         1,
		MaxImportance:         10,
		FarFutureDays:         3650,
		EnableEisenhower:      false,
		ImportantThreshold:    7,
		QMultipliers: map[string]float64{
			string(scoring.QuadrantTop):       1.3,
			string(scoring.QuadrantUrgent):    1.1,
			string(scoring.QuadrantImportant): 1.0,
			string(scoring.QuadrantLow):       0.9,
		},
	}
}
