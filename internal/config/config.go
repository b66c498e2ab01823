// Package config loads the engine's run-level settings from the
// environment.
package config

import (
	"os"
	"strconv"
)

// Config holds the few knobs a planning run needs beyond the input
// document itself.
type Config struct {
	App       AppConfig
	Scheduler SchedulerConfig
}

// AppConfig is basic process-level configuration.
type AppConfig struct {
	Name     string
	Env      string
	LogLevel string
}

// SchedulerConfig controls the placement loop's defaults.
type SchedulerConfig struct {
	// FullTimeDutyBudget is the number of duties a person working full
	// time (WorkCapacity 1.0) may hold in a month; a person's actual
	// monthly cap is FullTimeDutyBudget * WorkCapacity, rounded.
	FullTimeDutyBudget int
}

// Load reads configuration from the environment, applying defaults for
// anything unset.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:     getEnv("DUTYPLAN_NAME", "dutyplan"),
			Env:      getEnv("DUTYPLAN_ENV", "development"),
			LogLevel: getEnv("DUTYPLAN_LOG_LEVEL", "info"),
		},
		Scheduler: SchedulerConfig{
			FullTimeDutyBudget: getEnvInt("DUTYPLAN_FULL_TIME_BUDGET", 10),
		},
	}
	return cfg, nil
}

// IsDevelopment reports whether the configured environment is
// "development".
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction reports whether the configured environment is
// "production".
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

