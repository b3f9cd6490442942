// Package config provides fail-open environment loading for the publish
// worker. Invalid values never stop the worker: the default is applied
// and a warning is produced for the operator, so a typo in a cron
// schedule degrades to the stock schedule instead of an outage.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// ConfigLoadResult is the outcome of loading one configuration value.
// Value holds the loaded or fallback value; FallbackApplied is true when
// the default replaced an invalid environment value, with one warning per
// fallback.
type ConfigLoadResult struct {
	Value           interface{}
	Warnings        []string
	FallbackApplied bool
}

// LoadEnvString reads a string from the environment, returning the default
// when unset. No validation is applied.
func LoadEnvString(envKey, defaultValue string) string {
	value := os.Getenv(envKey)
	if value == "" {
		return defaultValue
	}
	return value
}

// LoadEnvWithFallback reads a string from the environment and validates it.
// An unset variable uses the default silently; a value that fails
// validation uses the default with a warning. This function never returns
// an error.
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) ConfigLoadResult {
	value := os.Getenv(envKey)
	if value == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	if validator != nil {
		if err := validator(value); err != nil {
			return ConfigLoadResult{
				Value:           defaultValue,
				Warnings:        []string{fallbackWarning(envKey, value, err, defaultValue)},
				FallbackApplied: true,
			}
		}
	}
	return ConfigLoadResult{Value: value}
}

// LoadEnvDuration reads a Go duration string ("30s", "5m") from the
// environment with parse and validation fallback.
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) ConfigLoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	parsed, err := time.ParseDuration(valueStr)
	if err != nil {
		return ConfigLoadResult{
			Value:           defaultValue,
			Warnings:        []string{fallbackWarning(envKey, valueStr, err, defaultValue)},
			FallbackApplied: true,
		}
	}

	if validator != nil {
		if err := validator(parsed); err != nil {
			return ConfigLoadResult{
				Value:           defaultValue,
				Warnings:        []string{fallbackWarning(envKey, valueStr, err, defaultValue)},
				FallbackApplied: true,
			}
		}
	}
	return ConfigLoadResult{Value: parsed}
}

// LoadEnvInt reads an integer from the environment with parse and
// validation fallback.
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) ConfigLoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	parsed, err := strconv.Atoi(valueStr)
	if err != nil {
		return ConfigLoadResult{
			Value:           defaultValue,
			Warnings:        []string{fallbackWarning(envKey, valueStr, err, defaultValue)},
			FallbackApplied: true,
		}
	}

	if validator != nil {
		if err := validator(parsed); err != nil {
			return ConfigLoadResult{
				Value:           defaultValue,
				Warnings:        []string{fallbackWarning(envKey, valueStr, err, defaultValue)},
				FallbackApplied: true,
			}
		}
	}
	return ConfigLoadResult{Value: parsed}
}

// LoadEnvBool reads a boolean ("true"/"false") from the environment,
// falling back to the default on any other value.
func LoadEnvBool(envKey string, defaultValue bool) ConfigLoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	parsed, err := strconv.ParseBool(valueStr)
	if err != nil {
		return ConfigLoadResult{
			Value:           defaultValue,
			Warnings:        []string{fallbackWarning(envKey, valueStr, err, defaultValue)},
			FallbackApplied: true,
		}
	}
	return ConfigLoadResult{Value: parsed}
}

func fallbackWarning(envKey, value string, err error, defaultValue interface{}) string {
	return fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%v'", envKey, value, err, defaultValue)
}
