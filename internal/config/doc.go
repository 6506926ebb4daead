// Package config loads swipe tuning profiles and host settings.
//
// Profiles are YAML files holding a partial swipe configuration that is
// shallow-merged onto the defaults. Validate checks a merged configuration
// against an embedded CUE schema: non-positive values are errors, threshold
// ordering gaps are warnings. Neither ever changes the configuration.
//
// Settings come from the environment, optionally seeded from a .env file.
package config
