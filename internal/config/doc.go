// Package config loads and saves the YAML application configuration,
// creating a default file on first run.
package config
