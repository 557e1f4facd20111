// Package config defines the application configuration structure and loading.
// Configuration comes from environment variables with the FAHR_ prefix and an
// optional config.yaml, validated before the application starts.
package config
