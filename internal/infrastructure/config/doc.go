// Package config loads and validates the kantorku configuration.
//
// Configuration is layered: hardcoded development defaults, then an
// optional YAML file, then KANTORKU_* environment variables. The secret
// signing key, token TTL, and database path are all externally
// overridable so nothing security-relevant is fixed at build time.
package config
