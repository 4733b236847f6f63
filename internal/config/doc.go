// Package config loads loadtrack's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/loadtrack/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Viewer Identity
//
// The viewer's public key decides which filters and forms are available. It
// comes from, in increasing precedence: key_file, public_key, the
// LOADTRACK_PUBLIC_KEY environment variable, and finally the -public-key flag
// (applied by the caller through Config.WithPublicKey). An empty key means the
// viewer is unauthenticated.
//
// # Path Expansion
//
// Paths beginning with ~ are expanded to the user's home directory and made
// absolute.
package config
