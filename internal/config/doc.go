// Package config loads and merges gerrit-cli configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags (--host, --port, --dry-run)
//  2. Environment variables (GERRIT_HOST, GERRIT_PORT, GERRIT_USER)
//  3. Config file (~/.gerrit-cli/gerrit-cli.json by default)
//  4. Built-in defaults
//
// The file may be JSON, YAML or TOML, chosen by extension. Lines starting
// with '#' are removed before decoding so the JSON form can carry comments.
// The "queries" and "results" sections are alias tables, see package alias.
package config
