// Package file loads and persists keybridge configuration as TOML.
// Defaults, the config file, and environment variables are layered in that
// order, so the environment always wins.
//
// The config directory is ~/.keybridge by default and can be moved with
// KEYBRIDGE_CONFIG_DIR.
package file
