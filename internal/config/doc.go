// Package config resolves runtime settings for archivekeeper.
//
// Sources are applied in order, later ones winning:
//
//  1. built-in defaults (LoadDefaults)
//  2. a JSON or YAML file named by -c/--config
//  3. environment variables (ARCHIVEKEEPER_*)
//  4. command-line flags bound with BindFlags
//
// Durations in files may be written as "15s" or as integer nanoseconds.
package config
