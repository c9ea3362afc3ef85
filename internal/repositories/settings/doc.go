// Package settings persists application preferences as JSON values keyed
// by name. Writes are last-write-wins upserts.
package settings
