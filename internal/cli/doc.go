// Package cli implements the archivekeeper command tree.
//
// Every command shares one App, built in the root command's pre-run hook:
// it opens the store, wires the services and, for commands that talk to
// the catalog, the API client. Output is human-readable on a terminal and
// JSON otherwise, or when --output json is given.
package cli
