// Package legacy moves categories, tags and bookmarks kept in flat JSON
// arrays by earlier versions into the relational store.
//
// The migration is safe to repeat: items that already exist are skipped,
// and once every phase succeeds the legacyStorageMigrated setting is set so
// Run becomes a no-op.
package legacy
