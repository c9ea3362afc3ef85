// Package bookmarks persists bookmarks and their tag associations.
//
// # Data Model
//
// A bookmark row stores a denormalized copy of the record it points to: the
// title, the ancestor path and a description snapshot, the last two as JSON
// text. Tags live in the bookmark_tags junction table, which cascades on
// deletion of either side. Listings fold the junction back into each
// bookmark with a single LEFT JOIN and GROUP_CONCAT.
//
// # Transactions
//
// ReplaceTags deletes and reinserts the whole tag set. Callers run it in the
// same transaction as the bookmark write so readers never observe a partial
// tag set.
package bookmarks
