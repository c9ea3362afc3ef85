// Package tags persists bookmark tags. The canonical tag name is unique;
// deleting a tag cascades to its bookmark associations.
package tags
