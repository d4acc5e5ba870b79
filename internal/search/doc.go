// Package search defines the search index mirror used to keep businesses,
// clients, and items queryable from a hosted search index. The mirror is a
// write-through copy of selected entity fields; postgres remains the source
// of truth. All implementations are safe for concurrent use.
package search
