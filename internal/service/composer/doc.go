// Package composer implements the document composition workflow: creating
// and maintaining invoices and estimates together with their business,
// client, and line-item records as one logical unit. Creation runs inside a
// single database transaction; search index writes are best-effort with
// compensating deletes when the surrounding transaction fails.
package composer
