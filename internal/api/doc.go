// Package api contains the HTTP handlers, request/response models, and
// error mapping for the invoicing service. Handlers decode and validate
// request bodies, delegate to the composer or the stores, and translate
// errors into sanitized JSON responses.
package api
