// Package domain contains the core entity types of the invoicing API
// and their validation rules.
package domain
