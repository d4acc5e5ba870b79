// Package store defines the persistence interfaces and shared errors used
// by the service and API layers. Implementations live in platform packages.
package store
