// Package models defines the fleet entities moved between the local cache
// and the remote store: daily earnings entries, expenses, drivers and
// vehicles.
package models

// Record is satisfied by every entity the sync layer handles. The type
// parameter lets implementations return their own concrete type from the
// With* methods, so the coordinator core can stay generic.
type Record[T any] interface {
	// RecordID returns the client-generated, globally unique identifier.
	RecordID() string

	// IsSynced reports whether the local copy is confirmed equal to the
	// last known remote write.
	IsSynced() bool

	// WithSynced returns a copy with the synced flag set.
	WithSynced(synced bool) T

	// Owner returns the owning driver and user identifiers.
	Owner() (driverID, userID string)

	// WithOwner returns a copy with both ownership fields set.
	WithOwner(driverID, userID string) T

	// Validate checks the record before any persistence attempt.
	Validate() error
}
