package models

import "time"

// Driver is a fleet driver managed by an administrator.
type Driver struct {
	ID     string
	UserID string

	Name          string
	LicenseNumber string
	Phone         string
	Active        bool

	Synced    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (d Driver) RecordID() string { return d.ID }
func (d Driver) IsSynced() bool   { return d.Synced }
func (d Driver) WithSynced(s bool) Driver {
	d.Synced = s
	return d
}

// Owner returns the driver record's own id as the driver side, so identity
// resolution treats the record as self-owned.
func (d Driver) Owner() (string, string) { return d.ID, d.UserID }
func (d Driver) WithOwner(driverID, userID string) Driver {
	if d.ID == "" {
		d.ID = driverID
	}
	d.UserID = userID
	return d
}

// Validate checks the driver before any persistence attempt.
func (d Driver) Validate() error {
	if d.ID == "" {
		return invalid("id", "must not be blank")
	}
	if d.Name == "" {
		return invalid("name", "must not be blank")
	}
	return nil
}
