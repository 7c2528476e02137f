package models

import "time"

// Vehicle is a fleet car. The financial fields are inert data carried for
// reporting; the only rule on them is non-negativity.
type Vehicle struct {
	ID     string
	UserID string

	Make   string
	Model  string
	Plate  string
	Year   int
	Active bool

	Price              float64
	Deposit            float64
	MonthlyInstallment float64
	InsuranceCost      float64
	FuelType           string
	TankCapacity       float64

	Synced    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (v Vehicle) RecordID() string { return v.ID }
func (v Vehicle) IsSynced() bool   { return v.Synced }
func (v Vehicle) WithSynced(s bool) Vehicle {
	v.Synced = s
	return v
}
func (v Vehicle) Owner() (string, string) { return "", v.UserID }
func (v Vehicle) WithOwner(_, userID string) Vehicle {
	v.UserID = userID
	return v
}

// Validate checks the vehicle before any persistence attempt.
func (v Vehicle) Validate() error {
	if v.ID == "" {
		return invalid("id", "must not be blank")
	}
	if v.Price < 0 || v.Deposit < 0 || v.MonthlyInstallment < 0 ||
		v.InsuranceCost < 0 || v.TankCapacity < 0 {
		return invalid("financials", "must be non-negative")
	}
	return nil
}
