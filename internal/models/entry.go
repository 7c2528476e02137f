package models

import "time"

// EarningBreakdown is one provider's slice of a daily entry (e.g. Uber,
// Bolt). All numeric fields are non-negative.
// The json tags define the persisted cache encoding; the remote wire schema
// has its own document types.
type EarningBreakdown struct {
	Provider     string  `json:"provider"`
	CardEarnings float64 `json:"card"`
	CashEarnings float64 `json:"cash"`
	Tips         float64 `json:"tips"`
	TripCount    int     `json:"trips"`
	HoursOnline  float64 `json:"hours"`
}

// Entry is a driver's daily earnings record.
type Entry struct {
	ID        string
	UserID    string
	DriverID  string
	VehicleID string

	// Date is the day the earnings belong to, in UTC.
	Date time.Time

	Earnings []EarningBreakdown

	// Odometer is an optional end-of-day reading.
	Odometer *float64

	Notes  string
	Photos []string

	Synced    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalEarnings sums card, cash and tips over all provider breakdowns.
func (e Entry) TotalEarnings() float64 {
	var total float64
	for _, b := range e.Earnings {
		total += b.CardEarnings + b.CashEarnings + b.Tips
	}
	return total
}

func (e Entry) RecordID() string { return e.ID }
func (e Entry) IsSynced() bool   { return e.Synced }
func (e Entry) WithSynced(s bool) Entry {
	e.Synced = s
	return e
}
func (e Entry) Owner() (string, string) { return e.DriverID, e.UserID }

// WithPhotos returns a copy with the uploaded photo URLs appended.
func (e Entry) WithPhotos(urls []string) Entry {
	e.Photos = append(append([]string(nil), e.Photos...), urls...)
	return e
}
func (e Entry) WithOwner(driverID, userID string) Entry {
	e.DriverID = driverID
	e.UserID = userID
	return e
}

// Validate checks the entry before any persistence attempt.
func (e Entry) Validate() error {
	if e.ID == "" {
		return invalid("id", "must not be blank")
	}
	if len(e.Notes) > MaxNotesLen {
		return invalid("notes", "too long")
	}
	if e.Odometer != nil && *e.Odometer < 0 {
		return invalid("odometer", "must be non-negative")
	}
	for _, b := range e.Earnings {
		if b.CardEarnings < 0 || b.CashEarnings < 0 || b.Tips < 0 {
			return invalid("earnings", "amounts must be non-negative")
		}
		if b.TripCount < 0 {
			return invalid("earnings", "trip count must be non-negative")
		}
		if b.HoursOnline < 0 {
			return invalid("earnings", "hours online must be non-negative")
		}
	}
	return nil
}
