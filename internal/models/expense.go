package models

import "time"

// ExpenseType classifies an expense. The set is closed.
type ExpenseType string

const (
	ExpenseTypeFuel        ExpenseType = "fuel"
	ExpenseTypeMaintenance ExpenseType = "maintenance"
	ExpenseTypeService     ExpenseType = "service"
	ExpenseTypeCarWash     ExpenseType = "car_wash"
	ExpenseTypeFine        ExpenseType = "fine"
	ExpenseTypeOther       ExpenseType = "other"
)

// MaxExpenseAmount is the upper bound for a single expense.
const MaxExpenseAmount = 999999.99

func (t ExpenseType) valid() bool {
	switch t {
	case ExpenseTypeFuel, ExpenseTypeMaintenance, ExpenseTypeService,
		ExpenseTypeCarWash, ExpenseTypeFine, ExpenseTypeOther:
		return true
	}
	return false
}

// Expense is a single cost record attributed to a driver and vehicle.
type Expense struct {
	ID        string
	UserID    string
	DriverID  string
	VehicleID string

	Type   ExpenseType
	Amount float64
	Date   time.Time

	Notes  string
	Photos []string

	Synced    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e Expense) RecordID() string { return e.ID }
func (e Expense) IsSynced() bool   { return e.Synced }
func (e Expense) WithSynced(s bool) Expense {
	e.Synced = s
	return e
}
func (e Expense) Owner() (string, string) { return e.DriverID, e.UserID }

// WithPhotos returns a copy with the uploaded photo URLs appended.
func (e Expense) WithPhotos(urls []string) Expense {
	e.Photos = append(append([]string(nil), e.Photos...), urls...)
	return e
}
func (e Expense) WithOwner(driverID, userID string) Expense {
	e.DriverID = driverID
	e.UserID = userID
	return e
}

// Validate checks the expense before any persistence attempt.
func (e Expense) Validate() error {
	if e.ID == "" {
		return invalid("id", "must not be blank")
	}
	if !e.Type.valid() {
		return invalid("type", "unknown expense type")
	}
	if e.Amount <= 0 {
		return invalid("amount", "must be positive")
	}
	if e.Amount > MaxExpenseAmount {
		return invalid("amount", "exceeds maximum")
	}
	if len(e.Notes) > MaxNotesLen {
		return invalid("notes", "too long")
	}
	return nil
}
