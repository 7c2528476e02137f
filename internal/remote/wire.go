package remote

import (
	"time"

	"github.com/dmitrijs2005/fleetsync/internal/models"
)

// Wire documents. These are the only types that carry bson tags; they exist
// so that a remote schema change stays inside this package.

type earningDoc struct {
	Provider     string  `bson:"provider"`
	CardEarnings float64 `bson:"card_earnings"`
	CashEarnings float64 `bson:"cash_earnings"`
	Tips         float64 `bson:"tips"`
	TripCount    int     `bson:"trip_count"`
	HoursOnline  float64 `bson:"hours_online"`
}

type entryDoc struct {
	ID        string       `bson:"_id"`
	UserID    string       `bson:"user_id"`
	DriverID  string       `bson:"driver_id"`
	VehicleID string       `bson:"vehicle_id"`
	Date      time.Time    `bson:"date"`
	Earnings  []earningDoc `bson:"earnings"`
	Odometer  *float64     `bson:"odometer,omitempty"`
	Notes     string       `bson:"notes"`
	Photos    []string     `bson:"photos"`
	CreatedAt time.Time    `bson:"created_at"`
	UpdatedAt time.Time    `bson:"updated_at"`
}

type expenseDoc struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	DriverID  string    `bson:"driver_id"`
	VehicleID string    `bson:"vehicle_id"`
	Type      string    `bson:"type"`
	Amount    float64   `bson:"amount"`
	Date      time.Time `bson:"date"`
	Notes     string    `bson:"notes"`
	Photos    []string  `bson:"photos"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type driverDoc struct {
	ID            string    `bson:"_id"`
	UserID        string    `bson:"user_id"`
	Name          string    `bson:"name"`
	LicenseNumber string    `bson:"license_number"`
	Phone         string    `bson:"phone"`
	Active        bool      `bson:"active"`
	CreatedAt     time.Time `bson:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at"`
}

type vehicleDoc struct {
	ID                 string    `bson:"_id"`
	UserID             string    `bson:"user_id"`
	Make               string    `bson:"make"`
	Model              string    `bson:"model"`
	Plate              string    `bson:"plate"`
	Year               int       `bson:"year"`
	Active             bool      `bson:"active"`
	Price              float64   `bson:"price"`
	Deposit            float64   `bson:"deposit"`
	MonthlyInstallment float64   `bson:"monthly_installment"`
	InsuranceCost      float64   `bson:"insurance_cost"`
	FuelType           string    `bson:"fuel_type"`
	TankCapacity       float64   `bson:"tank_capacity"`
	CreatedAt          time.Time `bson:"created_at"`
	UpdatedAt          time.Time `bson:"updated_at"`
}

// A record pulled from the remote store is by definition synced: it is the
// last known remote write. The synced flag therefore never crosses the wire.

func encodeEntry(e models.Entry) entryDoc {
	earnings := make([]earningDoc, len(e.Earnings))
	for i, b := range e.Earnings {
		earnings[i] = earningDoc(b)
	}
	return entryDoc{
		ID: e.ID, UserID: e.UserID, DriverID: e.DriverID, VehicleID: e.VehicleID,
		Date: e.Date.UTC(), Earnings: earnings, Odometer: e.Odometer,
		Notes: e.Notes, Photos: e.Photos,
		CreatedAt: e.CreatedAt.UTC(), UpdatedAt: e.UpdatedAt.UTC(),
	}
}

func decodeEntry(d entryDoc) models.Entry {
	earnings := make([]models.EarningBreakdown, len(d.Earnings))
	for i, b := range d.Earnings {
		earnings[i] = models.EarningBreakdown(b)
	}
	return models.Entry{
		ID: d.ID, UserID: d.UserID, DriverID: d.DriverID, VehicleID: d.VehicleID,
		Date: d.Date.UTC(), Earnings: earnings, Odometer: d.Odometer,
		Notes: d.Notes, Photos: d.Photos, Synced: true,
		CreatedAt: d.CreatedAt.UTC(), UpdatedAt: d.UpdatedAt.UTC(),
	}
}

func encodeExpense(e models.Expense) expenseDoc {
	return expenseDoc{
		ID: e.ID, UserID: e.UserID, DriverID: e.DriverID, VehicleID: e.VehicleID,
		Type: string(e.Type), Amount: e.Amount, Date: e.Date.UTC(),
		Notes: e.Notes, Photos: e.Photos,
		CreatedAt: e.CreatedAt.UTC(), UpdatedAt: e.UpdatedAt.UTC(),
	}
}

func decodeExpense(d expenseDoc) models.Expense {
	return models.Expense{
		ID: d.ID, UserID: d.UserID, DriverID: d.DriverID, VehicleID: d.VehicleID,
		Type: models.ExpenseType(d.Type), Amount: d.Amount, Date: d.Date.UTC(),
		Notes: d.Notes, Photos: d.Photos, Synced: true,
		CreatedAt: d.CreatedAt.UTC(), UpdatedAt: d.UpdatedAt.UTC(),
	}
}

func encodeDriver(v models.Driver) driverDoc {
	return driverDoc{
		ID: v.ID, UserID: v.UserID, Name: v.Name,
		LicenseNumber: v.LicenseNumber, Phone: v.Phone, Active: v.Active,
		CreatedAt: v.CreatedAt.UTC(), UpdatedAt: v.UpdatedAt.UTC(),
	}
}

func decodeDriver(d driverDoc) models.Driver {
	return models.Driver{
		ID: d.ID, UserID: d.UserID, Name: d.Name,
		LicenseNumber: d.LicenseNumber, Phone: d.Phone, Active: d.Active,
		Synced:    true,
		CreatedAt: d.CreatedAt.UTC(), UpdatedAt: d.UpdatedAt.UTC(),
	}
}

func encodeVehicle(v models.Vehicle) vehicleDoc {
	return vehicleDoc{
		ID: v.ID, UserID: v.UserID, Make: v.Make, Model: v.Model,
		Plate: v.Plate, Year: v.Year, Active: v.Active,
		Price: v.Price, Deposit: v.Deposit,
		MonthlyInstallment: v.MonthlyInstallment, InsuranceCost: v.InsuranceCost,
		FuelType: v.FuelType, TankCapacity: v.TankCapacity,
		CreatedAt: v.CreatedAt.UTC(), UpdatedAt: v.UpdatedAt.UTC(),
	}
}

func decodeVehicle(d vehicleDoc) models.Vehicle {
	return models.Vehicle{
		ID: d.ID, UserID: d.UserID, Make: d.Make, Model: d.Model,
		Plate: d.Plate, Year: d.Year, Active: d.Active,
		Price: d.Price, Deposit: d.Deposit,
		MonthlyInstallment: d.MonthlyInstallment, InsuranceCost: d.InsuranceCost,
		FuelType: d.FuelType, TankCapacity: d.TankCapacity,
		Synced:    true,
		CreatedAt: d.CreatedAt.UTC(), UpdatedAt: d.UpdatedAt.UTC(),
	}
}
