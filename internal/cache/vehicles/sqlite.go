package vehicles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fleetsync/internal/common"
	"github.com/dmitrijs2005/fleetsync/internal/dbx"
	"github.com/dmitrijs2005/fleetsync/internal/models"
)

// SQLiteRepository implements Repository over a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const vehicleColumns = `id, user_id, make, model, plate, year, active,
	price, deposit, monthly_installment, insurance_cost, fuel_type, tank_capacity,
	synced, created_at, updated_at`

func (r *SQLiteRepository) Upsert(ctx context.Context, v models.Vehicle) error {
	query := `INSERT INTO vehicles (` + vehicleColumns + `)
			values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				user_id = excluded.user_id,
				make = excluded.make,
				model = excluded.model,
				plate = excluded.plate,
				year = excluded.year,
				active = excluded.active,
				price = excluded.price,
				deposit = excluded.deposit,
				monthly_installment = excluded.monthly_installment,
				insurance_cost = excluded.insurance_cost,
				fuel_type = excluded.fuel_type,
				tank_capacity = excluded.tank_capacity,
				synced = excluded.synced,
				created_at = excluded.created_at,
				updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		v.ID, v.UserID, v.Make, v.Model, v.Plate, v.Year, v.Active,
		v.Price, v.Deposit, v.MonthlyInstallment, v.InsuranceCost,
		v.FuelType, v.TankCapacity,
		v.Synced, v.CreatedAt.UTC().Unix(), v.UpdatedAt.UTC().Unix())
	if err != nil {
		return fmt.Errorf("failed to upsert vehicle: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Vehicle, error) {
	row := r.db.QueryRowContext(ctx, `select `+vehicleColumns+` from vehicles where id=?`, id)

	v, err := scanVehicle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select vehicle: %w", err)
	}
	return v, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Vehicle, error) {
	return r.selectVehicles(ctx, `select `+vehicleColumns+` from vehicles order by plate`)
}

func (r *SQLiteRepository) GetAllUnsynced(ctx context.Context) ([]models.Vehicle, error) {
	return r.selectVehicles(ctx, `select `+vehicleColumns+` from vehicles where synced=0 order by plate`)
}

func (r *SQLiteRepository) GetAllSynced(ctx context.Context) ([]models.Vehicle, error) {
	return r.selectVehicles(ctx, `select `+vehicleColumns+` from vehicles where synced=1 order by plate`)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `delete from vehicles where id=?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `update vehicles set synced=1 where id=?`, id)
	if err != nil {
		return fmt.Errorf("failed to mark vehicle synced: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) selectVehicles(ctx context.Context, query string, args ...any) ([]models.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select vehicles: %w", err)
	}
	defer rows.Close()

	var result []models.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanVehicle(row scanner) (*models.Vehicle, error) {
	var (
		v      models.Vehicle
		cr, up int64
	)
	err := row.Scan(&v.ID, &v.UserID, &v.Make, &v.Model, &v.Plate, &v.Year,
		&v.Active, &v.Price, &v.Deposit, &v.MonthlyInstallment,
		&v.InsuranceCost, &v.FuelType, &v.TankCapacity, &v.Synced, &cr, &up)
	if err != nil {
		return nil, err
	}
	v.CreatedAt = time.Unix(cr, 0).UTC()
	v.UpdatedAt = time.Unix(up, 0).UTC()
	return &v, nil
}
