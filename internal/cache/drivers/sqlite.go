package drivers

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

const driverColumns = `id, user_id, name, license_number, phone, active, synced, created_at, updated_at`

func (r *SQLiteRepository) Upsert(ctx context.Context, d models.Driver) error {
	query := `INSERT INTO drivers (` + driverColumns + `)
			values (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				user_id = excluded.user_id,
				name = excluded.name,
				license_number = excluded.license_number,
				phone = excluded.phone,
				active = excluded.active,
				synced = excluded.synced,
				created_at = excluded.created_at,
				updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.UserID, d.Name, d.LicenseNumber, d.Phone, d.Active,
		d.Synced, d.CreatedAt.UTC().Unix(), d.UpdatedAt.UTC().Unix())
	if err != nil {
		return fmt.Errorf("failed to upsert driver: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Driver, error) {
	row := r.db.QueryRowContext(ctx, `select `+driverColumns+` from drivers where id=?`, id)

	d, err := scanDriver(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select driver: %w", err)
	}
	return d, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Driver, error) {
	return r.selectDrivers(ctx, `select `+driverColumns+` from drivers order by name`)
}

func (r *SQLiteRepository) GetAllUnsynced(ctx context.Context) ([]models.Driver, error) {
	return r.selectDrivers(ctx, `select `+driverColumns+` from drivers where synced=0 order by name`)
}

func (r *SQLiteRepository) GetAllSynced(ctx context.Context) ([]models.Driver, error) {
	return r.selectDrivers(ctx, `select `+driverColumns+` from drivers where synced=1 order by name`)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `delete from drivers where id=?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete driver: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `update drivers set synced=1 where id=?`, id)
	if err != nil {
		return fmt.Errorf("failed to mark driver synced: %w", err)
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

func (r *SQLiteRepository) selectDrivers(ctx context.Context, query string, args ...any) ([]models.Driver, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select drivers: %w", err)
	}
	defer rows.Close()

	var result []models.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDriver(row scanner) (*models.Driver, error) {
	var (
		d      models.Driver
		cr, up int64
	)
	err := row.Scan(&d.ID, &d.UserID, &d.Name, &d.LicenseNumber, &d.Phone,
		&d.Active, &d.Synced, &cr, &up)
	if err != nil {
		return nil, err
	}
	d.CreatedAt = time.Unix(cr, 0).UTC()
	d.UpdatedAt = time.Unix(up, 0).UTC()
	return &d, nil
}
