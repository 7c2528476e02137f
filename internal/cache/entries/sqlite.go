package entries

import (
	"context"
	"database/sql"
	"encoding/json"
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

const entryColumns = `id, user_id, driver_id, vehicle_id, date, earnings, odometer, notes, photos, synced, created_at, updated_at`

func (r *SQLiteRepository) Upsert(ctx context.Context, e models.Entry) error {
	earnings, err := json.Marshal(e.Earnings)
	if err != nil {
		return fmt.Errorf("failed to encode earnings: %w", err)
	}
	photos, err := json.Marshal(e.Photos)
	if err != nil {
		return fmt.Errorf("failed to encode photos: %w", err)
	}

	var odometer sql.NullFloat64
	if e.Odometer != nil {
		odometer = sql.NullFloat64{Float64: *e.Odometer, Valid: true}
	}

	query := `INSERT INTO entries (` + entryColumns + `)
			values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				user_id = excluded.user_id,
				driver_id = excluded.driver_id,
				vehicle_id = excluded.vehicle_id,
				date = excluded.date,
				earnings = excluded.earnings,
				odometer = excluded.odometer,
				notes = excluded.notes,
				photos = excluded.photos,
				synced = excluded.synced,
				created_at = excluded.created_at,
				updated_at = excluded.updated_at
	`
	_, err = r.db.ExecContext(ctx, query,
		e.ID, e.UserID, e.DriverID, e.VehicleID, e.Date.UTC().Unix(),
		string(earnings), odometer, e.Notes, string(photos),
		e.Synced, e.CreatedAt.UTC().Unix(), e.UpdatedAt.UTC().Unix())
	if err != nil {
		return fmt.Errorf("failed to upsert entry: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Entry, error) {
	query := `select ` + entryColumns + ` from entries where id=?`
	row := r.db.QueryRowContext(ctx, query, id)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select entry: %w", err)
	}
	return e, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Entry, error) {
	return r.selectEntries(ctx, `select `+entryColumns+` from entries order by date`)
}

func (r *SQLiteRepository) GetAllUnsynced(ctx context.Context) ([]models.Entry, error) {
	return r.selectEntries(ctx, `select `+entryColumns+` from entries where synced=0 order by date`)
}

func (r *SQLiteRepository) GetAllSynced(ctx context.Context) ([]models.Entry, error) {
	return r.selectEntries(ctx, `select `+entryColumns+` from entries where synced=1 order by date`)
}

func (r *SQLiteRepository) GetByDateRange(ctx context.Context, start, end time.Time) ([]models.Entry, error) {
	query := `select ` + entryColumns + ` from entries where date >= ? and date < ? order by date`
	return r.selectEntries(ctx, query, start.UTC().Unix(), end.UTC().Unix())
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `delete from entries where id=?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `update entries set synced=1 where id=?`, id)
	if err != nil {
		return fmt.Errorf("failed to mark entry synced: %w", err)
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

func (r *SQLiteRepository) selectEntries(ctx context.Context, query string, args ...any) ([]models.Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()

	var result []models.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*models.Entry, error) {
	var (
		e            models.Entry
		date, cr, up int64
		earnings     string
		photos       string
		odometer     sql.NullFloat64
	)
	err := row.Scan(&e.ID, &e.UserID, &e.DriverID, &e.VehicleID, &date,
		&earnings, &odometer, &e.Notes, &photos, &e.Synced, &cr, &up)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(earnings), &e.Earnings); err != nil {
		return nil, fmt.Errorf("failed to decode earnings: %w", err)
	}
	if err := json.Unmarshal([]byte(photos), &e.Photos); err != nil {
		return nil, fmt.Errorf("failed to decode photos: %w", err)
	}
	if odometer.Valid {
		e.Odometer = &odometer.Float64
	}

	e.Date = time.Unix(date, 0).UTC()
	e.CreatedAt = time.Unix(cr, 0).UTC()
	e.UpdatedAt = time.Unix(up, 0).UTC()
	return &e, nil
}
