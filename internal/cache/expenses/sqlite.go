package expenses

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

const expenseColumns = `id, user_id, driver_id, vehicle_id, type, amount, date, notes, photos, synced, created_at, updated_at`

func (r *SQLiteRepository) Upsert(ctx context.Context, e models.Expense) error {
	photos, err := json.Marshal(e.Photos)
	if err != nil {
		return fmt.Errorf("failed to encode photos: %w", err)
	}

	query := `INSERT INTO expenses (` + expenseColumns + `)
			values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				user_id = excluded.user_id,
				driver_id = excluded.driver_id,
				vehicle_id = excluded.vehicle_id,
				type = excluded.type,
				amount = excluded.amount,
				date = excluded.date,
				notes = excluded.notes,
				photos = excluded.photos,
				synced = excluded.synced,
				created_at = excluded.created_at,
				updated_at = excluded.updated_at
	`
	_, err = r.db.ExecContext(ctx, query,
		e.ID, e.UserID, e.DriverID, e.VehicleID, string(e.Type), e.Amount,
		e.Date.UTC().Unix(), e.Notes, string(photos), e.Synced,
		e.CreatedAt.UTC().Unix(), e.UpdatedAt.UTC().Unix())
	if err != nil {
		return fmt.Errorf("failed to upsert expense: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Expense, error) {
	row := r.db.QueryRowContext(ctx, `select `+expenseColumns+` from expenses where id=?`, id)

	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select expense: %w", err)
	}
	return e, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Expense, error) {
	return r.selectExpenses(ctx, `select `+expenseColumns+` from expenses order by date`)
}

func (r *SQLiteRepository) GetAllUnsynced(ctx context.Context) ([]models.Expense, error) {
	return r.selectExpenses(ctx, `select `+expenseColumns+` from expenses where synced=0 order by date`)
}

func (r *SQLiteRepository) GetAllSynced(ctx context.Context) ([]models.Expense, error) {
	return r.selectExpenses(ctx, `select `+expenseColumns+` from expenses where synced=1 order by date`)
}

func (r *SQLiteRepository) GetByDateRange(ctx context.Context, start, end time.Time) ([]models.Expense, error) {
	query := `select ` + expenseColumns + ` from expenses where date >= ? and date < ? order by date`
	return r.selectExpenses(ctx, query, start.UTC().Unix(), end.UTC().Unix())
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `delete from expenses where id=?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `update expenses set synced=1 where id=?`, id)
	if err != nil {
		return fmt.Errorf("failed to mark expense synced: %w", err)
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

func (r *SQLiteRepository) selectExpenses(ctx context.Context, query string, args ...any) ([]models.Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select expenses: %w", err)
	}
	defer rows.Close()

	var result []models.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
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

func scanExpense(row scanner) (*models.Expense, error) {
	var (
		e            models.Expense
		typ          string
		date, cr, up int64
		photos       string
	)
	err := row.Scan(&e.ID, &e.UserID, &e.DriverID, &e.VehicleID, &typ,
		&e.Amount, &date, &e.Notes, &photos, &e.Synced, &cr, &up)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(photos), &e.Photos); err != nil {
		return nil, fmt.Errorf("failed to decode photos: %w", err)
	}

	e.Type = models.ExpenseType(typ)
	e.Date = time.Unix(date, 0).UTC()
	e.CreatedAt = time.Unix(cr, 0).UTC()
	e.UpdatedAt = time.Unix(up, 0).UTC()
	return &e, nil
}
