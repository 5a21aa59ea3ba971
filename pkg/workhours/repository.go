package workhours

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type HolidayRepo interface {
	Store(ctx context.Context, holiday Holiday) (Holiday, error)
	ListBetween(ctx context.Context, from time.Time, to time.Time) ([]Holiday, error)
	Delete(ctx context.Context, uid string) (bool, error)
}

type HolidayRepoImpl struct {
	db *sql.DB
}

func NewHolidayRepo(db *sql.DB) *HolidayRepoImpl {
	return &HolidayRepoImpl{db: db}
}

func (r *HolidayRepoImpl) Store(ctx context.Context, holiday Holiday) (Holiday, error) {
	query := `INSERT INTO holiday (uid, date, name) VALUES ($1, $2, $3)
			  ON CONFLICT (date) DO UPDATE SET name = EXCLUDED.name
			  RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		holiday.Uid,
		holiday.Date.Format("2006-01-02"),
		holiday.Name,
	).Scan(&holiday.Id)
	if err != nil {
		err := fmt.Errorf("could not store holiday: %w", err)
		log.Error(err)
		return Holiday{}, err
	}
	return holiday, nil
}

func (r *HolidayRepoImpl) ListBetween(ctx context.Context, from time.Time, to time.Time) ([]Holiday, error) {
	query := `SELECT id, uid, date, name FROM holiday WHERE date >= $1 AND date <= $2 ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		err := fmt.Errorf("could not query holidays: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var holidays []Holiday
	for rows.Next() {
		var holiday Holiday
		var date time.Time
		if err := rows.Scan(&holiday.Id, &holiday.Uid, &date, &holiday.Name); err != nil {
			err := fmt.Errorf("could not scan holiday: %w", err)
			log.Error(err)
			return nil, err
		}
		// DATE columns come back in UTC; re-anchor to local midnight.
		holiday.Date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.Local)
		holidays = append(holidays, holiday)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return holidays, nil
}

func (r *HolidayRepoImpl) Delete(ctx context.Context, uid string) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM holiday WHERE uid = $1", uid)
	if err != nil {
		err := fmt.Errorf("could not delete holiday: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}
