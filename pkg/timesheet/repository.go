package timesheet

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Store(ctx context.Context, entry Entry) (int, error)
	ListByStaff(ctx context.Context, staffId int, from time.Time, to time.Time) ([]Entry, error)
	Delete(ctx context.Context, id int, staffId int) (bool, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, entry Entry) (int, error) {
	query := `INSERT INTO timesheet_entry (staff_id, date, minutes, notes) VALUES ($1, $2, $3, $4) RETURNING id`
	var id int
	err := r.db.QueryRowContext(ctx, query,
		entry.StaffId,
		entry.Date.Format(DateKey),
		entry.Minutes,
		entry.Notes,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store timesheet entry: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) ListByStaff(ctx context.Context, staffId int, from time.Time, to time.Time) ([]Entry, error) {
	query := `SELECT id, staff_id, date, minutes, notes FROM timesheet_entry
			  WHERE staff_id = $1 AND date >= $2 AND date <= $3 ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, staffId, from.Format(DateKey), to.Format(DateKey))
	if err != nil {
		err := fmt.Errorf("could not query timesheet entries: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var date time.Time
		if err := rows.Scan(&entry.Id, &entry.StaffId, &date, &entry.Minutes, &entry.Notes); err != nil {
			err := fmt.Errorf("could not scan timesheet entry: %w", err)
			log.Error(err)
			return nil, err
		}
		// DATE columns come back in UTC; re-anchor to local midnight.
		entry.Date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.Local)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return entries, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id int, staffId int) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM timesheet_entry WHERE id = $1 AND staff_id = $2", id, staffId)
	if err != nil {
		err := fmt.Errorf("could not delete timesheet entry: %w", err)
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
