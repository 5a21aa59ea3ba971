package staff

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Store(ctx context.Context, member Staff) (int, error)
	GetAll(ctx context.Context) ([]Staff, error)
	GetByUid(ctx context.Context, uid string) (Staff, error)
	GetByEmail(ctx context.Context, email string) (Staff, error)
	Update(ctx context.Context, member Staff) (bool, error)
	Delete(ctx context.Context, uid string) (bool, error)
}

var ErrStaffNotFound = errors.New("staff member not found")

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, member Staff) (int, error) {
	query := `INSERT INTO staff (uid, email, display_name, role, daily_hours_target)
			  VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var id int
	err := r.db.QueryRowContext(ctx, query,
		member.Uid,
		member.Email,
		member.DisplayName,
		member.Role,
		member.DailyHoursTarget,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store staff member: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Staff, error) {
	query := `SELECT id, uid, email, display_name, role, daily_hours_target FROM staff ORDER BY display_name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query staff: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var members []Staff
	for rows.Next() {
		var member Staff
		if err := rows.Scan(
			&member.Id,
			&member.Uid,
			&member.Email,
			&member.DisplayName,
			&member.Role,
			&member.DailyHoursTarget,
		); err != nil {
			err := fmt.Errorf("could not scan staff member: %w", err)
			log.Error(err)
			return nil, err
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return members, nil
}

func (r *RepositoryImpl) GetByUid(ctx context.Context, uid string) (Staff, error) {
	return r.getOne(ctx, "uid = $1", uid)
}

func (r *RepositoryImpl) GetByEmail(ctx context.Context, email string) (Staff, error) {
	return r.getOne(ctx, "email = $1", email)
}

func (r *RepositoryImpl) getOne(ctx context.Context, where string, arg any) (Staff, error) {
	query := `SELECT id, uid, email, display_name, role, daily_hours_target FROM staff WHERE ` + where
	var member Staff
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&member.Id,
		&member.Uid,
		&member.Email,
		&member.DisplayName,
		&member.Role,
		&member.DailyHoursTarget,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Staff{}, ErrStaffNotFound
	} else if err != nil {
		err := fmt.Errorf("could not query staff member: %w", err)
		log.Error(err)
		return Staff{}, err
	}
	return member, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, member Staff) (bool, error) {
	query := `UPDATE staff SET email = $1, display_name = $2, role = $3, daily_hours_target = $4 WHERE uid = $5`
	result, err := r.db.ExecContext(ctx, query,
		member.Email,
		member.DisplayName,
		member.Role,
		member.DailyHoursTarget,
		member.Uid,
	)
	if err != nil {
		err := fmt.Errorf("could not update staff member: %w", err)
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

func (r *RepositoryImpl) Delete(ctx context.Context, uid string) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM staff WHERE uid = $1", uid)
	if err != nil {
		err := fmt.Errorf("could not delete staff member: %w", err)
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
