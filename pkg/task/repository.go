package task

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Store(ctx context.Context, t Task) (int, error)
	GetByUid(ctx context.Context, uid string) (Task, error)
	ListByStaff(ctx context.Context, staffId int, includeCompleted bool) ([]Task, error)
	Update(ctx context.Context, t Task) (bool, error)
	Delete(ctx context.Context, uid string) (bool, error)
}

var ErrTaskNotFound = errors.New("task not found")

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const taskColumns = `id, uid, staff_id, client_name, description, status, priority,
	estimated_minutes, actual_minutes, deadline, created_at, last_modified`

func (r *RepositoryImpl) Store(ctx context.Context, t Task) (int, error) {
	query := `INSERT INTO task (uid, staff_id, client_name, description, status, priority,
				estimated_minutes, actual_minutes, deadline, created_at, last_modified)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`

	var id int
	err := r.db.QueryRowContext(ctx, query,
		t.Uid,
		t.StaffId,
		t.ClientName,
		t.Description,
		string(t.Status),
		string(t.Priority),
		t.EstimatedMinutes,
		t.ActualMinutes,
		nullableTime(t.Deadline),
		t.CreatedAt,
		t.LastModified,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store task: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) GetByUid(ctx context.Context, uid string) (Task, error) {
	query := `SELECT ` + taskColumns + ` FROM task WHERE uid = $1`
	row := r.db.QueryRowContext(ctx, query, uid)
	t, err := scanTask(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Task{}, ErrTaskNotFound
	} else if err != nil {
		err := fmt.Errorf("could not query task: %w", err)
		log.Error(err)
		return Task{}, err
	}
	return t, nil
}

func (r *RepositoryImpl) ListByStaff(ctx context.Context, staffId int, includeCompleted bool) ([]Task, error) {
	statusFilter := " AND status != 'completed'"
	if includeCompleted {
		statusFilter = ""
	}
	query := fmt.Sprintf(`SELECT %s FROM task WHERE staff_id = $1%s ORDER BY created_at`, taskColumns, statusFilter)
	rows, err := r.db.QueryContext(ctx, query, staffId)
	if err != nil {
		err := fmt.Errorf("could not query tasks: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		t, err := scanTask(rows.Scan)
		if err != nil {
			err := fmt.Errorf("could not scan task: %w", err)
			log.Error(err)
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return tasks, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, t Task) (bool, error) {
	query := `UPDATE task SET
				client_name = $1,
				description = $2,
				status = $3,
				priority = $4,
				estimated_minutes = $5,
				actual_minutes = $6,
				deadline = $7,
				last_modified = $8
			  WHERE uid = $9`
	result, err := r.db.ExecContext(ctx, query,
		t.ClientName,
		t.Description,
		string(t.Status),
		string(t.Priority),
		t.EstimatedMinutes,
		t.ActualMinutes,
		nullableTime(t.Deadline),
		t.LastModified,
		t.Uid,
	)
	if err != nil {
		err := fmt.Errorf("could not update task: %w", err)
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
	result, err := r.db.ExecContext(ctx, "DELETE FROM task WHERE uid = $1", uid)
	if err != nil {
		err := fmt.Errorf("could not delete task: %w", err)
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

func scanTask(scan func(dest ...any) error) (Task, error) {
	var t Task
	var status, priority string
	var deadline sql.NullTime
	err := scan(
		&t.Id,
		&t.Uid,
		&t.StaffId,
		&t.ClientName,
		&t.Description,
		&status,
		&priority,
		&t.EstimatedMinutes,
		&t.ActualMinutes,
		&deadline,
		&t.CreatedAt,
		&t.LastModified,
	)
	if err != nil {
		return Task{}, err
	}
	t.Status = StatusFromWire(status)
	t.Priority = PriorityFromWire(priority)
	if deadline.Valid {
		d := deadline.Time.In(time.Local)
		t.Deadline = &d
	}
	return t, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
