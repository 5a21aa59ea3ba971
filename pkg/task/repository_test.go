package task_test

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/lexload/lexload/internal/test_utils"
	"github.com/lexload/lexload/pkg/task"
	"github.com/stretchr/testify/assert"
)

var db *sql.DB

func TestMain(m *testing.M) {
	container, connect := test_utils.TestWithDB()
	db = connect()
	code := m.Run()
	_ = db.Close()
	_ = container.Terminate(context.Background())
	os.Exit(code)
}

func createTestStaff(t *testing.T, ctx context.Context, uid string) int {
	t.Helper()
	var id int
	err := db.QueryRowContext(ctx,
		"INSERT INTO staff (uid, email, display_name, role, daily_hours_target) VALUES ($1, $2, '', '', 8) RETURNING id",
		uid, uid+"@example.com",
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to create test staff member: %v", err)
	}
	return id
}

func TestRepositoryImpl_StoreAndGetByUid(t *testing.T) {
	ctx := context.Background()
	repo := task.NewRepository(db)
	staffId := createTestStaff(t, ctx, "store-get")

	// given
	deadline := time.Date(2025, time.June, 5, 17, 0, 0, 0, time.Local)
	stored := task.Task{
		Uid:              "task-store-get",
		StaffId:          staffId,
		ClientName:       "Cohen",
		Description:      "Draft contract",
		Status:           task.StatusActive,
		Priority:         task.PriorityHigh,
		EstimatedMinutes: 300,
		ActualMinutes:    60,
		Deadline:         &deadline,
		CreatedAt:        time.Now(),
		LastModified:     time.Now(),
	}

	// when
	id, err := repo.Store(ctx, stored)
	assert.NoError(t, err)

	// then
	loaded, err := repo.GetByUid(ctx, stored.Uid)
	assert.NoError(t, err)
	assert.Equal(t, id, loaded.Id)
	assert.Equal(t, "Cohen", loaded.ClientName)
	assert.Equal(t, task.PriorityHigh, loaded.Priority)
	assert.Equal(t, 300, loaded.EstimatedMinutes)
	if assert.NotNil(t, loaded.Deadline) {
		assert.True(t, loaded.Deadline.Equal(deadline))
	}
}

func TestRepositoryImpl_GetByUid_ShouldReturnNotFound(t *testing.T) {
	repo := task.NewRepository(db)

	_, err := repo.GetByUid(context.Background(), "no-such-task")

	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestRepositoryImpl_ListByStaff_ShouldFilterCompleted(t *testing.T) {
	ctx := context.Background()
	repo := task.NewRepository(db)
	staffId := createTestStaff(t, ctx, "list-filter")

	now := time.Now()
	_, err := repo.Store(ctx, task.Task{Uid: "list-active", StaffId: staffId, Status: task.StatusActive, Priority: task.PriorityMedium, CreatedAt: now, LastModified: now})
	assert.NoError(t, err)
	_, err = repo.Store(ctx, task.Task{Uid: "list-done", StaffId: staffId, Status: task.StatusCompleted, Priority: task.PriorityMedium, CreatedAt: now, LastModified: now})
	assert.NoError(t, err)

	// when
	openOnly, err := repo.ListByStaff(ctx, staffId, false)
	assert.NoError(t, err)
	all, err := repo.ListByStaff(ctx, staffId, true)
	assert.NoError(t, err)

	// then
	assert.Len(t, openOnly, 1)
	assert.Equal(t, "list-active", openOnly[0].Uid)
	assert.Len(t, all, 2)
}

func TestRepositoryImpl_Update(t *testing.T) {
	ctx := context.Background()
	repo := task.NewRepository(db)
	staffId := createTestStaff(t, ctx, "update")

	now := time.Now()
	stored := task.Task{Uid: "task-update", StaffId: staffId, Status: task.StatusActive, Priority: task.PriorityLow, EstimatedMinutes: 60, CreatedAt: now, LastModified: now}
	id, err := repo.Store(ctx, stored)
	assert.NoError(t, err)

	// when
	stored.Id = id
	stored.ActualMinutes = 45
	stored.Priority = task.PriorityUrgent
	stored.Deadline = nil
	ok, err := repo.Update(ctx, stored)

	// then
	assert.NoError(t, err)
	assert.True(t, ok)
	loaded, err := repo.GetByUid(ctx, stored.Uid)
	assert.NoError(t, err)
	assert.Equal(t, 45, loaded.ActualMinutes)
	assert.Equal(t, task.PriorityUrgent, loaded.Priority)
	assert.Nil(t, loaded.Deadline)
}

func TestRepositoryImpl_Delete(t *testing.T) {
	ctx := context.Background()
	repo := task.NewRepository(db)
	staffId := createTestStaff(t, ctx, "delete")

	now := time.Now()
	_, err := repo.Store(ctx, task.Task{Uid: "task-delete", StaffId: staffId, Status: task.StatusActive, Priority: task.PriorityMedium, CreatedAt: now, LastModified: now})
	assert.NoError(t, err)

	// when
	deleted, err := repo.Delete(ctx, "task-delete")

	// then
	assert.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = repo.Delete(ctx, "task-delete")
	assert.NoError(t, err)
	assert.False(t, deleted)
}
