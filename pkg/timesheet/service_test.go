package timesheet

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestServiceImpl_LogTime(t *testing.T) {
	service := NewService(NewStubRepository())
	ctx := context.Background()
	date := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.Local)

	// when
	entry, err := service.LogTime(ctx, Entry{StaffId: 1, Date: date, Minutes: 90, Notes: "Court hearing"})

	// then
	assert.NoError(t, err)
	assert.NotZero(t, entry.Id)

	listed, err := service.ListByStaff(ctx, 1, date, date)
	assert.NoError(t, err)
	assert.Len(t, listed, 1)
	assert.Equal(t, 90, listed[0].Minutes)
}

func TestServiceImpl_LogTime_ShouldRejectInvalidEntries(t *testing.T) {
	service := NewService(NewStubRepository())
	ctx := context.Background()
	date := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.Local)

	// zero and negative minutes are rejected
	_, err := service.LogTime(ctx, Entry{StaffId: 1, Date: date, Minutes: 0})
	assert.Error(t, err)
	_, err = service.LogTime(ctx, Entry{StaffId: 1, Date: date, Minutes: -30})
	assert.Error(t, err)

	// a date is required
	_, err = service.LogTime(ctx, Entry{StaffId: 1, Minutes: 60})
	assert.Error(t, err)
}

func TestServiceImpl_ListByStaff_ShouldFilterByRange(t *testing.T) {
	service := NewService(NewStubRepository())
	ctx := context.Background()
	monday := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.Local)

	for i := 0; i < 4; i++ {
		_, err := service.LogTime(ctx, Entry{StaffId: 1, Date: monday.AddDate(0, 0, i), Minutes: 60})
		assert.NoError(t, err)
	}
	_, err := service.LogTime(ctx, Entry{StaffId: 2, Date: monday, Minutes: 60})
	assert.NoError(t, err)

	// when listing only the first two days
	entries, err := service.ListByStaff(ctx, 1, monday, monday.AddDate(0, 0, 1))

	// then
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestServiceImpl_Delete(t *testing.T) {
	service := NewService(NewStubRepository())
	ctx := context.Background()
	date := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.Local)

	entry, err := service.LogTime(ctx, Entry{StaffId: 1, Date: date, Minutes: 60})
	assert.NoError(t, err)

	// when
	deleted, err := service.Delete(ctx, entry.Id, 1)

	// then
	assert.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = service.Delete(ctx, entry.Id, 1)
	assert.NoError(t, err)
	assert.False(t, deleted)
}
