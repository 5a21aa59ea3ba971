package staff

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceImpl_Create(t *testing.T) {
	service := NewService(NewStubRepository())
	ctx := context.Background()

	// when
	created, err := service.Create(ctx, Staff{
		Email:            "dana@example.com",
		DisplayName:      "Dana",
		Role:             "associate",
		DailyHoursTarget: 8,
	})

	// then
	assert.NoError(t, err)
	assert.NotEmpty(t, created.Uid)
	assert.NotZero(t, created.Id)

	stored, err := service.GetByUid(ctx, created.Uid)
	assert.NoError(t, err)
	assert.Equal(t, "dana@example.com", stored.Email)
}

func TestServiceImpl_Create_ShouldRequireEmail(t *testing.T) {
	service := NewService(NewStubRepository())

	_, err := service.Create(context.Background(), Staff{DisplayName: "No Email"})

	assert.Error(t, err)
}

func TestServiceImpl_GetByUid_ShouldReturnNotFound(t *testing.T) {
	service := NewService(NewStubRepository())

	_, err := service.GetByUid(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestServiceImpl_Update(t *testing.T) {
	service := NewService(NewStubRepository())
	ctx := context.Background()

	created, err := service.Create(ctx, Staff{Email: "dana@example.com"})
	assert.NoError(t, err)

	// when
	created.DisplayName = "Dana L."
	ok, err := service.Update(ctx, created)

	// then
	assert.NoError(t, err)
	assert.True(t, ok)
	stored, err := service.GetByUid(ctx, created.Uid)
	assert.NoError(t, err)
	assert.Equal(t, "Dana L.", stored.DisplayName)
}

func TestServiceImpl_Update_ShouldFailForUnknownMember(t *testing.T) {
	service := NewService(NewStubRepository())

	ok, err := service.Update(context.Background(), Staff{Uid: "missing", Email: "x@example.com"})

	assert.False(t, ok)
	assert.Error(t, err)
}

func TestServiceImpl_Delete(t *testing.T) {
	service := NewService(NewStubRepository())
	ctx := context.Background()

	created, err := service.Create(ctx, Staff{Email: "dana@example.com"})
	assert.NoError(t, err)

	// when
	ok, err := service.Delete(ctx, created.Uid)

	// then
	assert.NoError(t, err)
	assert.True(t, ok)
	_, err = service.GetByUid(ctx, created.Uid)
	assert.ErrorIs(t, err, ErrStaffNotFound)
}
