package timesheet

import (
	"context"
	"fmt"
	"time"
)

type Service interface {
	LogTime(ctx context.Context, entry Entry) (Entry, error)
	ListByStaff(ctx context.Context, staffId int, from time.Time, to time.Time) ([]Entry, error)
	Delete(ctx context.Context, id int, staffId int) (bool, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) LogTime(ctx context.Context, entry Entry) (Entry, error) {
	if entry.Minutes <= 0 {
		return Entry{}, fmt.Errorf("timesheet entry minutes must be positive")
	}
	if entry.Date.IsZero() {
		return Entry{}, fmt.Errorf("timesheet entry date is required")
	}

	id, err := s.repo.Store(ctx, entry)
	if err != nil {
		return Entry{}, err
	}
	entry.Id = id
	return entry, nil
}

func (s *ServiceImpl) ListByStaff(ctx context.Context, staffId int, from time.Time, to time.Time) ([]Entry, error) {
	return s.repo.ListByStaff(ctx, staffId, from, to)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int, staffId int) (bool, error) {
	return s.repo.Delete(ctx, id, staffId)
}
