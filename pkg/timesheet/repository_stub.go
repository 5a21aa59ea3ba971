package timesheet

import (
	"context"
	"time"
)

type StubRepository struct {
	entries []Entry
	nextId  int
}

func NewStubRepository() *StubRepository {
	return &StubRepository{nextId: 1}
}

func (s *StubRepository) Store(ctx context.Context, entry Entry) (int, error) {
	entry.Id = s.nextId
	s.nextId++
	s.entries = append(s.entries, entry)
	return entry.Id, nil
}

func (s *StubRepository) ListByStaff(ctx context.Context, staffId int, from time.Time, to time.Time) ([]Entry, error) {
	var result []Entry
	for _, entry := range s.entries {
		if entry.StaffId != staffId {
			continue
		}
		if entry.Date.Before(from) || entry.Date.After(to) {
			continue
		}
		result = append(result, entry)
	}
	return result, nil
}

func (s *StubRepository) Delete(ctx context.Context, id int, staffId int) (bool, error) {
	for i, entry := range s.entries {
		if entry.Id == id && entry.StaffId == staffId {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *StubRepository) Reset() {
	s.entries = nil
	s.nextId = 1
}
