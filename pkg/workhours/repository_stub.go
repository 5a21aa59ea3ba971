package workhours

import (
	"context"
	"errors"
	"time"
)

type stubHolidayRepo struct {
	holidays map[string]Holiday // date key -> holiday
	failing  bool
	nextId   int
}

func newStubHolidayRepo() *stubHolidayRepo {
	return &stubHolidayRepo{
		holidays: map[string]Holiday{},
		nextId:   1,
	}
}

func (s *stubHolidayRepo) Store(ctx context.Context, holiday Holiday) (Holiday, error) {
	if s.failing {
		return Holiday{}, errors.New("stub failure")
	}
	holiday.Id = s.nextId
	s.nextId++
	s.holidays[holiday.Date.Format("2006-01-02")] = holiday
	return holiday, nil
}

func (s *stubHolidayRepo) ListBetween(ctx context.Context, from time.Time, to time.Time) ([]Holiday, error) {
	if s.failing {
		return nil, errors.New("stub failure")
	}
	var result []Holiday
	for _, holiday := range s.holidays {
		if !holiday.Date.Before(from) && !holiday.Date.After(to) {
			result = append(result, holiday)
		}
	}
	return result, nil
}

func (s *stubHolidayRepo) Delete(ctx context.Context, uid string) (bool, error) {
	if s.failing {
		return false, errors.New("stub failure")
	}
	for key, holiday := range s.holidays {
		if holiday.Uid == uid {
			delete(s.holidays, key)
			return true, nil
		}
	}
	return false, nil
}

func (s *stubHolidayRepo) reset() {
	s.holidays = map[string]Holiday{}
	s.failing = false
}
