package google

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lexload/lexload/pkg/workhours"
	log "github.com/sirupsen/logrus"
)

// HolidayImporter copies all-day events from a Google calendar into the
// office holiday table.
type HolidayImporter struct {
	service    Service
	repo       workhours.HolidayRepo
	calculator interface{ Invalidate() }
}

func NewHolidayImporter(service Service, repo workhours.HolidayRepo, calculator interface{ Invalidate() }) *HolidayImporter {
	return &HolidayImporter{service: service, repo: repo, calculator: calculator}
}

// ImportYear imports every all-day event of the given year as a holiday and
// returns the number of imported days. Existing holidays on the same date are
// overwritten.
func (i *HolidayImporter) ImportYear(ctx context.Context, calendarId string, year int) (int, error) {
	events, err := i.service.ListAllDayEvents(ctx, calendarId, year)
	if err != nil {
		return 0, fmt.Errorf("failed to list calendar events: %w", err)
	}

	imported := 0
	for _, event := range events {
		date, err := time.ParseInLocation("2006-01-02", event.Date, time.Local)
		if err != nil {
			log.Warnf("skipping calendar event with invalid date %q: %v", event.Date, err)
			continue
		}
		_, err = i.repo.Store(ctx, workhours.Holiday{
			Uid:  uuid.New().String(),
			Date: date,
			Name: event.Summary,
		})
		if err != nil {
			return imported, fmt.Errorf("failed to store imported holiday: %w", err)
		}
		imported++
	}

	if imported > 0 && i.calculator != nil {
		i.calculator.Invalidate()
	}
	log.Infof("Imported %d holidays from Google calendar %s for year %d", imported, calendarId, year)
	return imported, nil
}
