package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/bmartin2011/Fetterman-s-sub000/internal/domain"
)

// Availability is the outcome of evaluating a category's ordering windows at
// one instant.
type Availability struct {
	IsAvailable       bool                       `json:"is_available"`
	CurrentPeriod     *domain.AvailabilityPeriod `json:"current_period,omitempty"`
	NextAvailableTime *time.Time                 `json:"next_available_time,omitempty"`
	Reason            string                     `json:"reason,omitempty"`
}

// forecastHorizonDays bounds the forward scan for the next opening.
const forecastHorizonDays = 7

// EvaluateAvailability reports whether a category is orderable at now. It is
// a pure function: now is always passed in by the caller, never read from an
// ambient clock, so evaluation is deterministic and reproducible in tests.
// A category with no availability periods is always available. A period
// whose end time is earlier than its start time crosses midnight.
func EvaluateAvailability(category domain.Category, now time.Time) Availability {
	if len(category.AvailabilityPeriods) == 0 {
		return Availability{IsAvailable: true}
	}

	for i, period := range category.AvailabilityPeriods {
		if !matchesDay(period.DayOfWeek, now.Weekday()) {
			continue
		}
		if inPeriod(period, secondsOfDay(now)) {
			return Availability{
				IsAvailable:   true,
				CurrentPeriod: &category.AvailabilityPeriods[i],
			}
		}
	}

	if next := nextOpening(category.AvailabilityPeriods, now); next != nil {
		return Availability{
			IsAvailable:       false,
			NextAvailableTime: next,
			Reason:            fmt.Sprintf("available again %s at %s", next.Weekday(), next.Format("15:04")),
		}
	}

	return Availability{
		IsAvailable: false,
		Reason:      "not available in the next 7 days",
	}
}

func matchesDay(dayOfWeek string, weekday time.Weekday) bool {
	if dayOfWeek == "" {
		return true
	}
	return strings.EqualFold(dayOfWeek, weekday.String())
}

// inPeriod tests a time of day (seconds since midnight) against a window,
// wrapping across midnight when the window's end precedes its start.
func inPeriod(period domain.AvailabilityPeriod, sec int) bool {
	start, err := parseTimeOfDay(period.StartTime)
	if err != nil {
		return false
	}
	end, err := parseTimeOfDay(period.EndTime)
	if err != nil {
		return false
	}

	if end < start {
		return sec >= start || sec <= end
	}
	return sec >= start && sec <= end
}

// nextOpening scans forward up to forecastHorizonDays for the earliest future
// window start. Day 0 only considers starts strictly after now.
func nextOpening(periods []domain.AvailabilityPeriod, now time.Time) *time.Time {
	nowSec := secondsOfDay(now)

	for dayOffset := 0; dayOffset <= forecastHorizonDays; dayOffset++ {
		day := now.AddDate(0, 0, dayOffset)

		earliest := -1
		for _, period := range periods {
			if !matchesDay(period.DayOfWeek, day.Weekday()) {
				continue
			}
			start, err := parseTimeOfDay(period.StartTime)
			if err != nil {
				continue
			}
			if dayOffset == 0 && start <= nowSec {
				continue
			}
			if earliest == -1 || start < earliest {
				earliest = start
			}
		}

		if earliest >= 0 {
			next := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location()).
				Add(time.Duration(earliest) * time.Second)
			return &next
		}
	}

	return nil
}

// parseTimeOfDay converts "HH:MM:SS" (or "HH:MM") to seconds since midnight.
func parseTimeOfDay(value string) (int, error) {
	t, err := time.Parse("15:04:05", value)
	if err != nil {
		t, err = time.Parse("15:04", value)
		if err != nil {
			return 0, fmt.Errorf("invalid time of day %q: %w", value, err)
		}
	}
	return t.Hour()*3600 + t.Minute()*60 + t.Second(), nil
}

func secondsOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}
