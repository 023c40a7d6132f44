package attendance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultComment is stored when the caller supplies no comment.
const DefaultComment = "N/A"

// Policy is the injected attendance classification configuration.
type Policy struct {
	// ArrivalTime is the expected arrival cutoff, HH:MM, applied on the
	// event's UTC calendar date.
	ArrivalTime string

	// StandardWorkHours is the nominal workday length used to classify
	// departures as PRETIME or OVERTIME.
	StandardWorkHours decimal.Decimal
}

// ArrivalCutoff resolves the cutoff instant for a given calendar date.
func (p Policy) ArrivalCutoff(date string) (time.Time, error) {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	clock, err := time.Parse("15:04", p.ArrivalTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid arrival time %q: %w", p.ArrivalTime, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC), nil
}

// ClassifyArrival returns LATE when the event falls after the cutoff on its
// own calendar date, ONTIME otherwise (arriving exactly at the cutoff is on time).
func (p Policy) ClassifyArrival(at time.Time) (Status, error) {
	cutoff, err := p.ArrivalCutoff(at.UTC().Format(DateLayout))
	if err != nil {
		return "", err
	}
	if at.UTC().After(cutoff) {
		return StatusLate, nil
	}
	return StatusOnTime, nil
}

// ClassifyDeparture finalizes the status once active hours are known.
// Working exactly the standard hours keeps the arrival classification.
func (p Policy) ClassifyDeparture(arrival Status, activeHours decimal.Decimal) Status {
	switch {
	case activeHours.LessThan(p.StandardWorkHours):
		return StatusPretime
	case activeHours.GreaterThan(p.StandardWorkHours):
		return StatusOvertime
	default:
		return arrival
	}
}

// ActiveHours computes the departure-entry span in hours, rounded to two
// decimal places.
func ActiveHours(entry, depart time.Time) decimal.Decimal {
	hours := depart.Sub(entry).Hours()
	return decimal.NewFromFloat(hours).Round(2)
}
