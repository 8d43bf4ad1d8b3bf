package analytics

import (
	"fmt"
	"time"
)

// DefaultPeriod is used when no period is requested
const DefaultPeriod = "last_30_days"

const dayLayout = "2006-01-02"

// ParsePeriod resolves a named period to a UTC range relative to now.
// Ranges covering today end at the start of tomorrow.
func ParsePeriod(period string, now time.Time) (DateRange, error) {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)

	// Monday starts the week
	weekday := int(today.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	monday := today.AddDate(0, 0, -weekday+1)
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	switch period {
	case "today":
		return DateRange{Start: today, End: tomorrow}, nil
	case "yesterday":
		return DateRange{Start: today.AddDate(0, 0, -1), End: today}, nil
	case "this_week":
		return DateRange{Start: monday, End: tomorrow}, nil
	case "last_week":
		return DateRange{Start: monday.AddDate(0, 0, -7), End: monday}, nil
	case "this_month":
		return DateRange{Start: firstOfMonth, End: tomorrow}, nil
	case "last_month":
		return DateRange{Start: firstOfMonth.AddDate(0, -1, 0), End: firstOfMonth}, nil
	case "last_7_days":
		return DateRange{Start: today.AddDate(0, 0, -6), End: tomorrow}, nil
	case "", "last_30_days":
		return DateRange{Start: today.AddDate(0, 0, -29), End: tomorrow}, nil
	case "last_90_days":
		return DateRange{Start: today.AddDate(0, 0, -89), End: tomorrow}, nil
	case "this_year":
		return DateRange{Start: time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC), End: tomorrow}, nil
	}
	return DateRange{}, fmt.Errorf("unknown period %q", period)
}

// Days lists every calendar day in r as YYYY-MM-DD
func Days(r DateRange) []string {
	days := []string{}
	for day := r.Start; day.Before(r.End); day = day.AddDate(0, 0, 1) {
		days = append(days, day.Format(dayLayout))
	}
	return days
}
