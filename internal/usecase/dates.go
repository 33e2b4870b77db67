package usecase

import (
	"strings"
	"time"

	"employee-management-backend/internal/model"
)

const dateLayout = "2006-01-02"

// parseDate parses a YYYY-MM-DD calendar date as midnight UTC.
func parseDate(field, value string) (time.Time, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, model.ErrValidation(field + " must be a date in YYYY-MM-DD format")
	}
	return d, nil
}

// optionalDate validates value when it is set.
func optionalDate(field, value string) error {
	if value == "" {
		return nil
	}
	_, err := parseDate(field, value)
	return err
}

// inclusiveDays counts calendar days from start to end, both included. Both
// must be UTC midnights as returned by parseDate.
func inclusiveDays(start, end time.Time) int {
	return int((end.Unix()-start.Unix())/secondsPerDay) + 1
}

const secondsPerDay = 24 * 60 * 60
