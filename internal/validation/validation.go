package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var timeOfDayRegex = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

var dateLayouts = []string{time.DateOnly, time.RFC3339}

// RequiredFields returns the names whose value in record is blank, in the
// order they were given.
func RequiredFields(record map[string]string, names []string) []string {
	missing := []string{}
	for _, name := range names {
		if strings.TrimSpace(record[name]) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// ParseDate parses value as YYYY-MM-DD or an RFC 3339 timestamp and returns the
// calendar date at UTC midnight.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

func IsDate(value string) bool {
	_, err := ParseDate(value)
	return err == nil
}

// IsTimeOfDay accepts 24-hour H:mm or HH:mm.
func IsTimeOfDay(value string) bool {
	return timeOfDayRegex.MatchString(value)
}

// IsTimeOrdered reports whether end is strictly later than start on the same
// day. Malformed input is never ordered.
func IsTimeOrdered(start, end string) bool {
	startHour, startMinute, ok := splitTime(start)
	if !ok {
		return false
	}
	endHour, endMinute, ok := splitTime(end)
	if !ok {
		return false
	}
	if endHour != startHour {
		return endHour > startHour
	}
	return endMinute > startMinute
}

func splitTime(value string) (int, int, bool) {
	if !IsTimeOfDay(value) {
		return 0, 0, false
	}
	hh, mm, _ := strings.Cut(value, ":")
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return 0, 0, false
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return 0, 0, false
	}
	return hour, minute, true
}

// New returns a validator with the timeofday and calendardate tags
// registered. Field errors are named after the json tag.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("timeofday", func(fl validator.FieldLevel) bool {
		return IsTimeOfDay(fl.Field().String())
	})
	_ = v.RegisterValidation("calendardate", func(fl validator.FieldLevel) bool {
		return IsDate(fl.Field().String())
	})
	return v
}
