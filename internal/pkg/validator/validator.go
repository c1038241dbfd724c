package validator

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// Required appends a "<field> is required" error when value is blank.
func (v *ValidationErrors) Required(field, value string) bool {
	if IsEmpty(value) {
		*v = append(*v, ValidationError{Field: field, Message: field + " is required"})
		return false
	}
	return true
}

// Add appends an error for field.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// MaxLength appends an error when value holds more than limit characters.
// Characters are counted as runes to match VARCHAR(n) columns.
func (v *ValidationErrors) MaxLength(field, value string, limit int) bool {
	if utf8.RuneCountInString(value) > limit {
		*v = append(*v, ValidationError{Field: field, Message: fmt.Sprintf("%s must not exceed %d characters", lastSegment(field), limit)})
		return false
	}
	return true
}

// lastSegment strips an indexed prefix such as "lines[0]." from field.
func lastSegment(field string) string {
	if i := strings.LastIndex(field, "."); i >= 0 {
		return field[i+1:]
	}
	return field
}

// OrNil returns v as an error, or nil when empty.
func (v ValidationErrors) OrNil() error {
	if len(v) > 0 {
		return v
	}
	return nil
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsBlank reports whether p is nil or points at a blank string.
func IsBlank(p *string) bool {
	return p == nil || IsEmpty(*p)
}

// UUIDv7 regex: version 7 (the 15th character must be '7'), all lowercase hex digits.
var uuidv7Regex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// UUIDv7 validation
func IsValidUUID(uuid string) bool {
	return uuidv7Regex.MatchString(strings.ToLower(uuid))
}

var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// IsValidYearMonth checks a six-digit YYYYMM key.
func IsValidYearMonth(ym string) (time.Time, bool) {
	if len(ym) != 6 || !IsNumeric(ym) {
		return time.Time{}, false
	}
	t, err := time.Parse("200601", ym)
	return t, err == nil
}

var clockRegex = regexp.MustCompile(`^([0-3]?[0-9]|4[0-7]):[0-5][0-9]$`)

// IsValidClock accepts HH:MM where hours run past midnight up to 47.
func IsValidClock(s string) bool {
	return clockRegex.MatchString(s)
}

// Employee codes are 1-20 ASCII letters or digits.
var employeeIDRegex = regexp.MustCompile(`^[A-Za-z0-9]{1,20}$`)

func IsValidEmployeeID(id string) bool {
	return employeeIDRegex.MatchString(id)
}
