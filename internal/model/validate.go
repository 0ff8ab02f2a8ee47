package model

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinimumAge is the youngest age a student record may carry.
const MinimumAge = 13

var (
	emailPattern   = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)
	mobilePattern  = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	pincodePattern = regexp.MustCompile(`^[0-9]{6}$`)
)

// FieldViolation describes a single field that failed validation.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every field violation found in a candidate
// record. Checks run independently so one error never masks another.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	fields := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		fields[i] = v.Field
	}
	return "validation failed: " + strings.Join(fields, ", ")
}

// Fields returns the violations as a field to message map, the shape the
// HTTP layer reports them in.
func (e *ValidationError) Fields() map[string]string {
	out := make(map[string]string, len(e.Violations))
	for _, v := range e.Violations {
		out[v.Field] = v.Message
	}
	return out
}

// Validate checks the record against the write-time validation contract
// and returns a *ValidationError listing every violated field, or nil.
// It is a pure function of the candidate data; email uniqueness is a
// store concern and is enforced separately at write time.
func (s *Student) Validate() error {
	var violations []FieldViolation

	add := func(field, message string) {
		violations = append(violations, FieldViolation{Field: field, Message: message})
	}

	name := strings.TrimSpace(s.Name)
	if n := utf8.RuneCountInString(name); name == "" || n < 3 || n > 10 {
		add("name", "must be 3 to 10 characters")
	}
	if s.Age < MinimumAge {
		add("age", fmt.Sprintf("must be at least %d", MinimumAge))
	}
	if !emailPattern.MatchString(s.Email) {
		add("email", "must be a valid email address")
	}
	if !mobilePattern.MatchString(s.Mobile) {
		add("mobile", "must be a 10-digit number starting with 6-9")
	}
	if !pincodePattern.MatchString(s.Address.Pincode) {
		add("pincode", "must be exactly 6 digits")
	}
	if !s.Gender.Valid() {
		add("gender", "must be MALE or FEMALE")
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}
