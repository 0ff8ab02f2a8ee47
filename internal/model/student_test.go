package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStudent() Student {
	return Student{
		Name:   "Asha Rao",
		Age:    19,
		Email:  "asha.rao@example.com",
		Mobile: "9876543210",
		Gender: GenderFemale,
		DOB:    time.Date(2006, time.April, 12, 0, 0, 0, 0, time.UTC),
		Address: Address{
			Pincode: "560001",
			State:   "Karnataka",
			City:    "Bengaluru",
		},
	}
}

func TestStudentValidate(t *testing.T) {
	s := validStudent()
	require.NoError(t, s.Validate())
}

func TestStudentValidateViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Student)
		field  string
	}{
		{"blank name", func(s *Student) { s.Name = "   " }, "name"},
		{"name too short", func(s *Student) { s.Name = "Al" }, "name"},
		{"name too long", func(s *Student) { s.Name = "Padmanabhan" }, "name"},
		{"under minimum age", func(s *Student) { s.Age = 12 }, "age"},
		{"email missing at sign", func(s *Student) { s.Email = "asha.example.com" }, "email"},
		{"email missing domain", func(s *Student) { s.Email = "asha@" }, "email"},
		{"email bare tld", func(s *Student) { s.Email = "asha@example" }, "email"},
		{"mobile too short", func(s *Student) { s.Mobile = "987654321" }, "mobile"},
		{"mobile bad prefix", func(s *Student) { s.Mobile = "1876543210" }, "mobile"},
		{"mobile non-numeric", func(s *Student) { s.Mobile = "98765x3210" }, "mobile"},
		{"pincode too short", func(s *Student) { s.Address.Pincode = "56001" }, "pincode"},
		{"pincode non-numeric", func(s *Student) { s.Address.Pincode = "5600a1" }, "pincode"},
		{"unknown gender", func(s *Student) { s.Gender = "OTHER" }, "gender"},
		{"empty gender", func(s *Student) { s.Gender = "" }, "gender"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validStudent()
			tt.mutate(&s)

			err := s.Validate()
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			require.Len(t, verr.Violations, 1)
			assert.Equal(t, tt.field, verr.Violations[0].Field)
		})
	}
}

func TestStudentValidateCollectsAllViolations(t *testing.T) {
	s := validStudent()
	s.Name = "Al"
	s.Age = 10
	s.Mobile = "12345"

	err := s.Validate()
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Violations, 3)

	fields := verr.Fields()
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "age")
	assert.Contains(t, fields, "mobile")
	assert.Contains(t, verr.Error(), "name")
}

func TestGenderValid(t *testing.T) {
	assert.True(t, GenderMale.Valid())
	assert.True(t, GenderFemale.Valid())
	assert.False(t, Gender("male").Valid())
	assert.False(t, Gender("").Valid())
}

func TestStudentSummary(t *testing.T) {
	s := validStudent()
	s.ID = 42

	got := s.Summary()

	assert.Equal(t, StudentSummary{
		Name:    "Asha Rao",
		Address: s.Address,
		Age:     19,
	}, got)
}

func TestAddressRequestAddress(t *testing.T) {
	req := AddressRequest{Pincode: "110001", State: "Delhi", City: "New Delhi"}

	assert.Equal(t, Address{Pincode: "110001", State: "Delhi", City: "New Delhi"}, req.Address())
}
