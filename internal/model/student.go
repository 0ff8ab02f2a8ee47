package model

import "time"

// Gender is the student's registered gender.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// Valid reports whether g is one of the enumerated genders.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Address is the postal address embedded in a student record. It has no
// identity of its own: it lives inside the student row and is copied by
// value, never shared between students.
type Address struct {
	Pincode string `json:"pincode"`
	State   string `json:"state"`
	City    string `json:"city"`
}

// Student is a registered student record. The id is assigned by the
// storage layer on insert and never changes afterwards.
type Student struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   Address   `json:"address"`
	Age       int       `json:"age"`
	Email     string    `json:"email"`
	Mobile    string    `json:"mobile"`
	Gender    Gender    `json:"gender"`
	DOB       time.Time `json:"dob"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StudentSummary is the read-only name/address/age view of a student.
// It is recomputed on every query and never persisted.
type StudentSummary struct {
	Name    string  `json:"name"`
	Address Address `json:"address"`
	Age     int     `json:"age"`
}

// Summary projects the student onto its summary view.
func (s Student) Summary() StudentSummary {
	return StudentSummary{Name: s.Name, Address: s.Address, Age: s.Age}
}

// CreateStudentRequest is the payload for registering a new student.
type CreateStudentRequest struct {
	Name    string         `json:"name" binding:"required,min=3,max=10"`
	Address AddressRequest `json:"address" binding:"required"`
	Age     int            `json:"age" binding:"required,gte=13"`
	Email   string         `json:"email" binding:"required,email"`
	Mobile  string         `json:"mobile" binding:"required,len=10,numeric"`
	Gender  Gender         `json:"gender" binding:"required,oneof=MALE FEMALE"`
	DOB     string         `json:"dob" binding:"required,datetime=2006-01-02"`
}

// AddressRequest carries a full postal address, used both as the
// by-address filter and as the replacement address on update.
type AddressRequest struct {
	Pincode string `json:"pincode" binding:"required,len=6,numeric"`
	State   string `json:"state" binding:"required"`
	City    string `json:"city" binding:"required"`
}

// Address converts the payload to the domain value.
func (r AddressRequest) Address() Address {
	return Address{Pincode: r.Pincode, State: r.State, City: r.City}
}
