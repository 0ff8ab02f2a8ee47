package repository

import (
	"context"
	"errors"

	"github.com/edutrack/studentbook/internal/model"
)

var (
	// ErrStudentNotFound is returned when no record matches the
	// requested id.
	ErrStudentNotFound = errors.New("student not found")

	// ErrDuplicateEmail is returned when a write would leave two
	// students holding the same email address.
	ErrDuplicateEmail = errors.New("student with this email already exists")
)

// StudentRepository is the storage contract for student records. Every
// backend (postgres, sqlite, memory) satisfies it and maps its native
// failures onto the shared sentinel errors, so callers depend only on
// this interface and never on a concrete driver.
//
// All list operations return records ordered by id ascending.
type StudentRepository interface {
	// GetByID retrieves a student by primary key.
	GetByID(ctx context.Context, id int64) (*model.Student, error)

	// List retrieves every student.
	List(ctx context.Context) ([]model.Student, error)

	// ListByAddress retrieves the students whose address matches addr
	// exactly on pincode, state and city.
	ListByAddress(ctx context.Context, addr model.Address) ([]model.Student, error)

	// ListByAgeBetween retrieves the students aged between lo and hi,
	// inclusive on both ends.
	ListByAgeBetween(ctx context.Context, lo, hi int) ([]model.Student, error)

	// Save inserts s when s.ID is zero, assigning the generated id and
	// timestamps in place, and updates the existing record otherwise.
	Save(ctx context.Context, s *model.Student) error
}
