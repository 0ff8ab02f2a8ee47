package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/edutrack/studentbook/internal/model"
	"github.com/edutrack/studentbook/internal/repository"
)

// StudentRepository is an in-memory implementation of
// repository.StudentRepository backing the `memory` store driver and the
// unit tests. It enforces the same semantics as the SQL backends: ids are
// assigned on insert and emails stay unique across records.
type StudentRepository struct {
	mu       sync.RWMutex
	students map[int64]model.Student
	nextID   int64
}

// NewStudentRepository creates an empty in-memory student repository.
func NewStudentRepository() *StudentRepository {
	return &StudentRepository{
		students: make(map[int64]model.Student),
		nextID:   1,
	}
}

// GetByID retrieves a student by primary key.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.students[id]
	if !ok {
		return nil, repository.ErrStudentNotFound
	}
	return &s, nil
}

// List retrieves all students ordered by id.
func (r *StudentRepository) List(ctx context.Context) ([]model.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(model.Student) bool { return true }), nil
}

// ListByAddress retrieves the students whose address matches addr exactly.
func (r *StudentRepository) ListByAddress(ctx context.Context, addr model.Address) ([]model.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(s model.Student) bool { return s.Address == addr }), nil
}

// ListByAgeBetween retrieves the students aged between lo and hi inclusive.
func (r *StudentRepository) ListByAgeBetween(ctx context.Context, lo, hi int) ([]model.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(s model.Student) bool { return s.Age >= lo && s.Age <= hi }), nil
}

// Save inserts the student when its id is zero and updates the existing
// record otherwise. On insert the generated id and timestamps are written
// back into s.
func (r *StudentRepository) Save(ctx context.Context, s *model.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ID == 0 {
		return r.insert(s)
	}
	return r.update(s)
}

func (r *StudentRepository) insert(s *model.Student) error {
	if r.emailTaken(s.Email, 0) {
		return repository.ErrDuplicateEmail
	}

	now := time.Now().UTC()
	s.ID = r.nextID
	s.CreatedAt = now
	s.UpdatedAt = now
	r.nextID++

	r.students[s.ID] = *s
	return nil
}

func (r *StudentRepository) update(s *model.Student) error {
	current, ok := r.students[s.ID]
	if !ok {
		return repository.ErrStudentNotFound
	}
	if r.emailTaken(s.Email, s.ID) {
		return repository.ErrDuplicateEmail
	}

	s.CreatedAt = current.CreatedAt
	s.UpdatedAt = time.Now().UTC()

	r.students[s.ID] = *s
	return nil
}

// emailTaken reports whether a record other than exclID holds email.
// Callers must hold the lock.
func (r *StudentRepository) emailTaken(email string, exclID int64) bool {
	for _, other := range r.students {
		if other.ID != exclID && other.Email == email {
			return true
		}
	}
	return false
}

// collect returns the students matching keep, ordered by id. Callers must
// hold the lock.
func (r *StudentRepository) collect(keep func(model.Student) bool) []model.Student {
	students := make([]model.Student, 0, len(r.students))
	for _, s := range r.students {
		if keep(s) {
			students = append(students, s)
		}
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students
}
