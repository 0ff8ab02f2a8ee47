package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/edutrack/studentbook/internal/model"
	"github.com/edutrack/studentbook/internal/repository"
)

// ErrEmailMismatch is returned by UpdateStudentEmail when the caller's
// oldEmail does not match the stored address. The record is left
// untouched.
var ErrEmailMismatch = errors.New("old email does not match")

// StudentService implements the business operations over the student
// store. It validates records before every write and is agnostic to the
// store backend behind the repository interface.
type StudentService struct {
	repo   repository.StudentRepository
	logger zerolog.Logger
}

// NewStudentService creates a new student service.
func NewStudentService(repo repository.StudentRepository, logger zerolog.Logger) *StudentService {
	return &StudentService{
		repo:   repo,
		logger: logger.With().Str("component", "student_service").Logger(),
	}
}

// CreateStudent validates and inserts a new student. The store assigns
// the id and timestamps.
func (s *StudentService) CreateStudent(ctx context.Context, student *model.Student) error {
	if err := student.Validate(); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, student); err != nil {
		return err
	}

	s.logger.Info().Int64("student_id", student.ID).Msg("Student created")
	return nil
}

// GetStudentByID retrieves a single student.
func (s *StudentService) GetStudentByID(ctx context.Context, id int64) (*model.Student, error) {
	return s.repo.GetByID(ctx, id)
}

// ListStudents retrieves every student, ordered by id.
func (s *StudentService) ListStudents(ctx context.Context) ([]model.Student, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = []model.Student{}
	}
	return students, nil
}

// ListStudentsByAddress retrieves the students whose address matches addr
// exactly on pincode, state and city.
func (s *StudentService) ListStudentsByAddress(ctx context.Context, addr model.Address) ([]model.Student, error) {
	students, err := s.repo.ListByAddress(ctx, addr)
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = []model.Student{}
	}
	return students, nil
}

// ListStudentsBetweenAge retrieves the students aged between lo and hi,
// inclusive on both ends.
func (s *StudentService) ListStudentsBetweenAge(ctx context.Context, lo, hi int) ([]model.Student, error) {
	students, err := s.repo.ListByAgeBetween(ctx, lo, hi)
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = []model.Student{}
	}
	return students, nil
}

// UpdateStudentEmail replaces a student's email after checking that the
// caller still holds the current one. A mismatch fails with
// ErrEmailMismatch and nothing is written.
func (s *StudentService) UpdateStudentEmail(ctx context.Context, id int64, oldEmail, newEmail string) (*model.Student, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student.Email != oldEmail {
		return nil, ErrEmailMismatch
	}

	student.Email = newEmail
	if err := student.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("student_id", id).Msg("Student email updated")
	return student, nil
}

// UpdateStudentAddress replaces a student's embedded address wholesale.
func (s *StudentService) UpdateStudentAddress(ctx context.Context, id int64, addr model.Address) (*model.Student, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	student.Address = addr
	if err := student.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("student_id", id).Msg("Student address updated")
	return student, nil
}

// ListStudentSummaries projects every student onto the name/address/age
// summary view, in id order.
func (s *StudentService) ListStudentSummaries(ctx context.Context) ([]model.StudentSummary, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.StudentSummary, len(students))
	for i, student := range students {
		summaries[i] = student.Summary()
	}
	return summaries, nil
}
