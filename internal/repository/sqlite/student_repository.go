package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/edutrack/studentbook/internal/model"
	"github.com/edutrack/studentbook/internal/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS students (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	age        INTEGER NOT NULL,
	email      TEXT NOT NULL UNIQUE,
	mobile     TEXT NOT NULL,
	gender     TEXT NOT NULL,
	dob        DATE NOT NULL,
	pincode    TEXT NOT NULL,
	state      TEXT NOT NULL,
	city       TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
)`

const studentColumns = "id, name, age, email, mobile, gender, dob, pincode, state, city, created_at, updated_at"

// StudentRepository is the SQLite implementation of
// repository.StudentRepository. It targets single-node deployments and
// tests; timestamps are assigned in Go rather than by the database.
type StudentRepository struct {
	db *sql.DB
}

// NewStudentRepository creates a new SQLite student repository.
func NewStudentRepository(db *sql.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// EnsureSchema creates the students table if it does not exist yet. It is
// idempotent and safe to run on every startup.
func (r *StudentRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

// GetByID retrieves a student by primary key.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = ?`, id)

	s := &model.Student{}
	err := row.Scan(
		&s.ID, &s.Name, &s.Age, &s.Email, &s.Mobile, &s.Gender, &s.DOB,
		&s.Address.Pincode, &s.Address.State, &s.Address.City,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrStudentNotFound
		}
		return nil, err
	}
	return s, nil
}

// List retrieves all students ordered by id.
func (r *StudentRepository) List(ctx context.Context) ([]model.Student, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+studentColumns+` FROM students ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	return scanStudents(rows)
}

// ListByAddress retrieves the students whose address matches addr exactly.
func (r *StudentRepository) ListByAddress(ctx context.Context, addr model.Address) ([]model.Student, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+studentColumns+` FROM students
		 WHERE pincode = ? AND state = ? AND city = ?
		 ORDER BY id ASC`,
		addr.Pincode, addr.State, addr.City)
	if err != nil {
		return nil, err
	}
	return scanStudents(rows)
}

// ListByAgeBetween retrieves the students aged between lo and hi inclusive.
func (r *StudentRepository) ListByAgeBetween(ctx context.Context, lo, hi int) ([]model.Student, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+studentColumns+` FROM students
		 WHERE age BETWEEN ? AND ?
		 ORDER BY id ASC`,
		lo, hi)
	if err != nil {
		return nil, err
	}
	return scanStudents(rows)
}

// Save inserts the student when its id is zero and updates the existing
// row otherwise. On insert the generated id and timestamps are written
// back into s.
func (r *StudentRepository) Save(ctx context.Context, s *model.Student) error {
	if s.ID == 0 {
		return r.insert(ctx, s)
	}
	return r.update(ctx, s)
}

func (r *StudentRepository) insert(ctx context.Context, s *model.Student) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO students (name, age, email, mobile, gender, dob, pincode, state, city, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.Name, s.Age, s.Email, s.Mobile, string(s.Gender), s.DOB,
		s.Address.Pincode, s.Address.State, s.Address.City, now, now)
	if err != nil {
		return translateErr(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = id
	s.CreatedAt = now
	s.UpdatedAt = now
	return nil
}

func (r *StudentRepository) update(ctx context.Context, s *model.Student) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE students
		 SET name = ?, age = ?, email = ?, mobile = ?, gender = ?, dob = ?,
		     pincode = ?, state = ?, city = ?, updated_at = ?
		 WHERE id = ?`,
		s.Name, s.Age, s.Email, s.Mobile, string(s.Gender), s.DOB,
		s.Address.Pincode, s.Address.State, s.Address.City, now, s.ID)
	if err != nil {
		return translateErr(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrStudentNotFound
	}
	s.UpdatedAt = now
	return nil
}

func scanStudents(rows *sql.Rows) ([]model.Student, error) {
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Age, &s.Email, &s.Mobile, &s.Gender, &s.DOB,
			&s.Address.Pincode, &s.Address.State, &s.Address.City,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// translateErr maps driver errors onto the shared repository sentinels.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return repository.ErrDuplicateEmail
	}
	return err
}
