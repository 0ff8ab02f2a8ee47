package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edutrack/studentbook/internal/model"
	"github.com/edutrack/studentbook/internal/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS students (
	id         BIGSERIAL PRIMARY KEY,
	name       TEXT NOT NULL,
	age        INTEGER NOT NULL,
	email      TEXT NOT NULL UNIQUE,
	mobile     TEXT NOT NULL,
	gender     TEXT NOT NULL,
	dob        DATE NOT NULL,
	pincode    TEXT NOT NULL,
	state      TEXT NOT NULL,
	city       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const studentColumns = "id, name, age, email, mobile, gender, dob, pincode, state, city, created_at, updated_at"

// StudentRepository is the PostgreSQL implementation of
// repository.StudentRepository, backed by a pgx connection pool.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new PostgreSQL student repository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

// EnsureSchema creates the students table if it does not exist yet. It is
// idempotent and safe to run on every startup.
func (r *StudentRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, schema)
	return err
}

// GetByID retrieves a student by primary key.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	s := &model.Student{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = $1`,
		id,
	).Scan(
		&s.ID, &s.Name, &s.Age, &s.Email, &s.Mobile, &s.Gender, &s.DOB,
		&s.Address.Pincode, &s.Address.State, &s.Address.City,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrStudentNotFound
		}
		return nil, err
	}
	return s, nil
}

// List retrieves all students ordered by id.
func (r *StudentRepository) List(ctx context.Context) ([]model.Student, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+studentColumns+` FROM students ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	return scanStudents(rows)
}

// ListByAddress retrieves the students whose address matches addr exactly.
func (r *StudentRepository) ListByAddress(ctx context.Context, addr model.Address) ([]model.Student, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+studentColumns+` FROM students
		 WHERE pincode = $1 AND state = $2 AND city = $3
		 ORDER BY id ASC`,
		addr.Pincode, addr.State, addr.City)
	if err != nil {
		return nil, err
	}
	return scanStudents(rows)
}

// ListByAgeBetween retrieves the students aged between lo and hi inclusive.
func (r *StudentRepository) ListByAgeBetween(ctx context.Context, lo, hi int) ([]model.Student, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+studentColumns+` FROM students
		 WHERE age BETWEEN $1 AND $2
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
	err := r.pool.QueryRow(ctx,
		`INSERT INTO students (name, age, email, mobile, gender, dob, pincode, state, city)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		s.Name, s.Age, s.Email, s.Mobile, s.Gender, s.DOB,
		s.Address.Pincode, s.Address.State, s.Address.City,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	return translateErr(err)
}

func (r *StudentRepository) update(ctx context.Context, s *model.Student) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE students
		 SET name = $1, age = $2, email = $3, mobile = $4, gender = $5, dob = $6,
		     pincode = $7, state = $8, city = $9, updated_at = NOW()
		 WHERE id = $10
		 RETURNING updated_at`,
		s.Name, s.Age, s.Email, s.Mobile, s.Gender, s.DOB,
		s.Address.Pincode, s.Address.State, s.Address.City, s.ID,
	).Scan(&s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrStudentNotFound
	}
	return translateErr(err)
}

func scanStudents(rows pgx.Rows) ([]model.Student, error) {
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
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return repository.ErrDuplicateEmail
	}
	return err
}
