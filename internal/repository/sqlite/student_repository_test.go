package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutrack/studentbook/internal/model"
	"github.com/edutrack/studentbook/internal/repository"
)

// newTestRepo opens an in-memory database. The single connection matters:
// each new connection would see a fresh empty :memory: database.
func newTestRepo(t *testing.T) *StudentRepository {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	repo := NewStudentRepository(db)
	require.NoError(t, repo.EnsureSchema(context.Background()))
	return repo
}

func newStudent(name, email string, age int) model.Student {
	return model.Student{
		Name:   name,
		Age:    age,
		Email:  email,
		Mobile: "9876543210",
		Gender: model.GenderFemale,
		DOB:    time.Date(2005, time.June, 1, 0, 0, 0, 0, time.UTC),
		Address: model.Address{
			Pincode: "560001",
			State:   "Karnataka",
			City:    "Bengaluru",
		},
	}
}

func TestEnsureSchemaIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.EnsureSchema(context.Background()))
}

func TestSaveGetRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	want := newStudent("Asha", "asha@example.com", 19)
	require.NoError(t, repo.Save(ctx, &want))
	assert.EqualValues(t, 1, want.ID)
	assert.False(t, want.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, want.ID)
	require.NoError(t, err)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Age, got.Age)
	assert.Equal(t, want.Email, got.Email)
	assert.Equal(t, want.Mobile, got.Mobile)
	assert.Equal(t, want.Gender, got.Gender)
	assert.Equal(t, want.Address, got.Address)
	assert.WithinDuration(t, want.DOB, got.DOB, time.Second)
	assert.WithinDuration(t, want.CreatedAt, got.CreatedAt, time.Second)
}

func TestGetByIDNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, repository.ErrStudentNotFound)
}

func TestSaveInsertDuplicateEmail(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := newStudent("Asha", "shared@example.com", 19)
	require.NoError(t, repo.Save(ctx, &first))

	second := newStudent("Ravi", "shared@example.com", 21)
	err := repo.Save(ctx, &second)
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestSaveUpdate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	s := newStudent("Asha", "asha@example.com", 19)
	require.NoError(t, repo.Save(ctx, &s))

	s.Email = "asha.rao@example.com"
	s.Address.City = "Mysuru"
	require.NoError(t, repo.Save(ctx, &s))

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "asha.rao@example.com", got.Email)
	assert.Equal(t, "Mysuru", got.Address.City)
}

func TestSaveUpdateNotFound(t *testing.T) {
	repo := newTestRepo(t)

	s := newStudent("Ghost", "ghost@example.com", 30)
	s.ID = 404
	err := repo.Save(context.Background(), &s)
	assert.ErrorIs(t, err, repository.ErrStudentNotFound)
}

func TestSaveUpdateDuplicateEmail(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := newStudent("Asha", "asha@example.com", 19)
	require.NoError(t, repo.Save(ctx, &first))
	second := newStudent("Ravi", "ravi@example.com", 21)
	require.NoError(t, repo.Save(ctx, &second))

	second.Email = "asha@example.com"
	err := repo.Save(ctx, &second)
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestListOrderedByID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, name := range []string{"Asha", "Ravi", "Meera"} {
		s := newStudent(name, name+"@example.com", 19)
		require.NoError(t, repo.Save(ctx, &s))
	}

	students, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, students, 3)
	assert.Equal(t, "Asha", students[0].Name)
	assert.Equal(t, "Ravi", students[1].Name)
	assert.Equal(t, "Meera", students[2].Name)
}

func TestListByAddressExactMatch(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	inTown := newStudent("Asha", "asha@example.com", 19)
	require.NoError(t, repo.Save(ctx, &inTown))

	elsewhere := newStudent("Ravi", "ravi@example.com", 21)
	elsewhere.Address.Pincode = "570001"
	elsewhere.Address.City = "Mysuru"
	require.NoError(t, repo.Save(ctx, &elsewhere))

	students, err := repo.ListByAddress(ctx, inTown.Address)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Asha", students[0].Name)
}

func TestListByAgeBetweenInclusive(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i, age := range []int{13, 18, 25, 26} {
		s := newStudent("Student", string(rune('a'+i))+"@example.com", age)
		require.NoError(t, repo.Save(ctx, &s))
	}

	students, err := repo.ListByAgeBetween(ctx, 18, 25)
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, 18, students[0].Age)
	assert.Equal(t, 25, students[1].Age)
}

func TestListQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("disk I/O error")
	mock.ExpectQuery("SELECT (.+) FROM students").WillReturnError(boom)

	repo := NewStudentRepository(db)
	_, err = repo.List(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDDriverErrorPassesThrough(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("database is locked")
	mock.ExpectQuery("SELECT (.+) FROM students WHERE id").WillReturnError(boom)

	repo := NewStudentRepository(db)
	_, err = repo.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, repository.ErrStudentNotFound)
}

func TestSaveTranslatesUniqueConstraint(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	uniqueErr := sqlite3.Error{
		Code:         sqlite3.ErrConstraint,
		ExtendedCode: sqlite3.ErrConstraintUnique,
	}
	mock.ExpectExec("INSERT INTO students").WillReturnError(uniqueErr)

	repo := NewStudentRepository(db)
	s := newStudent("Asha", "asha@example.com", 19)
	err = repo.Save(context.Background(), &s)
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestSaveUpdateNoRowsAffected(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE students").WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewStudentRepository(db)
	s := newStudent("Ghost", "ghost@example.com", 30)
	s.ID = 404
	err = repo.Save(context.Background(), &s)
	assert.ErrorIs(t, err, repository.ErrStudentNotFound)
}
