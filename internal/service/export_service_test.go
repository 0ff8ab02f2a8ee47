package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/edutrack/studentbook/internal/repository/memory"
)

func TestRosterXLSX(t *testing.T) {
	repo := memory.NewStudentRepository()
	students := NewStudentService(repo, zerolog.Nop())
	exports := NewExportService(repo, zerolog.Nop())
	ctx := context.Background()

	first := newStudent("Asha", "asha@example.com", 19)
	require.NoError(t, students.CreateStudent(ctx, &first))
	second := newStudent("Ravi", "ravi@example.com", 21)
	require.NoError(t, students.CreateStudent(ctx, &second))

	data, err := exports.RosterXLSX(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Students")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "Name", rows[0][1])

	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "Asha", rows[1][1])
	assert.Equal(t, "asha@example.com", rows[1][3])
	assert.Equal(t, "2005-06-01", rows[1][6])
	assert.Equal(t, "560001", rows[1][7])

	assert.Equal(t, "Ravi", rows[2][1])
}

func TestRosterXLSXEmpty(t *testing.T) {
	repo := memory.NewStudentRepository()
	exports := NewExportService(repo, zerolog.Nop())

	data, err := exports.RosterXLSX(context.Background())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Students")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
