package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestBuildUpdateQueryTitleOnly(t *testing.T) {
	query, args := buildUpdateQuery(7, PhotoUpdate{Title: strPtr("New Title")})

	assert.Equal(t,
		"UPDATE photos SET title = $1, updated_at = NOW() WHERE id = $2 RETURNING "+photoColumns,
		query)
	assert.Equal(t, []any{"New Title", int64(7)}, args)
}

func TestBuildUpdateQueryAllFields(t *testing.T) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	query, args := buildUpdateQuery(3, PhotoUpdate{
		Title:       strPtr("Dunes"),
		Description: strPtr("Late afternoon"),
		Location:    strPtr("Merzouga"),
		DateTaken:   &date,
	})

	assert.Equal(t,
		"UPDATE photos SET title = $1, description = $2, location = $3, date_taken = $4, updated_at = NOW() WHERE id = $5 RETURNING "+photoColumns,
		query)
	assert.Equal(t, []any{"Dunes", "Late afternoon", "Merzouga", date, int64(3)}, args)
}

func TestBuildUpdateQueryClearsNullableFields(t *testing.T) {
	query, args := buildUpdateQuery(9, PhotoUpdate{
		Description:    strPtr(""),
		Location:       strPtr(""),
		ClearDateTaken: true,
	})

	assert.Equal(t,
		"UPDATE photos SET description = NULL, location = NULL, date_taken = NULL, updated_at = NOW() WHERE id = $1 RETURNING "+photoColumns,
		query)
	assert.Equal(t, []any{int64(9)}, args)
}

func TestBuildUpdateQueryEmptyUpdateStillBumpsTimestamp(t *testing.T) {
	query, args := buildUpdateQuery(1, PhotoUpdate{})

	assert.Equal(t,
		"UPDATE photos SET updated_at = NOW() WHERE id = $1 RETURNING "+photoColumns,
		query)
	assert.Equal(t, []any{int64(1)}, args)
}

func TestPhotoUpdateEmpty(t *testing.T) {
	assert.True(t, PhotoUpdate{}.Empty())
	assert.False(t, PhotoUpdate{Title: strPtr("x")}.Empty())
	assert.False(t, PhotoUpdate{ClearDateTaken: true}.Empty())
}
