package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateEntry(t *testing.T) {
	dup := errors.New("Error 1062 (23000): Duplicate entry '7-2024-03-04' for key 'bookings.uniq_bookings_room_week'")
	assert.True(t, isDuplicateEntry(dup))

	assert.False(t, isDuplicateEntry(nil))
	assert.False(t, isDuplicateEntry(errors.New("Error 1452 (23000): Cannot add or update a child row")))
	assert.False(t, isDuplicateEntry(errors.New("connection refused")))
}

func TestIsForeignKeyViolation(t *testing.T) {
	fk := errors.New("Error 1452 (23000): Cannot add or update a child row: a foreign key constraint fails (`rooms`.`bookings`, CONSTRAINT `fk_bookings_room`)")
	assert.True(t, isForeignKeyViolation(fk))

	assert.False(t, isForeignKeyViolation(nil))
	assert.False(t, isForeignKeyViolation(errors.New("Error 1062 (23000): Duplicate entry")))
}
