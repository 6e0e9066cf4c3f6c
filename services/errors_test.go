package services

import (
	"errors"
	"testing"

	"hotel-desk/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestDBError(t *testing.T) {
	assert.NoError(t, dbError("noop", nil))

	err := dbError("load room", gorm.ErrRecordNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "load room: not found", Reason(err))

	err = dbError("save", gorm.ErrDuplicatedKey)
	assert.ErrorIs(t, err, ErrConflict)

	boom := errors.New("disk on fire")
	err = dbError("save", boom)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.Equal(t, "save: disk on fire", Reason(err))
}

func TestValidateStruct(t *testing.T) {
	err := validateStruct(&models.Guest{FirstName: "Anna", LastName: "Petrova", Email: "not-an-email"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, Reason(err), "email")

	assert.NoError(t, validateStruct(&models.Guest{FirstName: "Anna", LastName: "Petrova"}))
}
