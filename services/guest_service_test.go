package services

import (
	"testing"

	"hotel-desk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func guestNames(guests []models.Guest) []string {
	out := make([]string, len(guests))
	for i, g := range guests {
		out[i] = g.FullName()
	}
	return out
}

func TestGuestSearch(t *testing.T) {
	svc := NewGuestService(newTestDB(t))

	tests := []struct {
		term     string
		expected []string
	}{
		{"", []string{"Алиса Иванова", "Виктор Кузнецов", "Борис Смирнов"}},
		{"alisa", []string{"Алиса Иванова"}},
		{"ИВАН", []string{"Алиса Иванова"}},
		{"smir", []string{"Борис Смирнов"}},
		{"viktor kuz", []string{"Виктор Кузнецов"}},
		{"nobody", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			guests, err := svc.Search(bg, tt.term)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, guestNames(guests))
		})
	}
}

func TestGuestCreateAndUpdate(t *testing.T) {
	svc := NewGuestService(newTestDB(t))

	g := &models.Guest{FirstName: " Dana ", LastName: "Scully", Email: "dana@fbi.gov"}
	require.NoError(t, svc.Create(bg, g))
	assert.NotZero(t, g.ID)
	assert.Equal(t, "Dana", g.FirstName)

	err := svc.Create(bg, &models.Guest{FirstName: "No", LastName: ""})
	assert.ErrorIs(t, err, ErrValidation)

	err = svc.Create(bg, &models.Guest{FirstName: "Bad", LastName: "Mail", Email: "not-an-email"})
	assert.ErrorIs(t, err, ErrValidation)

	updated, err := svc.Update(bg, g.ID, &models.Guest{FirstName: "Dana", LastName: "Scully", PhoneNumber: "+15550001"})
	require.NoError(t, err)
	assert.Equal(t, "+15550001", updated.PhoneNumber)
	assert.Empty(t, updated.Email)

	_, err = svc.Update(bg, 404, &models.Guest{FirstName: "A", LastName: "B"})
	assert.ErrorIs(t, err, ErrNotFound)
}
