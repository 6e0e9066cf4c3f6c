package services

import (
	"context"
	"testing"
	"time"

	"hotel-desk/config"
	"hotel-desk/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testNow is noon on the seeded "today".
var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return DateOnly(testNow).AddDate(0, 0, offset)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	log := zerolog.Nop()
	db, err := config.OpenDatabase("sqlite", ":memory:", "silent", &log)
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	require.NoError(t, config.SeedDatabase(db, testNow, &log))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newTestBookingService(t *testing.T) (*BookingService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	log := zerolog.Nop()
	svc := NewBookingService(db, &log)
	svc.SetClock(func() time.Time { return testNow })
	return svc, db
}

func roomStatus(t *testing.T, db *gorm.DB, id uint) models.RoomStatus {
	t.Helper()
	var room models.Room
	require.NoError(t, db.First(&room, id).Error)
	return room.Status
}

func roomNumbers(rooms []models.Room) []string {
	out := make([]string, len(rooms))
	for i, r := range rooms {
		out[i] = r.RoomNumber
	}
	return out
}

var bg = context.Background()
