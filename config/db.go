package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"hotel-desk/models"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NowUTC is the gorm clock: UTC, whole seconds, so stored timestamps compare as text in SQLite.
func NowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "UTC")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func sqliteDSN(path string) string {
	if path == ":memory:" {
		return "file::memory:?_foreign_keys=on"
	}
	return path + "?_foreign_keys=on&_busy_timeout=5000"
}

// OpenDatabase opens the store named by driver without migrating it.
func OpenDatabase(driver, target, logLevel string, log *zerolog.Logger) (*gorm.DB, error) {
	gormLogger := logger.New(log, logger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  gormLogLevel(logLevel),
		IgnoreRecordNotFoundError: true,
	})
	gcfg := &gorm.Config{Logger: gormLogger, NowFunc: NowUTC}

	var dialector gorm.Dialector
	switch driver {
	case "mysql":
		dsn := target
		if strings.HasPrefix(target, "mysql://") {
			var err error
			if dsn, err = mysqlDSNFromURL(target); err != nil {
				return nil, err
			}
		}
		dialector = mysql.Open(dsn)
	case "sqlite", "":
		dialector = sqlite.Open(sqliteDSN(target))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if driver != "mysql" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// one writer at a time; also keeps an in-memory database alive
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Migrate creates the schema in parent->child order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.RoomCategory{},
		&models.Room{},
		&models.Guest{},
		&models.Service{},
		&models.User{},
		&models.Booking{},
		&models.BookedService{},
		&models.AuditEntry{},
	)
}

// ConnectDatabase opens, migrates and seeds the configured store.
func ConnectDatabase(cfg *Config, log *zerolog.Logger) (*gorm.DB, error) {
	target := cfg.Database.Path
	if cfg.Database.Driver == "mysql" {
		target = cfg.Database.MySQLURL
		if target == "" {
			return nil, fmt.Errorf("mysql driver selected but MYSQL_URL is empty")
		}
	}

	db, err := OpenDatabase(cfg.Database.Driver, target, cfg.Database.LogLevel, log)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := SeedDatabase(db, NowUTC(), log); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}

	return db, nil
}

func hashOrPanic(plain string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SeedDatabase fills an empty store with the starter data set. It does nothing
// once any room category exists. Booking dates are relative to now.
func SeedDatabase(db *gorm.DB, now time.Time, log *zerolog.Logger) error {
	var count int64
	if err := db.Model(&models.RoomCategory{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Debug().Msg("database already seeded")
		return nil
	}

	today := dateOnly(now)

	return db.Transaction(func(tx *gorm.DB) error {
		categories := []models.RoomCategory{
			{ID: 1, Name: "Standard", Description: "Standard room with a double bed", Capacity: 2, BasePricePerNight: 5000},
			{ID: 2, Name: "Suite", Description: "Suite with a living room", Capacity: 4, BasePricePerNight: 12000},
			{ID: 3, Name: "Economy", Description: "Single room", Capacity: 1, BasePricePerNight: 2000},
		}
		if err := tx.Create(&categories).Error; err != nil {
			return err
		}

		rooms := []models.Room{
			{ID: 1, RoomNumber: "101", Floor: 1, Status: models.RoomFree, RoomCategoryID: 1},
			{ID: 2, RoomNumber: "102", Floor: 1, Status: models.RoomOccupied, RoomCategoryID: 1},
			{ID: 3, RoomNumber: "201", Floor: 2, Status: models.RoomFree, RoomCategoryID: 2},
			{ID: 4, RoomNumber: "202", Floor: 2, Status: models.RoomCleaning, RoomCategoryID: 3},
		}
		if err := tx.Create(&rooms).Error; err != nil {
			return err
		}

		services := []models.Service{
			{ID: 1, Name: "Breakfast", Description: "Buffet breakfast", Price: 350},
			{ID: 2, Name: "Laundry", Description: "Per item", Price: 205},
			{ID: 3, Name: "Wi-Fi", Description: "High-speed internet", Price: 0},
			{ID: 4, Name: "Parking", Description: "Per day", Price: 500},
		}
		if err := tx.Create(&services).Error; err != nil {
			return err
		}

		users := []models.User{
			{ID: 1, Username: "admin", PasswordHash: hashOrPanic("admin123"), FullName: "Administrator", Role: models.RoleAdministrator},
			{ID: 2, Username: "reception", PasswordHash: hashOrPanic("reception123"), FullName: "Front Desk", Role: models.RoleReceptionist},
		}
		if err := tx.Create(&users).Error; err != nil {
			return err
		}

		guests := []models.Guest{
			{ID: 1, FirstName: "Алиса", LastName: "Иванова", PhoneNumber: "+79001112233", Email: "alice@example.com"},
			{ID: 2, FirstName: "Борис", LastName: "Смирнов", PhoneNumber: "+79114445566", Email: "boris@sample.org"},
			{ID: 3, FirstName: "Виктор", LastName: "Кузнецов", PhoneNumber: "+79227778899"},
		}
		if err := tx.Create(&guests).Error; err != nil {
			return err
		}

		bookings := []models.Booking{
			{
				ID: 1, CheckInDate: today.AddDate(0, 0, -5), CheckOutDate: today.AddDate(0, 0, -2),
				BookingDate: today.AddDate(0, 0, -6), Status: models.BookingCheckedIn,
				TotalPrice: 165, GuestID: 1, RoomID: 2,
			},
			{
				ID: 2, CheckInDate: today.AddDate(0, 0, 10), CheckOutDate: today.AddDate(0, 0, 17),
				BookingDate: today, Status: models.BookingConfirmed,
				TotalPrice: 840, GuestID: 2, RoomID: 3,
			},
		}
		if err := tx.Omit("BookedServices").Create(&bookings).Error; err != nil {
			return err
		}

		booked := models.BookedService{
			ID: 1, Quantity: 1, DateProvided: bookings[0].CheckInDate.AddDate(0, 0, 1),
			BookingID: 1, ServiceID: 1,
		}
		if err := tx.Omit("Service").Create(&booked).Error; err != nil {
			return err
		}

		log.Info().Msg("database seeded")
		return nil
	})
}
