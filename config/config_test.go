package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DB_PATH", filepath.Join(dir, "db", "hotel.db"))

	cfg, err := Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 12*time.Hour, cfg.TokenTTL())
	assert.Equal(t, 10, cfg.Auth.LoginPerMinute)
	assert.Equal(t, "0 3 * * *", cfg.Backup.Schedule)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.Origins())
	assert.DirExists(t, filepath.Join(dir, "db"))
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: "9000"
  cors_origins: "https://desk.example.com , https://admin.example.com"
database:
  driver: MYSQL
  mysql_url: ${TEST_MYSQL_URL}
auth:
  token_ttl_hours: 2
backup:
  enabled: true
  retention_days: 14
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("TEST_MYSQL_URL", "mysql://hotel:pw@db:3306/hotel")
	t.Setenv("PORT", "7000")
	t.Setenv("LOG_PRETTY", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Server.Port, "env wins over file")
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "mysql://hotel:pw@db:3306/hotel", cfg.Database.MySQLURL)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL())
	assert.True(t, cfg.Backup.Enabled)
	assert.Equal(t, 14, cfg.Backup.RetentionDays)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
	assert.Equal(t, []string{"https://desk.example.com", "https://admin.example.com"}, cfg.Origins())
}

func TestMySQLDSNFromURL(t *testing.T) {
	dsn, err := mysqlDSNFromURL("mysql://hotel:pw@db/hotel")
	require.NoError(t, err)
	assert.Equal(t, "hotel:pw@tcp(db:3306)/hotel?charset=utf8mb4&loc=UTC&parseTime=True", dsn)

	_, err = mysqlDSNFromURL("mysql://hotel:pw@db:3306/")
	assert.Error(t, err)
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "file::memory:?_foreign_keys=on", sqliteDSN(":memory:"))
	assert.Equal(t, "data/hotel.db?_foreign_keys=on&_busy_timeout=5000", sqliteDSN("data/hotel.db"))
}
