package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"famwealth/src/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, files map[string]string) string {
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

const baseSettings = `
service:
  type: WORKER
databases:
  sql:
    host: db
    port: "5432"
    username: fam
    password: secret
    database: famwealth
brokers:
  mappings:
    - broker: Zerodha
      memberId: m-1
      assetClass: Equity
`

func TestLoadConfig(t *testing.T) {
	t.Run("reads base settings and applies defaults", func(t *testing.T) {
		dir := writeSettings(t, map[string]string{"appsettings.yaml": baseSettings})

		cfg, err := config.LoadConfig(dir, "")
		require.NoError(t, err)

		assert.Equal(t, config.WORKER, cfg.Service.Type)
		assert.Equal(t, "8000", cfg.Service.Port)
		assert.Equal(t, 8, cfg.Brokers.SessionTTLHours)
		assert.Equal(t, 30, cfg.Scheduler.ReminderLeadDays)
		assert.Equal(t, "https://api.kite.trade", cfg.ExternalClients.Zerodha.BaseURL)
		require.Len(t, cfg.Brokers.Mappings, 1)
		assert.Equal(t, "m-1", cfg.Brokers.Mappings[0].MemberID)
		assert.Equal(t, "host=db user=fam password=secret dbname=famwealth port=5432 sslmode=disable", cfg.Databases.SQL.DSN())
	})

	t.Run("environment overlay wins over base settings", func(t *testing.T) {
		dir := writeSettings(t, map[string]string{
			"appsettings.yaml":         baseSettings,
			"appsettings.TESTING.yaml": "databases:\n  sql:\n    connection_string: postgres://test\n",
		})

		cfg, err := config.LoadConfig(dir, "TESTING")
		require.NoError(t, err)

		assert.Equal(t, "postgres://test", cfg.Databases.SQL.DSN())
		assert.Equal(t, "db", cfg.Databases.SQL.Host)
	})

	t.Run("missing overlay is an error", func(t *testing.T) {
		dir := writeSettings(t, map[string]string{"appsettings.yaml": baseSettings})

		_, err := config.LoadConfig(dir, "STAGING")
		assert.Error(t, err)
	})

	t.Run("missing settings directory is an error", func(t *testing.T) {
		_, err := config.LoadConfig(filepath.Join(t.TempDir(), "nope"), "")
		assert.Error(t, err)
	})
}
