package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into an empty directory so no dashboard.env is picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestNewConfig_Defaults(t *testing.T) {
	chdir(t)

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, ".", cfg.Data.Dir)
	assert.Equal(t, []string{"SWIFT_csv_20250924_a62566.txt", "SWIFT_csv_2.txt", "SWIFT_csv_3.txt"}, cfg.Data.TransactionFiles)
	assert.Equal(t, "Wire Transfer KYC.txt", cfg.Data.LimitFile)
	assert.Equal(t, ',', cfg.DelimiterRune())
	assert.Empty(t, cfg.Data.DateLayouts)
	assert.False(t, cfg.UseBlob())
	assert.Equal(t, "wire-data", cfg.Blob.Container)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestNewConfig_FromEnvironment(t *testing.T) {
	chdir(t)
	t.Setenv("DASHBOARD_PORT", "9090")
	t.Setenv("DATA_DIR", "/srv/wire")
	t.Setenv("TRANSACTION_FILES", "a.txt, b.txt ,c.txt")
	t.Setenv("CSV_DELIMITER", ";")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("BLOB_SERVICE_URL", "http://127.0.0.1:10000/devstoreaccount1")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "/srv/wire", cfg.Data.Dir)
	assert.Equal(t, []string{"a.txt", "b.txt", "c.txt"}, cfg.Data.TransactionFiles)
	assert.Equal(t, ';', cfg.DelimiterRune())
	assert.True(t, cfg.UseBlob())
}

func TestNewConfig_EnvFile(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, EnvFile), []byte("LIMIT_FILE=kyc.csv\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("LIMIT_FILE") })

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "kyc.csv", cfg.Data.LimitFile)
}

func TestNewConfig_WrongBatchCount(t *testing.T) {
	chdir(t)
	t.Setenv("TRANSACTION_FILES", "a.txt,b.txt")

	_, err := NewConfig()
	assert.ErrorContains(t, err, "TRANSACTION_FILES")
}

func TestNewConfig_BadDelimiter(t *testing.T) {
	chdir(t)
	t.Setenv("CSV_DELIMITER", ";;")

	_, err := NewConfig()
	assert.ErrorContains(t, err, "CSV_DELIMITER")
}

func TestNewConfig_BadLogLevel(t *testing.T) {
	chdir(t)
	t.Setenv("LOG_LEVEL", "loud")

	_, err := NewConfig()
	assert.ErrorContains(t, err, "LOG_LEVEL")
}
