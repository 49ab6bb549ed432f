package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HR_BASE_DIR", filepath.Join(t.TempDir(), "missing"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2025, cfg.PeriodYear)
	assert.Equal(t, "LGM/csv", cfg.SourceSubdir)
	assert.Equal(t, "LGM_Payroll_2025__*", cfg.PayrollGlob)
	assert.False(t, cfg.IdentityFuzzy)
	assert.True(t, cfg.RunMigrations)
	assert.Zero(t, cfg.ImportInterval)
}

func TestLoadImportInterval(t *testing.T) {
	t.Setenv("IMPORT_INTERVAL", "6h")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 6*time.Hour, cfg.ImportInterval)
}

func TestLoadFallsBackToWorkingDirectory(t *testing.T) {
	t.Setenv("HR_BASE_DIR", filepath.Join(t.TempDir(), "does-not-exist"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.NotContains(t, cfg.BaseDir, "does-not-exist")
}

func TestLoadKeepsExistingBaseDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HR_BASE_DIR", dir)
	t.Setenv("SOURCE_SUBDIR", "exports")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.BaseDir)
	assert.Equal(t, filepath.Join(dir, "exports"), cfg.SourceDir())
}

func TestValidate(t *testing.T) {
	cfg := Config{DatabaseURL: "postgres://localhost/hr", PeriodYear: 2025}
	assert.NoError(t, cfg.Validate())

	cfg.DatabaseURL = " "
	assert.ErrorIs(t, cfg.Validate(), ErrMissingDatabaseURL)

	cfg.DatabaseURL = "postgres://localhost/hr"
	cfg.PeriodYear = 0
	assert.Error(t, cfg.Validate())

	cfg.PeriodYear = 2025
	cfg.Environment = "production"
	assert.Error(t, cfg.Validate())
	cfg.DataEncryptionKey = "secret"
	assert.NoError(t, cfg.Validate())
}

func TestValidateServeRequiresSecret(t *testing.T) {
	cfg := Config{DatabaseURL: "postgres://localhost/hr", PeriodYear: 2025}
	assert.ErrorIs(t, cfg.ValidateServe(), ErrMissingJWTSecret)
	cfg.JWTSecret = "s3cret"
	assert.NoError(t, cfg.ValidateServe())

	cfg.ImportInterval = -time.Minute
	assert.Error(t, cfg.ValidateServe())
}
