package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	envVars := []string{
		"TRANSCRIPT_PATHS_INPUT_DIR", "TRANSCRIPT_PATHS_OUTPUT_DIR", "TRANSCRIPT_PATHS_LOGS_DIR",
		"TRANSCRIPT_PARSING_FUZZY_THRESHOLD", "TRANSCRIPT_PARSING_MIN_NARRATIVE_RUNES",
		"TRANSCRIPT_PARSING_WORKERS", "TRANSCRIPT_LOGGING_LEVEL", "TRANSCRIPT_LOGGING_FORMAT",
		"TRANSCRIPT_LOGGING_OUTPUT", "TRANSCRIPT_LOGGING_FILE_PATH",
		"TRANSCRIPT_EXPORT_BOM_PREFIX", "TRANSCRIPT_EXPORT_XLSX",
	}
	for _, v := range envVars {
		t.Setenv(v, "")
		os.Unsetenv(v)
	}

	tests := []struct {
		name        string
		setupEnv    func(t *testing.T)
		setupFile   func(t *testing.T) string
		wantErr     bool
		validateCfg func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults with no env vars and no file",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "data/raw", cfg.Paths.InputDir)
				assert.Equal(t, "data/processed", cfg.Paths.OutputDir)
				assert.Equal(t, 0.70, cfg.Parsing.FuzzyThreshold)
				assert.Equal(t, 20, cfg.Parsing.MinNarrativeRunes)
				assert.Equal(t, 1, cfg.Parsing.Workers)
				assert.True(t, cfg.Export.BOMPrefix)
				assert.False(t, cfg.Export.XLSX)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
			},
		},
		{
			name: "env overrides defaults",
			setupEnv: func(t *testing.T) {
				t.Setenv("TRANSCRIPT_PARSING_WORKERS", "4")
				t.Setenv("TRANSCRIPT_LOGGING_LEVEL", "debug")
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 4, cfg.Parsing.Workers)
				assert.Equal(t, "debug", cfg.Logging.Level)
			},
		},
		{
			name: "file fills unset fields",
			setupFile: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "config.yaml")
				content := "paths:\n  input_dir: corpus/in\nparsing:\n  fuzzy_threshold: 0.8\n"
				require.NoError(t, os.WriteFile(path, []byte(content), 0644))
				return path
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "corpus/in", cfg.Paths.InputDir)
				assert.Equal(t, 0.8, cfg.Parsing.FuzzyThreshold)
				// untouched defaults survive the merge
				assert.Equal(t, 1, cfg.Parsing.Workers)
			},
		},
		{
			name: "env wins over file",
			setupEnv: func(t *testing.T) {
				t.Setenv("TRANSCRIPT_PATHS_INPUT_DIR", "env/in")
			},
			setupFile: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "config.yaml")
				content := "paths:\n  input_dir: file/in\n"
				require.NoError(t, os.WriteFile(path, []byte(content), 0644))
				return path
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "env/in", cfg.Paths.InputDir)
			},
		},
		{
			name: "file sets export section",
			setupFile: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "config.yaml")
				content := "export:\n  xlsx: true\n  bom_prefix: false\n"
				require.NoError(t, os.WriteFile(path, []byte(content), 0644))
				return path
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.Export.XLSX)
				// An explicit false wins over the true default.
				assert.False(t, cfg.Export.BOMPrefix)
			},
		},
		{
			name: "absent export keys keep defaults",
			setupFile: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "config.yaml")
				content := "paths:\n  input_dir: corpus/in\n"
				require.NoError(t, os.WriteFile(path, []byte(content), 0644))
				return path
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.Export.BOMPrefix)
				assert.False(t, cfg.Export.XLSX)
			},
		},
		{
			name: "env wins over file for export",
			setupEnv: func(t *testing.T) {
				t.Setenv("TRANSCRIPT_EXPORT_XLSX", "false")
			},
			setupFile: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "config.yaml")
				content := "export:\n  xlsx: true\n"
				require.NoError(t, os.WriteFile(path, []byte(content), 0644))
				return path
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.Export.XLSX)
			},
		},
		{
			name: "invalid threshold rejected",
			setupEnv: func(t *testing.T) {
				t.Setenv("TRANSCRIPT_PARSING_FUZZY_THRESHOLD", "1.5")
			},
			wantErr: true,
		},
		{
			name: "invalid log level rejected",
			setupEnv: func(t *testing.T) {
				t.Setenv("TRANSCRIPT_LOGGING_LEVEL", "verbose")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setupEnv != nil {
				tt.setupEnv(t)
			}
			configFile := ""
			if tt.setupFile != nil {
				configFile = tt.setupFile(t)
			}

			cfg, err := Load(configFile)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.validateCfg != nil {
				tt.validateCfg(t, cfg)
			}
		})
	}
}

func TestLoad_MissingFileIsIgnored(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "data/raw", cfg.Paths.InputDir)
}
