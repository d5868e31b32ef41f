package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	Parsing ParsingConfig `yaml:"parsing" envconfig:"PARSING"`
	Export  ExportConfig  `yaml:"export" envconfig:"EXPORT"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	InputDir  string `yaml:"input_dir" envconfig:"INPUT_DIR" default:"data/raw"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"data/processed"`
	LogsDir   string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// ParsingConfig contains the extraction heuristics' tunables.
type ParsingConfig struct {
	// FuzzyThreshold is the minimum similarity for accepting a fuzzy subject
	// match.
	FuzzyThreshold float64 `yaml:"fuzzy_threshold" envconfig:"FUZZY_THRESHOLD" default:"0.70" validate:"gte=0,lte=1"`
	// MinNarrativeRunes is the shortest narrative fragment treated as a
	// standalone record; shorter fragments are folded into the previous one.
	MinNarrativeRunes int `yaml:"min_narrative_runes" envconfig:"MIN_NARRATIVE_RUNES" default:"20" validate:"gte=0"`
	// Workers bounds concurrent document parsing. 1 means sequential.
	Workers int `yaml:"workers" envconfig:"WORKERS" default:"1" validate:"gte=1,lte=64"`
}

// ExportConfig controls the output table formats.
type ExportConfig struct {
	BOMPrefix bool `yaml:"bom_prefix" envconfig:"BOM_PREFIX" default:"true"`
	XLSX      bool `yaml:"xlsx" envconfig:"XLSX" default:"false"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/parse.log"`
}

// Load loads configuration from environment variables and an optional YAML
// config file. Environment variables take precedence over file values.
func Load(configFile string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process("TRANSCRIPT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			fileConfig, err := loadFromFile(configFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
			cfg = mergeConfigs(*fileConfig, cfg)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// fileConfig mirrors Config for YAML decoding. The export booleans decode
// into pointers so an absent key is distinguishable from an explicit false.
type fileConfig struct {
	Paths   PathsConfig      `yaml:"paths"`
	Parsing ParsingConfig    `yaml:"parsing"`
	Export  fileExportConfig `yaml:"export"`
	Logging LoggingConfig    `yaml:"logging"`
}

type fileExportConfig struct {
	BOMPrefix *bool `yaml:"bom_prefix"`
	XLSX      *bool `yaml:"xlsx"`
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*fileConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config. The env config was
// populated with defaults, so a file value only wins where the env var was
// never set and the file sets something else. String and numeric fields use
// a zero-value test; the export booleans use their pointer presence.
func mergeConfigs(fileConfig fileConfig, envConfig Config) Config {
	if fileConfig.Paths.InputDir != "" && !isSet("TRANSCRIPT_PATHS_INPUT_DIR") {
		envConfig.Paths.InputDir = fileConfig.Paths.InputDir
	}
	if fileConfig.Paths.OutputDir != "" && !isSet("TRANSCRIPT_PATHS_OUTPUT_DIR") {
		envConfig.Paths.OutputDir = fileConfig.Paths.OutputDir
	}
	if fileConfig.Paths.LogsDir != "" && !isSet("TRANSCRIPT_PATHS_LOGS_DIR") {
		envConfig.Paths.LogsDir = fileConfig.Paths.LogsDir
	}
	if fileConfig.Parsing.FuzzyThreshold != 0 && !isSet("TRANSCRIPT_PARSING_FUZZY_THRESHOLD") {
		envConfig.Parsing.FuzzyThreshold = fileConfig.Parsing.FuzzyThreshold
	}
	if fileConfig.Parsing.MinNarrativeRunes != 0 && !isSet("TRANSCRIPT_PARSING_MIN_NARRATIVE_RUNES") {
		envConfig.Parsing.MinNarrativeRunes = fileConfig.Parsing.MinNarrativeRunes
	}
	if fileConfig.Parsing.Workers != 0 && !isSet("TRANSCRIPT_PARSING_WORKERS") {
		envConfig.Parsing.Workers = fileConfig.Parsing.Workers
	}
	if fileConfig.Export.BOMPrefix != nil && !isSet("TRANSCRIPT_EXPORT_BOM_PREFIX") {
		envConfig.Export.BOMPrefix = *fileConfig.Export.BOMPrefix
	}
	if fileConfig.Export.XLSX != nil && !isSet("TRANSCRIPT_EXPORT_XLSX") {
		envConfig.Export.XLSX = *fileConfig.Export.XLSX
	}
	if fileConfig.Logging.Level != "" && !isSet("TRANSCRIPT_LOGGING_LEVEL") {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if fileConfig.Logging.Format != "" && !isSet("TRANSCRIPT_LOGGING_FORMAT") {
		envConfig.Logging.Format = fileConfig.Logging.Format
	}
	if fileConfig.Logging.Output != "" && !isSet("TRANSCRIPT_LOGGING_OUTPUT") {
		envConfig.Logging.Output = fileConfig.Logging.Output
	}
	if fileConfig.Logging.FilePath != "" && !isSet("TRANSCRIPT_LOGGING_FILE_PATH") {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}
	return envConfig
}

func isSet(envVar string) bool {
	_, ok := os.LookupEnv(envVar)
	return ok
}

// validate checks the configuration against the struct tags.
func (c *Config) validate() error {
	return validator.New().Struct(c)
}
