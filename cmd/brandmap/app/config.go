package app

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/agentstation/brandmap/pkg/constants"
	"github.com/agentstation/brandmap/pkg/errors"
	"github.com/agentstation/brandmap/pkg/logging"
)

// logLevels are the values accepted from --log-level and LOG_LEVEL.
var logLevels = []string{"trace", "debug", "info", "warn", "error"}

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Output  string

	// Config file
	ConfigFile string

	// Store configuration
	Store         string
	DataDir       string
	MongoURI      string
	MongoDatabase string
	Collection    string

	// Operation defaults
	ImportFile   string
	ExportDir    string
	ExportFormat string
	SeedCount    int
	SeedFormat   string
	MetricsFile  string

	// Logging configuration. LogLevel is the --log-level flag, EnvLogLevel
	// comes from LOG_LEVEL.
	LogLevel    string
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (BRANDMAP_*, plus MONGO_URI)
// 3. .env files
// 4. Config file (~/.brandmap.yaml or ./.brandmap.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	setDefaults()

	viper.SetEnvPrefix("BRANDMAP")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	bindEnvAliases()

	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Search for config in standard locations
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName(".brandmap")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("config", "reading config file", err)
		}
	}

	config := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),
		Output:  viper.GetString("output"),

		ConfigFile: viper.ConfigFileUsed(),

		Store:         viper.GetString("store"),
		DataDir:       viper.GetString("data_dir"),
		MongoURI:      viper.GetString("mongo_uri"),
		MongoDatabase: viper.GetString("mongo_database"),
		Collection:    viper.GetString("collection"),

		ImportFile:   viper.GetString("import_file"),
		ExportDir:    viper.GetString("export_dir"),
		ExportFormat: viper.GetString("export_format"),
		SeedCount:    viper.GetInt("seed_count"),
		SeedFormat:   viper.GetString("seed_format"),
		MetricsFile:  viper.GetString("metrics_file"),

		EnvLogLevel: getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput:   getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	return config, nil
}

// setDefaults registers the built-in defaults.
func setDefaults() {
	viper.SetDefault("store", "pebble")
	viper.SetDefault("data_dir", constants.DefaultDataDir)
	viper.SetDefault("mongo_uri", constants.DefaultMongoURI)
	viper.SetDefault("mongo_database", constants.DefaultDatabase)
	viper.SetDefault("collection", constants.DefaultCollection)
	viper.SetDefault("import_file", constants.DefaultImportFile)
	viper.SetDefault("export_dir", ".")
	viper.SetDefault("export_format", "json")
	viper.SetDefault("seed_count", constants.DefaultSeedCount)
	viper.SetDefault("seed_format", "csv")
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// .env.local overrides .env
	envFiles := []string{
		".env.local",
		".env",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// bindEnvAliases binds unprefixed variable names commonly found in .env
// files for the same deployment.
func bindEnvAliases() {
	_ = viper.BindEnv("mongo_uri", "BRANDMAP_MONGO_URI", "MONGO_URI", "MONGODB_URI")
	_ = viper.BindEnv("mongo_database", "BRANDMAP_MONGO_DATABASE", "MONGO_DATABASE")
}

// UpdateFromFlags updates config values from parsed global flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, output, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if output != "" {
		c.Output = output
	}
	c.LogLevel = logLevel
}

// ResolveLogLevel picks the effective log level. --log-level wins, then
// -v/-q (quiet when both are set), then LOG_LEVEL, then info. Settings
// that were ignored or rejected come back as notes.
func (c *Config) ResolveLogLevel() (level string, notes []string) {
	switch {
	case c.LogLevel != "":
		if slices.Contains(logLevels, c.LogLevel) {
			return c.LogLevel, nil
		}
		return "info", []string{fmt.Sprintf("invalid --log-level %q, using info", c.LogLevel)}
	case c.Verbose && c.Quiet:
		return "warn", []string{"both --verbose and --quiet set, using --quiet"}
	case c.Verbose:
		return "debug", nil
	case c.Quiet:
		return "warn", nil
	case c.EnvLogLevel == "":
		return "info", nil
	case slices.Contains(logLevels, c.EnvLogLevel):
		return c.EnvLogLevel, nil
	}
	return "info", []string{fmt.Sprintf("invalid LOG_LEVEL %q, using info", c.EnvLogLevel)}
}

// Logger builds the application logger. Notes from ResolveLogLevel are
// emitted as warnings on the new logger.
func (c *Config) Logger() zerolog.Logger {
	level, notes := c.ResolveLogLevel()
	logger := logging.NewLoggerFromConfig(&logging.Config{
		Level:     level,
		Format:    c.LogFormat,
		Output:    c.LogOutput,
		NoColor:   c.NoColor,
		AddCaller: level == "debug" || level == "trace",
	})
	for _, note := range notes {
		logger.Warn().Str("source", "config").Msg(note)
	}
	return logger
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
