// Package config loads corefuzz's run parameters via spf13/viper, grounded
// on gooze-dev-gooze's cmd/config.go: a YAML config file with environment
// variable overrides and a fixed set of defaults, plus the lumberjack
// logging options gooze configures the same way.
package config

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	configBaseName   = "corefuzz"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."
	envPrefix        = "COREFUZZ"

	corpusDirKey    = "corpus.dir"
	complexityKey   = "run.max_complexity"
	seedKey         = "run.seed"
	iterationsKey   = "run.iterations"
	numCountersKey  = "run.num_counters"
	logFilenameKey  = "log.filename"
	logLevelKey     = "log.level"
	logVerboseKey   = "log.verbose"
	logMaxSizeKey   = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey    = "log.max_age"
	logCompressKey  = "log.compress"

	defaultCorpusDir   = "corpora"
	defaultComplexity  = 4096.0
	defaultSeed        = int64(1)
	defaultIterations  = 0 // 0 means run until interrupted
	defaultNumCounters = 65536

	defaultLogFilename   = ".corefuzz.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

// Config is the demonstration fuzzer's run configuration, loaded from
// corefuzz.yaml, COREFUZZ_* environment variables, and cobra flags, in
// that ascending order of precedence.
type Config struct {
	CorpusDir     string
	MaxComplexity float64
	Seed          int64
	Iterations    int
	NumCounters   int

	LogFilename   string
	LogLevel      slog.Level
	LogVerbose    bool
	LogMaxSize    int
	LogMaxBackups int
	LogMaxAge     int
	LogCompress   bool
}

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(corpusDirKey, defaultCorpusDir)
	viper.SetDefault(complexityKey, defaultComplexity)
	viper.SetDefault(seedKey, defaultSeed)
	viper.SetDefault(iterationsKey, defaultIterations)
	viper.SetDefault(numCountersKey, defaultNumCounters)

	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}
	}
}

// Load reads the current viper state into a Config. Call after cobra has
// bound its flags to viper keys, so flag values (the highest-precedence
// source) are already reflected.
func Load() Config {
	return Config{
		CorpusDir:     viper.GetString(corpusDirKey),
		MaxComplexity: viper.GetFloat64(complexityKey),
		Seed:          viper.GetInt64(seedKey),
		Iterations:    viper.GetInt(iterationsKey),
		NumCounters:   viper.GetInt(numCountersKey),

		LogFilename:   viper.GetString(logFilenameKey),
		LogLevel:      parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo),
		LogVerbose:    viper.GetBool(logVerboseKey),
		LogMaxSize:    viper.GetInt(logMaxSizeKey),
		LogMaxBackups: viper.GetInt(logMaxBackupsKey),
		LogMaxAge:     viper.GetInt(logMaxAgeKey),
		LogCompress:   viper.GetBool(logCompressKey),
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}
	return defaultLevel
}

// Logger builds the run's slog.Logger from c, writing through a lumberjack
// rolling file the way gooze's configureLogger does.
func (c Config) Logger() *slog.Logger {
	level := c.LogLevel
	if c.LogVerbose {
		level = slog.LevelDebug
	}

	writer := &lumberjack.Logger{
		Filename:   c.LogFilename,
		MaxSize:    c.LogMaxSize,
		MaxBackups: c.LogMaxBackups,
		MaxAge:     c.LogMaxAge,
		Compress:   c.LogCompress,
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	})
	return slog.New(handler)
}
