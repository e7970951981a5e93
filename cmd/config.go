package cmd

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"layermap.dev/pkg/layermap/internal/controller"
	"layermap.dev/pkg/layermap/internal/domain"
	m "layermap.dev/pkg/layermap/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "layermap"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	formatFlagName  = "format"
	excludeFlagName = "exclude"
	verboseFlagName = "verbose"
	logFileFlagName = "log-file"
	saveFlagName    = "save"

	formatConfigKey   = "output.format"
	excludeConfigKey  = "paths.exclude"
	prefixesConfigKey = "match.implementation_prefixes"

	layoutSourceKey     = "layout.source"
	layoutDomainKey     = "layout.domain"
	layoutHTTPKey       = "layout.http"
	layoutInfraKey      = "layout.infra"
	layoutSharedKey     = "layout.shared"
	layoutRootModuleKey = "layout.root_module"

	envPrefix = "LAYERMAP"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogName       = configBaseName + ".log"
	defaultLogLevel      = "info"
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return
		}

		slog.Warn("Ignoring unreadable config file", "file", configFileName, "error", err)
	}
}

func setDefaults() {
	layout := domain.DefaultLayout()

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(formatConfigKey, string(controller.FormatAuto))
	viper.SetDefault(excludeConfigKey, []string{})
	viper.SetDefault(prefixesConfigKey, append([]string(nil), domain.DefaultImplementationPrefixes...))

	viper.SetDefault(layoutSourceKey, layout.Source)
	viper.SetDefault(layoutDomainKey, layout.Domain)
	viper.SetDefault(layoutHTTPKey, layout.HTTP)
	viper.SetDefault(layoutInfraKey, layout.Infra)
	viper.SetDefault(layoutSharedKey, layout.Shared)
	viper.SetDefault(layoutRootModuleKey, layout.RootModule)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename())
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)
}

// defaultLogFilename keeps the log out of the analyzed tree.
func defaultLogFilename() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}

	return filepath.Join(dir, configBaseName, defaultLogName)
}

// layoutFromConfig builds the project layout from config and env values,
// keeping the defaults for keys left empty.
func layoutFromConfig() domain.Layout {
	layout := domain.DefaultLayout()

	override := func(target *string, key string) {
		if value := strings.TrimSpace(viper.GetString(key)); value != "" {
			*target = value
		}
	}

	override(&layout.Source, layoutSourceKey)
	override(&layout.Domain, layoutDomainKey)
	override(&layout.HTTP, layoutHTTPKey)
	override(&layout.Infra, layoutInfraKey)
	override(&layout.Shared, layoutSharedKey)
	override(&layout.RootModule, layoutRootModuleKey)

	if prefixes := viper.GetStringSlice(prefixesConfigKey); len(prefixes) > 0 {
		layout.ImplementationPrefixes = prefixes
	}

	return layout
}

func excludeFromConfig() []string {
	var names []string

	for _, name := range viper.GetStringSlice(excludeConfigKey) {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}

	return names
}

func parseSections(names []string) []m.Section {
	sections := make([]m.Section, 0, len(names))
	for _, name := range names {
		sections = append(sections, m.Section(name))
	}

	return sections
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

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at the configured level; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename()
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
