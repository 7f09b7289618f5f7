package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/yourusername/xdownload/internal/domain"
)

// LoadConfig loads configuration from file and environment.
// Environment variables use the XDOWNLOAD prefix, e.g. XDOWNLOAD_DOWNLOAD_FORMAT.
func LoadConfig(configPath string) (*domain.Config, error) {
	config := domain.DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.xdownload")
		v.AddConfigPath("/etc/xdownload")
	}

	// Defaults make every key known to viper so AutomaticEnv can override it
	for key, value := range configValues(config) {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix("XDOWNLOAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config = expandPaths(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// configValues flattens config into viper keys
func configValues(config *domain.Config) map[string]interface{} {
	return map[string]interface{}{
		"download.output_dir":          config.Download.OutputDir,
		"download.filename_template":   config.Download.FilenameTemplate,
		"download.format":              config.Download.Format,
		"download.merge_output_format": config.Download.MergeOutputFormat,
		"download.retries":             config.Download.Retries,
		"download.socket_timeout":      config.Download.SocketTimeout.String(),
		"download.write_thumbnail":     config.Download.WriteThumbnail,
		"download.default_platform":    config.Download.DefaultPlatform,
		"engine.backend":               config.Engine.Backend,
		"engine.binary":                config.Engine.Binary,
		"engine.logs_dir":              config.Engine.LogsDir,
		"engine.keep_info_json":        config.Engine.KeepInfoJSON,
		"twitter.cookie_file":          config.Twitter.CookieFile,
		"history.enabled":              config.History.Enabled,
		"history.database_path":        config.History.DatabasePath,
		"server.host":                  config.Server.Host,
		"server.port":                  config.Server.Port,
		"notification.enabled":         config.Notification.Enabled,
		"notification.method":          config.Notification.Method,
		"logging.level":                config.Logging.Level,
		"logging.format":               config.Logging.Format,
		"logging.output_path":          config.Logging.OutputPath,
	}
}

// expandPaths expands environment variables in path configurations
func expandPaths(config *domain.Config) *domain.Config {
	config.Download.OutputDir = expandPath(config.Download.OutputDir)
	config.Engine.LogsDir = expandPath(config.Engine.LogsDir)
	config.Twitter.CookieFile = expandPath(config.Twitter.CookieFile)
	config.History.DatabasePath = expandPath(config.History.DatabasePath)

	if config.Logging.OutputPath != "stdout" && config.Logging.OutputPath != "stderr" {
		config.Logging.OutputPath = expandPath(config.Logging.OutputPath)
	}

	return config
}

// expandPath expands environment variables and ~ in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return os.ExpandEnv(path)
}

// validateConfig validates the configuration
func validateConfig(config *domain.Config) error {
	if config.Download.OutputDir == "" {
		return fmt.Errorf("download output directory not configured")
	}

	if config.Download.FilenameTemplate == "" {
		return fmt.Errorf("download filename template not configured")
	}

	if config.Download.Retries < 0 {
		return fmt.Errorf("retries cannot be negative")
	}

	if config.Download.SocketTimeout < 0 {
		return fmt.Errorf("socket timeout cannot be negative")
	}

	switch config.Engine.Backend {
	case domain.EngineBackendYTDLP, domain.EngineBackendLibrary:
	default:
		return fmt.Errorf("unknown engine backend: %q", config.Engine.Backend)
	}

	if config.Engine.Binary == "" {
		return fmt.Errorf("engine binary not configured")
	}

	if config.History.Enabled && config.History.DatabasePath == "" {
		return fmt.Errorf("history database path not configured")
	}

	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Logging.Level == "" {
		config.Logging.Level = "warn"
	}

	return nil
}

// SaveConfig saves configuration to file
func SaveConfig(config *domain.Config, path string) error {
	v := viper.New()
	v.SetConfigType("yaml")

	for key, value := range configValues(config) {
		v.Set(key, value)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
