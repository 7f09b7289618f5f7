package domain

import "time"

// Config represents the application configuration
type Config struct {
	Download     DownloadConfig     `mapstructure:"download"`
	Engine       EngineConfig       `mapstructure:"engine"`
	Twitter      TwitterConfig      `mapstructure:"twitter"`
	History      HistoryConfig      `mapstructure:"history"`
	Server       ServerConfig       `mapstructure:"server"`
	Notification NotificationConfig `mapstructure:"notification"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// DownloadConfig contains the base request options shared by every platform
type DownloadConfig struct {
	OutputDir         string        `mapstructure:"output_dir"`
	FilenameTemplate  string        `mapstructure:"filename_template"`
	Format            string        `mapstructure:"format"`
	MergeOutputFormat string        `mapstructure:"merge_output_format"`
	Retries           int           `mapstructure:"retries"`
	SocketTimeout     time.Duration `mapstructure:"socket_timeout"`
	WriteThumbnail    bool          `mapstructure:"write_thumbnail"`
	DefaultPlatform   string        `mapstructure:"default_platform"` // used when a URL matches no platform
}

// EngineConfig selects and configures the extraction engine
type EngineConfig struct {
	Backend      string `mapstructure:"backend"` // ytdlp, go-ytdlp
	Binary       string `mapstructure:"binary"`
	LogsDir      string `mapstructure:"logs_dir"`
	KeepInfoJSON bool   `mapstructure:"keep_info_json"`
}

// Engine backends
const (
	EngineBackendYTDLP   = "ytdlp"
	EngineBackendLibrary = "go-ytdlp"
)

// TwitterConfig contains Twitter/X-specific configuration
type TwitterConfig struct {
	CookieFile string `mapstructure:"cookie_file"`
}

// HistoryConfig contains download history configuration
type HistoryConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	DatabasePath string `mapstructure:"database_path"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// NotificationConfig contains notification-related configuration
type NotificationConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Method  string `mapstructure:"method"` // notify-send, osascript
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Download: DownloadConfig{
			OutputDir:         "$HOME/downloads_videos",
			FilenameTemplate:  "%(title).50s_%(id)s.%(ext)s",
			Format:            "best",
			MergeOutputFormat: "mp4",
			Retries:           3,
			SocketTimeout:     30 * time.Second,
			WriteThumbnail:    false,
			DefaultPlatform:   "twitter",
		},
		Engine: EngineConfig{
			Backend:      EngineBackendYTDLP,
			Binary:       "yt-dlp",
			LogsDir:      "$HOME/downloads_videos/logs",
			KeepInfoJSON: false,
		},
		Twitter: TwitterConfig{
			CookieFile: "",
		},
		History: HistoryConfig{
			Enabled:      true,
			DatabasePath: "$HOME/downloads_videos/history.db",
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Notification: NotificationConfig{
			Enabled: false,
			Method:  "notify-send",
		},
		Logging: LoggingConfig{
			Level:      "warn",
			Format:     "console",
			OutputPath: "stderr",
		},
	}
}
