package log

import (
	configtypes "github.com/dgc-network/smart/pkg/types"
	"go.uber.org/zap/zapcore"
)

// LogOptions holds the resolved logging options.
type LogOptions struct {
	Level     string `json:"level"`
	ToConsole bool   `json:"to_console"`
	// FilePath is "stdout", "stderr" or a file path rotated by lumberjack.
	FilePath string `json:"file_path"`

	MaxSize    int  `json:"max_size"`
	MaxBackups int  `json:"max_backups"`
	MaxAge     int  `json:"max_age"`
	Compress   bool `json:"compress"`

	EnableCaller     bool `json:"enable_caller"`
	EnableStacktrace bool `json:"enable_stacktrace"`

	// ContractLevel filters log_buffer output from contracts.
	ContractLevel string `json:"contract_level"`

	LevelMap map[string]zapcore.Level `json:"-"`
}

// Config wraps LogOptions with typed accessors.
type Config struct {
	options *LogOptions
}

// New builds a Config from defaults overlaid with a *types.UserLogConfig.
func New(userConfig *configtypes.UserLogConfig) *Config {
	options := createDefaultLogOptions()
	if userConfig != nil {
		applyUserLogConfig(options, userConfig)
	}
	return &Config{options: options}
}

// NewFromOptions wraps already resolved options.
func NewFromOptions(options *LogOptions) *Config {
	if options == nil {
		return New(nil)
	}
	if options.LevelMap == nil {
		options.LevelMap = defaultLevelMap
	}
	return &Config{options: options}
}

func createDefaultLogOptions() *LogOptions {
	return &LogOptions{
		Level:     defaultLogLevel,
		ToConsole: defaultToConsole,
		FilePath:  defaultFilePath,

		MaxSize:    defaultMaxSize,
		MaxBackups: defaultMaxBackups,
		MaxAge:     defaultMaxAge,
		Compress:   defaultCompress,

		EnableCaller:     defaultEnableCaller,
		EnableStacktrace: defaultEnableStacktrace,

		ContractLevel: defaultContractLogLevel,

		LevelMap: defaultLevelMap,
	}
}

func applyUserLogConfig(options *LogOptions, userConfig *configtypes.UserLogConfig) {
	if userConfig.Level != nil {
		options.Level = *userConfig.Level
	}
	if userConfig.FilePath != nil {
		options.FilePath = *userConfig.FilePath
		// a real file path turns console output off unless asked otherwise
		if options.FilePath != "stdout" && options.FilePath != "stderr" {
			options.ToConsole = false
		}
	}
	if userConfig.ToConsole != nil {
		options.ToConsole = *userConfig.ToConsole
	}
	if userConfig.MaxSize != nil {
		options.MaxSize = *userConfig.MaxSize
	}
	if userConfig.MaxBackups != nil {
		options.MaxBackups = *userConfig.MaxBackups
	}
	if userConfig.MaxAge != nil {
		options.MaxAge = *userConfig.MaxAge
	}
	if userConfig.ContractLevel != nil {
		options.ContractLevel = *userConfig.ContractLevel
	}
}

func (c *Config) GetOptions() *LogOptions {
	return c.options
}

func (c *Config) GetLevel() string {
	return c.options.Level
}

// GetZapLevel maps the configured level name, falling back to info.
func (c *Config) GetZapLevel() zapcore.Level {
	if level, exists := c.options.LevelMap[c.options.Level]; exists {
		return level
	}
	return zapcore.InfoLevel
}

func (c *Config) GetContractLevel() string {
	return c.options.ContractLevel
}

func (c *Config) IsConsoleEnabled() bool {
	return c.options.ToConsole
}

func (c *Config) GetFilePath() string {
	return c.options.FilePath
}

func (c *Config) GetMaxSize() int {
	return c.options.MaxSize
}

func (c *Config) GetMaxBackups() int {
	return c.options.MaxBackups
}

func (c *Config) GetMaxAge() int {
	return c.options.MaxAge
}

func (c *Config) IsCompressionEnabled() bool {
	return c.options.Compress
}

func (c *Config) IsCallerEnabled() bool {
	return c.options.EnableCaller
}

func (c *Config) IsStacktraceEnabled() bool {
	return c.options.EnableStacktrace
}

// CreateFileEncoder returns the JSON encoder used for log files.
func (c *Config) CreateFileEncoder() zapcore.Encoder {
	return zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
	})
}

// CreateConsoleEncoder returns the human readable console encoder.
func (c *Config) CreateConsoleEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.TimeEncoderOfLayout("15:04:05.000"),
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
	})
}
