// Package config provides configuration loading, defaults, and validation
// for the bot. Values come from a YAML file with BOT_* environment variable
// overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-telegram/bot/models"
	"github.com/spf13/viper"
)

// LoggerConfig controls log level and output format.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds the Telegram connection settings.
type TelegramConfig struct {
	Token          string        `mapstructure:"token"           validate:"required"`
	BotName        string        `mapstructure:"bot_name"`
	OperatorID     int64         `mapstructure:"operator_id"     validate:"required,gt=0"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"min=1s,max=5m"`

	// BotInfo is populated at startup from GetMe; it is not read from config.
	BotInfo *models.User `mapstructure:"-"`
}

// DatabaseConfig holds the SQLite database settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// TaskConfig describes one scheduled task entry.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// SchedulerConfig maps task names to their schedule configuration.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// CommandConfig describes one entry of the bot command menu registered at startup.
type CommandConfig struct {
	Command     string `mapstructure:"command"     validate:"required"`
	Description string `mapstructure:"description" validate:"required"`
}

// MessagesConfig holds all user-visible message texts. Emoji shortcodes such
// as :heart_eyes: are expanded when the message is sent.
type MessagesConfig struct {
	Welcome           string `mapstructure:"welcome"`
	Help              string `mapstructure:"help"`
	NotRecognized     string `mapstructure:"not_recognized"`
	RegisterPrompt    string `mapstructure:"register_prompt"`
	RegisterConfirmed string `mapstructure:"register_confirmed"`
	RegisterDeclined  string `mapstructure:"register_declined"`
	ProvideMessage    string `mapstructure:"provide_message"`
	MyDataEmpty       string `mapstructure:"mydata_empty"`
	DataDeleted       string `mapstructure:"data_deleted"`
}

// Config defines the application configuration parameters for all components.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`
	Commands  []CommandConfig `mapstructure:"commands" validate:"dive"`
}

const helpText = `This bot relays messages between you and the operator.

You can execute commands from the main menu or by typing a command:

Type /start to see a welcome message

Type /mydata to see stored data about yourself

Type /deletedata to delete stored data about yourself

Type /help to see this message again`

// LoadConfig reads configuration from the given YAML file, applies defaults
// and BOT_* environment overrides, and validates the result. A missing file
// is not an error; defaults and environment variables are used instead.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		slog.Info("Configuration file not found, using defaults and environment", "path", path)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.json", true)

	// Zero-value defaults register the keys so BOT_* env overrides are
	// picked up during Unmarshal; validation still rejects empty values.
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.operator_id", 0)
	v.SetDefault("telegram.bot_name", "heraldbot")
	v.SetDefault("telegram.request_timeout", 30*time.Second)

	v.SetDefault("database.path", "storage.db")

	v.SetDefault("scheduler.tasks", map[string]TaskConfig{
		"announcement_broadcast": {Enabled: true, Schedule: "0 * * * *"},
		"db_maintenance":         {Enabled: true, Schedule: "0 4 * * *"},
	})

	v.SetDefault("messages.welcome", "Hi, {firstname}, nice to meet you!:heart_eyes:")
	v.SetDefault("messages.help", helpText)
	v.SetDefault("messages.not_recognized", "Sorry, command was not recognized")
	v.SetDefault("messages.register_prompt", "Do you really want to register?")
	v.SetDefault("messages.register_confirmed", "You pressed Yes button!")
	v.SetDefault("messages.register_declined", "You pressed No button!")
	v.SetDefault("messages.provide_message", "Please provide a message to send.")
	v.SetDefault("messages.mydata_empty", "No data is stored about you yet. Send /start to register.")
	v.SetDefault("messages.data_deleted", "Your stored data has been deleted.")

	v.SetDefault("commands", []CommandConfig{
		{Command: "start", Description: "get a welcome message"},
		{Command: "register", Description: "confirm your registration"},
		{Command: "mydata", Description: "get stored user data"},
		{Command: "deletedata", Description: "delete stored user data"},
		{Command: "help", Description: "show command info and usages"},
	})
}
