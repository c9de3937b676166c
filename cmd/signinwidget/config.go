package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"github.com/mmcdole/signin-widget/pkg/rank"
)

// Config holds the widget configuration
type Config struct {
	// Referral settings
	BotName string `json:"bot_name,omitempty"` // Telegram bot the referral link points to
	UserID  string `json:"user_id,omitempty"`  // Id carried in the referral link

	// Rank settings
	RankPreset string           `json:"rank_preset,omitempty" validate:"omitempty,oneof=widget ubicent"`
	RankPolicy string           `json:"rank_policy,omitempty" validate:"omitempty,oneof=highest declared"`
	Ranks      []rank.Threshold `json:"ranks,omitempty" validate:"dive"` // Overrides the preset when set

	// Content and output
	TasksFile   string `json:"tasks_file,omitempty"`   // JSON task list, built-in tasks when empty
	DisplayFile string `json:"display_file,omitempty"` // Also mirror the display region into this file

	// Logging settings
	ActionLogPath string `json:"action_log_path,omitempty"`
	AppLogPath    string `json:"app_log_path,omitempty"`
	LogLevel      string `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error panic"`
	LogMaxSize    int64  `json:"log_max_size,omitempty" validate:"gte=0"` // Bytes before the app log rotates
}

// Environment variables that override the config file
const (
	envBotName    = "SIGNINW_BOT_NAME"
	envUserID     = "SIGNINW_USER_ID"
	envRankPolicy = "SIGNINW_RANK_POLICY"
	envLogLevel   = "SIGNINW_LOG_LEVEL"
	envLogMaxSize = "SIGNINW_LOG_MAX_SIZE"
)

var validate = validator.New()

// LoadConfig loads configuration from a JSON file. An empty path leaves the
// defaults in place.
func LoadConfig(fs afero.Fs, path string, config *Config) error {
	if path == "" {
		return nil
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	// Relative paths are relative to the config file
	configDir := filepath.Dir(path)
	for _, p := range []*string{&config.TasksFile, &config.DisplayFile, &config.ActionLogPath, &config.AppLogPath} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(configDir, *p)
		}
	}

	return nil
}

// ApplyEnv overrides config fields from the process environment and, when
// envFile is set, from a dotenv file. Process variables win over the file.
func ApplyEnv(fs afero.Fs, envFile string, config *Config) error {
	fileVars := map[string]string{}
	if envFile != "" {
		f, err := fs.Open(envFile)
		if err != nil {
			return fmt.Errorf("opening env file: %w", err)
		}
		defer f.Close()

		fileVars, err = godotenv.Parse(f)
		if err != nil {
			return fmt.Errorf("parsing env file: %w", err)
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok && v != ""
	}

	if v, ok := lookup(envBotName); ok {
		config.BotName = v
	}
	if v, ok := lookup(envUserID); ok {
		config.UserID = v
	}
	if v, ok := lookup(envRankPolicy); ok {
		config.RankPolicy = v
	}
	if v, ok := lookup(envLogLevel); ok {
		config.LogLevel = v
	}
	if v, ok := lookup(envLogMaxSize); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", envLogMaxSize, err)
		}
		config.LogMaxSize = n
	}

	return nil
}

// Validate checks field values
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// RankTable returns the configured table: custom ranks when given, else the preset
func (c *Config) RankTable() (rank.Table, error) {
	if len(c.Ranks) > 0 {
		return rank.NewTable(c.Ranks...)
	}
	return rank.Preset(c.RankPreset)
}
