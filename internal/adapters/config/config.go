package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".contentkit"

	keyContentAPI   = "content_api.base_url"
	keyAccountsAPI  = "accounts_api.base_url"
	keyHTTPTimeout  = "http.timeout"
	keyDebounce     = "search.debounce"
	keyScrollDelay  = "generation.scroll_delay"
	keyDownloadsDir = "downloads.dir"
	keyLogLevel     = "log.level"
	keyExtraWords   = "moderation.extra_words"
	keyToolsPath    = "tools.path"
	keySessionPath  = "session.path"
	keySecretsDir   = "secrets.dir"
)

// Config is the resolved client configuration.
type Config struct {
	Dir            string        `validate:"required"`
	ContentAPI     string        `validate:"required,url"`
	AccountsAPI    string        `validate:"required,url"`
	HTTPTimeout    time.Duration `validate:"gt=0"`
	SearchDebounce time.Duration `validate:"gt=0"`
	ScrollDelay    time.Duration `validate:"gte=0"`
	DownloadsDir   string        `validate:"required"`
	LogLevel       string        `validate:"oneof=debug info warn error"`
	ExtraWords     []string
	ToolsPath      string `validate:"required"`
	SessionPath    string `validate:"required"`
	SecretsDir     string `validate:"required"`
}

var validate = validator.New()

// Load reads ~/.contentkit/config.toml when present and applies CK_* environment overrides.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}
	dir := filepath.Join(homeDir, configDir)

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(dir)

	v.SetDefault(keyContentAPI, "https://api.contentkit.app/content")
	v.SetDefault(keyAccountsAPI, "https://api.contentkit.app/accounts")
	v.SetDefault(keyHTTPTimeout, "30s")
	v.SetDefault(keyDebounce, "300ms")
	v.SetDefault(keyScrollDelay, "150ms")
	v.SetDefault(keyDownloadsDir, filepath.Join(homeDir, "Downloads"))
	v.SetDefault(keyLogLevel, "warn")
	v.SetDefault(keyExtraWords, []string{})
	v.SetDefault(keyToolsPath, filepath.Join(dir, "tools.toml"))
	v.SetDefault(keySessionPath, filepath.Join(dir, "session.toml"))
	v.SetDefault(keySecretsDir, filepath.Join(dir, "secrets"))

	v.SetEnvPrefix("CK")
	for key, env := range map[string]string{
		keyContentAPI:   "CK_CONTENT_API",
		keyAccountsAPI:  "CK_ACCOUNTS_API",
		keyLogLevel:     "CK_LOG_LEVEL",
		keyDownloadsDir: "CK_DOWNLOADS_DIR",
		keyDebounce:     "CK_DEBOUNCE",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		Dir:            dir,
		ContentAPI:     strings.TrimSpace(v.GetString(keyContentAPI)),
		AccountsAPI:    strings.TrimSpace(v.GetString(keyAccountsAPI)),
		HTTPTimeout:    v.GetDuration(keyHTTPTimeout),
		SearchDebounce: v.GetDuration(keyDebounce),
		ScrollDelay:    v.GetDuration(keyScrollDelay),
		DownloadsDir:   expandHome(v.GetString(keyDownloadsDir), homeDir),
		LogLevel:       strings.ToLower(strings.TrimSpace(v.GetString(keyLogLevel))),
		ExtraWords:     v.GetStringSlice(keyExtraWords),
		ToolsPath:      expandHome(v.GetString(keyToolsPath), homeDir),
		SessionPath:    expandHome(v.GetString(keySessionPath), homeDir),
		SecretsDir:     expandHome(v.GetString(keySecretsDir), homeDir),
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func Validate(value any) error {
	if err := validate.Struct(value); err != nil {
		return formatValidationError(err)
	}

	return nil
}

func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, formatFieldError(fieldErr))
	}

	return fmt.Errorf("invalid configuration: %s", strings.Join(messages, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "gt", "gte", "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func expandHome(path, homeDir string) string {
	path = strings.TrimSpace(path)
	if path == "~" {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}

	return path
}
