package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config is the resolved worklog configuration.
type Config interface {
	// BasePath is the directory holding the snapshot.
	BasePath() string
	// Weekends reports whether week views include Saturday and Sunday.
	Weekends() bool
	LogLevel() string
	// LogFile is an optional path for a rotated JSON log.
	LogFile() string
}

// LoadConfig reads .worklog.yaml from WORKLOG_CONFIG_PATH, the working
// directory or $HOME, then applies WORKLOG_* environment overrides. A missing file
// is not an error.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", "~/.worklog.db")
	v.SetDefault("weekends", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetConfigName(".worklog") // .yaml is implicit
	v.SetEnvPrefix("WORKLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("WORKLOG_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	v.AddConfigPath("$HOME")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	return &fileConfig{
		Path:         path,
		ShowWeekends: v.GetBool("weekends"),
		Level:        v.GetString("log.level"),
		File:         v.GetString("log.file"),
	}, nil
}

type fileConfig struct {
	Path         string `json:"path"`
	ShowWeekends bool   `json:"weekends"`
	Level        string `json:"logLevel"`
	File         string `json:"logFile"`
}

func (f *fileConfig) BasePath() string { return f.Path }
func (f *fileConfig) Weekends() bool   { return f.ShowWeekends }
func (f *fileConfig) LogLevel() string { return f.Level }
func (f *fileConfig) LogFile() string  { return f.File }

// StaticConfig is a Config with fixed values, used by tests and callers that
// resolve settings themselves.
type StaticConfig struct {
	Path         string
	ShowWeekends bool
	Level        string
	File         string
}

func (s StaticConfig) BasePath() string { return s.Path }
func (s StaticConfig) Weekends() bool   { return s.ShowWeekends }
func (s StaticConfig) LogLevel() string { return s.Level }
func (s StaticConfig) LogFile() string  { return s.File }
