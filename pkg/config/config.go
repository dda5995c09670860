// Package config loads typed configuration structs from the environment.
// An optional .env file (default ./.env, overridable via -env) is exported
// into the process environment once per process, then envconfig fills the
// struct. Variables already present in the environment win over file values.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

var (
	envFilePath string
	flagOnce    sync.Once

	exportOnce sync.Once
	exportErr  error
)

// MustNew is New for process startup: configuration that cannot load is a
// boot failure.
func MustNew[T any](prefix string) *T {
	conf, err := New[T](prefix)
	if err != nil {
		panic(err)
	}
	return conf
}

// New exports the env file (if any) and fills a T from variables named
// PREFIX_FIELD per its envconfig tags.
func New[T any](prefix string) (*T, error) {
	if err := exportEnvFile(); err != nil {
		return nil, err
	}

	var conf T
	if err := envconfig.Process(prefix, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

func exportEnvFile() error {
	exportOnce.Do(func() {
		path, explicit := envPath()
		settings, err := readEnvFile(path, explicit)
		if err != nil {
			exportErr = fmt.Errorf("load env file %s: %w", path, err)
			return
		}
		exportErr = applySettings("", settings)
	})
	return exportErr
}

// envPath returns the file to read and whether the caller named it
// explicitly. A missing default file is fine; a missing explicit one is not.
func envPath() (string, bool) {
	flagOnce.Do(func() {
		if flag.Lookup("env") == nil {
			flag.StringVar(&envFilePath, "env", "", "path to .env file")
		}
		if !flag.Parsed() {
			flag.Parse()
		}
	})
	if p := strings.TrimSpace(envFilePath); p != "" {
		return p, true
	}
	return ".env", false
}

func readEnvFile(path string, explicit bool) (map[string]any, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil, nil
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	return v.AllSettings(), nil
}

// applySettings exports file values under upper-snake names. Nested keys
// flatten with underscores; variables already set in the environment keep
// their value.
func applySettings(prefix string, settings map[string]any) error {
	for key, value := range settings {
		name := strings.ToUpper(key)
		if prefix != "" {
			name = prefix + "_" + name
		}
		if nested, ok := value.(map[string]any); ok {
			if err := applySettings(name, nested); err != nil {
				return err
			}
			continue
		}
		if _, exists := os.LookupEnv(name); exists {
			continue
		}
		if err := os.Setenv(name, fmt.Sprint(value)); err != nil {
			return err
		}
	}
	return nil
}
