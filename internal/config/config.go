// Package config loads the CLI configuration from .fermion.yaml, the
// environment and .env files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/mitranim/fermion"
)

// AppFs is the filesystem used for config and .env lookups.
var AppFs = afero.NewOsFs()

const (
	FileName  = `.fermion`
	EnvPrefix = `FERMION`

	KeyBind  = `bind`
	KeyColor = `color`
)

// Config holds the CLI configuration.
type Config struct {
	Bind  fermion.BindStyle
	Color bool

	// Path of the config file that was read, if any.
	File string
}

// Options control where Load looks for configuration.
type Options struct {
	// Directory searched for .fermion.yaml and .env before the home directory.
	Dir string

	// Explicit config file. Overrides the search.
	File string
}

/*
Load reads the configuration. Precedence, highest first: FERMION_* environment
variables (including those set by .env and .env.local), the config file,
defaults. A missing config file is fine.
*/
func Load(opts Options) (*Config, error) {
	if opts.Dir == `` {
		opts.Dir = `.`
	}

	if err := loadEnv(opts.Dir); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetFs(AppFs)
	v.SetDefault(KeyBind, fermion.BindNamed.String())
	v.SetDefault(KeyColor, true)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if opts.File != `` {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType(`yaml`)
		v.AddConfigPath(opts.Dir)
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != `` || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	bind, err := fermion.ParseBindStyle(v.GetString(KeyBind))
	if err != nil {
		return nil, fmt.Errorf("invalid %q setting: %w", KeyBind, err)
	}

	return &Config{
		Bind:  bind,
		Color: v.GetBool(KeyColor),
		File:  v.ConfigFileUsed(),
	}, nil
}

// loadEnv applies .env, then .env.local, without overriding variables that
// were already set before loading.
func loadEnv(dir string) error {
	preset := map[string]bool{}
	for _, pair := range os.Environ() {
		key, _, _ := strings.Cut(pair, `=`)
		preset[key] = true
	}

	for _, name := range []string{`.env`, `.env.local`} {
		path := filepath.Join(dir, name)

		src, err := afero.ReadFile(AppFs, path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		vars, err := godotenv.Parse(bytes.NewReader(src))
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}

		for key, val := range vars {
			if preset[key] {
				continue
			}
			if err := os.Setenv(key, val); err != nil {
				return err
			}
		}
	}
	return nil
}
