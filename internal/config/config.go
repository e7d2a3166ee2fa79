// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config resolves the effective talentrankr configuration from
// defaults, an optional YAML file, a .env file and TALENTRANKR_* environment
// variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/talentrankr/pkg/types"
)

// EnvPrefix is prepended to every environment variable key.
const EnvPrefix = "TALENTRANKR"

// envKeys are the scalar settings that may be supplied through the
// environment, e.g. TALENTRANKR_SERVER_ADDR.
var envKeys = []string{
	"scoring.weights.skills",
	"scoring.weights.experience",
	"scoring.weights.education",
	"scoring.weights.cover_letter",
	"scoring.experience.saturation_years",
	"scoring.cover_letter.ideal_min_words",
	"scoring.cover_letter.ideal_max_words",
	"scoring.cover_letter.max_words",
	"scoring.cover_letter.keywords",
	"server.addr",
	"server.max_upload_bytes",
	"server.preview_rows",
	"server.shutdown_timeout",
	"store.max_batches",
	"log.json",
	"log.debug",
}

// BindEnv configures v to read TALENTRANKR_* variables for every key in
// envKeys.
func BindEnv(v *viper.Viper) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range envKeys {
		if err := v.BindEnv(k); err != nil {
			return fmt.Errorf("binding %s: %w", k, err)
		}
	}
	return nil
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are skipped; existing variables win.
func LoadDotEnv(w io.Writer, files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", f, err)
		}
		fmt.Fprintf(w, "Loaded environment from %s\n", f)
	}
	return nil
}

// Load decodes the settings held by v over DefaultConfig and validates the
// scoring section. Lists supplied in v replace the defaults rather than
// merging with them.
func Load(v *viper.Viper) (types.Config, error) {
	cfg := types.DefaultConfig()

	err := v.Unmarshal(&cfg,
		viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)),
		func(dc *mapstructure.DecoderConfig) { dc.ZeroFields = true },
	)
	if err != nil {
		return types.Config{}, fmt.Errorf("decoding configuration: %w", err)
	}

	if err := cfg.Scoring.Validate(); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// WriteDefault writes DefaultConfig as YAML to path. An existing file is
// left untouched unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	data, err := Marshal(types.DefaultConfig())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Marshal renders cfg as YAML.
func Marshal(cfg types.Config) ([]byte, error) {
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling configuration: %w", err)
	}
	return data, nil
}
