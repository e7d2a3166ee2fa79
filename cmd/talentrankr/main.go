// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the talentrankr CLI. It ranks
// applicant files locally, prints saved rankings, and serves the HTTP API.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/talentrankr/internal/config"
	"github.com/pdiddy/talentrankr/internal/engine"
	"github.com/pdiddy/talentrankr/internal/secrets"
	"github.com/pdiddy/talentrankr/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds keys loaded from .secrets/ at startup.
var loadedSecrets secrets.Secrets

var rootCmd = &cobra.Command{
	Use:   "talentrankr",
	Short: "Score and rank job applicants",
	Long: `talentrankr scores applicants on skills, experience, education and cover
letter quality, combines the scores with configurable weights, and ranks the
batch. Use rank for a one-off file, report to review a saved ranking, and
serve to expose the engine over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(dir, os.Stderr)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", s.Keys())
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./talentrankr.yaml or ~/.config/talentrankr/talentrankr.yaml)")
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.PersistentFlags().String("secrets-dir", secrets.DefaultDir, "directory of secret files")
}

func initConfig() {
	envFile, _ := rootCmd.PersistentFlags().GetString("env-file")
	if err := config.LoadDotEnv(os.Stderr, envFile); err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("talentrankr")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "talentrankr"))
		}
	}

	if err := config.BindEnv(viper.GetViper()); err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig returns the effective configuration. Scoring errors are fatal
// for every command that scores.
func loadConfig() (types.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return types.Config{}, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}

// newEngine builds the scoring engine. A rejected configuration gets a hint
// pointing at where scoring settings come from.
func newEngine(sc types.ScoringConfig) (*engine.Engine, error) {
	eng, err := engine.New(sc)
	if engine.IsConfigError(err) {
		return nil, fmt.Errorf("%w (check scoring flags, the config file and TALENTRANKR_* variables; see 'talentrankr config show')", err)
	}
	if err != nil {
		return nil, err
	}
	return eng, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
