// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the bloomz CLI: GC-MS peak
// annotation against a reference compound library, with confidence
// scoring, grading, and result export.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bloomz/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the bloomz CLI.
var rootCmd = &cobra.Command{
	Use:   "bloomz",
	Short: "Annotate GC-MS peaks against a reference compound library",
	Long: `bloomz matches observed chromatography/MS peaks (retention time and
mass-to-charge) against a reference compound library and produces ranked,
confidence-scored identifications with a discrete grade per peak.

Each stage is a subcommand: annotate scores a peak table, library manages
the reference compound store, and results re-filters a saved run.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./bloomz.yaml or ~/.config/bloomz/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("bloomz")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "bloomz"))
		}
	}

	viper.SetEnvPrefix("BLOOMZ")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// scoringConfig builds the run's ScoringConfig: defaults, overridden by
// any scoring.* keys from the config file or environment.
func scoringConfig() types.ScoringConfig {
	cfg := types.DefaultScoringConfig()

	setFloat := func(key string, dst *float64) {
		if viper.IsSet(key) {
			*dst = viper.GetFloat64(key)
		}
	}
	setFloat("scoring.mass_tolerance", &cfg.MassTolerance)
	setFloat("scoring.rt_ref_tolerance", &cfg.RTRefTolerance)
	setFloat("scoring.rt_ref_match_threshold", &cfg.RTRefMatchThreshold)
	setFloat("scoring.rt_heavy_early_strength", &cfg.RTHeavyEarlyStrength)
	setFloat("scoring.expected_rt_a", &cfg.ExpectedRTA)
	setFloat("scoring.expected_rt_b", &cfg.ExpectedRTB)
	setFloat("scoring.weight_mass", &cfg.WeightMass)
	setFloat("scoring.weight_name", &cfg.WeightName)
	setFloat("scoring.weight_manual_lib", &cfg.WeightManualLib)
	setFloat("scoring.weight_plausibility", &cfg.WeightPlausibility)
	setFloat("scoring.plausibility_neutral", &cfg.PlausibilityNeutral)
	if viper.IsSet("scoring.top_k") {
		cfg.TopK = viper.GetInt("scoring.top_k")
	}

	return cfg
}

// viperStringSlice reads a string list from the config file or
// environment, returning nil when unset.
func viperStringSlice(key string) []string {
	if !viper.IsSet(key) {
		return nil
	}
	return viper.GetStringSlice(key)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
