// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the openshelf CLI.
// Implements: prd001-search, prd002-saved-list, prd003-details (CLI surface).
// See docs/ARCHITECTURE § Command Surface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/openshelf/internal/logger"
	"github.com/pdiddy/openshelf/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the openshelf CLI.
var rootCmd = &cobra.Command{
	Use:   "openshelf",
	Short: "Search Open Library and keep a saved reading list",
	Long: `openshelf searches the Open Library catalog by title, author, subject, or
ISBN, renders paginated results, and keeps a local saved list of works.

Use search to query the catalog, show to view one work's details, and
saved to manage the reading list. The saved list lives in a single local
JSON file; there is no server and no account.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logger.SetVerbose()
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./openshelf.yaml or ~/.config/openshelf/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("openshelf")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "openshelf"))
		}
	}

	viper.SetEnvPrefix("OPENSHELF")
	viper.AutomaticEnv()

	viper.SetDefault("search.timeout", 15*time.Second)
	viper.SetDefault("search.limit", 20)
	viper.SetDefault("search.sort", "relevance")
	viper.SetDefault("saved.path", "saved.json")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// httpConfig assembles the shared HTTP settings from config.
func httpConfig() types.HTTPConfig {
	cfg := types.HTTPConfig{
		Timeout:   viper.GetDuration("search.timeout"),
		UserAgent: viper.GetString("search.user_agent"),
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "openshelf/" + version
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
