// Package cli implements the authlink command tree.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ppiankov/authlink/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "authlink",
	Short: "Authlink - authority records to candidate knowledge-base statements",
	Long: `Authlink converts library authority records (VIAF, GND, ISNI, LOC, IdRef)
into candidate statements for a Wikibase-style knowledge base.

It fetches the machine-readable record, extracts the fields its source
schema describes, maps them onto properties and items, and optionally
checks an existing knowledge base so already-present statements are not
proposed again.

Authlink only proposes. It never writes to the knowledge base; every
result is a draft for a human reviewer.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Authlink.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("authlink v0.3.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.authlink/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(filepath.Join(home, ".authlink"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match AUTHLINK_*
	viper.SetEnvPrefix("AUTHLINK")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the runtime configuration: defaults, then config
// file and AUTHLINK_* environment via viper. Flags are applied by the
// commands on top of the returned value.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}
	if cfg.Cache.Dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("find home directory: %w", err)
		}
		cfg.Cache.Dir = filepath.Join(home, ".authlink", "cache")
	}
	cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.Output.Verbose = verbose
	return cfg, nil
}
