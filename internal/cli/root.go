// Package cli implements the rehnuma terminal client.
package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rehnuma-chat/internal/config"
)

var (
	cfgFile   string
	serverURL string
	verbose   bool

	v = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "rehnuma",
	Short: "Chat with Rehnuma from the terminal",
	Long: `rehnuma is a terminal chat client for the Rehnuma server.
Conversation history is kept locally (file, SQLite, Redis or PostgreSQL)
and the last five exchanges are sent with every message.`,
	SilenceUsage: true,
	RunE:         runChat,
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/rehnuma/config.toml)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Rehnuma server URL (overrides server_url)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(chatCmd, historyCmd, resetCmd, exportCmd, statusCmd)
}

func initConfig() {
	configDir, err := config.UserConfigDir()
	cobra.CheckErr(err)

	config.SetClientDefaults(v, configDir)
	if err := config.ReadClientConfigFile(v, cfgFile, configDir); err != nil {
		fmt.Fprintln(os.Stderr, "Error reading config:", err)
	} else if verbose && v.ConfigFileUsed() != "" {
		fmt.Fprintln(os.Stderr, "Using config file:", v.ConfigFileUsed())
	}

	if serverURL != "" {
		v.Set("server_url", serverURL)
	}
}

func loadClientConfig() (*config.ClientConfig, error) {
	return config.ClientFromViper(v)
}

// newLogger writes warnings to stderr; with --verbose it adds timestamps.
func newLogger() *log.Logger {
	var out io.Writer = os.Stderr
	flags := 0
	if verbose {
		flags = log.LstdFlags
	}
	return log.New(out, "rehnuma: ", flags)
}
