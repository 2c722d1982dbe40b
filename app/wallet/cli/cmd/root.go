// Package cmd contains the wallet commands.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	url         string
	sessionPath string
)

func init() {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	rootCmd.PersistentFlags().StringVarP(&url, "url", "u", "http://localhost:3000", "Url of the coin service.")
	rootCmd.PersistentFlags().StringVarP(&sessionPath, "session", "s", filepath.Join(home, ".zaplanje", "session"), "Path to the stored session token.")
}

var rootCmd = &cobra.Command{
	Use:           "wallet",
	Short:         "Your Zaplanje coin wallet",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the wallet command named on the command line.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
