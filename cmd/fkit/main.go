package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "fkit",
	Short: "Local data-ingestion service backed by SQLite",
	Long: `fkit accepts key/value observations over HTTP and stores them under
dynamically created projects and columns. Projects, columns and collections
are created on first reference; writes naming the same entities converge on
the same rows.`,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default fkit.toml in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the ingestion server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(configPath)
	},
}

func init() {
	runCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to fkit.toml (default: fkit.toml if present)")
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
