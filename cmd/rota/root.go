package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rota-robotics/rota/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "rota",
	Short: "Rota is a cooperative command scheduler for robots",
	Long:  `Rota runs routine files: declarative descriptions of subsystems, commands and trigger bindings, driven on a fixed control cycle.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("json", false, "Emit logs as JSON lines")
}

// newLogger builds the CLI logger from the persistent flags.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = slog.LevelDebug
	}
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return logging.NewJSON(level)
	}
	return logging.New(level)
}
