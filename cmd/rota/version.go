package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rota-robotics/rota"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of rota",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("rota version %s\n", rota.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
