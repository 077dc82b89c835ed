package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rota-robotics/rota/internal/routine"
)

var validateCmd = &cobra.Command{
	Use:   "validate <routine.yaml>",
	Short: "Check a routine file without running it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := routine.Load(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s: ok (%d subsystems, %d commands, %d groups, %d triggers)\n",
			args[0], len(file.Subsystems), len(file.Commands), len(file.Groups), len(file.Triggers))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
