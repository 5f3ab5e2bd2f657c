package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avelar-dev/itinero"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the itinero version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("itinero", itinero.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
