package main

import (
	"fmt"

	"github.com/seplab/spmeplan"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of spmeplan",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("spmeplan version %s\n", spmeplan.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
