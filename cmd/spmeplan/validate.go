package main

import (
	"fmt"
	"os"

	"github.com/seplab/spmeplan"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate CAS...",
	Short: "Check CAS Registry Numbers for validity",
	Long:  `Validates each CAS number's format and checksum digit without contacting any remote service.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		planner := spmeplan.New()

		failed := false
		for _, cas := range args {
			clean, err := planner.ValidateCAS(cas)
			if err != nil {
				fmt.Printf("%s: %v ❌\n", cas, err)
				failed = true
				continue
			}
			fmt.Printf("%s: valid ✅\n", clean)
		}
		if failed {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
