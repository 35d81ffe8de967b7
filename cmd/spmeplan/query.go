package main

import (
	"fmt"
	"os"

	"github.com/seplab/spmeplan"
	"github.com/seplab/spmeplan/internal/cli"
	"github.com/seplab/spmeplan/pkg/adapters/pubchem"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query CAS...",
	Short: "Resolve CAS numbers to compound candidates via PubChem",
	Long: `Validates each CAS number and looks up its candidate compounds on
PubChem, printing the CID, IUPAC name, xLogP and molecular weight of each.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.Flags().GetBool("debug")
		baseURL, _ := cmd.Flags().GetString("pubchem-url")

		logger := cli.CreateLogger(debug)

		resolverOpts := []pubchem.Option{pubchem.WithLogger(logger)}
		if baseURL != "" {
			resolverOpts = append(resolverOpts, pubchem.WithBaseURL(baseURL))
		}

		planner := spmeplan.New(
			spmeplan.WithResolver(pubchem.New(resolverOpts...)),
			spmeplan.WithLogger(logger),
		)

		cli.PrintSystemMessage("Resolving %d CAS number(s) via PubChem", len(args))

		failed := false
		for _, result := range planner.Query(cmd.Context(), args) {
			if result.Error != "" {
				fmt.Printf("%s: %s\n", result.CAS, result.Error)
				failed = true
				continue
			}
			fmt.Printf("%s:\n", result.CAS)
			for _, c := range result.Options {
				fmt.Printf("  CID %d | %s | xLogP: %g | MW: %g\n",
					c.CID, c.IUPACName, c.XLogP, c.MolecularWeight)
			}
		}
		if failed {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().String("pubchem-url", "", "Override the PubChem PUG REST base URL")
}
