package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/seplab/spmeplan"
	"github.com/seplab/spmeplan/internal/cli"
	"github.com/seplab/spmeplan/internal/presentation/graph"
	"github.com/seplab/spmeplan/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Recommend conditions and generate a screening design",
	Long: `Reads a YAML plan file listing compounds with their properties,
recommends extraction conditions and prints the Box-Behnken design.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		asJSON, _ := cmd.Flags().GetBool("json")
		asGraph, _ := cmd.Flags().GetBool("graph")
		debug, _ := cmd.Flags().GetBool("debug")

		pf, err := cli.LoadPlanFile(file)
		if err != nil {
			return err
		}

		centerPoints := spmeplan.DefaultCenterPoints
		if pf.CenterPoints != nil {
			centerPoints = *pf.CenterPoints
		}
		if cmd.Flags().Changed("center") {
			centerPoints, _ = cmd.Flags().GetInt("center")
		}

		planner := spmeplan.New(spmeplan.WithLogger(cli.CreateLogger(debug)))
		plan, err := planner.BuildDesign(pf.Compounds, pf.Properties, centerPoints)
		if err != nil {
			return err
		}

		switch {
		case asJSON:
			return json.NewEncoder(os.Stdout).Encode(plan)
		case asGraph:
			fmt.Println(graph.GenerateMermaid(plan.Compounds, plan.Conditions))
			return nil
		}

		tui.PrintBanner()
		fmt.Print(cli.RenderMarkdown(buildReport(plan)))
		return nil
	},
}

func buildReport(plan *spmeplan.Plan) string {
	var sb strings.Builder

	sb.WriteString("## Compounds\n\n")
	for _, c := range plan.Compounds {
		sb.WriteString("- " + c.String() + "\n")
	}

	sb.WriteString("\n## Recommended Conditions\n\n")
	sb.WriteString(fmt.Sprintf("- Fiber: %s\n", plan.Conditions.Fiber))
	sb.WriteString(fmt.Sprintf("- Extraction Temp: %s\n", plan.Conditions.Temperature))
	sb.WriteString(fmt.Sprintf("- Extraction Time: %s\n", plan.Conditions.Time))
	sb.WriteString(fmt.Sprintf("- Salt Addition: %s\n", plan.Conditions.Salt))
	sb.WriteString(fmt.Sprintf("- Agitation Rate: %s\n", plan.Conditions.Agitation))
	sb.WriteString(fmt.Sprintf("- Desorption: %s\n", plan.Desorption))

	sb.WriteString(fmt.Sprintf("\n## Screening Design (%d experiments)\n\n", len(plan.Design.Rows)))
	sb.WriteString(plan.Design.Markdown())
	return sb.String()
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().StringP("file", "f", "", "YAML plan file listing compounds and sample properties")
	planCmd.Flags().Int("center", spmeplan.DefaultCenterPoints, "Number of center point replicates")
	planCmd.Flags().Bool("json", false, "Emit the plan as JSON")
	planCmd.Flags().Bool("graph", false, "Emit a Mermaid flowchart of the decision outcome")
	planCmd.MarkFlagRequired("file")
}
