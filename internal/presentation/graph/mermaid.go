// Package graph renders a recommended plan as a Mermaid flowchart for
// embedding in lab notebooks and markdown reports.
package graph

import (
	"fmt"
	"strings"

	"github.com/seplab/spmeplan/pkg/conditions"
	"github.com/seplab/spmeplan/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart from the compound set and the
// recommended conditions. Compounds feed a central decision node, which fans
// out to the selected fiber and one node per active design factor. The
// desorption profile hangs off the fiber with a dotted edge.
func GenerateMermaid(compounds []domain.Compound, conds conditions.Conditions) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for i, c := range compounds {
		label := fmt.Sprintf("%s<br/>BP %g °C | xLogP %g | MW %g",
			escapeMermaidLabel(c.Name), c.BoilingPointC, c.XLogP, c.MolecularWeight)
		sb.WriteString(fmt.Sprintf("    c%d[/\"%s\"/]\n", i, label))
		sb.WriteString(fmt.Sprintf("    c%d --> rules\n", i))
	}

	sb.WriteString("    rules((\"decision rules\"))\n")

	fiberID := sanitizeMermaidID(string(conds.Fiber))
	sb.WriteString(fmt.Sprintf("    rules --> %s[[\"Fiber: %s\"]]\n", fiberID, conds.Fiber))
	sb.WriteString(fmt.Sprintf("    %s -. desorption .-> des[\"%s\"]\n", fiberID, conds.Desorption()))

	for i, level := range []string{
		"Extraction Temp: " + conds.Temperature.String(),
		"Extraction Time: " + conds.Time.String(),
		"Salt Addition: " + conds.Salt.String(),
		"Agitation Rate: " + conds.Agitation.String(),
	} {
		sb.WriteString(fmt.Sprintf("    rules --> f%d[\"%s\"]\n", i, level))
	}

	return sb.String()
}

func escapeMermaidLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "&", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
