/*
Package spmeplan plans Solid-Phase Microextraction (SPME) experiments.

Given the physicochemical properties of one or more target compounds, the
planner validates CAS Registry Numbers, derives categorical experimental
parameters (fiber coating, extraction temperature, extraction time, salt
addition, agitation rate) from literature-derived heuristic thresholds, and
expands the selected levels into a Box-Behnken experimental design ready for
laboratory execution.

# Architecture

The decision-and-design core is pure computation, split across pkg/domain
(compound records, CAS validation, categorical parameters), pkg/conditions
(the decision rules) and pkg/doe (Box-Behnken generation). External
collaborators sit behind the interfaces in pkg/ports: compound resolution
(pkg/adapters/pubchem), boiling point lookup (pkg/adapters/thermotable) and
session storage (pkg/adapters/memory, pkg/adapters/redis). This package ties
them together in a Planner facade used by the CLI, the HTTP API and the MCP
adapter.

# Usage

	planner := spmeplan.New()

	compounds := []domain.Compound{ ... }
	plan, err := planner.BuildDesign(compounds, conditions.Options{}, 1)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(plan.Conditions.Fiber)
	for _, row := range plan.Design.Rows {
		fmt.Println(row)
	}

With a resolver configured, ComputePlan drives the full pipeline from CAS
selections to the finished design, collecting per-compound failures without
aborting the batch.
*/
package spmeplan
