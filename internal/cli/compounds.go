package cli

import (
	"fmt"
	"os"

	"github.com/seplab/spmeplan/pkg/conditions"
	"github.com/seplab/spmeplan/pkg/domain"
	"gopkg.in/yaml.v3"
)

// PlanFile is the YAML input for the plan command: the compound set plus the
// sample flags and design parameters.
type PlanFile struct {
	Compounds    []domain.Compound  `yaml:"compounds"`
	Properties   conditions.Options `yaml:"properties"`
	CenterPoints *int               `yaml:"center_points"`
}

// LoadPlanFile reads and validates a plan file. Every compound record must
// satisfy the construction invariants; the first invalid record fails the
// whole load.
func LoadPlanFile(path string) (*PlanFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan file: %w", err)
	}

	var pf PlanFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse plan file: %w", err)
	}
	if len(pf.Compounds) == 0 {
		return nil, fmt.Errorf("plan file %s lists no compounds", path)
	}
	for _, c := range pf.Compounds {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("plan file %s: %w", path, err)
		}
	}
	return &pf, nil
}
