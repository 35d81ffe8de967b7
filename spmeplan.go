package spmeplan

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/seplab/spmeplan/internal/logging"
	"github.com/seplab/spmeplan/pkg/conditions"
	"github.com/seplab/spmeplan/pkg/doe"
	"github.com/seplab/spmeplan/pkg/domain"
	"github.com/seplab/spmeplan/pkg/observability"
	"github.com/seplab/spmeplan/pkg/ports"
)

// Version is the library version, reported by the CLI and the adapters.
var Version = "0.1.0"

// DefaultCenterPoints is the center point repeat count used when the caller
// does not specify one.
const DefaultCenterPoints = 1

// Planner is the high-level entry point for the spmeplan library. It wraps
// the pure decision-and-design core together with the external collaborators
// (resolver, boiling point source) behind one API.
type Planner struct {
	resolver ports.Resolver
	bp       ports.BoilingPointSource
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// Option defines a functional option for configuring the Planner.
type Option func(*Planner)

// WithResolver injects the compound resolver used by Query and ComputePlan.
func WithResolver(r ports.Resolver) Option {
	return func(p *Planner) {
		p.resolver = r
	}
}

// WithBoilingPoints injects the boiling point source.
func WithBoilingPoints(bp ports.BoilingPointSource) Option {
	return func(p *Planner) {
		p.bp = bp
	}
}

// WithLogger sets a custom structured logger for the Planner.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Planner) {
		p.logger = logger
	}
}

// WithMetrics attaches Prometheus collectors to the Planner.
func WithMetrics(m *observability.Metrics) Option {
	return func(p *Planner) {
		p.metrics = m
	}
}

// New creates a Planner. Without a resolver, Query and ComputePlan are
// unavailable; ValidateCAS and BuildDesign work standalone.
func New(opts ...Option) *Planner {
	p := &Planner{
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ValidateCAS checks the format and check digit of a CAS Registry Number.
func (p *Planner) ValidateCAS(cas string) (string, error) {
	return domain.SanitizeCAS(cas)
}

// QueryResult holds the resolution outcome for one CAS number. Either
// Options or Error is set, never both.
type QueryResult struct {
	CAS     string            `json:"cas"`
	Options []ports.Candidate `json:"options,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// Query resolves a batch of CAS numbers to candidate compounds. Failures are
// reported per CAS; one bad identifier never aborts the batch.
func (p *Planner) Query(ctx context.Context, casList []string) []QueryResult {
	results := make([]QueryResult, 0, len(casList))

	for _, cas := range casList {
		result := QueryResult{CAS: cas}

		sanitized, err := domain.SanitizeCAS(cas)
		if err == nil && p.resolver == nil {
			err = fmt.Errorf("no resolver configured")
		}
		if err == nil {
			result.Options, err = p.resolver.Candidates(ctx, sanitized)
		}
		if err != nil {
			p.logger.Warn("CAS resolution failed", "cas", cas, "err", err)
			if p.metrics != nil {
				p.metrics.ResolveErrors.Inc()
			}
			result.Error = err.Error()
		} else if p.metrics != nil {
			p.metrics.CompoundsResolved.Add(float64(len(result.Options)))
		}

		results = append(results, result)
	}
	return results
}

// CompoundError reports a per-compound resolution failure inside a plan
// computation.
type CompoundError struct {
	CAS   string `json:"cas,omitempty"`
	CID   int    `json:"cid,omitempty"`
	Error string `json:"error"`
}

// Plan is the outcome of a design computation. Design is nil when no
// compound resolved successfully; Errors then explains why. A nil Design
// with a populated Errors slice is "no design computed", distinct from a
// computation failure (which BuildDesign and ComputePlan return as an error).
type Plan struct {
	Compounds  []domain.Compound     `json:"compounds"`
	Conditions conditions.Conditions `json:"conditions"`
	Desorption string                `json:"desorption,omitempty"`
	Design     *doe.Table            `json:"design,omitempty"`
	Errors     []CompoundError       `json:"errors,omitempty"`
}

// BuildDesign runs the decision rules over already-resolved compounds and
// expands the selected levels into a Box-Behnken design.
func (p *Planner) BuildDesign(compounds []domain.Compound, opts conditions.Options, centerPoints int) (*Plan, error) {
	conds, err := conditions.Recommend(compounds, opts)
	if err != nil {
		return nil, err
	}

	table, err := doe.Build(conds.Bands(), conds.Header(), centerPoints)
	if err != nil {
		return nil, err
	}

	if p.metrics != nil {
		p.metrics.DesignsComputed.WithLabelValues(string(conds.Fiber)).Inc()
	}
	p.logger.Info("Design computed",
		"compounds", len(compounds),
		"fiber", conds.Fiber,
		"runs", len(table.Rows),
	)

	return &Plan{
		Compounds:  compounds,
		Conditions: conds,
		Desorption: conds.Desorption(),
		Design:     &table,
	}, nil
}

// ComputePlan drives the full pipeline: resolve each selected CID, look up
// boiling points, then run the rules and the design generator over the
// successfully resolved subset. selection maps CAS numbers to the CID the
// user picked. Per-compound failures are collected in Plan.Errors; an empty
// successful subset yields a Plan with a nil Design rather than an error.
func (p *Planner) ComputePlan(ctx context.Context, selection map[string]int, opts conditions.Options, centerPoints int) (*Plan, error) {
	if p.resolver == nil {
		return nil, fmt.Errorf("no resolver configured")
	}
	if p.bp == nil {
		return nil, fmt.Errorf("no boiling point source configured")
	}

	// Deterministic processing order; map iteration is randomized.
	casList := make([]string, 0, len(selection))
	for cas := range selection {
		casList = append(casList, cas)
	}
	sort.Strings(casList)

	var compounds []domain.Compound
	var errs []CompoundError

	for _, cas := range casList {
		cid := selection[cas]

		compound, err := p.resolveCompound(ctx, cid)
		if err != nil {
			p.logger.Warn("Compound resolution failed", "cas", cas, "cid", cid, "err", err)
			if p.metrics != nil {
				p.metrics.ResolveErrors.Inc()
			}
			errs = append(errs, CompoundError{CAS: cas, CID: cid, Error: err.Error()})
			continue
		}
		if p.metrics != nil {
			p.metrics.CompoundsResolved.Inc()
		}
		compounds = append(compounds, compound)
	}

	if len(compounds) == 0 {
		p.logger.Warn("No compound resolved; no design computed", "selection", len(selection))
		return &Plan{Errors: errs}, nil
	}

	plan, err := p.BuildDesign(compounds, opts, centerPoints)
	if err != nil {
		return nil, err
	}
	plan.Errors = errs
	return plan, nil
}

func (p *Planner) resolveCompound(ctx context.Context, cid int) (domain.Compound, error) {
	candidate, err := p.resolver.Properties(ctx, cid)
	if err != nil {
		return domain.Compound{}, err
	}

	bp, err := p.bp.BoilingPointC(candidate.IUPACName)
	if err != nil {
		return domain.Compound{}, err
	}

	return domain.NewCompound(candidate.IUPACName, bp, candidate.XLogP, candidate.MolecularWeight)
}
