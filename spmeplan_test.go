package spmeplan_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/seplab/spmeplan"
	"github.com/seplab/spmeplan/pkg/adapters/thermotable"
	"github.com/seplab/spmeplan/pkg/conditions"
	"github.com/seplab/spmeplan/pkg/domain"
	"github.com/seplab/spmeplan/pkg/observability"
	"github.com/seplab/spmeplan/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResolver serves canned candidates keyed by CAS and CID.
type fakeResolver struct {
	byCAS map[string][]ports.Candidate
	byCID map[int]ports.Candidate
}

func (f *fakeResolver) Candidates(ctx context.Context, cas string) ([]ports.Candidate, error) {
	if c, ok := f.byCAS[cas]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: CAS %s", domain.ErrCompoundNotFound, cas)
}

func (f *fakeResolver) Properties(ctx context.Context, cid int) (ports.Candidate, error) {
	if c, ok := f.byCID[cid]; ok {
		return c, nil
	}
	return ports.Candidate{}, fmt.Errorf("%w: CID %d", domain.ErrCompoundNotFound, cid)
}

func newFakeResolver() *fakeResolver {
	ethanol := ports.Candidate{CID: 702, IUPACName: "ethanol", XLogP: -0.31, MolecularWeight: 46.07}
	toluene := ports.Candidate{CID: 1140, IUPACName: "toluene", XLogP: 2.73, MolecularWeight: 92.14}
	return &fakeResolver{
		byCAS: map[string][]ports.Candidate{
			"64-17-5":  {ethanol},
			"108-88-3": {toluene},
		},
		byCID: map[int]ports.Candidate{
			702:  ethanol,
			1140: toluene,
		},
	}
}

func newPlanner(opts ...spmeplan.Option) *spmeplan.Planner {
	base := []spmeplan.Option{
		spmeplan.WithResolver(newFakeResolver()),
		spmeplan.WithBoilingPoints(thermotable.New()),
	}
	return spmeplan.New(append(base, opts...)...)
}

func TestPlanner_ValidateCAS(t *testing.T) {
	p := spmeplan.New()

	got, err := p.ValidateCAS("64-17-5")
	require.NoError(t, err)
	assert.Equal(t, "64-17-5", got)

	_, err = p.ValidateCAS("64-17-6")
	assert.ErrorIs(t, err, domain.ErrChecksumMismatch)
}

func TestPlanner_Query(t *testing.T) {
	p := newPlanner()

	results := p.Query(context.Background(), []string{"64-17-5", "64-17-6", "50-00-0"})
	require.Len(t, results, 3)

	// Valid and known.
	assert.Equal(t, "64-17-5", results[0].CAS)
	require.Len(t, results[0].Options, 1)
	assert.Equal(t, "ethanol", results[0].Options[0].IUPACName)
	assert.Empty(t, results[0].Error)

	// Checksum failure is reported per CAS, not as a batch error.
	assert.Empty(t, results[1].Options)
	assert.NotEmpty(t, results[1].Error)

	// Valid checksum but unknown to the resolver.
	assert.Empty(t, results[2].Options)
	assert.NotEmpty(t, results[2].Error)
}

func TestPlanner_BuildDesign(t *testing.T) {
	p := spmeplan.New()

	c, err := domain.NewCompound("analyte", 120, 3.5, 150)
	require.NoError(t, err)

	plan, err := p.BuildDesign([]domain.Compound{c}, conditions.Options{}, 1)
	require.NoError(t, err)

	assert.Equal(t, domain.FiberPDMS, plan.Conditions.Fiber)
	assert.Equal(t, "3-5 min @ 250-280°C", plan.Desorption)
	require.NotNil(t, plan.Design)
	assert.Len(t, plan.Design.Rows, 25)
}

func TestPlanner_BuildDesign_EmptySet(t *testing.T) {
	p := spmeplan.New()
	_, err := p.BuildDesign(nil, conditions.Options{}, 1)
	assert.ErrorIs(t, err, conditions.ErrEmptyCompoundSet)
}

func TestPlanner_ComputePlan(t *testing.T) {
	p := newPlanner()

	plan, err := p.ComputePlan(context.Background(),
		map[string]int{"64-17-5": 702, "108-88-3": 1140},
		conditions.Options{}, 1)
	require.NoError(t, err)

	require.Len(t, plan.Compounds, 2)
	assert.Empty(t, plan.Errors)
	require.NotNil(t, plan.Design)

	// Ethanol xlogp -0.31, toluene 2.73: mixed polarity falls through to the
	// broad composite fiber. Toluene governs temperature (110.6 °C) and time
	// (MW 92.14 < 100).
	assert.Equal(t, domain.FiberDVBCARPDMS, plan.Conditions.Fiber)
	assert.Equal(t, domain.TempFortyToSixty, plan.Conditions.Temperature)
	assert.Equal(t, domain.TimeTenToTwenty, plan.Conditions.Time)
}

func TestPlanner_ComputePlan_PartialFailure(t *testing.T) {
	p := newPlanner()

	plan, err := p.ComputePlan(context.Background(),
		map[string]int{"64-17-5": 702, "50-00-0": 999999},
		conditions.Options{}, 1)
	require.NoError(t, err)

	require.Len(t, plan.Compounds, 1)
	require.Len(t, plan.Errors, 1)
	assert.Equal(t, "50-00-0", plan.Errors[0].CAS)
	assert.NotNil(t, plan.Design)
}

func TestPlanner_ComputePlan_NothingResolved(t *testing.T) {
	p := newPlanner()

	plan, err := p.ComputePlan(context.Background(),
		map[string]int{"50-00-0": 999999},
		conditions.Options{}, 1)
	require.NoError(t, err, "empty successful subset is not a computation error")

	assert.Nil(t, plan.Design, "no design computed")
	assert.Empty(t, plan.Compounds)
	require.Len(t, plan.Errors, 1)
}

func TestPlanner_ComputePlan_IonicReducesFactors(t *testing.T) {
	p := newPlanner()

	plan, err := p.ComputePlan(context.Background(),
		map[string]int{"64-17-5": 702},
		conditions.Options{Ionic: true}, 1)
	require.NoError(t, err)

	require.NotNil(t, plan.Design)
	// Salt factor dropped: k=3 → 2*3*2+1 rows.
	assert.Len(t, plan.Design.Rows, 13)
	assert.NotContains(t, plan.Design.Header, "Salt Addition (%)")
}

func TestPlanner_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	p := newPlanner(spmeplan.WithMetrics(metrics))

	_, err := p.ComputePlan(context.Background(),
		map[string]int{"64-17-5": 702, "50-00-0": 999999},
		conditions.Options{}, 1)
	require.NoError(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.CompoundsResolved))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.ResolveErrors))
}
