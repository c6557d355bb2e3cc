package schedule_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spiderflow/pisdf/expr"
	"github.com/spiderflow/pisdf/fifo"
	"github.com/spiderflow/pisdf/pisdf"
	"github.com/spiderflow/pisdf/platform"
	"github.com/spiderflow/pisdf/schedule"
)

func rate(t *testing.T, text string) *expr.Expression {
	t.Helper()
	e, err := expr.Parse(text, expr.EnvFunc(func(string) (int64, bool, error) {
		return 0, false, expr.ErrUnknownSymbol
	}))
	require.NoError(t, err)
	return e
}

func noParams() expr.Environment {
	return expr.EnvFunc(func(string) (int64, bool, error) { return 0, false, expr.ErrUnknownSymbol })
}

func twoPEPlatform(t *testing.T) *platform.Description {
	t.Helper()
	d, err := platform.Load(strings.NewReader(`
clusters:
  - name: host
    memory: shared
    pes:
      - name: pe0
        type: cpu
      - name: pe1
        type: cpu
`))
	require.NoError(t, err)
	return d
}

func uniformCost(d time.Duration) schedule.UniformCostModel {
	return schedule.UniformCostModel{Default: d, PerTokenComm: time.Microsecond}
}

func TestListSchedule_IndependentTasksFillBothPEs(t *testing.T) {
	g := pisdf.NewGraph("g")
	pisdf.NewVertex(g, "a", pisdf.Normal)
	pisdf.NewVertex(g, "b", pisdf.Normal)

	sched, err := schedule.ListSchedule(g, twoPEPlatform(t), uniformCost(time.Millisecond), nil)
	require.NoError(t, err)
	require.Len(t, sched.Assignments, 2)
	require.NotEqual(t, sched.Assignments[0].PE, sched.Assignments[1].PE)
}

func TestListSchedule_RespectsPrecedence(t *testing.T) {
	g := pisdf.NewGraph("g")
	a, _ := pisdf.NewVertex(g, "a", pisdf.Normal)
	b, _ := pisdf.NewVertex(g, "b", pisdf.Normal)
	_, err := pisdf.NewEdge(g, a, 0, rate(t, "2"), b, 0, rate(t, "2"))
	require.NoError(t, err)

	sched, err := schedule.ListSchedule(g, twoPEPlatform(t), uniformCost(time.Millisecond), nil)
	require.NoError(t, err)
	aa, _ := sched.For(a)
	ba, _ := sched.For(b)
	require.LessOrEqual(t, aa.Finish, ba.Start)
}

func TestListSchedule_PersistentDelayDoesNotGateScheduling(t *testing.T) {
	g := pisdf.NewGraph("g")
	a, _ := pisdf.NewVertex(g, "a", pisdf.Normal)
	b, _ := pisdf.NewVertex(g, "b", pisdf.Normal)
	e, err := pisdf.NewEdge(g, a, 0, rate(t, "2"), b, 0, rate(t, "2"))
	require.NoError(t, err)
	pisdf.NewPersistentDelay(e, rate(t, "2"))

	sched, err := schedule.ListSchedule(g, twoPEPlatform(t), uniformCost(time.Millisecond), nil)
	require.NoError(t, err)
	aa, _ := sched.For(a)
	ba, _ := sched.For(b)
	require.Equal(t, time.Duration(0), aa.Start)
	require.Equal(t, time.Duration(0), ba.Start)
}

func TestGreedyEFT_PicksFasterPathAcrossPEs(t *testing.T) {
	g := pisdf.NewGraph("g")
	a, _ := pisdf.NewVertex(g, "a", pisdf.Normal)
	b, _ := pisdf.NewVertex(g, "b", pisdf.Normal)
	c, _ := pisdf.NewVertex(g, "c", pisdf.Normal)
	_, err := pisdf.NewEdge(g, a, 0, rate(t, "2"), b, 0, rate(t, "2"))
	require.NoError(t, err)
	_, err = pisdf.NewEdge(g, a, 1, rate(t, "2"), c, 0, rate(t, "2"))
	require.NoError(t, err)

	sched, err := schedule.GreedyEFT(g, twoPEPlatform(t), uniformCost(time.Millisecond), nil)
	require.NoError(t, err)
	require.Len(t, sched.Assignments, 3)
	require.LessOrEqual(t, sched.Makespan(), 2*time.Millisecond)
}

func TestListSchedule_UnknownDurationFails(t *testing.T) {
	g := pisdf.NewGraph("g")
	pisdf.NewVertex(g, "a", pisdf.Normal)

	_, err := schedule.ListSchedule(g, twoPEPlatform(t), schedule.UniformCostModel{}, nil)
	require.ErrorIs(t, err, schedule.ErrDurationUnknown)
}

func TestListSchedule_NoPEsFails(t *testing.T) {
	g := pisdf.NewGraph("g")
	pisdf.NewVertex(g, "a", pisdf.Normal)
	empty := &platform.Description{}

	_, err := schedule.ListSchedule(g, empty, uniformCost(time.Millisecond), nil)
	require.ErrorIs(t, err, schedule.ErrNoPEs)
}

func TestGreedyEFT_SyncPointsHonorAllocatorFlag(t *testing.T) {
	g := pisdf.NewGraph("g")
	a, _ := pisdf.NewVertex(g, "a", pisdf.Normal)
	b, _ := pisdf.NewVertex(g, "b", pisdf.Normal)
	c, _ := pisdf.NewVertex(g, "c", pisdf.Normal)
	_, err := pisdf.NewEdge(g, a, 0, rate(t, "2"), b, 0, rate(t, "2"))
	require.NoError(t, err)
	_, err = pisdf.NewEdge(g, a, 1, rate(t, "2"), c, 0, rate(t, "2"))
	require.NoError(t, err)

	alloc, err := fifo.DefaultNoSyncStrategy{}.Allocate(g, noParams())
	require.NoError(t, err)

	sched, err := schedule.GreedyEFT(g, twoPEPlatform(t), uniformCost(time.Millisecond), alloc)
	require.NoError(t, err)
	require.Empty(t, sched.SyncPoints)
}
