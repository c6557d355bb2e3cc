package platform_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spiderflow/pisdf/platform"
)

const sample = `
clusters:
  - name: host
    memory: shared
    pes:
      - name: cpu0
        type: cpu
      - name: cpu1
        type: cpu
  - name: accel
    memory: distributed
    pes:
      - name: dsp0
        type: dsp
`

func TestLoad_ParsesClustersAndPEs(t *testing.T) {
	d, err := platform.Load(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, d.Clusters, 2)
	require.Len(t, d.AllPEs(), 3)

	c, ok := d.ClusterOf("dsp0")
	require.True(t, ok)
	require.Equal(t, "accel", c.Name)
	require.Equal(t, platform.DistributedMemory, c.Memory)
}

func TestLoad_RejectsDuplicatePEName(t *testing.T) {
	const dup = `
clusters:
  - name: a
    pes:
      - name: x
  - name: b
    pes:
      - name: x
`
	_, err := platform.Load(strings.NewReader(dup))
	require.ErrorIs(t, err, platform.ErrDuplicatePEName)
}

func TestLoad_RejectsEmptyDescription(t *testing.T) {
	_, err := platform.Load(strings.NewReader("clusters: []\n"))
	require.ErrorIs(t, err, platform.ErrEmptyDescription)
}

func TestClusterOf_UnknownPEReturnsFalse(t *testing.T) {
	d, err := platform.Load(strings.NewReader(sample))
	require.NoError(t, err)
	_, ok := d.ClusterOf("nope")
	require.False(t, ok)
}
