package beam

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func joint(label string, support Support, neighbors ...string) Joint {
	return Joint{Label: label, Support: support, Neighbors: neighbors}
}

func TestBuildTopology_Chain(t *testing.T) {
	topo, err := BuildTopology([]Joint{
		joint("A", Fixed, "B"),
		joint("B", Roller, "A", "C"),
		joint("C", Roller, "B", "D"),
		joint("D", Pin, "C"),
	})
	require.NoError(t, err)

	assert.Equal(t, []Pair{{"A", "B"}, {"B", "C"}, {"C", "D"}}, topo.Pairs)
	assert.Equal(t, []string{"A", "B", "C", "D"}, topo.Chain)
	assert.Equal(t, []string{"A", "C"}, topo.Neighbors("B"))
}

func TestBuildTopology_DiscoveryOrder(t *testing.T) {
	// B is listed first, so both spans are discovered from B
	topo, err := BuildTopology([]Joint{
		joint("B", Pin, "A", "C"),
		joint("A", Fixed, "B"),
		joint("C", Fixed, "B"),
	})
	require.NoError(t, err)

	assert.Equal(t, []Pair{{"B", "A"}, {"B", "C"}}, topo.Pairs)
	assert.Equal(t, []string{"A", "B", "C"}, topo.Chain)
}

func TestBuildTopology_OneSidedNeighborLists(t *testing.T) {
	topo, err := BuildTopology([]Joint{
		joint("A", Pin, "B"),
		joint("B", Roller, "C"),
		joint("C", Pin),
	})
	require.NoError(t, err)
	assert.Equal(t, []Pair{{"A", "B"}, {"B", "C"}}, topo.Pairs)
}

func TestBuildTopology_Errors(t *testing.T) {
	tests := []struct {
		name      string
		joints    []Joint
		wantJoint string
	}{
		{
			name:   "single joint",
			joints: []Joint{joint("A", Fixed)},
		},
		{
			name:   "empty label",
			joints: []Joint{joint("", Fixed, "B"), joint("B", Pin, "")},
		},
		{
			name:      "duplicate label",
			joints:    []Joint{joint("A", Fixed, "B"), joint("B", Pin, "A"), joint("A", Pin, "B")},
			wantJoint: "A",
		},
		{
			name: "three neighbors",
			joints: []Joint{
				joint("A", Pin, "B", "C", "D"),
				joint("B", Pin, "A"), joint("C", Pin, "A"), joint("D", Pin, "A"),
			},
			wantJoint: "A",
		},
		{
			name: "three connections from one-sided lists",
			joints: []Joint{
				joint("A", Pin, "B"), joint("B", Pin), joint("C", Pin, "B"), joint("D", Pin, "B"),
			},
			wantJoint: "B",
		},
		{
			name:      "unknown neighbor",
			joints:    []Joint{joint("A", Fixed, "Z"), joint("B", Pin, "A")},
			wantJoint: "A",
		},
		{
			name:      "self loop",
			joints:    []Joint{joint("A", Fixed, "A"), joint("B", Pin, "A")},
			wantJoint: "A",
		},
		{
			name: "disconnected",
			joints: []Joint{
				joint("A", Fixed, "B"), joint("B", Pin, "A"),
				joint("C", Fixed, "D"), joint("D", Pin, "C"),
			},
			wantJoint: "C",
		},
		{
			name: "cycle",
			joints: []Joint{
				joint("A", Pin, "B", "C"), joint("B", Pin, "A", "C"), joint("C", Pin, "A", "B"),
			},
		},
		{
			name: "fixed interior joint",
			joints: []Joint{
				joint("A", Pin, "B"), joint("B", Fixed, "A", "C"), joint("C", Pin, "B"),
			},
			wantJoint: "B",
		},
		{
			name: "free interior joint",
			joints: []Joint{
				joint("A", Pin, "B"), joint("B", Free, "A", "C"), joint("C", Pin, "B"),
			},
			wantJoint: "B",
		},
		{
			name:      "missing support",
			joints:    []Joint{joint("A", Fixed, "B"), {Label: "B", Neighbors: []string{"A"}}},
			wantJoint: "B",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildTopology(tt.joints)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrTopology))

			var te *TopologyError
			require.True(t, errors.As(err, &te))
			assert.Equal(t, tt.wantJoint, te.Joint, te.Error())
		})
	}
}
