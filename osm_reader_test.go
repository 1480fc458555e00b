package bikeinfra

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const sampleOSM = "testdata/bike_sample.osm"

func TestReadOSM(t *testing.T) {
	features := map[string]SourceFeature{}
	order := []string{}
	err := ReadOSM(context.Background(), sampleOSM, nil, func(feature SourceFeature) error {
		key := fmt.Sprintf("%s/%d", feature.OSMType, feature.ID)
		features[key] = feature
		order = append(order, key)
		return nil
	})
	require.NoError(t, err)

	// Tagged nodes go first, ways with missing nodes or without tags are skipped
	assert.Equal(t, []string{"node/1", "node/2", "node/3", "node/4", "way/100", "way/101", "way/102"}, order)

	parking := features["node/1"]
	assert.Equal(t, CAN_BE_POINT, parking.Capabilities)
	assert.Equal(t, orb.Point{13.4, 52.5}, parking.Geometry)
	assert.Equal(t, "10", parking.Tags["capacity"])

	area := features["way/100"]
	assert.Equal(t, CAN_BE_LINE|CAN_BE_POLYGON, area.Capabilities)
	polygon, ok := area.Geometry.(orb.Polygon)
	require.True(t, ok)
	require.Len(t, polygon, 1)
	assert.Len(t, polygon[0], 5)

	road := features["way/101"]
	assert.Equal(t, CAN_BE_LINE, road.Capabilities)
	assert.Equal(t, orb.LineString{{13.39, 52.52}, {13.42, 52.53}}, road.Geometry)
}

func TestReadOSMEmitError(t *testing.T) {
	calls := 0
	err := ReadOSM(context.Background(), sampleOSM, nil, func(feature SourceFeature) error {
		calls++
		return fmt.Errorf("stop")
	})
	require.Error(t, err)
	assert.Equal(t, "stop", err.Error())
	assert.Equal(t, 1, calls)
}

func TestReadOSMBadInput(t *testing.T) {
	noop := func(SourceFeature) error { return nil }
	err := ReadOSM(context.Background(), filepath.Join(t.TempDir(), "missing.osm"), nil, noop)
	assert.Error(t, err)

	err = ReadOSM(context.Background(), "testdata/bike_sample.geojson", nil, noop)
	assert.Error(t, err)
}

func TestWayCapabilities(t *testing.T) {
	open := []osm.NodeID{1, 2, 3}
	closed := []osm.NodeID{1, 2, 3, 1}
	cases := []struct {
		name  string
		nodes []osm.NodeID
		tags  Tags
		caps  GeometryCapability
	}{
		{name: "open", nodes: open, tags: Tags{}, caps: CAN_BE_LINE},
		{name: "open area", nodes: open, tags: Tags{"area": "yes"}, caps: CAN_BE_LINE},
		{name: "closed", nodes: closed, tags: Tags{}, caps: CAN_BE_LINE | CAN_BE_POLYGON},
		{name: "closed area", nodes: closed, tags: Tags{"area": "yes"}, caps: CAN_BE_POLYGON},
		{name: "closed not area", nodes: closed, tags: Tags{"area": "no"}, caps: CAN_BE_LINE},
		{name: "degenerate", nodes: []osm.NodeID{1, 2, 1}, tags: Tags{}, caps: CAN_BE_LINE},
		{name: "single node", nodes: []osm.NodeID{1}, tags: Tags{}, caps: 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.caps, wayCapabilities(c.nodes, c.tags), c.name)
	}
}

func TestReadOSMReportsSkippedRelations(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	err := ReadOSM(context.Background(), sampleOSM, zap.New(core), func(SourceFeature) error { return nil })
	require.NoError(t, err)

	entries := logs.FilterMessage("Relations skipped").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ContextMap()["relations"])
}
