package bikeinfra

import (
	"bytes"
	"fmt"
	"testing"

	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingCollector logs every host call as a string
type recordingCollector struct {
	calls []string
	fail  bool
}

func (collector *recordingCollector) Feature(source SourceFeature, layer string, geometry GeometryType) (FeatureBuilder, error) {
	if collector.fail {
		return nil, fmt.Errorf("layer %s is closed", layer)
	}
	collector.calls = append(collector.calls, fmt.Sprintf("feature %s %s %d", layer, geometry, source.ID))
	return collector, nil
}

func (collector *recordingCollector) SetAttr(key string, value interface{}) FeatureBuilder {
	collector.calls = append(collector.calls, fmt.Sprintf("attr %s=%v", key, value))
	return collector
}

func (collector *recordingCollector) SetMinZoom(zoom int) FeatureBuilder {
	collector.calls = append(collector.calls, fmt.Sprintf("minzoom %d", zoom))
	return collector
}

func (collector *recordingCollector) SetBufferPixelOverride(maxZoom int, pixels float64) FeatureBuilder {
	collector.calls = append(collector.calls, fmt.Sprintf("buffer %d %g", maxZoom, pixels))
	return collector
}

func (collector *recordingCollector) SetPointLabelGridSizeAndLimit(maxZoom, gridSize, limit int) FeatureBuilder {
	collector.calls = append(collector.calls, fmt.Sprintf("grid %d %d %d", maxZoom, gridSize, limit))
	return collector
}

func (collector *recordingCollector) SetMinPixelSize(pixels float64) FeatureBuilder {
	collector.calls = append(collector.calls, fmt.Sprintf("minpixelsize %g", pixels))
	return collector
}

func (collector *recordingCollector) SetSortKey(key int64) FeatureBuilder {
	collector.calls = append(collector.calls, fmt.Sprintf("sortkey %d", key))
	return collector
}

func TestApply(t *testing.T) {
	source := NewSourceFeature(11, osm.TypeNode, CAN_BE_POINT, Tags{"amenity": "compressed_air", "valves": "sclaverand"})
	decisions := NewSecondaryInfraProfile().Process(source)
	require.Len(t, decisions, 1)

	collector := &recordingCollector{}
	require.NoError(t, Apply(collector, source, decisions))
	assert.Equal(t, []string{
		"feature compressed_air point 11",
		"attr osm_type=node",
		"attr osm_id=11",
		"attr valves=sclaverand",
		"minzoom 5",
		"buffer 12 32",
		"grid 10 16 10",
	}, collector.calls)
}

func TestApplyOptionalParameters(t *testing.T) {
	source := NewSourceFeature(1, osm.TypeWay, CAN_BE_LINE, Tags{})
	collector := &recordingCollector{}
	err := Apply(collector, source, []EmissionDecision{
		{Layer: "a", Geometry: GEOMETRY_LINE, MinZoom: 9, MinPixelSize: float64Ptr(4)},
		{Layer: "b", Geometry: GEOMETRY_LINE, MinZoom: 3, SortKey: int64Ptr(-2)},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"feature a line 1",
		"minzoom 9",
		"minpixelsize 4",
		"feature b line 1",
		"minzoom 3",
		"sortkey -2",
	}, collector.calls)
}

func TestApplyCollectorError(t *testing.T) {
	source := NewSourceFeature(1, osm.TypeWay, CAN_BE_LINE, Tags{})
	err := Apply(&recordingCollector{fail: true}, source, []EmissionDecision{{Layer: "maxspeed", Geometry: GEOMETRY_LINE}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "layer maxspeed is closed")
	assert.Contains(t, err.Error(), "way/1")

	assert.NoError(t, Apply(&recordingCollector{fail: true}, source, nil))
}

func TestGeoJSONCollector(t *testing.T) {
	collector := NewGeoJSONCollector()
	profile := NewSecondaryInfraProfile()

	node := NewSourceFeature(1, osm.TypeNode, CAN_BE_POINT, Tags{"amenity": "bicycle_parking", "covered": "yes"})
	node.Geometry = orb.Point{13.4, 52.5}
	require.NoError(t, Apply(collector, node, profile.Process(node)))

	ring := orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}
	area := NewSourceFeature(2, osm.TypeWay, CAN_BE_LINE|CAN_BE_POLYGON, Tags{"amenity": "bicycle_parking", "name": "Hof"})
	area.Geometry = orb.Polygon{ring}
	require.NoError(t, Apply(collector, area, profile.Process(area)))

	assert.Equal(t, map[string]int{"parking": 1, "parking-lines": 1, "parking-labels": 1}, collector.LayerCounts())
	assert.Equal(t, []string{"parking", "parking-labels", "parking-lines"}, collector.Layers())

	features := collector.Features()
	require.Len(t, features, 3)

	point := features[0]
	assert.Equal(t, "node/1", point.ID)
	assert.Equal(t, geojson.GeometryPoint, point.Geometry.Type)
	assert.Equal(t, []float64{13.4, 52.5}, point.Geometry.Point)
	assert.Equal(t, "parking", point.Properties[PROPERTY_LAYER])
	assert.Equal(t, 5, point.Properties[PROPERTY_MIN_ZOOM])
	assert.Equal(t, int64(61), point.Properties[PROPERTY_SORT_KEY])
	assert.Equal(t, "yes", point.Properties["covered"])
	assert.NotContains(t, point.Properties, "name")
	assert.Equal(t, map[string]interface{}{"maxzoom": 10, "size": 16, "limit": 10}, point.Properties[PROPERTY_LABEL_GRID])
	assert.Equal(t, map[string]interface{}{"maxzoom": 12, "pixels": 32.0}, point.Properties[PROPERTY_BUFFER])

	polygon := features[1]
	assert.Equal(t, geojson.GeometryPolygon, polygon.Geometry.Type)
	require.Len(t, polygon.Geometry.Polygon, 1)
	assert.Len(t, polygon.Geometry.Polygon[0], 5)
	assert.Equal(t, 0.0, polygon.Properties[PROPERTY_MIN_PIXEL_SIZE])

	label := features[2]
	assert.Equal(t, geojson.GeometryPoint, label.Geometry.Type)
	require.Len(t, label.Geometry.Point, 2)
	assert.InDelta(t, 0.5, label.Geometry.Point[0], 1e-9)
	assert.InDelta(t, 0.5, label.Geometry.Point[1], 1e-3)
	assert.Equal(t, "Hof", label.Properties["name"])

	var buf bytes.Buffer
	n, err := collector.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	decoded, err := geojson.UnmarshalFeatureCollection(buf.Bytes())
	require.NoError(t, err)
	assert.Len(t, decoded.Features, 3)
}

func TestGeoJSONCollectorLine(t *testing.T) {
	collector := NewGeoJSONCollector()
	way := NewSourceFeature(3, osm.TypeWay, CAN_BE_LINE, Tags{"highway": "track", "tracktype": "grade2"})
	way.Geometry = orb.LineString{{10, 50}, {10.1, 50.1}, {10.2, 50}}
	require.NoError(t, Apply(collector, way, NewSurfaceInfraProfile().Process(way)))

	features := collector.Features()
	require.Len(t, features, 1)
	assert.Equal(t, geojson.GeometryLineString, features[0].Geometry.Type)
	assert.Equal(t, [][]float64{{10, 50}, {10.1, 50.1}, {10.2, 50}}, features[0].Geometry.LineString)
	assert.Equal(t, "surface_gravel", features[0].Properties[PROPERTY_LAYER])
	assert.Equal(t, "compacted", features[0].Properties["surface"])
	assert.Equal(t, "grade2", features[0].Properties["tracktype"])
}

func TestPrepareGeoJSONGeometryErrors(t *testing.T) {
	_, err := prepareGeoJSONGeometry(nil, GEOMETRY_POINT)
	assert.Error(t, err)
	_, err = prepareGeoJSONGeometry(orb.LineString{{0, 0}, {1, 1}}, GEOMETRY_POINT)
	assert.Error(t, err)
	_, err = prepareGeoJSONGeometry(orb.Point{0, 0}, GEOMETRY_LINE)
	assert.Error(t, err)
	_, err = prepareGeoJSONGeometry(orb.LineString{{0, 0}, {1, 1}}, GEOMETRY_CENTROID)
	assert.Error(t, err)

	// Closed polygon could still be drawn as line
	geom, err := prepareGeoJSONGeometry(orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}, GEOMETRY_LINE)
	require.NoError(t, err)
	assert.Len(t, geom.LineString, 4)
}
