package bikeinfra

import (
	"fmt"
	"io"
	"sort"
	"sync"

	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Properties which carry emission parameters in GeoJSON output. Host tiling tools could pick them up from here
const (
	PROPERTY_LAYER          = "@layer"
	PROPERTY_MIN_ZOOM       = "@minzoom"
	PROPERTY_SORT_KEY       = "@sortkey"
	PROPERTY_MIN_PIXEL_SIZE = "@minpixelsize"
	PROPERTY_LABEL_GRID     = "@labelgrid"
	PROPERTY_BUFFER         = "@buffer"
)

// GeoJSONCollector gathers emitted features into single GeoJSON FeatureCollection. Safe for concurrent use
type GeoJSONCollector struct {
	mu          sync.Mutex
	collection  *geojson.FeatureCollection
	layerCounts map[string]int
}

// NewGeoJSONCollector returns empty collector
func NewGeoJSONCollector() *GeoJSONCollector {
	return &GeoJSONCollector{
		collection:  geojson.NewFeatureCollection(),
		layerCounts: make(map[string]int),
	}
}

// Feature converts source geometry to requested kind and registers it in the layer
func (collector *GeoJSONCollector) Feature(source SourceFeature, layer string, geometry GeometryType) (FeatureBuilder, error) {
	geom, err := prepareGeoJSONGeometry(source.Geometry, geometry)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't prepare %s geometry for %s", geometry, source)
	}
	feature := geojson.NewFeature(geom)
	feature.ID = fmt.Sprintf("%s/%d", source.OSMType, source.ID)
	feature.SetProperty(PROPERTY_LAYER, layer)

	collector.mu.Lock()
	collector.collection.AddFeature(feature)
	collector.layerCounts[layer]++
	collector.mu.Unlock()

	return &geoJSONFeature{feature: feature}, nil
}

// LayerCounts returns number of features per layer
func (collector *GeoJSONCollector) LayerCounts() map[string]int {
	collector.mu.Lock()
	defer collector.mu.Unlock()
	result := make(map[string]int, len(collector.layerCounts))
	for layer, count := range collector.layerCounts {
		result[layer] = count
	}
	return result
}

// Layers returns sorted names of non-empty layers
func (collector *GeoJSONCollector) Layers() []string {
	counts := collector.LayerCounts()
	layers := make([]string, 0, len(counts))
	for layer := range counts {
		layers = append(layers, layer)
	}
	sort.Strings(layers)
	return layers
}

// Features returns collected features. Do not call it while collecting is in progress
func (collector *GeoJSONCollector) Features() []*geojson.Feature {
	collector.mu.Lock()
	defer collector.mu.Unlock()
	return collector.collection.Features
}

// WriteTo writes FeatureCollection as JSON
func (collector *GeoJSONCollector) WriteTo(w io.Writer) (int64, error) {
	collector.mu.Lock()
	b, err := collector.collection.MarshalJSON()
	collector.mu.Unlock()
	if err != nil {
		return 0, errors.Wrap(err, "Can't marshal feature collection")
	}
	n, err := w.Write(b)
	return int64(n), err
}

type geoJSONFeature struct {
	feature *geojson.Feature
}

func (builder *geoJSONFeature) SetAttr(key string, value interface{}) FeatureBuilder {
	builder.feature.SetProperty(key, value)
	return builder
}

func (builder *geoJSONFeature) SetMinZoom(zoom int) FeatureBuilder {
	builder.feature.SetProperty(PROPERTY_MIN_ZOOM, zoom)
	return builder
}

func (builder *geoJSONFeature) SetBufferPixelOverride(maxZoom int, pixels float64) FeatureBuilder {
	builder.feature.SetProperty(PROPERTY_BUFFER, map[string]interface{}{
		"maxzoom": maxZoom,
		"pixels":  pixels,
	})
	return builder
}

func (builder *geoJSONFeature) SetPointLabelGridSizeAndLimit(maxZoom, gridSize, limit int) FeatureBuilder {
	builder.feature.SetProperty(PROPERTY_LABEL_GRID, map[string]interface{}{
		"maxzoom": maxZoom,
		"size":    gridSize,
		"limit":   limit,
	})
	return builder
}

func (builder *geoJSONFeature) SetMinPixelSize(pixels float64) FeatureBuilder {
	builder.feature.SetProperty(PROPERTY_MIN_PIXEL_SIZE, pixels)
	return builder
}

func (builder *geoJSONFeature) SetSortKey(key int64) FeatureBuilder {
	builder.feature.SetProperty(PROPERTY_SORT_KEY, key)
	return builder
}

func prepareGeoJSONGeometry(geom orb.Geometry, geometry GeometryType) (*geojson.Geometry, error) {
	if geom == nil {
		return nil, fmt.Errorf("Source feature has no geometry")
	}
	switch geometry {
	case GEOMETRY_POINT:
		pt, ok := geom.(orb.Point)
		if !ok {
			return nil, fmt.Errorf("Expected point, got %s", geom.GeoJSONType())
		}
		return geojson.NewPointGeometry([]float64{pt.Lon(), pt.Lat()}), nil
	case GEOMETRY_LINE:
		line, ok := asLineString(geom)
		if !ok {
			return nil, fmt.Errorf("Can't represent %s as line", geom.GeoJSONType())
		}
		return geojson.NewLineStringGeometry(pointsToCoordinates([]orb.Point(line))), nil
	case GEOMETRY_POLYGON:
		polygon, ok := asPolygon(geom)
		if !ok {
			return nil, fmt.Errorf("Can't represent %s as polygon", geom.GeoJSONType())
		}
		rings := make([][][]float64, len(polygon))
		for i := range polygon {
			rings[i] = pointsToCoordinates([]orb.Point(polygon[i]))
		}
		return geojson.NewPolygonGeometry(rings), nil
	case GEOMETRY_CENTROID:
		polygon, ok := asPolygon(geom)
		if !ok {
			return nil, fmt.Errorf("Can't find centroid of %s", geom.GeoJSONType())
		}
		centroid, ok := ringCentroid(polygon[0])
		if !ok {
			return nil, fmt.Errorf("Polygon outer ring is empty")
		}
		return geojson.NewPointGeometry([]float64{centroid.Lon(), centroid.Lat()}), nil
	default:
		return nil, fmt.Errorf("Unhandled geometry type %d", geometry)
	}
}

func pointsToCoordinates(pts []orb.Point) [][]float64 {
	pts2d := make([][]float64, len(pts))
	for i := range pts {
		pts2d[i] = []float64{pts[i].Lon(), pts[i].Lat()}
	}
	return pts2d
}
