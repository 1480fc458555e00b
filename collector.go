package bikeinfra

import (
	"github.com/pkg/errors"
)

// FeatureBuilder is the per-feature half of the host tiling engine: profiles' decisions are replayed into it
type FeatureBuilder interface {
	SetAttr(key string, value interface{}) FeatureBuilder
	SetMinZoom(zoom int) FeatureBuilder
	// SetBufferPixelOverride widens render buffer for zoom levels up to maxZoom
	SetBufferPixelOverride(maxZoom int, pixels float64) FeatureBuilder
	// SetPointLabelGridSizeAndLimit keeps at most limit features with lowest sort key
	// in each gridSize x gridSize pixels square for zoom levels up to maxZoom
	SetPointLabelGridSizeAndLimit(maxZoom, gridSize, limit int) FeatureBuilder
	SetMinPixelSize(pixels float64) FeatureBuilder
	SetSortKey(key int64) FeatureBuilder
}

// Collector registers output features in a named layer. Implemented by host tiling engine
type Collector interface {
	Feature(source SourceFeature, layer string, geometry GeometryType) (FeatureBuilder, error)
}

// Apply replays decisions made for the source feature into the collector. Absent (nil) attributes are skipped
func Apply(collector Collector, source SourceFeature, decisions []EmissionDecision) error {
	for i := range decisions {
		decision := &decisions[i]
		builder, err := collector.Feature(source, decision.Layer, decision.Geometry)
		if err != nil {
			return errors.Wrapf(err, "Can't register feature %s in layer '%s'", source, decision.Layer)
		}
		for _, attr := range decision.Attributes {
			if attr.Value == nil {
				continue
			}
			builder.SetAttr(attr.Key, attr.Value)
		}
		builder.SetMinZoom(decision.MinZoom)
		if decision.BufferOverride != nil {
			builder.SetBufferPixelOverride(decision.BufferOverride.MaxZoom, decision.BufferOverride.Pixels)
		}
		if decision.LabelGrid != nil {
			builder.SetPointLabelGridSizeAndLimit(decision.LabelGrid.MaxZoom, decision.LabelGrid.GridSize, decision.LabelGrid.Limit)
		}
		if decision.MinPixelSize != nil {
			builder.SetMinPixelSize(*decision.MinPixelSize)
		}
		if decision.SortKey != nil {
			builder.SetSortKey(*decision.SortKey)
		}
	}
	return nil
}
