package bikeinfra

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

// SourceFeature is single OSM element handed to profiles by the host
type SourceFeature struct {
	ID           int64
	OSMType      osm.Type
	Capabilities GeometryCapability
	Tags         Tags

	// Geometry is optional: profiles never look at it, hosts use it for rendering
	Geometry orb.Geometry
}

// NewSourceFeature returns feature for given classification input
func NewSourceFeature(id int64, osmType osm.Type, capabilities GeometryCapability, tags Tags) SourceFeature {
	return SourceFeature{
		ID:           id,
		OSMType:      osmType,
		Capabilities: capabilities,
		Tags:         tags,
	}
}

func (feature SourceFeature) IsPoint() bool {
	return feature.Capabilities.Has(CAN_BE_POINT)
}

func (feature SourceFeature) CanBeLine() bool {
	return feature.Capabilities.Has(CAN_BE_LINE)
}

func (feature SourceFeature) CanBePolygon() bool {
	return feature.Capabilities.Has(CAN_BE_POLYGON)
}

func (feature SourceFeature) String() string {
	return fmt.Sprintf("%s/%d (%s)", feature.OSMType, feature.ID, feature.Capabilities)
}
