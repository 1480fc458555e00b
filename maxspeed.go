package bikeinfra

import "strconv"

const (
	maxspeedThreshold = 80
	maxspeedMinZoom   = 13
)

// HighestMaxspeed returns the biggest of `maxspeed`, `maxspeed:forward` and `maxspeed:backward`.
// Values which are not plain integers (e.g. "50 mph", "none", "signals") are ignored.
// Second value is false if there is no positive value at all.
func HighestMaxspeed(tags Tags) (int64, bool) {
	highest := int64(0)
	for _, key := range maxspeedTags {
		value, ok := tags.ParseInt(key)
		if !ok {
			continue
		}
		if value > highest {
			highest = value
		}
	}
	return highest, highest > 0
}

// isFastRoad checks if way is a non-motorway road with effective speed limit of 80 or more
func isFastRoad(feature SourceFeature) (int64, bool) {
	if !feature.CanBeLine() {
		return 0, false
	}
	highway, ok := feature.Tags.Lookup("highway")
	if !ok {
		return 0, false
	}
	if _, excluded := maxspeedExcludedHighways[highway]; excluded {
		return 0, false
	}
	if feature.Tags.HasTag("motorroad", "yes") {
		return 0, false
	}
	highest, ok := HighestMaxspeed(feature.Tags)
	if !ok || highest < maxspeedThreshold {
		return 0, false
	}
	return highest, true
}

func maxspeedDecision(highest int64) EmissionDecision {
	return EmissionDecision{
		Layer:    "maxspeed",
		Geometry: GEOMETRY_LINE,
		Attributes: []Attribute{
			{Key: "maxspeed", Value: strconv.FormatInt(highest, 10)},
		},
		MinZoom: maxspeedMinZoom,
	}
}
