package bikeinfra

type SurfaceCategory uint16

const (
	SURFACE_ASPHALT = SurfaceCategory(iota + 1)
	SURFACE_GRAVEL
	SURFACE_NONE = SurfaceCategory(0)
)

func (iotaIdx SurfaceCategory) String() string {
	names := [...]string{"none", "asphalt", "gravel"}
	if int(iotaIdx) >= len(names) {
		return "undefined"
	}
	return names[iotaIdx]
}

// layerName returns output layer for the surface category
func (iotaIdx SurfaceCategory) layerName() string {
	if iotaIdx == SURFACE_ASPHALT {
		return "surface_asphalt"
	}
	return "surface_gravel"
}

const (
	// Surface assumed for tracks having `tracktype` but no `surface`
	implicitTrackSurface  = "compacted"
	defaultSurfaceMinZoom = 12
)

// ClassifySurface returns category of pavement for the way and effective surface value.
// Third value is false when the way should not be treated as surface infrastructure at all.
// Empty strings stand for absent tags; use ClassifySurfaceTags when tag presence matters.
func ClassifySurface(highway, surface, tracktype, bicycle, access string) (SurfaceCategory, string, bool) {
	return classifySurface(optionalTag{highway, highway != ""}, optionalTag{surface, surface != ""}, optionalTag{tracktype, tracktype != ""}, bicycle, access)
}

// ClassifySurfaceTags is ClassifySurface over the tag set: a tag which is present with empty value
// is still present, e.g. `surface=""` on a track disables the implicit surface
func ClassifySurfaceTags(tags Tags) (SurfaceCategory, string, bool) {
	return classifySurface(lookupTag(tags, "highway"), lookupTag(tags, "surface"), lookupTag(tags, "tracktype"), tags.Find("bicycle"), tags.Find("access"))
}

type optionalTag struct {
	value   string
	present bool
}

func lookupTag(tags Tags, key string) optionalTag {
	value, ok := tags.Lookup(key)
	return optionalTag{value, ok}
}

func classifySurface(highway, surface, tracktype optionalTag, bicycle, access string) (SurfaceCategory, string, bool) {
	if !highway.present {
		return SURFACE_NONE, "", false
	}
	if _, ok := surfaceExcludedHighways[highway.value]; ok {
		return SURFACE_NONE, "", false
	}
	if bicycleDenied(bicycle, access) {
		return SURFACE_NONE, "", false
	}
	if highway.value == "track" && !surface.present {
		if !tracktype.present {
			return SURFACE_NONE, "", false
		}
		if tracktype.value == "grade1" {
			return SURFACE_ASPHALT, implicitTrackSurface, true
		}
		if _, ok := gravelTrackGrades[tracktype.value]; ok {
			return SURFACE_GRAVEL, implicitTrackSurface, true
		}
		return SURFACE_NONE, "", false
	}
	if _, ok := asphaltSurfaces[surface.value]; ok {
		return SURFACE_ASPHALT, surface.value, true
	}
	if _, ok := gravelSurfaces[surface.value]; ok {
		return SURFACE_GRAVEL, surface.value, true
	}
	return SURFACE_NONE, "", false
}

type minZoomRule struct {
	match   func(highway string, category SurfaceCategory, bicycle, tracktype, name string) bool
	minZoom int
}

// Order matters: first matched rule wins
var surfaceMinZoomRules = []minZoomRule{
	// Tracks of any grade
	{func(highway string, _ SurfaceCategory, _, _, _ string) bool {
		return getHighwayClass(highway) == HIGHWAY_CLASS_TRACK
	}, 9},
	{func(highway string, category SurfaceCategory, _, _, _ string) bool {
		return category == SURFACE_ASPHALT && getHighwayClass(highway) == HIGHWAY_CLASS_MAJOR
	}, 9},
	{func(highway string, category SurfaceCategory, _, _, _ string) bool {
		return category == SURFACE_ASPHALT && getHighwayClass(highway) == HIGHWAY_CLASS_MEDIUM
	}, 9},
	{func(highway string, category SurfaceCategory, _, _, _ string) bool {
		return category == SURFACE_ASPHALT && getHighwayClass(highway) == HIGHWAY_CLASS_RESIDENTIAL
	}, 12},
	{func(highway string, category SurfaceCategory, _, _, _ string) bool {
		return category == SURFACE_ASPHALT && getHighwayClass(highway) == HIGHWAY_CLASS_SERVICE
	}, 14},
	{func(_ string, category SurfaceCategory, bicycle, _, _ string) bool {
		return category == SURFACE_ASPHALT && bicycle == "designated"
	}, 12},
	{func(_ string, category SurfaceCategory, _, _, _ string) bool {
		return category == SURFACE_ASPHALT
	}, 12},
	// Dedicated cycling infrastructure
	{func(highway string, category SurfaceCategory, bicycle, _, _ string) bool {
		return category == SURFACE_GRAVEL && (highway == "cycleway" || bicycle == "designated")
	}, 9},
	// Named paths are likely significant routes
	{func(highway string, category SurfaceCategory, _, _, name string) bool {
		return category == SURFACE_GRAVEL && getHighwayClass(highway) == HIGHWAY_CLASS_PATH && name != ""
	}, 10},
	{func(highway string, category SurfaceCategory, _, _, _ string) bool {
		return category == SURFACE_GRAVEL && getHighwayClass(highway) == HIGHWAY_CLASS_PATH
	}, 12},
	{func(highway string, category SurfaceCategory, _, _, _ string) bool {
		class := getHighwayClass(highway)
		return category == SURFACE_GRAVEL && (class == HIGHWAY_CLASS_SERVICE || class == HIGHWAY_CLASS_FOOTWAY)
	}, 14},
	{func(_ string, category SurfaceCategory, _, _, _ string) bool {
		return category == SURFACE_GRAVEL
	}, 12},
}

// MinZoomFor returns minimum zoom level the way should be displayed from
func MinZoomFor(highway string, category SurfaceCategory, bicycle, tracktype, name string) int {
	for _, rule := range surfaceMinZoomRules {
		if rule.match(highway, category, bicycle, tracktype, name) {
			return rule.minZoom
		}
	}
	return defaultSurfaceMinZoom
}

// MinPixelSizeFor returns minimum rendered size of the line: short segments are dropped on coarse zooms to keep tiles small
func MinPixelSizeFor(minZoom int) float64 {
	switch {
	case minZoom < 11:
		return 4
	case minZoom < 12:
		return 2
	default:
		return 0
	}
}
