package bikeinfra

import (
	"strconv"
	"strings"

	"github.com/paulmach/osm"
)

// Tags is a flattened view of an OSM tag list. Missing keys are normal and never an error.
type Tags map[string]string

// TagsFromOSM flattens osm.Tags. When a key repeats the last value wins
func TagsFromOSM(tags osm.Tags) Tags {
	result := make(Tags, len(tags))
	for _, tag := range tags {
		result[tag.Key] = tag.Value
	}
	return result
}

// Find returns value for the key or empty string when key is absent
func (tags Tags) Find(key string) string {
	return tags[key]
}

// Lookup returns value for the key and whether key is present
func (tags Tags) Lookup(key string) (string, bool) {
	value, ok := tags[key]
	return value, ok
}

// HasTag checks if key is present and equals to one of the given values.
// With no values provided it checks presence only.
func (tags Tags) HasTag(key string, values ...string) bool {
	value, ok := tags[key]
	if !ok {
		return false
	}
	if len(values) == 0 {
		return true
	}
	for i := range values {
		if values[i] == value {
			return true
		}
	}
	return false
}

// ParseInt returns integer value of the tag. Second value is false when tag is absent or is not an integer
func (tags Tags) ParseInt(key string) (int64, bool) {
	value, ok := tags[key]
	if !ok {
		return 0, false
	}
	parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

// Long returns integer value of the tag or zero
func (tags Tags) Long(key string) int64 {
	value, _ := tags.ParseInt(key)
	return value
}

// attrValue returns tag value as an attribute value: nil when tag is absent
func (tags Tags) attrValue(key string) interface{} {
	if value, ok := tags[key]; ok {
		return value
	}
	return nil
}

var (
	asphaltSurfaces = map[string]struct{}{
		"asphalt":  {},
		"paved":    {},
		"concrete": {},
	}

	gravelSurfaces = map[string]struct{}{
		"gravel":      {},
		"fine_gravel": {},
		"pebblestone": {},
		"unpaved":     {},
		"earth":       {},
		"dirt":        {},
		"ground":      {},
		"grass":       {},
	}

	gravelTrackGrades = map[string]struct{}{
		"grade2": {},
		"grade3": {},
		"grade4": {},
		"grade5": {},
	}

	// Ways never considered as bicycle surface infrastructure
	surfaceExcludedHighways = map[string]struct{}{
		"motorway":      {},
		"motorway_link": {},
		"footway":       {},
	}

	// Ways never considered for maxspeed overlay. See `motorroad` also
	maxspeedExcludedHighways = map[string]struct{}{
		"motorway":      {},
		"motorway_link": {},
	}

	maxspeedTags = []string{"maxspeed", "maxspeed:forward", "maxspeed:backward"}
)
