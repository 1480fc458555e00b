package bikeinfra

// attributeSpec describes where output attribute value comes from: either tag lookup or value derived from feature itself
type attributeSpec struct {
	key    string
	tag    string
	derive func(feature SourceFeature) interface{}
}

func tagAttr(key, tag string) attributeSpec {
	return attributeSpec{key: key, tag: tag}
}

var (
	osmTypeAttr = attributeSpec{key: "osm_type", derive: func(feature SourceFeature) interface{} {
		return string(feature.OSMType)
	}}
	osmIDAttr = attributeSpec{key: "osm_id", derive: func(feature SourceFeature) interface{} {
		return feature.ID
	}}
)

func (spec attributeSpec) value(feature SourceFeature) interface{} {
	if spec.derive != nil {
		return spec.derive(feature)
	}
	return feature.Tags.attrValue(spec.tag)
}

// amenityRule is single row of the declarative amenity table
type amenityRule struct {
	layer        string
	geometry     GeometryType
	match        func(tags Tags) bool
	attributes   []attributeSpec
	minZoom      int
	minPixelSize *float64
	labelGrid    *LabelGrid
	buffer       *BufferOverride

	// Empty category means there is no sort key
	priorityCategory string
	score            func(counter int64, tags Tags) int64

	// Tags which are expected to be integers. Used for reporting only
	numericTags []string
}

func (rule *amenityRule) applicable(feature SourceFeature) bool {
	return feature.Capabilities.Has(rule.geometry.requiredCapability()) && rule.match(feature.Tags)
}

func hasAmenity(amenity string) func(tags Tags) bool {
	return func(tags Tags) bool {
		return tags.HasTag("amenity", amenity)
	}
}

// Every point amenity is decluttered the same way: on z10 and below split the tile into 16px squares
// and keep at most 10 features with the lowest sort key in each. Buffer is widened up to z12 so label
// grid squares are consistent between adjacent tiles.
func pointDeclutter() (*LabelGrid, *BufferOverride) {
	return &LabelGrid{MaxZoom: 10, GridSize: 16, Limit: 10}, &BufferOverride{MaxZoom: 12, Pixels: 32}
}

const (
	pointAmenityMinZoom   = 5
	polygonAmenityMinZoom = 10
)

var (
	parkingPointAttributes = []attributeSpec{
		osmTypeAttr,
		osmIDAttr,
		tagAttr("cargobike", "cargo_bike"),
		tagAttr("type", "bicycle_parking"),
		tagAttr("type:position", "bicycle_parking:position"),
		tagAttr("capacity", "capacity"),
		tagAttr("capacity:cargobike", "capacity:cargo_bike"),
		tagAttr("short_name", "short_name"),
		tagAttr("name", "name"),
		tagAttr("costs", "fee"),
		tagAttr("covered", "covered"),
		tagAttr("opening_hours", "opening_hours"),
		tagAttr("access", "access"),
	}

	parkingAreaAttributes = []attributeSpec{
		osmTypeAttr,
		osmIDAttr,
		tagAttr("name", "name"),
		tagAttr("short_name", "short_name"),
		tagAttr("cargobike", "cargo_bike"),
		tagAttr("type", "bicycle_parking"),
		tagAttr("type:position", "bicycle_parking:position"),
		tagAttr("capacity", "capacity"),
		tagAttr("capacity:cargobike", "capacity:cargo_bike"),
		tagAttr("costs", "fee"),
		tagAttr("covered", "covered"),
		tagAttr("access", "access"),
		tagAttr("opening_hours", "opening_hours"),
	}

	parkingLabelAttributes = []attributeSpec{
		osmTypeAttr,
		osmIDAttr,
		tagAttr("name", "name"),
		tagAttr("cargobike", "cargo_bike"),
		tagAttr("capacity", "capacity"),
		tagAttr("short_name", "short_name"),
		tagAttr("covered", "covered"),
		tagAttr("access", "access"),
		tagAttr("opening_hours", "opening_hours"),
	}

	chargingAttributes = []attributeSpec{
		osmTypeAttr,
		osmIDAttr,
		tagAttr("name", "name"),
		tagAttr("operator", "operator"),
		tagAttr("costs", "fee"),
		tagAttr("brand", "brand"),
		tagAttr("opening_hours", "opening_hours"),
		tagAttr("socket:schuko", "socket:schuko"),
		tagAttr("socket:bosch_3pin", "socket:bosch_3pin"),
		tagAttr("socket:bosch_5pin", "socket:bosch_5pin"),
		tagAttr("socket:shimano_steps_5pin", "socket:shimano_steps_5pin"),
		tagAttr("socket:ropd", "socket:ropd"),
		tagAttr("socket:typee", "socket:typee"),
	}

	repairStationAttributes = []attributeSpec{
		osmTypeAttr,
		osmIDAttr,
		tagAttr("name", "name"),
		tagAttr("short_name", "short_name"),
		tagAttr("bicycle_pump", "service:bicycle:pump"),
		tagAttr("tools", "service:bicycle:tools"),
		tagAttr("compressed_air", "compressed_air"),
		tagAttr("opening_hours", "opening_hours"),
	}

	compressedAirAttributes = []attributeSpec{
		osmTypeAttr,
		osmIDAttr,
		tagAttr("name", "name"),
		tagAttr("access", "access"),
		tagAttr("costs", "fee"),
		tagAttr("valves", "valves"),
		tagAttr("opening_hours", "opening_hours"),
	}
)

// newAmenityRules returns the amenity table. Order of rows defines order of emitted decisions
func newAmenityRules() []amenityRule {
	parkingGrid, parkingBuffer := pointDeclutter()
	chargingGrid, chargingBuffer := pointDeclutter()
	repairGrid, repairBuffer := pointDeclutter()
	airGrid, airBuffer := pointDeclutter()
	return []amenityRule{
		{
			layer:            "parking",
			geometry:         GEOMETRY_POINT,
			match:            hasAmenity("bicycle_parking"),
			attributes:       parkingPointAttributes,
			minZoom:          pointAmenityMinZoom,
			labelGrid:        parkingGrid,
			buffer:           parkingBuffer,
			priorityCategory: PRIORITY_PARKING,
			score:            parkingScore,
			numericTags:      []string{"capacity"},
		},
		{
			layer:        "parking-lines",
			geometry:     GEOMETRY_POLYGON,
			match:        hasAmenity("bicycle_parking"),
			attributes:   parkingAreaAttributes,
			minZoom:      polygonAmenityMinZoom,
			minPixelSize: float64Ptr(0), // keep short segments: later merge steps need them
		},
		{
			layer:      "parking-labels",
			geometry:   GEOMETRY_CENTROID,
			match:      hasAmenity("bicycle_parking"),
			attributes: parkingLabelAttributes,
			minZoom:    pointAmenityMinZoom,
		},
		{
			layer:    "charging",
			geometry: GEOMETRY_POINT,
			match: func(tags Tags) bool {
				return tags.HasTag("amenity", "charging_station") && tags.HasTag("bicycle", "yes")
			},
			attributes:       chargingAttributes,
			minZoom:          pointAmenityMinZoom,
			labelGrid:        chargingGrid,
			buffer:           chargingBuffer,
			priorityCategory: PRIORITY_CHARGING,
			score:            chargingScore,
			numericTags:      []string{"socket:schuko", "socket:typee"},
		},
		{
			layer:      "repairstation",
			geometry:   GEOMETRY_POINT,
			match:      hasAmenity("bicycle_repair_station"),
			attributes: repairStationAttributes,
			minZoom:    pointAmenityMinZoom,
			labelGrid:  repairGrid,
			buffer:     repairBuffer,
		},
		{
			layer:      "compressed_air",
			geometry:   GEOMETRY_POINT,
			match:      hasAmenity("compressed_air"),
			attributes: compressedAirAttributes,
			minZoom:    pointAmenityMinZoom,
			labelGrid:  airGrid,
			buffer:     airBuffer,
		},
	}
}
