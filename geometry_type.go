package bikeinfra

import "strings"

// GeometryCapability describes which kinds of geometry a source feature can be turned into.
// Feature may satisfy several of them at once: e.g. closed way could be both line and polygon.
type GeometryCapability uint8

const (
	CAN_BE_POINT = GeometryCapability(1 << iota)
	CAN_BE_LINE
	CAN_BE_POLYGON
)

// Has checks if all bits of other are set
func (capability GeometryCapability) Has(other GeometryCapability) bool {
	return other != 0 && capability&other == other
}

func (capability GeometryCapability) String() string {
	names := []string{}
	if capability.Has(CAN_BE_POINT) {
		names = append(names, "point")
	}
	if capability.Has(CAN_BE_LINE) {
		names = append(names, "line")
	}
	if capability.Has(CAN_BE_POLYGON) {
		names = append(names, "polygon")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// GeometryType is the kind of geometry host should render for an emission decision
type GeometryType uint16

const (
	GEOMETRY_POINT = GeometryType(iota + 1)
	GEOMETRY_LINE
	GEOMETRY_POLYGON
	GEOMETRY_CENTROID
)

func (iotaIdx GeometryType) String() string {
	names := [...]string{"undefined", "point", "line", "polygon", "centroid"}
	if int(iotaIdx) >= len(names) {
		return "undefined"
	}
	return names[iotaIdx]
}

// requiredCapability returns capability source feature must have to be rendered as given geometry
func (iotaIdx GeometryType) requiredCapability() GeometryCapability {
	switch iotaIdx {
	case GEOMETRY_POINT:
		return CAN_BE_POINT
	case GEOMETRY_LINE:
		return CAN_BE_LINE
	case GEOMETRY_POLYGON, GEOMETRY_CENTROID:
		return CAN_BE_POLYGON
	default:
		return 0
	}
}
