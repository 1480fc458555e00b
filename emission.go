package bikeinfra

// Attribute is single output key/value pair. Nil value means "absent" and host should skip it
type Attribute struct {
	Key   string
	Value interface{}
}

// LabelGrid is point declutter policy: at zoom levels up to MaxZoom split the tile into GridSize x GridSize pixel
// squares and keep only Limit features with the lowest sort key in each of them
type LabelGrid struct {
	MaxZoom  int
	GridSize int
	Limit    int
}

// BufferOverride widens the render buffer (in pixels) for zoom levels up to MaxZoom
type BufferOverride struct {
	MaxZoom int
	Pixels  float64
}

// EmissionDecision is what should be written to the output layer for a single source feature
type EmissionDecision struct {
	Layer          string
	Geometry       GeometryType
	Attributes     []Attribute
	MinZoom        int
	BufferOverride *BufferOverride
	LabelGrid      *LabelGrid
	MinPixelSize   *float64
	SortKey        *int64
}

// Attr returns attribute value by its key. Second value is false if there is no such attribute
func (decision *EmissionDecision) Attr(key string) (interface{}, bool) {
	for i := range decision.Attributes {
		if decision.Attributes[i].Key == key {
			return decision.Attributes[i].Value, true
		}
	}
	return nil, false
}

func float64Ptr(v float64) *float64 {
	return &v
}

func int64Ptr(v int64) *int64 {
	return &v
}

const (
	minZoomLevel = 0
	maxZoomLevel = 14
)

// clampZoom keeps zoom in [0; 14]
func clampZoom(zoom int) int {
	if zoom < minZoomLevel {
		return minZoomLevel
	}
	if zoom > maxZoomLevel {
		return maxZoomLevel
	}
	return zoom
}
