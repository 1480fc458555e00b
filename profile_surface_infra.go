package bikeinfra

// SurfaceInfraProfile shows bicycle-accessible ways split by surface: asphalt-like and gravel-like
type SurfaceInfraProfile struct {
	profileSettings
}

// NewSurfaceInfraProfile returns surface profile. It holds no state
func NewSurfaceInfraProfile(options ...ProfileOption) *SurfaceInfraProfile {
	return &SurfaceInfraProfile{
		profileSettings: newProfileSettings(options...),
	}
}

func (profile *SurfaceInfraProfile) Name() string {
	return "Bicycle Surface Infrastructure"
}

func (profile *SurfaceInfraProfile) Description() string {
	return "Showing bicycle-accessible ways categorized by surface type (asphalt/paved/concrete vs gravel/unpaved)"
}

func (profile *SurfaceInfraProfile) Attribution() string {
	return osmAttribution
}

func (profile *SurfaceInfraProfile) IsOverlay() bool {
	return true
}

func (profile *SurfaceInfraProfile) Process(feature SourceFeature) []EmissionDecision {
	if !feature.CanBeLine() {
		return nil
	}
	tags := feature.Tags
	highway := tags.Find("highway")
	tracktype := tags.Find("tracktype")
	bicycle := tags.Find("bicycle")
	category, surface, ok := ClassifySurfaceTags(tags)
	if !ok {
		return nil
	}
	name := tags.Find("name")
	minZoom := clampZoom(MinZoomFor(highway, category, bicycle, tracktype, name))
	return []EmissionDecision{{
		Layer:    category.layerName(),
		Geometry: GEOMETRY_LINE,
		Attributes: []Attribute{
			{Key: "osm_type", Value: "way"},
			{Key: "osm_id", Value: feature.ID},
			{Key: "surface", Value: surface},
			{Key: "surface_category", Value: category.String()},
			{Key: "highway", Value: highway},
			{Key: "name", Value: tags.attrValue("name")},
			{Key: "tracktype", Value: tags.attrValue("tracktype")},
		},
		MinZoom:      minZoom,
		MinPixelSize: float64Ptr(MinPixelSizeFor(minZoom)),
	}}
}
