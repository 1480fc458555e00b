package bikeinfra

type HighwayClass uint16

const (
	HIGHWAY_CLASS_UNDEFINED = HighwayClass(iota)
	HIGHWAY_CLASS_MAJOR
	HIGHWAY_CLASS_MEDIUM
	HIGHWAY_CLASS_RESIDENTIAL
	HIGHWAY_CLASS_SERVICE
	HIGHWAY_CLASS_TRACK
	HIGHWAY_CLASS_PATH
	HIGHWAY_CLASS_FOOTWAY
)

func (iotaIdx HighwayClass) String() string {
	names := [...]string{"undefined", "major", "medium", "residential", "service", "track", "path", "footway"}
	if int(iotaIdx) >= len(names) {
		return "undefined"
	}
	return names[iotaIdx]
}

func getHighwayClass(highway string) HighwayClass {
	if found, ok := highwayClasses[highway]; ok {
		return found
	}
	return HIGHWAY_CLASS_UNDEFINED
}

var (
	highwayClasses = map[string]HighwayClass{
		"trunk":          HIGHWAY_CLASS_MAJOR,
		"trunk_link":     HIGHWAY_CLASS_MAJOR,
		"primary":        HIGHWAY_CLASS_MAJOR,
		"primary_link":   HIGHWAY_CLASS_MAJOR,
		"secondary":      HIGHWAY_CLASS_MAJOR,
		"secondary_link": HIGHWAY_CLASS_MAJOR,
		"tertiary":       HIGHWAY_CLASS_MEDIUM,
		"tertiary_link":  HIGHWAY_CLASS_MEDIUM,
		"unclassified":   HIGHWAY_CLASS_MEDIUM,
		"cycleway":       HIGHWAY_CLASS_MEDIUM,
		"residential":    HIGHWAY_CLASS_RESIDENTIAL,
		"living_street":  HIGHWAY_CLASS_RESIDENTIAL,
		"service":        HIGHWAY_CLASS_SERVICE,
		"track":          HIGHWAY_CLASS_TRACK,
		"path":           HIGHWAY_CLASS_PATH,
		"footway":        HIGHWAY_CLASS_FOOTWAY,
	}
)
