package bikeinfra

var (
	// Values of `bicycle` or `access` which deny bicycle traffic on a way
	bicycleDeniedValues = map[string]struct{}{
		"no": {},
	}
)

// bicycleDenied returns true if either `bicycle` or `access` explicitly denies bicycles
func bicycleDenied(bicycle, access string) bool {
	if _, ok := bicycleDeniedValues[bicycle]; ok {
		return true
	}
	_, ok := bicycleDeniedValues[access]
	return ok
}
