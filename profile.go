package bikeinfra

import (
	"strings"

	"go.uber.org/zap"
)

const (
	osmAttribution = `<a href="https://www.openstreetmap.org/copyright" target="_blank">&copy; OpenStreetMap contributors</a>`
)

// Profile decides which layers, attributes and zoom levels source features end up with.
// Process is called concurrently from many goroutines and must never block.
type Profile interface {
	Name() string
	Description() string
	Attribution() string
	IsOverlay() bool
	Process(feature SourceFeature) []EmissionDecision
}

type profileSettings struct {
	logger *zap.Logger
	scorer *PriorityScorer
}

// ProfileOption configures profile constructed by NewSecondaryInfraProfile or NewSurfaceInfraProfile
type ProfileOption func(*profileSettings)

// WithLogger sets logger for reporting malformed tags (debug level)
func WithLogger(logger *zap.Logger) ProfileOption {
	return func(settings *profileSettings) {
		settings.logger = logger
	}
}

// WithPriorityScorer makes several profiles share the same priority counters
func WithPriorityScorer(scorer *PriorityScorer) ProfileOption {
	return func(settings *profileSettings) {
		settings.scorer = scorer
	}
}

func newProfileSettings(options ...ProfileOption) profileSettings {
	settings := profileSettings{}
	for _, option := range options {
		option(&settings)
	}
	if settings.logger == nil {
		settings.logger = zap.NewNop()
	}
	if settings.scorer == nil {
		settings.scorer = NewPriorityScorer()
	}
	return settings
}

// warnMalformedNumbers reports tags which are present but could not be parsed as integers
func (settings *profileSettings) warnMalformedNumbers(feature SourceFeature, keys ...string) {
	for _, key := range keys {
		value, ok := feature.Tags.Lookup(key)
		if !ok {
			continue
		}
		if _, parsed := feature.Tags.ParseInt(key); !parsed {
			settings.logger.Debug("Numeric tag is malformed, ignoring it",
				zap.Stringer("feature", feature),
				zap.String("key", key),
				zap.String("value", value),
			)
		}
	}
}

// CompositeProfile runs several profiles over the same feature
type CompositeProfile struct {
	profiles []Profile
}

// NewCompositeProfile returns profile which concatenates decisions of the given ones (in order)
func NewCompositeProfile(profiles ...Profile) *CompositeProfile {
	return &CompositeProfile{profiles: profiles}
}

func (composite *CompositeProfile) Name() string {
	names := make([]string, len(composite.profiles))
	for i, profile := range composite.profiles {
		names[i] = profile.Name()
	}
	return strings.Join(names, " + ")
}

func (composite *CompositeProfile) Description() string {
	descriptions := make([]string, len(composite.profiles))
	for i, profile := range composite.profiles {
		descriptions[i] = profile.Description()
	}
	return strings.Join(descriptions, ". ")
}

func (composite *CompositeProfile) Attribution() string {
	return osmAttribution
}

func (composite *CompositeProfile) IsOverlay() bool {
	for _, profile := range composite.profiles {
		if !profile.IsOverlay() {
			return false
		}
	}
	return true
}

func (composite *CompositeProfile) Process(feature SourceFeature) []EmissionDecision {
	var decisions []EmissionDecision
	for _, profile := range composite.profiles {
		decisions = append(decisions, profile.Process(feature)...)
	}
	return decisions
}

const (
	PROFILE_SECONDARY = "secondary"
	PROFILE_SURFACE   = "surface"
	PROFILE_ALL       = "all"
)

// ProfileByName returns one of the known profiles: "secondary", "surface" or "all".
// Second value is false for unknown names.
func ProfileByName(name string, options ...ProfileOption) (Profile, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case PROFILE_SECONDARY:
		return NewSecondaryInfraProfile(options...), true
	case PROFILE_SURFACE:
		return NewSurfaceInfraProfile(options...), true
	case PROFILE_ALL:
		// Share counters between profiles explicitly, even if caller hasn't provided scorer
		settings := newProfileSettings(options...)
		shared := make([]ProfileOption, 0, len(options)+1)
		shared = append(shared, options...)
		shared = append(shared, WithPriorityScorer(settings.scorer))
		return NewCompositeProfile(NewSecondaryInfraProfile(shared...), NewSurfaceInfraProfile(shared...)), true
	default:
		return nil, false
	}
}
