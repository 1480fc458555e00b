package bikeinfra

// SecondaryInfraProfile shows different kinds of parking, pumps and charging facilities for bicycles
// along with fast non-motorway roads cyclists may want to avoid.
type SecondaryInfraProfile struct {
	profileSettings
	rules []amenityRule
}

// NewSecondaryInfraProfile returns profile with its own priority counters unless WithPriorityScorer is provided
func NewSecondaryInfraProfile(options ...ProfileOption) *SecondaryInfraProfile {
	return &SecondaryInfraProfile{
		profileSettings: newProfileSettings(options...),
		rules:           newAmenityRules(),
	}
}

func (profile *SecondaryInfraProfile) Name() string {
	return "Bicycle Secondary Infra"
}

func (profile *SecondaryInfraProfile) Description() string {
	return "Showing different kinds of parking, pumps and charging facilities for bicycles"
}

func (profile *SecondaryInfraProfile) Attribution() string {
	return osmAttribution
}

func (profile *SecondaryInfraProfile) IsOverlay() bool {
	return true
}

// Process returns zero or more decisions for the feature. Never fails: malformed tags lead to omission only
func (profile *SecondaryInfraProfile) Process(feature SourceFeature) []EmissionDecision {
	var decisions []EmissionDecision
	for i := range profile.rules {
		rule := &profile.rules[i]
		if !rule.applicable(feature) {
			continue
		}
		profile.warnMalformedNumbers(feature, rule.numericTags...)
		decisions = append(decisions, profile.decide(rule, feature))
	}
	if highest, ok := isFastRoad(feature); ok {
		decisions = append(decisions, maxspeedDecision(highest))
	}
	return decisions
}

func (profile *SecondaryInfraProfile) decide(rule *amenityRule, feature SourceFeature) EmissionDecision {
	decision := EmissionDecision{
		Layer:        rule.layer,
		Geometry:     rule.geometry,
		Attributes:   make([]Attribute, 0, len(rule.attributes)),
		MinZoom:      clampZoom(rule.minZoom),
		MinPixelSize: rule.minPixelSize,
	}
	for _, spec := range rule.attributes {
		decision.Attributes = append(decision.Attributes, Attribute{Key: spec.key, Value: spec.value(feature)})
	}
	if rule.labelGrid != nil {
		grid := *rule.labelGrid
		decision.LabelGrid = &grid
	}
	if rule.buffer != nil {
		buffer := *rule.buffer
		decision.BufferOverride = &buffer
	}
	if rule.priorityCategory != "" {
		counter := profile.scorer.NextPriority(rule.priorityCategory)
		score := counter
		if rule.score != nil {
			score = rule.score(counter, feature.Tags)
		}
		decision.SortKey = int64Ptr(score)
	}
	return decision
}
