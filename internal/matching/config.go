package matching

// Config holds the weights and gates of the similarity score. Each signal
// only contributes when its raw similarity clears its gate.
type Config struct {
	// MatchThreshold is the minimum total score for a candidate to be kept.
	MatchThreshold float64 `yaml:"match_threshold"`

	MissionTypeWeight float64 `yaml:"mission_type_weight"`
	KeywordWeight     float64 `yaml:"keyword_weight"`
	BodyPartWeight    float64 `yaml:"body_part_weight"`
	InjuryWeight      float64 `yaml:"injury_weight"`

	MissionTypeGate float64 `yaml:"mission_type_gate"`
	KeywordGate     float64 `yaml:"keyword_gate"`
	BodyPartGate    float64 `yaml:"body_part_gate"`
	// InjuryGate is deliberately stricter than the multiset gates.
	InjuryGate float64 `yaml:"injury_gate"`

	// CommonMissionThreshold is the word-overlap score above which two
	// mission titles count as the same mission.
	CommonMissionThreshold float64 `yaml:"common_mission_threshold"`

	// MaxRecommendations caps lobby recommendation lists.
	MaxRecommendations int `yaml:"max_recommendations"`
	// PreviewMissions caps the common-mission titles shown per
	// recommendation.
	PreviewMissions int `yaml:"preview_missions"`
}

// DefaultConfig returns the standard matching configuration.
func DefaultConfig() *Config {
	return &Config{
		MatchThreshold:         0.6,
		MissionTypeWeight:      0.3,
		KeywordWeight:          0.4,
		BodyPartWeight:         0.2,
		InjuryWeight:           0.1,
		MissionTypeGate:        0.5,
		KeywordGate:            0.5,
		BodyPartGate:           0.5,
		InjuryGate:             0.6,
		CommonMissionThreshold: 0.7,
		MaxRecommendations:     5,
		PreviewMissions:        3,
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *Config) ApplyDefaults() {
	defaults := DefaultConfig()
	if c.MatchThreshold == 0 {
		c.MatchThreshold = defaults.MatchThreshold
	}
	if c.MissionTypeWeight == 0 {
		c.MissionTypeWeight = defaults.MissionTypeWeight
	}
	if c.KeywordWeight == 0 {
		c.KeywordWeight = defaults.KeywordWeight
	}
	if c.BodyPartWeight == 0 {
		c.BodyPartWeight = defaults.BodyPartWeight
	}
	if c.InjuryWeight == 0 {
		c.InjuryWeight = defaults.InjuryWeight
	}
	if c.MissionTypeGate == 0 {
		c.MissionTypeGate = defaults.MissionTypeGate
	}
	if c.KeywordGate == 0 {
		c.KeywordGate = defaults.KeywordGate
	}
	if c.BodyPartGate == 0 {
		c.BodyPartGate = defaults.BodyPartGate
	}
	if c.InjuryGate == 0 {
		c.InjuryGate = defaults.InjuryGate
	}
	if c.CommonMissionThreshold == 0 {
		c.CommonMissionThreshold = defaults.CommonMissionThreshold
	}
	if c.MaxRecommendations == 0 {
		c.MaxRecommendations = defaults.MaxRecommendations
	}
	if c.PreviewMissions == 0 {
		c.PreviewMissions = defaults.PreviewMissions
	}
}
