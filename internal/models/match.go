package models

// PatientProfile carries the clinical profile fields used for matching.
type PatientProfile struct {
	InjuryType string `json:"injury_type,omitempty" db:"injury_type"`
}

// User is a patient account participating in peer matching.
type User struct {
	ID       string         `json:"id" db:"id"`
	FullName string         `json:"full_name" db:"full_name"`
	Profile  PatientProfile `json:"patient_profile"`
}

// CommonMissionMatchType distinguishes exact from fuzzy title matches.
type CommonMissionMatchType string

const (
	CommonMissionExact   CommonMissionMatchType = "exact"
	CommonMissionSimilar CommonMissionMatchType = "similar"
)

// CommonMission is a correspondence between two users' missions.
type CommonMission struct {
	Mission    *Mission               `json:"mission"`
	MatchType  CommonMissionMatchType `json:"match_type"`
	Similarity float64                `json:"similarity,omitempty"`
}

// Match is a candidate user with a similarity score in [0,1] and the evidence
// behind it.
type Match struct {
	User           *User           `json:"user"`
	Score          float64         `json:"similarity_score"`
	Reasons        []string        `json:"match_reasons"`
	CommonMissions []CommonMission `json:"common_missions"`
}

// Recommendation is a ranked lobby pairing suggestion projected from a Match.
type Recommendation struct {
	UserID                string   `json:"user_id"`
	UserName              string   `json:"user_name"`
	UserInjuryType        string   `json:"user_injury_type"`
	Score                 float64  `json:"similarity_score"`
	Reasons               []string `json:"match_reasons"`
	CommonMissionCount    int      `json:"common_mission_count"`
	CommonMissionsPreview []string `json:"common_missions_preview"`
	LobbySuggestion       string   `json:"lobby_suggestion"`
}
