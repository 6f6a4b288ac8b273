package matching

import (
	"testing"
	"time"

	"github.com/rehabflow/rehabflow/internal/models"
)

var day = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func mission(title, description string, typ models.MissionType, on time.Time) models.Mission {
	return models.Mission{
		Title:         title,
		Description:   description,
		Type:          typ,
		ScheduledDate: on,
		Status:        models.StatusPending,
	}
}

func TestFindMatchingUsers_SharedProgram(t *testing.T) {
	target := models.User{ID: "u1", FullName: "Ana", Profile: models.PatientProfile{InjuryType: "shoulder impingement"}}
	targetMissions := []models.Mission{
		mission("Pec Stretch", "Stand in a doorway and stretch the chest and shoulder", models.MissionExercise, day),
		mission("Shoulder Retraction", "Squeeze shoulder blades together", models.MissionExercise, day),
	}
	candidates := []Candidate{
		{
			User: models.User{ID: "u2", FullName: "Ben", Profile: models.PatientProfile{InjuryType: "shoulder strain"}},
			Missions: []models.Mission{
				mission("Pec Stretch", "Doorway stretch for the chest and shoulder", models.MissionExercise, day),
				mission("Shoulder Retraction", "Pull shoulder blades back and hold", models.MissionExercise, day),
			},
		},
	}

	m := NewMatcher(nil)
	matches := m.FindMatchingUsers(target, targetMissions, candidates, day)
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}

	match := matches[0]
	if match.User.ID != "u2" {
		t.Errorf("matched user = %q, want u2", match.User.ID)
	}
	if match.Score < 0.6 {
		t.Errorf("score = %.2f, want >= 0.6", match.Score)
	}
	if match.Score > 1.0 {
		t.Errorf("score = %.2f, want <= 1.0", match.Score)
	}
	wantReasons := []string{"Similar mission types", "Similar exercises", "Same body parts"}
	for _, want := range wantReasons {
		if !containsString(match.Reasons, want) {
			t.Errorf("reasons = %v, missing %q", match.Reasons, want)
		}
	}
	if len(match.CommonMissions) != 2 {
		t.Fatalf("common missions = %d, want 2", len(match.CommonMissions))
	}
	for _, cm := range match.CommonMissions {
		if cm.MatchType != models.CommonMissionExact {
			t.Errorf("%q match type = %q, want exact", cm.Mission.Title, cm.MatchType)
		}
	}
}

func TestFindMatchingUsers_SkipsOtherDays(t *testing.T) {
	target := models.User{ID: "u1"}
	targetMissions := []models.Mission{
		mission("Pec Stretch", "Doorway chest stretch", models.MissionExercise, day),
	}
	candidates := []Candidate{
		{
			User: models.User{ID: "u2"},
			Missions: []models.Mission{
				mission("Pec Stretch", "Doorway chest stretch", models.MissionExercise, day.AddDate(0, 0, 1)),
			},
		},
	}

	matches := NewMatcher(nil).FindMatchingUsers(target, targetMissions, candidates, day)
	if len(matches) != 0 {
		t.Errorf("matches = %d, want 0 when candidate has nothing scheduled that day", len(matches))
	}
}

func TestFindMatchingUsers_SkipsSelf(t *testing.T) {
	target := models.User{ID: "u1"}
	missions := []models.Mission{
		mission("Pec Stretch", "Doorway chest stretch", models.MissionExercise, day),
	}
	candidates := []Candidate{{User: target, Missions: missions}}

	matches := NewMatcher(nil).FindMatchingUsers(target, missions, candidates, day)
	if len(matches) != 0 {
		t.Errorf("matches = %d, want 0 for the target's own entry", len(matches))
	}
}

func TestFindMatchingUsers_BelowThreshold(t *testing.T) {
	target := models.User{ID: "u1"}
	targetMissions := []models.Mission{
		mission("Pec Stretch", "Doorway chest stretch for the shoulder", models.MissionExercise, day),
	}
	candidates := []Candidate{
		{
			User: models.User{ID: "u2"},
			Missions: []models.Mission{
				mission("Take Ibuprofen", "400mg with food", models.MissionMedication, day),
			},
		},
	}

	matches := NewMatcher(nil).FindMatchingUsers(target, targetMissions, candidates, day)
	if len(matches) != 0 {
		t.Errorf("matches = %d, want 0 for a dissimilar program", len(matches))
	}
}

func TestFindMatchingUsers_SortedByScore(t *testing.T) {
	target := models.User{ID: "u1"}
	targetMissions := []models.Mission{
		mission("Pec Stretch", "Doorway chest and shoulder stretch", models.MissionExercise, day),
		mission("Neck Rotation", "Slow neck rotation for mobility", models.MissionExercise, day),
	}
	// u3 mirrors the whole program, u2 only part of it.
	candidates := []Candidate{
		{
			User: models.User{ID: "u2"},
			Missions: []models.Mission{
				mission("Pec Stretch", "Doorway chest and shoulder stretch", models.MissionExercise, day),
				mission("Neck Rotation Stretch", "Slow neck rotation stretch for mobility", models.MissionExercise, day),
			},
		},
		{
			User: models.User{ID: "u3"},
			Missions: []models.Mission{
				mission("Pec Stretch", "Doorway chest and shoulder stretch", models.MissionExercise, day),
				mission("Neck Rotation", "Slow neck rotation for mobility", models.MissionExercise, day),
			},
		},
	}

	matches := NewMatcher(nil).FindMatchingUsers(target, targetMissions, candidates, day)
	if len(matches) < 2 {
		t.Fatalf("matches = %d, want 2", len(matches))
	}
	if matches[0].User.ID != "u3" {
		t.Errorf("top match = %q, want u3", matches[0].User.ID)
	}
	if matches[0].Score < matches[1].Score {
		t.Errorf("matches not sorted: %.2f before %.2f", matches[0].Score, matches[1].Score)
	}
}

func TestCompareCounts(t *testing.T) {
	tests := []struct {
		name string
		a, b map[string]int
		want float64
	}{
		{"identical", map[string]int{"stretch": 2}, map[string]int{"stretch": 2}, 1.0},
		{"disjoint", map[string]int{"stretch": 1}, map[string]int{"strength": 1}, 0.0},
		{"partial", map[string]int{"stretch": 2, "pain": 1}, map[string]int{"stretch": 1}, 1.0 / 3.0},
		{"both empty", map[string]int{}, map[string]int{}, 0.0},
		{"one empty", map[string]int{"stretch": 1}, map[string]int{}, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := compareCounts(tt.a, tt.b)
			if !closeTo(got, tt.want) {
				t.Errorf("compareCounts = %.4f, want %.4f", got, tt.want)
			}
			if rev := compareCounts(tt.b, tt.a); !closeTo(rev, got) {
				t.Errorf("not symmetric: %.4f vs %.4f", got, rev)
			}
		})
	}
}

func TestWordOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "Pec Stretch", "pec stretch", 1.0},
		{"shared word", "Pec Stretch", "Hamstring Stretch", 1.0 / 3.0},
		{"disjoint", "Pec Stretch", "Neck Rotation", 0.0},
		{"empty", "", "", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wordOverlap(tt.a, tt.b); !closeTo(got, tt.want) {
				t.Errorf("wordOverlap(%q, %q) = %.4f, want %.4f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCommonMissions_FuzzyMatch(t *testing.T) {
	target := []models.Mission{
		mission("Shoulder Pec Stretch", "", models.MissionExercise, day),
		mission("Neck Rotation", "", models.MissionExercise, day),
	}
	candidate := []models.Mission{
		mission("Shoulder Pec Stretch Exercise", "", models.MissionExercise, day),
	}

	common := NewMatcher(nil).CommonMissions(target, candidate)
	if len(common) != 1 {
		t.Fatalf("common missions = %d, want 1", len(common))
	}
	cm := common[0]
	if cm.MatchType != models.CommonMissionSimilar {
		t.Errorf("match type = %q, want similar", cm.MatchType)
	}
	if cm.Mission.Title != "Shoulder Pec Stretch Exercise" {
		t.Errorf("mission = %q, want the candidate-side mission", cm.Mission.Title)
	}
	if !closeTo(cm.Similarity, 0.75) {
		t.Errorf("similarity = %.4f, want 0.75", cm.Similarity)
	}
}

func TestCommonMissions_DuplicateCandidateTitlesEachCount(t *testing.T) {
	target := []models.Mission{
		mission("Pec Stretch", "", models.MissionExercise, day),
	}
	candidate := []models.Mission{
		mission("Pec Stretch", "", models.MissionExercise, day),
		mission("Pec Stretch", "", models.MissionExercise, day),
	}

	common := NewMatcher(nil).CommonMissions(target, candidate)
	if len(common) != 2 {
		t.Fatalf("common missions = %d, want 2 (one per candidate mission)", len(common))
	}
	for _, cm := range common {
		if cm.MatchType != models.CommonMissionExact {
			t.Errorf("match type = %q, want exact", cm.MatchType)
		}
	}
}

func TestExtractFeatures_BodyPartsFromTitleOnly(t *testing.T) {
	missions := []models.Mission{
		mission("Doorway Routine", "Gently stretch the shoulder", models.MissionExercise, day),
		mission("Shoulder Retraction", "Squeeze the blades together", models.MissionExercise, day),
	}

	fs := extractFeatures(missions)
	if n := fs.bodyParts["shoulder"]; n != 1 {
		t.Errorf("shoulder count = %d, want 1 (titles only, descriptions excluded)", n)
	}
	if n := fs.keywords["stretch"]; n != 1 {
		t.Errorf("stretch keyword count = %d, want 1 (keywords scan description too)", n)
	}
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

func closeTo(got, want float64) bool {
	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-9
}
