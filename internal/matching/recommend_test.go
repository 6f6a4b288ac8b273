package matching

import (
	"fmt"
	"strings"
	"testing"

	"github.com/rehabflow/rehabflow/internal/models"
)

func matchWithMissions(id string, score float64, titles ...string) models.Match {
	match := models.Match{
		User:  &models.User{ID: id, FullName: "User " + id},
		Score: score,
	}
	for _, title := range titles {
		m := mission(title, "", models.MissionExercise, day)
		match.CommonMissions = append(match.CommonMissions, models.CommonMission{
			Mission:    &m,
			MatchType:  models.CommonMissionExact,
			Similarity: 1.0,
		})
	}
	return match
}

func TestLobbyRecommendations(t *testing.T) {
	matches := []models.Match{
		matchWithMissions("u2", 0.9, "Pec Stretch", "Neck Rotation", "Wall Push-Up", "Hip Bridge"),
		{
			User:    &models.User{ID: "u3", FullName: "User u3"},
			Score:   0.7,
			Reasons: []string{"Similar mission types", "Same body parts"},
		},
		{
			User:  &models.User{ID: "u4", FullName: "User u4"},
			Score: 0.6,
		},
	}

	recs := NewMatcher(nil).LobbyRecommendations(matches)
	if len(recs) != 3 {
		t.Fatalf("recommendations = %d, want 3", len(recs))
	}

	first := recs[0]
	if first.CommonMissionCount != 4 {
		t.Errorf("common mission count = %d, want 4", first.CommonMissionCount)
	}
	if len(first.CommonMissionsPreview) != 3 {
		t.Errorf("preview = %d titles, want 3", len(first.CommonMissionsPreview))
	}
	want := "You both have 4 similar daily missions! Perfect time to connect and support each other."
	if first.LobbySuggestion != want {
		t.Errorf("suggestion = %q, want %q", first.LobbySuggestion, want)
	}

	want = "You share Similar mission types, Same body parts. Join them for mutual support!"
	if recs[1].LobbySuggestion != want {
		t.Errorf("suggestion = %q, want %q", recs[1].LobbySuggestion, want)
	}

	want = "Connect with this user for recovery support!"
	if recs[2].LobbySuggestion != want {
		t.Errorf("suggestion = %q, want %q", recs[2].LobbySuggestion, want)
	}
}

func TestLobbySuggestion_NamesAtMostTwoReasons(t *testing.T) {
	match := models.Match{
		User:  &models.User{ID: "u2"},
		Score: 0.9,
		Reasons: []string{
			"Similar mission types", "Similar exercises",
			"Same body parts", "Similar injury type",
		},
	}

	got := lobbySuggestion(match)
	want := "You share Similar mission types, Similar exercises. Join them for mutual support!"
	if got != want {
		t.Errorf("suggestion = %q, want %q", got, want)
	}
}

func TestLobbyRecommendations_Capped(t *testing.T) {
	var matches []models.Match
	for i := 0; i < 8; i++ {
		matches = append(matches, matchWithMissions(fmt.Sprintf("u%d", i+2), 0.9, "Pec Stretch"))
	}

	recs := NewMatcher(nil).LobbyRecommendations(matches)
	if len(recs) != 5 {
		t.Fatalf("recommendations = %d, want 5", len(recs))
	}
	for i, rec := range recs {
		if want := matches[i].User.ID; rec.UserID != want {
			t.Errorf("rec %d user = %q, want %q", i, rec.UserID, want)
		}
		if !strings.Contains(rec.LobbySuggestion, "similar daily missions") {
			t.Errorf("rec %d suggestion = %q", i, rec.LobbySuggestion)
		}
	}
}
