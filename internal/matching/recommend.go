package matching

import (
	"fmt"
	"strings"

	"github.com/rehabflow/rehabflow/internal/models"
)

// LobbyRecommendations projects matches into lobby cards, at most
// MaxRecommendations of them, each previewing up to PreviewMissions
// common-mission titles.
func (m *Matcher) LobbyRecommendations(matches []models.Match) []models.Recommendation {
	limit := m.cfg.MaxRecommendations
	if len(matches) < limit {
		limit = len(matches)
	}

	recs := make([]models.Recommendation, 0, limit)
	for _, match := range matches[:limit] {
		var preview []string
		for _, cm := range match.CommonMissions {
			if len(preview) == m.cfg.PreviewMissions {
				break
			}
			preview = append(preview, cm.Mission.Title)
		}
		recs = append(recs, models.Recommendation{
			UserID:                match.User.ID,
			UserName:              match.User.FullName,
			UserInjuryType:        match.User.Profile.InjuryType,
			Score:                 match.Score,
			Reasons:               match.Reasons,
			CommonMissionCount:    len(match.CommonMissions),
			CommonMissionsPreview: preview,
			LobbySuggestion:       lobbySuggestion(match),
		})
	}
	return recs
}

// lobbySuggestion phrases why the pairing is worth acting on, preferring
// concrete shared missions over abstract reasons.
func lobbySuggestion(match models.Match) string {
	if n := len(match.CommonMissions); n > 0 {
		return fmt.Sprintf("You both have %d similar daily missions! Perfect time to connect and support each other.", n)
	}
	if len(match.Reasons) > 0 {
		reasons := match.Reasons
		if len(reasons) > 2 {
			reasons = reasons[:2]
		}
		return fmt.Sprintf("You share %s. Join them for mutual support!",
			strings.Join(reasons, ", "))
	}
	return "Connect with this user for recovery support!"
}
