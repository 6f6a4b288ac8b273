// Package matching scores how alike two patients' recovery programs are
// and turns strong matches into lobby recommendations. Similarity is a
// weighted blend of mission types, treatment keywords, body parts, and
// injury descriptions, each compared over a single day's missions.
package matching

import (
	"sort"
	"time"

	"github.com/rehabflow/rehabflow/internal/models"
)

// Candidate pairs a user with their full mission list.
type Candidate struct {
	User     models.User
	Missions []models.Mission
}

// Matcher compares users' mission sets.
type Matcher struct {
	cfg *Config
}

// NewMatcher creates a Matcher. A nil config uses defaults.
func NewMatcher(cfg *Config) *Matcher {
	if cfg == nil {
		cfg = DefaultConfig()
	} else {
		cfg.ApplyDefaults()
	}
	return &Matcher{cfg: cfg}
}

// FindMatchingUsers scores every candidate against the target over the
// missions scheduled on day, keeping those at or above the match threshold
// in descending score order. Candidates with no missions that day are
// skipped, as is the target's own entry.
func (m *Matcher) FindMatchingUsers(target models.User, targetMissions []models.Mission, candidates []Candidate, day time.Time) []models.Match {
	targetDay := sameDayMissions(targetMissions, day)
	if len(targetDay) == 0 {
		return nil
	}
	targetFeatures := extractFeatures(targetDay)

	var matches []models.Match
	for _, cand := range candidates {
		if cand.User.ID == target.ID {
			continue
		}
		candDay := sameDayMissions(cand.Missions, day)
		if len(candDay) == 0 {
			continue
		}

		score, reasons := m.score(targetFeatures, extractFeatures(candDay),
			target.Profile.InjuryType, cand.User.Profile.InjuryType)
		if score < m.cfg.MatchThreshold {
			continue
		}
		user := cand.User
		matches = append(matches, models.Match{
			User:           &user,
			Score:          score,
			Reasons:        reasons,
			CommonMissions: m.CommonMissions(targetDay, candDay),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// score blends the four gated similarity signals. The total is capped at 1.
func (m *Matcher) score(a, b featureSet, injuryA, injuryB string) (float64, []string) {
	var score float64
	var reasons []string

	if s := compareCounts(a.missionTypes, b.missionTypes); s > m.cfg.MissionTypeGate {
		score += s * m.cfg.MissionTypeWeight
		reasons = append(reasons, "Similar mission types")
	}
	if s := compareCounts(a.keywords, b.keywords); s > m.cfg.KeywordGate {
		score += s * m.cfg.KeywordWeight
		reasons = append(reasons, "Similar exercises")
	}
	if s := compareCounts(a.bodyParts, b.bodyParts); s > m.cfg.BodyPartGate {
		score += s * m.cfg.BodyPartWeight
		reasons = append(reasons, "Same body parts")
	}
	if s := injurySimilarity(injuryA, injuryB); s > m.cfg.InjuryGate {
		score += s * m.cfg.InjuryWeight
		reasons = append(reasons, "Similar injury type")
	}

	if score > 1.0 {
		score = 1.0
	}
	return score, reasons
}

// CommonMissions lists the candidate's missions that also appear in the
// target's set. A normalized title match counts as exact; otherwise the best
// word overlap against any target title above the common-mission threshold
// counts as similar. Every candidate mission is checked independently, so
// duplicate titles each contribute an entry.
func (m *Matcher) CommonMissions(target, candidate []models.Mission) []models.CommonMission {
	targetTitles := make(map[string]struct{}, len(target))
	for i := range target {
		targetTitles[normalizeTitle(target[i].Title)] = struct{}{}
	}

	var common []models.CommonMission
	for i := range candidate {
		mc := &candidate[i]
		if _, ok := targetTitles[normalizeTitle(mc.Title)]; ok {
			common = append(common, models.CommonMission{
				Mission:    mc,
				MatchType:  models.CommonMissionExact,
				Similarity: 1.0,
			})
			continue
		}
		best := 0.0
		for j := range target {
			if s := wordOverlap(mc.Title, target[j].Title); s > best {
				best = s
			}
		}
		if best > m.cfg.CommonMissionThreshold {
			common = append(common, models.CommonMission{
				Mission:    mc,
				MatchType:  models.CommonMissionSimilar,
				Similarity: best,
			})
		}
	}
	return common
}

func sameDayMissions(missions []models.Mission, day time.Time) []models.Mission {
	var out []models.Mission
	for _, m := range missions {
		if m.SameDay(day) {
			out = append(out, m)
		}
	}
	return out
}
