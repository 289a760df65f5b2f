package model

// SurveyAnswers is one completed questionnaire. Single-choice answers may be empty
// when the question was skipped.
type SurveyAnswers struct {
	PrimaryDefense   string
	BackupEscapePlan string
	ZombieTolerance  string
	SurvivalStress   string
	RiskLocations    []string
}

// Locations returns the selected risk locations with duplicates removed, keeping the
// order in which they were first selected.
func (a *SurveyAnswers) Locations() []string {
	seen := make(map[string]struct{}, len(a.RiskLocations))
	locations := make([]string, 0, len(a.RiskLocations))
	for _, loc := range a.RiskLocations {
		if _, ok := seen[loc]; ok {
			continue
		}
		seen[loc] = struct{}{}
		locations = append(locations, loc)
	}
	return locations
}
