package model

// CoverageResult records whether a production file has a matching test.
type CoverageResult struct {
	Source     FileRecord  `json:"source" yaml:"source"`
	Test       *FileRecord `json:"test,omitempty" yaml:"test,omitempty"`
	Confidence Confidence  `json:"confidence" yaml:"confidence"`
}

// Covered reports whether a test was matched.
func (cr CoverageResult) Covered() bool {
	return cr.Test != nil
}

// CoverageSummary aggregates covered/total counts.
type CoverageSummary struct {
	Covered int     `json:"covered" yaml:"covered"`
	Total   int     `json:"total" yaml:"total"`
	Percent float64 `json:"percent" yaml:"percent"`
}

// Summarize counts covered results. Percent is zero when there is nothing to cover.
func Summarize(results ...[]CoverageResult) CoverageSummary {
	var summary CoverageSummary

	for _, group := range results {
		for _, result := range group {
			summary.Total++

			if result.Covered() {
				summary.Covered++
			}
		}
	}

	if summary.Total > 0 {
		summary.Percent = float64(summary.Covered) / float64(summary.Total) * 100
	}

	return summary
}

// CoverageGrade is a coarse reading of an overall coverage percentage.
type CoverageGrade int

const (
	// GradeNone means there were no testable files.
	GradeNone CoverageGrade = iota
	// GradeLow is below 50%.
	GradeLow
	// GradeModerate is 50% up to 80%.
	GradeModerate
	// GradeGood is 80% up to 100%.
	GradeGood
	// GradeComplete is 100%.
	GradeComplete
)

// Grade classifies the summary.
func (s CoverageSummary) Grade() CoverageGrade {
	switch {
	case s.Total == 0:
		return GradeNone
	case s.Covered == s.Total:
		return GradeComplete
	case s.Percent >= 80:
		return GradeGood
	case s.Percent >= 50:
		return GradeModerate
	default:
		return GradeLow
	}
}

func (g CoverageGrade) String() string {
	switch g {
	case GradeComplete:
		return "complete"
	case GradeGood:
		return "good"
	case GradeModerate:
		return "moderate"
	case GradeLow:
		return "low"
	case GradeNone:
		return "none"
	}

	return "unknown"
}

// MarshalText renders the grade by name in JSON and YAML output.
func (g CoverageGrade) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// CoverageTable is the coverage of one artifact class.
type CoverageTable struct {
	Class   ArtifactKind     `json:"class" yaml:"class"`
	Results []CoverageResult `json:"results" yaml:"results"`
	Summary CoverageSummary  `json:"summary" yaml:"summary"`
}

// Coverage is the structural test coverage map of a project.
type Coverage struct {
	UseCases    CoverageTable   `json:"use_cases" yaml:"use_cases"`
	Controllers CoverageTable   `json:"controllers" yaml:"controllers"`
	Services    CoverageTable   `json:"services" yaml:"services"`
	Overall     CoverageSummary `json:"overall" yaml:"overall"`
	Grade       CoverageGrade   `json:"grade" yaml:"grade"`
}
