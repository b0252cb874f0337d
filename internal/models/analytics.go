package models

// ── Subject Mastery ──────────────────────────────────────

// Mastery labels by percentage band.
const (
	LabelNoData           = "No Data"
	LabelNeedsImprovement = "Needs Improvement"
	LabelBuildingConcepts = "Building Concepts"
	LabelExamReady        = "Exam Ready"
)

// MasteryLabel maps an aggregate percentage to its strength label.
func MasteryLabel(percent int) string {
	switch {
	case percent == 0:
		return LabelNoData
	case percent < 40:
		return LabelNeedsImprovement
	case percent < 70:
		return LabelBuildingConcepts
	default:
		return LabelExamReady
	}
}

// SubjectMastery is the aggregate accuracy for one subject over all
// recorded quiz sessions in that subject.
type SubjectMastery struct {
	Subject  Subject `json:"subject"`
	Percent  int     `json:"percent"`
	Label    string  `json:"label"`
	Attempts int     `json:"attempts"`
}

// ── Consistency & Trend ──────────────────────────────────

// ConsistencyDay is one entry of the 7-day daily-challenge series.
type ConsistencyDay struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Weekday string `json:"weekday"`
	Score   int    `json:"score"`
}

// AnalyticsResponse bundles every derived metric for the dashboard.
// HasData false means neither history exists yet; the caller renders an
// empty state rather than an error.
type AnalyticsResponse struct {
	HasData         bool             `json:"has_data"`
	Mastery         []SubjectMastery `json:"mastery"`
	Trend           []float64        `json:"trend"`
	AverageAccuracy int              `json:"average_accuracy"`
	TestsTaken      int              `json:"tests_taken"`
	Consistency     []ConsistencyDay `json:"consistency"`
}
