package models

import "testing"

func TestMatchSubject(t *testing.T) {
	tests := []struct {
		tag     string
		want    Subject
		matched bool
	}{
		{"Physics", SubjectPhysics, true},
		{"PHYSICS", SubjectPhysics, true},
		{"physics (numerical)", SubjectPhysics, true},
		{"Biology (Zoology)", SubjectBiology, true},
		{"chemistry", SubjectChemistry, true},
		{"Mathematics", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, matched := MatchSubject(tt.tag)
		if matched != tt.matched || got != tt.want {
			t.Errorf("MatchSubject(%q) = %q, %v; want %q, %v", tt.tag, got, matched, tt.want, tt.matched)
		}
	}
}

func TestValidTopic(t *testing.T) {
	if !ValidTopic(SubjectPhysics, "Optics") {
		t.Error("Optics should be a valid Physics topic")
	}
	if ValidTopic(SubjectPhysics, "Botany") {
		t.Error("Botany is not a Physics topic")
	}
	if ValidTopic("Mathematics", "Algebra") {
		t.Error("unknown subject should have no topics")
	}
}

func TestDailyRecordCompleted(t *testing.T) {
	tests := []struct {
		rec  DailyRecord
		want bool
	}{
		{DailyRecord{Total: 3, AnsweredCount: 3}, true},
		{DailyRecord{Total: 3, AnsweredCount: 2}, false},
		{DailyRecord{Total: 0, AnsweredCount: 0}, false},
	}
	for _, tt := range tests {
		if got := tt.rec.Completed(); got != tt.want {
			t.Errorf("Completed(%+v) = %v, want %v", tt.rec, got, tt.want)
		}
	}
}

func TestServedQuestionStripsAnswer(t *testing.T) {
	q := Question{
		ID:                 7,
		QuestionText:       "What is the SI unit of force?",
		Options:            []string{"newton", "joule", "watt", "pascal"},
		CorrectOptionIndex: 0,
		Explanation:        "Force is measured in newtons.",
		Topic:              "Mechanics",
	}

	served := q.ToServed()
	if served.ID != q.ID || served.QuestionText != q.QuestionText {
		t.Errorf("served question lost fields: %+v", served)
	}
	if len(served.Options) != 4 {
		t.Errorf("expected 4 options, got %d", len(served.Options))
	}
}
