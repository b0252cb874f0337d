package quiz

import (
	"context"
	"log"
	"time"

	"github.com/neet-prep/backend/internal/generator"
	"github.com/neet-prep/backend/internal/models"
	"github.com/neet-prep/backend/internal/progress"
	"github.com/neet-prep/backend/internal/scoring"
)

// Service runs quiz and daily-challenge sessions: it asks the generator for
// questions, tracks answers in the session registry, and checkpoints results
// into the progress store. Transient in the registry, durable in the store.
type Service struct {
	gen      *generator.Generator
	sessions *Sessions
	store    *progress.Store
	now      func() time.Time
}

func NewService(gen *generator.Generator, store *progress.Store) *Service {
	return &Service{
		gen:      gen,
		sessions: NewSessions(),
		store:    store,
		now:      time.Now,
	}
}

// NewServiceAt pins the service's clock, for tests.
func NewServiceAt(gen *generator.Generator, store *progress.Store, now func() time.Time) *Service {
	s := NewService(gen, store)
	s.now = now
	return s
}

// ── Quiz Sessions ───────────────────────────────────────

func (s *Service) StartQuiz(ctx context.Context, email string, req models.StartQuizRequest) (*models.StartQuizResponse, error) {
	questions, err := s.gen.GenerateQuiz(ctx, req.Subject, req.Topic, req.Difficulty, req.Count)
	if err != nil {
		return nil, err
	}

	sess := s.sessions.CreateQuiz(email, req.Subject, req.Topic, questions)

	served := make([]models.ServedQuestion, 0, len(questions))
	for _, q := range questions {
		served = append(served, q.ToServed())
	}
	return &models.StartQuizResponse{
		SessionID:  sess.ID,
		Subject:    req.Subject,
		Topic:      req.Topic,
		Difficulty: req.Difficulty,
		Questions:  served,
	}, nil
}

// SubmitQuizAnswer records an answer and reveals the correct option.
// The first answer for a question index wins: a repeat submission returns
// Recorded false with the original selection, never an error.
func (s *Service) SubmitQuizAnswer(sessionID, email string, req models.SubmitAnswerRequest) (*models.SubmitAnswerResponse, error) {
	sess, err := s.sessions.Quiz(sessionID, email)
	if err != nil {
		return nil, err
	}
	if req.QuestionIndex < 0 || req.QuestionIndex >= len(sess.Questions) {
		return nil, ErrQuestionIndexOOB
	}
	q := sess.Questions[req.QuestionIndex]
	if req.OptionIndex < 0 || req.OptionIndex >= len(q.Options) {
		return nil, ErrOptionIndexOOB
	}

	sess.Lock()
	defer sess.Unlock()
	if sess.Finished {
		return nil, ErrSessionFinished
	}

	recorded := sess.Answers.Record(req.QuestionIndex, req.OptionIndex)
	selected, _ := sess.Answers.Get(req.QuestionIndex)

	return &models.SubmitAnswerResponse{
		Recorded:           recorded,
		SelectedIndex:      selected,
		Correct:            selected == q.CorrectOptionIndex,
		CorrectOptionIndex: q.CorrectOptionIndex,
		Explanation:        q.Explanation,
	}, nil
}

// FinishQuiz scores the session and appends the result to the user's
// history. Scoring is local and cannot fail; if the history write fails the
// result is still returned so the user sees their score, and the miss is
// logged.
func (s *Service) FinishQuiz(ctx context.Context, sessionID, email string) (*models.FinishQuizResponse, error) {
	sess, err := s.sessions.Quiz(sessionID, email)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	if sess.Finished {
		sess.Unlock()
		return nil, ErrSessionFinished
	}
	sess.Finished = true
	result := scoring.Score(sess.Questions, sess.Answers)
	sess.Unlock()

	record := models.QuizRecord{
		Date:    s.now(),
		Subject: sess.Subject,
		Topic:   sess.Topic,
		Score:   result.Score,
		Total:   result.MaxScore(),
	}
	if record.Total > 0 {
		record.Percentage = float64(result.Score) / float64(record.Total) * 100
	}

	if err := s.store.AppendQuizRecord(ctx, email, record); err != nil {
		log.Printf("[quiz] WARN: failed to persist quiz record for %s: %v", email, err)
	}

	return &models.FinishQuizResponse{
		Result:   result,
		MaxScore: result.MaxScore(),
		Record:   record,
	}, nil
}

// ── Daily Challenge ─────────────────────────────────────

// StartDaily returns today's challenge for the user. An existing session
// for today is resumed rather than regenerated, so a page reload does not
// produce a second question set for the same date.
func (s *Service) StartDaily(ctx context.Context, email string) (*models.StartDailyResponse, error) {
	date := s.now().Format(models.DateLayout)

	sess := s.sessions.DailyForDate(email, date)
	resumed := sess != nil
	if sess == nil {
		questions, err := s.gen.GenerateDaily(ctx)
		if err != nil {
			return nil, err
		}
		sess = s.sessions.CreateDaily(email, date, questions)
	}

	served := make([]models.ServedDailyQuestion, 0, len(sess.Questions))
	for _, q := range sess.Questions {
		served = append(served, q.ToServed())
	}
	return &models.StartDailyResponse{
		SessionID: sess.ID,
		Date:      sess.Date,
		Questions: served,
		Resumed:   resumed,
	}, nil
}

// SubmitDailyAnswer records an answer and immediately checkpoints the day's
// record with the cumulative score, so partial runs survive a crash or an
// abandoned tab. The checkpoint write also fires the progress notifier.
func (s *Service) SubmitDailyAnswer(ctx context.Context, sessionID, email string, req models.SubmitAnswerRequest) (*models.SubmitAnswerResponse, error) {
	sess, err := s.sessions.Daily(sessionID, email)
	if err != nil {
		return nil, err
	}
	if req.QuestionIndex < 0 || req.QuestionIndex >= len(sess.Questions) {
		return nil, ErrQuestionIndexOOB
	}
	q := sess.Questions[req.QuestionIndex]
	if req.OptionIndex < 0 || req.OptionIndex >= len(q.Options) {
		return nil, ErrOptionIndexOOB
	}

	// The lock spans record through checkpoint so two concurrent answers
	// cannot interleave and persist a record missing one of them.
	sess.Lock()
	defer sess.Unlock()

	recorded := sess.Answers.Record(req.QuestionIndex, req.OptionIndex)
	selected, _ := sess.Answers.Get(req.QuestionIndex)

	if recorded {
		rec := s.dailyRecord(sess)
		if err := s.store.UpsertDailyRecord(ctx, email, rec); err != nil {
			log.Printf("[quiz] WARN: failed to persist daily record for %s: %v", email, err)
		}
	}

	return &models.SubmitAnswerResponse{
		Recorded:           recorded,
		SelectedIndex:      selected,
		Correct:            selected == q.CorrectOptionIndex,
		CorrectOptionIndex: q.CorrectOptionIndex,
		Explanation:        q.Explanation,
	}, nil
}

// dailyRecord snapshots the session as a one-point-per-correct record.
func (s *Service) dailyRecord(sess *DailySession) models.DailyRecord {
	correct := 0
	for i, q := range sess.Questions {
		if selected, ok := sess.Answers.Get(i); ok && selected == q.CorrectOptionIndex {
			correct++
		}
	}
	return models.DailyRecord{
		Date:          sess.Date,
		Score:         correct,
		Total:         len(sess.Questions),
		AnsweredCount: sess.Answers.Len(),
	}
}

// DailyStatus reports whether today's challenge was attempted or completed,
// based on the persisted record rather than the in-memory session.
func (s *Service) DailyStatus(ctx context.Context, email string) *models.DailyStatusResponse {
	date := s.now().Format(models.DateLayout)
	rec := s.store.DailyRecordFor(ctx, email, date)
	if rec == nil {
		return &models.DailyStatusResponse{}
	}
	return &models.DailyStatusResponse{
		Attempted: true,
		Completed: rec.Completed(),
		Record:    rec,
	}
}
