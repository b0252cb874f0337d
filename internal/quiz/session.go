package quiz

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/neet-prep/backend/internal/models"
	"github.com/neet-prep/backend/internal/scoring"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionFinished  = errors.New("session already finished")
	ErrNotSessionOwner  = errors.New("session belongs to another user")
	ErrQuestionIndexOOB = errors.New("question index out of range")
	ErrOptionIndexOOB   = errors.New("option index out of range")
)

// QuizSession holds one in-flight quiz. The answer set enforces
// first-answer-wins; Finish freezes the session so late submissions fail.
// mu serializes answer and finish mutations: each HTTP request runs on its
// own goroutine, and the AnswerSet map is not safe for concurrent writes.
type QuizSession struct {
	ID        string
	Email     string
	Subject   models.Subject
	Topic     string
	Questions []models.Question
	StartedAt time.Time

	mu       sync.Mutex
	Answers  *scoring.AnswerSet
	Finished bool
}

// Lock guards Answers and Finished.
func (s *QuizSession) Lock()   { s.mu.Lock() }
func (s *QuizSession) Unlock() { s.mu.Unlock() }

// DailySession is one user's run at today's three-question challenge.
// Unlike a quiz there is no finish step: every answer checkpoints the
// day's record immediately. mu serializes the record-then-checkpoint path.
type DailySession struct {
	ID        string
	Email     string
	Date      string
	Questions []models.DailyQuestion

	mu      sync.Mutex
	Answers *scoring.AnswerSet
}

// Lock guards Answers.
func (s *DailySession) Lock()   { s.mu.Lock() }
func (s *DailySession) Unlock() { s.mu.Unlock() }

// Sessions is the in-memory registry of active quiz and daily sessions.
// Sessions live until the process exits; a finished quiz stays resident so
// its result can be re-read, but rejects further answers.
type Sessions struct {
	mu    sync.Mutex
	quiz  map[string]*QuizSession
	daily map[string]*DailySession
}

func NewSessions() *Sessions {
	return &Sessions{
		quiz:  make(map[string]*QuizSession),
		daily: make(map[string]*DailySession),
	}
}

func (s *Sessions) CreateQuiz(email string, subject models.Subject, topic string, questions []models.Question) *QuizSession {
	sess := &QuizSession{
		ID:        uuid.NewString(),
		Email:     email,
		Subject:   subject,
		Topic:     topic,
		Questions: questions,
		Answers:   scoring.NewAnswerSet(),
		StartedAt: time.Now(),
	}
	s.mu.Lock()
	s.quiz[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

func (s *Sessions) CreateDaily(email, date string, questions []models.DailyQuestion) *DailySession {
	sess := &DailySession{
		ID:        uuid.NewString(),
		Email:     email,
		Date:      date,
		Questions: questions,
		Answers:   scoring.NewAnswerSet(),
	}
	s.mu.Lock()
	s.daily[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

func (s *Sessions) Quiz(id, email string) (*QuizSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.quiz[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.Email != email {
		return nil, ErrNotSessionOwner
	}
	return sess, nil
}

func (s *Sessions) Daily(id, email string) (*DailySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.daily[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.Email != email {
		return nil, ErrNotSessionOwner
	}
	return sess, nil
}

// DailyForDate finds the user's existing session for a date, if any, so a
// reload resumes the same run instead of burning a fresh generation.
func (s *Sessions) DailyForDate(email, date string) *DailySession {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range s.daily {
		if sess.Email == email && sess.Date == date {
			return sess
		}
	}
	return nil
}
