package session

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/tango/internal/questiongen"
)

// Session is the quiz state machine over a fixed list of questions.
// It runs on a single goroutine; scheduled callbacks must be delivered on
// the same goroutine that calls its methods.
type Session struct {
	// ID identifies the session in logs.
	ID string

	questions []questiongen.Question
	opts      Options
	log       logrus.FieldLogger

	phase      Phase
	current    int
	maxReached int

	score     int
	streak    int
	maxStreak int

	answerLog []AnswerLogEntry
	answered  map[int]AnswerLogEntry
	wrong     []WrongAnswer

	startedAt   time.Time
	presentedAt time.Time
	ticks       int

	advanceTimer Timer
	tickTimer    Timer

	summary *Summary
}

// New creates an idle session. It fails with ErrNoQuestions when
// questions is empty.
func New(questions []questiongen.Question, opts Options) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	id := uuid.New().String()
	return &Session{
		ID:        id,
		questions: questions,
		opts:      opts,
		log:       log.WithField("session_id", id),
		answered:  make(map[int]AnswerLogEntry),
	}, nil
}

// Start moves an idle session to Active and presents the first question.
func (s *Session) Start() {
	if s.phase != PhaseIdle {
		return
	}
	s.phase = PhaseActive
	s.startedAt = s.opts.Now()
	s.current = 0
	s.maxReached = 0
	s.log.WithFields(logrus.Fields{"questions": len(s.questions), "review": s.opts.Review}).Info("session started")
	s.present()
}

// Submit answers the current question with the option at index. It
// reports whether the answer was accepted. Answers to already answered
// questions, out-of-range options, and submissions outside the Active
// phase are ignored.
func (s *Session) Submit(option int) bool {
	if s.phase != PhaseActive {
		return false
	}
	if _, done := s.answered[s.current]; done {
		return false
	}
	q := s.questions[s.current]
	if option < 0 || option >= len(q.Options) {
		return false
	}

	chosen := q.Options[option]
	spent := int(s.opts.Now().Sub(s.presentedAt) / time.Second)
	if spent < 0 {
		spent = 0
	}
	entry := AnswerLogEntry{
		QuestionIndex: s.current,
		SelectedIndex: option,
		Correct:       chosen.Correct,
		SecondsSpent:  spent,
	}
	s.answerLog = append(s.answerLog, entry)
	s.answered[s.current] = entry
	s.stopTick()

	ctx := context.Background()
	delay := s.opts.CorrectDelay
	if chosen.Correct {
		s.score++
		s.streak++
		if s.streak > s.maxStreak {
			s.maxStreak = s.streak
		}
		if s.opts.Review && s.opts.Recorder != nil {
			if err := s.opts.Recorder.Promote(ctx, q.Vocab.Word); err != nil {
				s.log.WithError(err).WithField("word", q.Vocab.Word).Warn("promote failed")
			}
		}
	} else {
		delay = s.opts.IncorrectDelay
		s.streak = 0
		s.wrong = append(s.wrong, WrongAnswer{
			Question:      q,
			YourAnswer:    chosen.Text,
			CorrectAnswer: q.Answer,
		})
		if s.opts.Recorder != nil {
			if err := s.opts.Recorder.RecordMiss(ctx, q.Vocab, q.Mode); err != nil {
				s.log.WithError(err).WithField("word", q.Vocab.Word).Warn("record miss failed")
			}
		}
	}

	s.scheduleAdvance(delay)
	return true
}

// Advance moves past an answered question. From the last question it
// finishes the session. Advancing from an unanswered question is ignored.
func (s *Session) Advance() {
	if s.phase != PhaseActive {
		return
	}
	if _, done := s.answered[s.current]; !done {
		return
	}
	if s.current >= len(s.questions)-1 {
		s.finish()
		return
	}
	s.current++
	if s.current > s.maxReached {
		s.maxReached = s.current
	}
	s.present()
}

// Retreat moves back one question.
func (s *Session) Retreat() {
	if s.current > 0 {
		s.GoTo(s.current - 1)
	}
}

// GoTo jumps to question i. Only questions up to the furthest one reached,
// or questions already answered, can be visited. It reports whether the
// move happened.
func (s *Session) GoTo(i int) bool {
	if s.phase != PhaseActive || i < 0 || i >= len(s.questions) || i == s.current {
		return false
	}
	if _, done := s.answered[i]; !done && i > s.maxReached {
		return false
	}
	s.current = i
	s.present()
	return true
}

// Finalize finishes the session if needed and returns its summary. The
// summary is computed once.
func (s *Session) Finalize() Summary {
	if s.summary == nil {
		s.finish()
	}
	return *s.summary
}

// Reset cancels pending timers and returns the session to Idle with
// cleared progress.
func (s *Session) Reset() {
	s.cancelAdvance()
	s.stopTick()
	s.phase = PhaseIdle
	s.current = 0
	s.maxReached = 0
	s.score = 0
	s.streak = 0
	s.maxStreak = 0
	s.answerLog = nil
	s.answered = make(map[int]AnswerLogEntry)
	s.wrong = nil
	s.ticks = 0
	s.summary = nil
}

func (s *Session) finish() {
	if s.summary != nil {
		return
	}
	s.cancelAdvance()
	s.stopTick()
	if s.phase == PhaseIdle {
		s.startedAt = s.opts.Now()
	}
	s.phase = PhaseFinished

	total := int(s.opts.Now().Sub(s.startedAt) / time.Second)
	if total < 0 {
		total = 0
	}
	sum := buildSummary(s.score, len(s.questions), s.maxStreak, total, s.wrong, s.opts.Review)
	s.summary = &sum
	s.log.WithFields(logrus.Fields{
		"score":      sum.Score,
		"total":      sum.Total,
		"percentage": sum.Percentage,
		"seconds":    sum.TotalSeconds,
	}).Info("session finished")
}

// present shows the current question. Any pending advance is cancelled;
// unanswered questions restart their countdown.
func (s *Session) present() {
	s.cancelAdvance()
	s.stopTick()
	s.ticks = 0
	if _, done := s.answered[s.current]; done {
		return
	}
	s.presentedAt = s.opts.Now()
	s.startTick()
}

func (s *Session) scheduleAdvance(delay time.Duration) {
	s.cancelAdvance()
	if delay <= 0 || s.opts.Scheduler == nil {
		s.Advance()
		return
	}
	index := s.current
	s.advanceTimer = s.opts.Scheduler.AfterFunc(delay, func() {
		s.advanceTimer = nil
		if s.phase == PhaseActive && s.current == index {
			s.Advance()
		}
	})
}

func (s *Session) cancelAdvance() {
	if s.advanceTimer != nil {
		s.advanceTimer.Stop()
		s.advanceTimer = nil
	}
}

func (s *Session) startTick() {
	if s.opts.TickInterval <= 0 || s.opts.Scheduler == nil {
		return
	}
	s.tickTimer = s.opts.Scheduler.AfterFunc(s.opts.TickInterval, func() {
		s.tickTimer = nil
		s.ticks++
		s.startTick()
	})
}

func (s *Session) stopTick() {
	if s.tickTimer != nil {
		s.tickTimer.Stop()
		s.tickTimer = nil
	}
}
