package session

import "github.com/abhisek/tango/internal/questiongen"

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Index returns the index of the question being shown.
func (s *Session) Index() int { return s.current }

// MaxReached returns the furthest question index presented so far.
func (s *Session) MaxReached() int { return s.maxReached }

// Len returns the number of questions.
func (s *Session) Len() int { return len(s.questions) }

// Question returns the question being shown.
func (s *Session) Question() questiongen.Question { return s.questions[s.current] }

// Score returns the number of correct answers.
func (s *Session) Score() int { return s.score }

// Streak returns the current run of correct answers.
func (s *Session) Streak() int { return s.streak }

// MaxStreak returns the longest run of correct answers.
func (s *Session) MaxStreak() int { return s.maxStreak }

// Review reports whether this is a notebook practice run.
func (s *Session) Review() bool { return s.opts.Review }

// Answer returns the log entry for question i, if it was answered.
func (s *Session) Answer(i int) (AnswerLogEntry, bool) {
	e, ok := s.answered[i]
	return e, ok
}

// Answered reports whether the question being shown was answered.
func (s *Session) Answered() bool {
	_, ok := s.answered[s.current]
	return ok
}

// AnswerCount returns the number of answered questions.
func (s *Session) AnswerCount() int { return len(s.answerLog) }

// AnswerLog returns a copy of the answer log in submission order.
func (s *Session) AnswerLog() []AnswerLogEntry {
	return append([]AnswerLogEntry(nil), s.answerLog...)
}

// WrongAnswers returns a copy of the wrong answers so far.
func (s *Session) WrongAnswers() []WrongAnswer {
	return append([]WrongAnswer(nil), s.wrong...)
}

// Seconds returns the time shown for the current question: the countdown
// for an unanswered question, or the recorded time for an answered one.
func (s *Session) Seconds() int {
	if e, ok := s.answered[s.current]; ok {
		return e.SecondsSpent
	}
	return s.ticks
}

// AdvancePending reports whether an automatic advance is scheduled.
func (s *Session) AdvancePending() bool { return s.advanceTimer != nil }

// CanRetreat reports whether Retreat would move.
func (s *Session) CanRetreat() bool {
	return s.phase == PhaseActive && s.current > 0
}

// CanAdvance reports whether Advance would move or finish.
func (s *Session) CanAdvance() bool {
	return s.phase == PhaseActive && s.Answered()
}
