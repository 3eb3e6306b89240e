package quiz

import sess "github.com/abhisek/trivia/internal/session"

// effectDoneMsg carries the event produced by running one session effect.
// Event is nil when the effect had nothing to report. Screens drop
// messages they do not own.
type effectDoneMsg struct {
	owner *QuizScreen
	Event sess.Event
}
