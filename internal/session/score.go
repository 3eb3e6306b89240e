package session

import (
	"math"

	"github.com/abhisek/trivia/internal/quiz"
)

// Score is round(100 × correct / answered). Ungraded answers count as
// answered but not correct. No answers scores 0.
func Score(records []quiz.AnswerRecord) int {
	if len(records) == 0 {
		return 0
	}
	correct := 0
	for _, r := range records {
		if r.Verdict.Correct() {
			correct++
		}
	}
	return int(math.Round(100 * float64(correct) / float64(len(records))))
}

// Band buckets a score for the results message.
type Band string

const (
	BandGood Band = "good"
	BandFair Band = "fair"
	BandPoor Band = "poor"
)

// BandFor returns good for 70 and above, fair for 40 and above, else poor.
func BandFor(score int) Band {
	switch {
	case score >= 70:
		return BandGood
	case score >= 40:
		return BandFair
	}
	return BandPoor
}

// Message is the encouragement shown under the score.
func (b Band) Message() string {
	switch b {
	case BandGood:
		return "Excellent work! You know this topic well."
	case BandFair:
		return "Good effort! A bit more study and you will master it."
	}
	return "Keep practicing! Every quiz teaches you something new."
}

// ReviewRow is one line of the results review.
type ReviewRow struct {
	Index         int
	Prompt        string
	Kind          quiz.Kind
	UserAnswer    string
	CorrectAnswer string
	Explanation   string
	Verdict       quiz.Verdict
	Answered      bool
}

// Review pairs every question with its answer record, if any.
func Review(q *quiz.Quiz, records []quiz.AnswerRecord) []ReviewRow {
	if q == nil {
		return nil
	}
	byIndex := make(map[int]quiz.AnswerRecord, len(records))
	for _, r := range records {
		byIndex[r.Index] = r
	}

	rows := make([]ReviewRow, len(q.Questions))
	for i, question := range q.Questions {
		row := ReviewRow{
			Index:         i,
			Prompt:        question.Prompt,
			Kind:          question.KindOr(""),
			CorrectAnswer: question.CorrectAnswerText(),
			Explanation:   question.Explanation,
		}
		if r, ok := byIndex[i]; ok {
			row.Answered = true
			row.UserAnswer = answerText(question, r.UserAnswer)
			row.Verdict = r.Verdict
		}
		rows[i] = row
	}
	return rows
}

// answerText expands an option letter to "b) Pacific" and normalizes
// true/false answers.
func answerText(q quiz.Question, answer string) string {
	switch q.KindOr("") {
	case quiz.KindMultipleChoice:
		idx := quiz.LetterIndex(answer)
		if idx >= 0 && idx < len(q.Options) {
			return answer + ") " + q.Options[idx]
		}
	case quiz.KindTrueFalse:
		return quiz.TruthLabel(quiz.ParseTruth(answer))
	}
	return answer
}
