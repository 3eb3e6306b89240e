package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/trivia/internal/config"
	"github.com/abhisek/trivia/internal/quiz"
	"github.com/abhisek/trivia/internal/session"
	"github.com/abhisek/trivia/internal/topic"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take a quiz in line mode on stdin/stdout",
	Example: `  trivia quiz --topic science
  trivia quiz --topic "volcanoes" --type true-false --count 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt, err := setup(ctx, cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		topicID, _ := cmd.Flags().GetString("topic")
		sel := session.TopicSelected{
			Topic:        topic.Lookup(topic.ID(topicID)),
			QuestionType: rt.cfg.QuestionType(),
			Count:        rt.cfg.Quiz.Count,
		}
		if v, _ := cmd.Flags().GetString("type"); v != "" {
			k, err := quiz.ParseKind(v)
			if err != nil {
				return err
			}
			sel.QuestionType = k
		}
		if cmd.Flags().Changed("count") {
			n, _ := cmd.Flags().GetInt("count")
			if n < 1 || n > config.MaxQuestionCount {
				return fmt.Errorf("--count must be between 1 and %d", config.MaxQuestionCount)
			}
			sel.Count = n
		}

		// Feedback is printed inline, so there is nothing to wait for.
		machine := session.New(session.WithAdvanceDelay(0))
		return runLineQuiz(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), machine, rt.executor, sel)
	},
}

func init() {
	quizCmd.Flags().String("topic", string(topic.Mixed), "Topic: mixed, history, culture, sports, science, geography or any free text")
	quizCmd.Flags().String("type", "", "Question type: mixed, multiple-choice, true-false or open-ended")
	quizCmd.Flags().Int("count", session.DefaultCount, "Number of questions")
}

// runLineQuiz plays one quiz, reading one answer per line from in.
// End of input stops the quiz and prints the results so far.
func runLineQuiz(ctx context.Context, in io.Reader, out io.Writer, m *session.Machine, e *session.Executor, sel session.TopicSelected) error {
	driver := session.NewDriver(m, e, func(ev session.Event, st session.State) {
		if g, ok := ev.(session.AnswerGraded); ok {
			printVerdict(out, g.Verdict)
		}
	})

	fmt.Fprintf(out, "Generating your %s quiz...\n", sel.Topic.Label)
	if err := driver.Dispatch(ctx, sel); err != nil {
		return err
	}

	st := driver.State()
	if st.Advisory != "" {
		fmt.Fprintf(out, "Note: %s\n", st.Advisory)
	}
	if st.Empty() {
		return errors.New("the quiz has no questions")
	}

	scanner := bufio.NewScanner(in)
	for st.Step == session.StepQuiz {
		q, _ := st.Current()
		kind := q.KindOr(st.QuestionType)
		printQuestion(out, st, q, kind)

		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}
		answer := normalizeAnswer(kind, scanner.Text())
		if err := driver.Dispatch(ctx, session.AnswerSubmitted{Answer: answer}); err != nil {
			if ctx.Err() != nil {
				return err
			}
			fmt.Fprintf(out, "  %v, try again.\n", err)
		}
		st = driver.State()
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read answer: %w", err)
	}

	printResults(out, driver.State())
	return nil
}

func printQuestion(out io.Writer, st session.State, q quiz.Question, kind quiz.Kind) {
	fmt.Fprintf(out, "\nQuestion %d/%d\n%s\n", st.Index+1, st.Quiz.Len(), q.Prompt)
	switch kind {
	case quiz.KindMultipleChoice:
		for i, opt := range q.Options {
			fmt.Fprintf(out, "  %s) %s\n", quiz.Letter(i), opt)
		}
		fmt.Fprint(out, "Your answer (letter): ")
	case quiz.KindTrueFalse:
		fmt.Fprint(out, "True or false (t/f): ")
	default:
		fmt.Fprint(out, "Your answer: ")
	}
}

func printVerdict(out io.Writer, v quiz.Verdict) {
	switch {
	case !v.Graded():
		fmt.Fprint(out, "  Ungraded.")
	case v.Correct():
		fmt.Fprint(out, "  Correct!")
	default:
		fmt.Fprint(out, "  Incorrect.")
	}
	if v.Feedback != "" {
		fmt.Fprintf(out, " %s", v.Feedback)
	}
	fmt.Fprintln(out)
}

func printResults(out io.Writer, st session.State) {
	score := session.Score(st.Answers)
	fmt.Fprintf(out, "\nYour score: %d%% (%d answered)\n%s\n", score, len(st.Answers), session.BandFor(score).Message())

	for _, row := range session.Review(st.Quiz, st.Answers) {
		if !row.Answered {
			continue
		}
		mark := "✗"
		switch {
		case !row.Verdict.Graded():
			mark = "?"
		case row.Verdict.Correct():
			mark = "✓"
		}
		fmt.Fprintf(out, "\n%s %d. %s\n   Your answer: %s\n", mark, row.Index+1, row.Prompt, row.UserAnswer)
		if row.CorrectAnswer != "" {
			fmt.Fprintf(out, "   Answer: %s\n", row.CorrectAnswer)
		}
		if row.Explanation != "" {
			fmt.Fprintf(out, "   %s\n", row.Explanation)
		}
	}
}

// normalizeAnswer accepts "t"/"f" for true-false and upper-case letters
// for multiple-choice.
func normalizeAnswer(kind quiz.Kind, raw string) string {
	s := strings.TrimSpace(raw)
	switch kind {
	case quiz.KindMultipleChoice:
		return strings.ToLower(s)
	case quiz.KindTrueFalse:
		switch strings.ToLower(s) {
		case "t", "true", "y", "yes":
			return "true"
		case "f", "false", "n", "no":
			return "false"
		}
	}
	return s
}
