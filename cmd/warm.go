package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/trivia/internal/cache"
	"github.com/abhisek/trivia/internal/quiz"
	"github.com/abhisek/trivia/internal/remote"
	"github.com/abhisek/trivia/internal/topic"
)

var warmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Pre-generate quizzes for every topic into the cache",
	Long: "Fetch one quiz per topic with the configured type and count and store it in the cache.\n" +
		"Useful with the redis cache, which outlives the process.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		parallel, _ := cmd.Flags().GetInt("parallel")
		kind, count := rt.cfg.QuestionType(), rt.cfg.Quiz.Count

		var keys []cache.Key
		for _, t := range topic.All() {
			keys = append(keys, cache.Key{Topic: t.ID, Kind: kind, Count: count})
		}

		err = rt.loader.Warm(cmd.Context(), keys, parallel, func(ctx context.Context, key cache.Key) (*quiz.Quiz, error) {
			return rt.service.GenerateQuiz(ctx, remote.GenerateRequest{
				Topic:        topic.Lookup(key.Topic),
				QuestionType: key.Kind,
				Count:        key.Count,
			})
		})
		if err != nil {
			return fmt.Errorf("warm cache: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cached %d quizzes (%s, %d questions).\n", len(keys), kind, count)
		return nil
	},
}

func init() {
	warmCmd.Flags().Int("parallel", 2, "Concurrent quiz requests")
}
