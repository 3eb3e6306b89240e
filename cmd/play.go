package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/trivia/internal/app"
	"github.com/abhisek/trivia/internal/config"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the full-screen quiz",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

func init() {
	playCmd.Flags().Bool("no-welcome", false, "Skip the welcome animation")
}

// runTUI builds the runtime and launches the terminal UI.
func runTUI(cmd *cobra.Command) error {
	rt, err := setup(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	prefs, err := config.NewPrefsStore("")
	if err != nil {
		rt.log.Warn("preferences disabled", "error", err)
		prefs = nil
	}

	opts := app.Options{
		Executor:     rt.executor,
		Prefs:        prefs,
		Count:        rt.cfg.Quiz.Count,
		QuestionType: rt.cfg.QuestionType(),
		AdvanceDelay: rt.cfg.Quiz.AdvanceDelay,
		Log:          rt.log,
	}
	if cmd.Flags().Lookup("no-welcome") != nil {
		opts.SkipWelcome, _ = cmd.Flags().GetBool("no-welcome")
	}
	if rt.client != nil {
		opts.Chat = rt.client
		opts.Status = rt.client
	}
	return app.Run(opts)
}
