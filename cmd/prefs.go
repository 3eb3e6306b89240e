package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/trivia/internal/config"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs [cursor on|off]",
	Short: "Show or change preferences",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return nil
		}
		if len(args) != 2 || args[0] != "cursor" {
			return fmt.Errorf("usage: trivia prefs [cursor on|off]")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.NewPrefsStore("")
		if err != nil {
			return err
		}
		return runPrefs(cmd, store, args)
	},
}

func runPrefs(cmd *cobra.Command, store *config.PrefsStore, args []string) error {
	prefs, err := store.Load()
	if err != nil {
		return err
	}

	if len(args) == 2 {
		switch args[1] {
		case "on":
			prefs.CursorEnabled = true
		case "off":
			prefs.CursorEnabled = false
		default:
			return fmt.Errorf("cursor must be on or off, got %q", args[1])
		}
		if err := store.Save(prefs); err != nil {
			return err
		}
	}

	state := "off"
	if prefs.CursorEnabled {
		state = "on"
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "cursor: %s\n", state)
	fmt.Fprintf(out, "(stored in %s)\n", store.Path())
	return nil
}
