package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage chat sessions stored by the study assistant",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer rt.Close()
		client, err := rt.remoteClient()
		if err != nil {
			return err
		}

		list, err := client.Sessions(cmd.Context())
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(list) == 0 {
			fmt.Fprintln(out, "No sessions found.")
			return nil
		}

		fmt.Fprintf(out, "%-26s  %-16s  %s\n", "ID", "Created", "Title")
		fmt.Fprintln(out, strings.Repeat("─", 72))
		for _, s := range list {
			fmt.Fprintf(out, "%-26s  %-16s  %s\n", s.ID, s.CreatedAt.Local().Format("2006-01-02 15:04"), s.Title)
		}
		return nil
	},
}

var sessionsHistoryCmd = &cobra.Command{
	Use:   "history <id>",
	Short: "Show the exchanges of one session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer rt.Close()
		client, err := rt.remoteClient()
		if err != nil {
			return err
		}

		exchanges, err := client.History(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("session history: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(exchanges) == 0 {
			fmt.Fprintln(out, "No exchanges in this session.")
			return nil
		}
		for i, ex := range exchanges {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "Q: %s\nA: %s\n", ex.Prompt, ex.Response)
		}
		return nil
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer rt.Close()
		client, err := rt.remoteClient()
		if err != nil {
			return err
		}

		if err := client.DeleteSession(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %s.\n", args[0])
		return nil
	},
}

func init() {
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsHistoryCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
}
