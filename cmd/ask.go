package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <prompt>",
	Short: "Ask the study assistant a question",
	Args:  cobra.MinimumNArgs(1),
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

		sessionID, _ := cmd.Flags().GetString("session")
		reply, err := client.Chat(cmd.Context(), strings.Join(args, " "), sessionID)
		if err != nil {
			return fmt.Errorf("chat: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, reply.Response)
		if sessionID == "" && reply.SessionID != "" {
			fmt.Fprintf(out, "\n(session %s", reply.SessionID)
			if reply.Title != "" {
				fmt.Fprintf(out, ": %s", reply.Title)
			}
			fmt.Fprintln(out, ")")
		}
		return nil
	},
}

func init() {
	askCmd.Flags().String("session", "", "Continue an existing session")
}
