package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the study assistant's API rate-limit status",
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

		st, err := client.APIStatus(cmd.Context())
		if err != nil {
			return fmt.Errorf("api status: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "API:      %s\n", client.BaseURL())
		fmt.Fprintf(out, "Status:   %s\n", st.Status)
		fmt.Fprintf(out, "Requests: %d/%d this minute\n", st.RequestsThisMinute, st.MinuteQuota)
		if st.Limited() {
			fmt.Fprintf(out, "Resets in %s\n", st.TimeToReset().Round(time.Second))
		}
		return nil
	},
}
