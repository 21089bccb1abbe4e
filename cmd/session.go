package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/epoll/epoll"
)

// sessionCmd shows the state the facade was configured with
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Show the API endpoint and session in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()

		settings, err := api.Settings()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "API:     %s\n", settings.APIBaseURL)

		session, err := api.ActiveSession()
		if errors.Is(err, epoll.ErrNoActiveSession) {
			failureColor.Fprintln(w, "Session: none (anonymous)")
			return nil
		}
		if err != nil {
			return err
		}

		successColor.Fprintf(w, "Session: %s %s\n", session.TokenType, maskToken(session.Token))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
}

// maskToken keeps the last four characters of a token
func maskToken(token string) string {
	const visible = 4
	if len(token) <= visible {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", len(token)-visible) + token[len(token)-visible:]
}
