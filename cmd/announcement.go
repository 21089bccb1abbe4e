package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/epoll/debate"
)

// announcementCmd groups the announcement commands
var announcementCmd = &cobra.Command{
	Use:     "announcement",
	Aliases: []string{"ann"},
	Short:   "Create and list announcements",
}

var announcementCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Publish a new announcement",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		debates, err := api.Debates()
		if err != nil {
			return err
		}

		call, err := debates.CreateAnnouncement(debate.CreateAnnouncementParams{
			Title:   createTitle,
			Content: createContent,
		})
		if err != nil {
			return err
		}

		resp, err := dispatch(cmd.Context(), call)
		if err != nil {
			return err
		}
		return printResponse(cmd.OutOrStdout(), resp, "Announcement created")
	},
}

var announcementListCmd = &cobra.Command{
	Use:   "list",
	Short: "List announcements",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		debates, err := api.Debates()
		if err != nil {
			return err
		}
		return runList(cmd, "announcements", debates.ListAnnouncements)
	},
}

func init() {
	rootCmd.AddCommand(announcementCmd)
	announcementCmd.AddCommand(announcementCreateCmd, announcementListCmd)

	addCreateFlags(announcementCreateCmd)
	addListFlags(announcementListCmd)
}
