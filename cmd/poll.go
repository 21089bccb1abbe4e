package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/epoll/debate"
	"github.com/s0up4200/epoll/filter"
	"github.com/s0up4200/epoll/request"
)

var (
	// List flags, shared by poll and announcement listings
	listLimit     int
	listFromID    string
	listStateFrom int
	listStateTo   int
	filterExpr    string
	preset        string

	// Create flags
	createTitle   string
	createContent string

	attachField string
)

// pollCmd groups the poll commands
var pollCmd = &cobra.Command{
	Use:   "poll",
	Short: "Create, list and manage polls",
}

var pollCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new poll",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		debates, err := api.Debates()
		if err != nil {
			return err
		}

		call, err := debates.CreatePoll(debate.CreatePollParams{
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
		return printResponse(cmd.OutOrStdout(), resp, "Poll created")
	},
}

var pollListCmd = &cobra.Command{
	Use:   "list",
	Short: "List polls",
	Long: `List polls, optionally narrowed by the service (--limit, --from-id,
--state-from/--state-to) and then locally with an expression (--filter or --preset).

Examples:
  epoll poll list --limit 20
  epoll poll list --filter 'state == 1 and daysSince(createdAt) < 7'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		debates, err := api.Debates()
		if err != nil {
			return err
		}
		return runList(cmd, "polls", debates.ListPolls)
	},
}

var pollOptionCmd = &cobra.Command{
	Use:   "option",
	Short: "Manage poll options",
}

var pollOptionAddCmd = &cobra.Command{
	Use:   "add <poll-id> <reason>",
	Short: "Propose a new option on a poll",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		debates, err := api.Debates()
		if err != nil {
			return err
		}

		call, err := debates.AddPollOption(debate.AddPollOptionParams{
			PollID: args[0],
			Reason: args[1],
		})
		if err != nil {
			return err
		}

		resp, err := dispatch(cmd.Context(), call)
		if err != nil {
			return err
		}
		return printResponse(cmd.OutOrStdout(), resp, "Option added")
	},
}

var pollOptionRemoveCmd = &cobra.Command{
	Use:   "remove <poll-id> <option-id>",
	Short: "Remove an option from a poll",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		debates, err := api.Debates()
		if err != nil {
			return err
		}

		call, err := debates.RemovePollOption(args[0], args[1])
		if err != nil {
			return err
		}

		resp, err := dispatch(cmd.Context(), call)
		if err != nil {
			return err
		}
		return printResponse(cmd.OutOrStdout(), resp, "Option removed")
	},
}

var pollAttachCmd = &cobra.Command{
	Use:   "attach <poll-id> <file>...",
	Short: "Upload files as poll attachments",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		debates, err := api.Debates()
		if err != nil {
			return err
		}

		form := &request.FormData{}
		for _, path := range args[1:] {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open attachment: %w", err)
			}
			defer f.Close()

			form.Files = append(form.Files, request.FormFile{
				Field:    attachField,
				Filename: filepath.Base(path),
				Content:  f,
			})
		}

		call, err := debates.AddPollAttachment(args[0], form)
		if err != nil {
			return err
		}

		resp, err := dispatch(cmd.Context(), call)
		if err != nil {
			return err
		}
		return printResponse(cmd.OutOrStdout(), resp, fmt.Sprintf("Uploaded %d attachment(s)", len(form.Files)))
	},
}

var pollDetachCmd = &cobra.Command{
	Use:   "detach <poll-id> <attachment-id>",
	Short: "Remove an attachment from a poll",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		debates, err := api.Debates()
		if err != nil {
			return err
		}

		call, err := debates.RemovePollAttachment(args[0], args[1])
		if err != nil {
			return err
		}

		resp, err := dispatch(cmd.Context(), call)
		if err != nil {
			return err
		}
		return printResponse(cmd.OutOrStdout(), resp, "Attachment removed")
	},
}

var pollVoteCmd = &cobra.Command{
	Use:   "vote <poll-id> <option-id>",
	Short: "Vote for a poll option",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		debates, err := api.Debates()
		if err != nil {
			return err
		}

		call, err := debates.AddPollVote(debate.AddPollVoteParams{
			PollID:   args[0],
			OptionID: args[1],
		})
		if err != nil {
			return err
		}

		resp, err := dispatch(cmd.Context(), call)
		if err != nil {
			return err
		}
		return printResponse(cmd.OutOrStdout(), resp, "Vote recorded")
	},
}

func init() {
	rootCmd.AddCommand(pollCmd)
	pollCmd.AddCommand(pollCreateCmd, pollListCmd, pollOptionCmd, pollAttachCmd, pollDetachCmd, pollVoteCmd)
	pollOptionCmd.AddCommand(pollOptionAddCmd, pollOptionRemoveCmd)

	addCreateFlags(pollCreateCmd)
	addListFlags(pollListCmd)
	pollAttachCmd.Flags().StringVar(&attachField, "field", "file", "multipart field name of the attachments")
}

func addCreateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&createTitle, "title", "t", "", "title")
	cmd.Flags().StringVarP(&createContent, "content", "c", "", "content")
	_ = cmd.MarkFlagRequired("title")
}

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&listLimit, "limit", "l", 0, "maximum number of items returned by the service")
	cmd.Flags().StringVar(&listFromID, "from-id", "", "return items after this id")
	cmd.Flags().IntVar(&listStateFrom, "state-from", 0, "lowest debate state (requires --state-to)")
	cmd.Flags().IntVar(&listStateTo, "state-to", 0, "highest debate state (requires --state-from)")
	cmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression applied to the returned items")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	cmd.MarkFlagsRequiredTogether("state-from", "state-to")
	cmd.MarkFlagsMutuallyExclusive("filter", "preset")
}

// listParams builds the service side list parameters from the flags that were set
func listParams(cmd *cobra.Command) debate.ListParams {
	var p debate.ListParams
	if cmd.Flags().Changed("limit") {
		p.Limit = request.Ptr(listLimit)
	}
	if cmd.Flags().Changed("from-id") {
		p.FromID = request.Ptr(listFromID)
	}
	if cmd.Flags().Changed("state-from") {
		p.State = &debate.StateRange{
			From: debate.State(listStateFrom),
			To:   debate.State(listStateTo),
		}
	}
	return p
}

func runList(cmd *cobra.Command, noun string, list func(debate.ListParams) (*request.Call, error)) error {
	call, err := list(listParams(cmd))
	if err != nil {
		return err
	}

	resp, err := dispatch(cmd.Context(), call)
	if err != nil {
		return err
	}

	items, err := decodeItems(resp)
	if err != nil {
		return err
	}

	items, err = filterItems(items)
	if err != nil {
		return err
	}

	return printItems(cmd.OutOrStdout(), items, noun)
}

// filterItems applies --filter or --preset to listed items
func filterItems(items []filter.Item) ([]filter.Item, error) {
	// Priority: command line filter > preset > none
	switch {
	case filterExpr != "":
		logger.Debug().Str("filter", filterExpr).Int("items", len(items)).Msg("Filtering items")
		matches, err := filter.ParseAndApply(filterExpr, items)
		if err != nil {
			return nil, fmt.Errorf("invalid filter expression: %w", err)
		}
		return matches, nil

	case preset != "":
		if _, ok := presets.GetFilter(preset); !ok {
			return nil, fmt.Errorf("preset '%s' not found in config (available: %s)",
				preset, strings.Join(presets.ListFilters(), ", "))
		}
		logger.Debug().Str("preset", preset).Int("items", len(items)).Msg("Filtering items")
		return presets.ApplyFilter(preset, items)
	}

	return items, nil
}
