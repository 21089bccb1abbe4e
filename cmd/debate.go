package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/epoll/debate"
	"github.com/s0up4200/epoll/filter"
)

// DefaultConcurrency bounds parallel requests of `debate get`
const DefaultConcurrency = 5

var concurrency int

// debateCmd groups the debate commands
var debateCmd = &cobra.Command{
	Use:   "debate",
	Short: "Inspect debates and change their state",
}

var debateGetCmd = &cobra.Command{
	Use:   "get <id>...",
	Short: "Fetch one or more debates",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		debates, err := api.Debates()
		if err != nil {
			return err
		}

		items, err := fetchDebates(cmd, debates, args)
		if err != nil {
			return err
		}
		return printItems(cmd.OutOrStdout(), items, "debates")
	},
}

var debateStateCmd = &cobra.Command{
	Use:   "state <id> <state>",
	Short: "Move a debate to a new state",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid state '%s': must be an integer", args[1])
		}

		debates, err := api.Debates()
		if err != nil {
			return err
		}

		call, err := debates.UpdateDebateState(debate.UpdateStateParams{
			DebateID: args[0],
			State:    debate.State(state),
		})
		if err != nil {
			return err
		}

		resp, err := dispatch(cmd.Context(), call)
		if err != nil {
			return err
		}
		return printResponse(cmd.OutOrStdout(), resp, fmt.Sprintf("Debate %s moved to state %d", args[0], state))
	},
}

func init() {
	rootCmd.AddCommand(debateCmd)
	debateCmd.AddCommand(debateGetCmd, debateStateCmd)

	debateGetCmd.Flags().IntVar(&concurrency, "concurrency", DefaultConcurrency, "maximum number of parallel requests")
}

// fetchDebates gets every id concurrently, keeping the order of ids
func fetchDebates(cmd *cobra.Command, debates *debate.Client, ids []string) ([]filter.Item, error) {
	items := make([]filter.Item, len(ids))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(concurrency, 1))

	for i, id := range ids {
		g.Go(func() error {
			call, err := debates.GetDebate(id)
			if err != nil {
				return err
			}

			resp, err := dispatch(ctx, call)
			if err != nil {
				return err
			}

			var item filter.Item
			if err := json.Unmarshal(resp.Body, &item); err != nil {
				return fmt.Errorf("failed to decode debate %s: %w", id, err)
			}
			items[i] = item

			logger.Debug().Str("debate_id", id).Msg("Fetched debate")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}
