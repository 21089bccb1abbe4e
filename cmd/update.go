package cmd

import (
	"fmt"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"

	"github.com/s0up4200/epoll/config"
)

var (
	updateRepository string
	checkOnly        bool
)

// updateCmd replaces the running binary with the latest release
var updateCmd = &cobra.Command{
	Use:               "update",
	Short:             "Update epoll to the latest release",
	Args:              cobra.NoArgs,
	PersistentPreRunE: skipInit,
	RunE:              runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().StringVar(&updateRepository, "repository", "", "GitHub repository (owner/name) releases are fetched from (default update.repository)")
	updateCmd.Flags().BoolVar(&checkOnly, "check", false, "only report whether an update is available")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	current, err := semver.ParseTolerant(version)
	if err != nil {
		return fmt.Errorf("cannot update a development build (version %q)", version)
	}

	repository := resolveRepository()
	logger.Debug().Str("repository", repository).Msg("Checking for updates")

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repository))
	if err != nil {
		return fmt.Errorf("failed to detect latest release: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s", repository)
	}

	latestVersion, err := semver.ParseTolerant(latest.Version())
	if err != nil {
		return fmt.Errorf("invalid release version %q: %w", latest.Version(), err)
	}

	w := cmd.OutOrStdout()
	if latestVersion.LTE(current) {
		successColor.Fprintf(w, "✓ epoll %s is up to date\n", current)
		return nil
	}

	if checkOnly {
		fmt.Fprintf(w, "Update available: %s -> %s\n", current, latestVersion)
		if latest.URL != "" {
			detailColor.Fprintln(w, latest.URL)
		}
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	fmt.Fprintf(w, "→ Updating %s to %s... ", current, latestVersion)
	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		fmt.Fprintln(w)
		return fmt.Errorf("failed to update binary: %w", err)
	}
	successColor.Fprintln(w, "✓ Done")

	return nil
}

// resolveRepository picks the release repository: --repository, then
// update.repository from the config, then the built-in default. The update
// command does not require a usable API configuration, so a config that fails
// to load only falls back to the default.
func resolveRepository() string {
	if updateRepository != "" {
		return updateRepository
	}

	c, err := config.Load(cfgFile)
	if err != nil {
		logger.Debug().Err(err).Msg("Config not loaded, using default update repository")
		return config.DefaultRepository
	}
	if c.Update.Repository == "" {
		return config.DefaultRepository
	}
	return c.Update.Repository
}
