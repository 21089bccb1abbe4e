package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/epoll/config"
	"github.com/s0up4200/epoll/epoll"
	"github.com/s0up4200/epoll/filter"
	"github.com/s0up4200/epoll/transport"
)

var (
	cfgFile   string
	cfg       *config.Config
	logger    zerolog.Logger
	api       *epoll.API
	presets   *filter.Manager
	version   = "dev"
	buildTime = "unknown"

	// Persistent flags
	tokenFlag     string
	tokenTypeFlag string
	outputFormat  string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "epoll",
	Short: "A command line client for the epoll debate and poll service",
	Long: `epoll talks to the debate service API. It creates and lists polls and
announcements, manages poll options, attachments and votes, and handles
user registration and login.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initializeApp,
}

// SetVersion sets the version reported by the version and update commands.
func SetVersion(v, built string) {
	version = v
	buildTime = built
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printFailure("%v", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "session token, overrides session.token")
	rootCmd.PersistentFlags().StringVar(&tokenTypeFlag, "token-type", "", "session token type, overrides session.token_type")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", outputText, "output format (text/json)")
}

// initializeApp loads the configuration and builds the API facade
func initializeApp(cmd *cobra.Command, args []string) error {
	if outputFormat != outputText && outputFormat != outputJSON {
		return fmt.Errorf("invalid output format: %s (must be 'text' or 'json')", outputFormat)
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	if cmd.Flags().Changed("token") {
		cfg.Session.Token = tokenFlag
	}
	if cmd.Flags().Changed("token-type") {
		cfg.Session.TokenType = tokenTypeFlag
	}

	presets = filter.NewManager()
	if err := presets.RegisterFilters(cfg.Filter.Presets); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	api = newAPI(cfg, logger)
	return nil
}

// newAPI builds a configured facade and starts a session when a token is known
func newAPI(cfg *config.Config, logger zerolog.Logger) *epoll.API {
	a := epoll.New(epoll.WithLogger(logger))

	a.SetTransport(transport.New(logger,
		transport.WithTimeout(cfg.HTTP.Timeout),
		transport.WithUserAgent(cfg.HTTP.UserAgent),
	))
	a.LoadConfig(epoll.APIConfig{
		Hostname: cfg.API.Hostname,
		Version:  cfg.API.Version,
	})

	if cfg.Session.Token != "" {
		a.StartSession(cfg.Session.TokenType, cfg.Session.Token)
	}

	return a
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// skipInit replaces initializeApp for commands that need no configuration
func skipInit(cmd *cobra.Command, args []string) error {
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	return nil
}
