package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/namelessmc/go-nameless"
	"github.com/namelessmc/go-nameless/internal/config"
	"github.com/namelessmc/go-nameless/observability"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  nameless.API

	// Command flags
	timeout  time.Duration
	logLevel string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "nameless",
	Short: "Query and manage a NamelessMC website",
	Long: `nameless talks to the API of a NamelessMC website. The website is addressed
by the API URL shown in StaffCP > Configuration > API, or by its host and API key.

Settings are read from nameless.yaml and NAMELESS_* environment variables,
e.g. NAMELESS_WEBSITE_URL or NAMELESS_WEBSITE_API_KEY.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setVersion(v, built string) {
	rootCmd.Version = fmt.Sprintf("%s (built %s, library %s)", v, built, nameless.Version)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./nameless.yaml)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "per call timeout, overrides client.timeout")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error; overrides logging.level")

	rootCmd.AddCommand(checkCmd, infoCmd, announcementsCmd, usersCmd, userCmd, groupsCmd, notificationsCmd, registerCmd)
}

// initializeApp loads the configuration and builds the client
func initializeApp(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	if cmd.Flags().Changed("timeout") {
		cfg.Client.Timeout = timeout
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = strings.ToLower(logLevel)
	}

	logger = setupLogger(cfg.Logging)

	clientCfg, err := cfg.NamelessConfig(observability.NewZerologLogger(logger))
	if err != nil {
		return err
	}

	c, err := nameless.NewWithConfig(clientCfg)
	if err != nil {
		return errors.Wrap(err, "failed to create client")
	}
	client = c

	logger.Debug().Str("endpoint", c.Endpoint().String()).Msg("client ready")
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
