package cli

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "REQTXT"

type RootConfig struct {
	ConfigFile string
	LogLevel   string
}

func Execute() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	cmd := &cobra.Command{
		Use:     "reqtxt",
		Short:   "Parse and inspect pip-style requirements files",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			logger := setupLogging(viper.GetString("log_level"))
			cmd.SetContext(logger.WithContext(cmd.Context()))
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	cmd.PersistentFlags().String("option-merge", "accumulate", "Global option merge strategy: accumulate or last-wins")
	cmd.PersistentFlags().Bool("no-remote", false, "Refuse http(s) requirements files")
	cmd.PersistentFlags().Int("http-timeout", 0, "Remote fetch timeout in seconds")
	cmd.PersistentFlags().Int("http-retries", 0, "Remote fetch retry attempts")
	cmd.PersistentFlags().Int("http-retry-delay-ms", 0, "Base delay between fetch retries in milliseconds")
	cmd.PersistentFlags().Int("http-cache-size", 0, "Remote fetch cache capacity")
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("option_merge", cmd.PersistentFlags().Lookup("option-merge"))
	_ = viper.BindPFlag("no_remote", cmd.PersistentFlags().Lookup("no-remote"))
	_ = viper.BindPFlag("http_timeout_sec", cmd.PersistentFlags().Lookup("http-timeout"))
	_ = viper.BindPFlag("http_retries", cmd.PersistentFlags().Lookup("http-retries"))
	_ = viper.BindPFlag("http_retry_delay_ms", cmd.PersistentFlags().Lookup("http-retry-delay-ms"))
	_ = viper.BindPFlag("http_cache_size", cmd.PersistentFlags().Lookup("http-cache-size"))

	cmd.AddCommand(newCheckCommand())
	cmd.AddCommand(newExportCommand())
	cmd.AddCommand(newListCommand())
	return cmd
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("reqtxt")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/reqtxt")
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

func setupLogging(level string) zerolog.Logger {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	return log.Logger
}

func exitCodeForError(err error) int {
	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeInvalidArgument:
		return 2
	case errbuilder.CodeNotFound, errbuilder.CodePermissionDenied:
		return 3
	case errbuilder.CodeFailedPrecondition:
		return 4
	case errbuilder.CodeInternal:
		return 5
	default:
		return 1
	}
}
