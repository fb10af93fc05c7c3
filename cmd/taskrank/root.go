package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aristath/taskrank/internal/analysis"
	"github.com/aristath/taskrank/internal/config"
	"github.com/aristath/taskrank/internal/events"
	"github.com/aristath/taskrank/internal/logging"
)

// app holds what every subcommand needs once flags are parsed.
type app struct {
	flags  *viper.Viper
	logger *slog.Logger
	cfg    *config.Config
	bus    *events.Bus
}

func newRootCmd() *cobra.Command {
	a := &app{flags: viper.New()}

	root := &cobra.Command{
		Use:   "taskrank",
		Short: "Rank tasks and detect dependency cycles",
		Long: `taskrank scores tasks by how soon they are due, how important they are,
how much effort they take and how many other tasks wait on them.
Tasks caught in circular dependencies are reported separately as blocked.

Task files are JSON or YAML: either a list of tasks or an object with
"tasks" and an optional "config" of scoring overrides.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.bus != nil {
				a.bus.Close()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.String("log-level", logging.LevelInfo, "log level (DEBUG, INFO, WARN, ERROR)")
	flags.String("log-format", logging.FormatText, "log format (text or json)")
	flags.StringP("config", "c", "", "config file (default is ~/.taskrank/config.json layered under .taskrank/config.json)")

	// Flags may also come from TASKRANK_LOG_LEVEL and friends
	_ = a.flags.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = a.flags.BindPFlag("log_format", flags.Lookup("log-format"))
	_ = a.flags.BindPFlag("config", flags.Lookup("config"))
	a.flags.SetEnvPrefix(config.EnvPrefix)
	a.flags.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.flags.AutomaticEnv()

	root.AddCommand(
		newAnalyzeCmd(a),
		newSuggestCmd(a),
		newServeCmd(a),
		newMCPCmd(a),
		newConfigCmd(a),
	)

	return root
}

// setup builds the logger, loads configuration and creates the event bus.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.logger = logging.New(cmd.ErrOrStderr(), a.flags.GetString("log_level"), a.flags.GetString("log_format"))
	a.bus = events.NewBus()

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

func (a *app) loadConfig() (*config.Config, error) {
	path := a.flags.GetString("config")
	if path == "" {
		cfg, err := config.LoadDefault()
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func (a *app) analyzer() *analysis.Analyzer {
	return analysis.New(a.cfg,
		analysis.WithLogger(a.logger),
		analysis.WithBus(a.bus),
	)
}
