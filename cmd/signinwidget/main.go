package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mmcdole/signin-widget/pkg/display"
	"github.com/mmcdole/signin-widget/pkg/logging"
	"github.com/mmcdole/signin-widget/pkg/rank"
	"github.com/mmcdole/signin-widget/pkg/referral"
	"github.com/mmcdole/signin-widget/pkg/tasks"
	"github.com/mmcdole/signin-widget/pkg/widget"
)

var version = "dev" // Will be set during build

// options holds the root flags
type options struct {
	cfgFile     string
	envFile     string
	showVersion bool
	dumpMetrics bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cobra.CheckErr(newRootCmd(afero.NewOsFs()).ExecuteContext(ctx))
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "signinwidget",
		Short:         "Gamified sign-in widget",
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `signinwidget - record sign-ins, earn ranks, share referral links

Reads one action per line from stdin and renders the result:
  signin    record a sign-in and show the count and rank
  referral  show your referral link
  tasks     list the active tasks
  quit      end the session

Configuration file is optional and must be JSON:
{
    "bot_name": "m2e2bot",
    "user_id": "12345",
    "rank_preset": "widget",
    "rank_policy": "highest",
    "ranks": [{"name": "Bronze", "threshold": 50}],
    "tasks_file": "tasks.json",
    "display_file": "run/output.txt",
    "action_log_path": "log/actions.log",
    "app_log_path": "log/app.log",
    "log_level": "info",
    "log_max_size": 10485760
}`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showVersion {
				fmt.Fprintf(cmd.OutOrStdout(), "signinwidget %s\n", version)
				return nil
			}

			return withWidget(cmd, fs, opts, func(w *widget.Widget) error {
				logging.App.Info("Starting session", "session", w.Session(), "version", version)
				err := w.Run(cmd.Context(), cmd.InOrStdin(), cmd.ErrOrStderr())
				logging.App.Info("Session finished", "session", w.Session(), "signins", w.Tracker().Count())

				if opts.dumpMetrics {
					if merr := w.Metrics().WriteText(cmd.ErrOrStderr()); merr != nil && err == nil {
						err = merr
					}
				}
				return err
			})
		},
	}

	root.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "", "path to config file")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "path to a dotenv file with SIGNINW_* overrides")
	root.Flags().BoolVarP(&opts.showVersion, "version", "v", false, "show version information")
	root.Flags().BoolVar(&opts.dumpMetrics, "metrics", false, "print metrics to stderr when the session ends")

	root.AddCommand(newRankCmd(fs, opts), newTasksCmd(fs, opts))
	return root
}

func newRankCmd(fs afero.Fs, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rank <count>...",
		Short: "Print the rank earned by each sign-in count",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(fs, opts)
			if err != nil {
				return err
			}
			tracker, err := buildTracker(config)
			if err != nil {
				return err
			}

			for _, arg := range args {
				n, err := strconv.Atoi(arg)
				if err != nil || n < 0 {
					return fmt.Errorf("invalid count %q: must be a non-negative integer", arg)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d: %s\n", n, tracker.Rank(n))
			}
			return nil
		},
	}
}

func newTasksCmd(fs afero.Fs, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "List the active tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWidget(cmd, fs, opts, func(w *widget.Widget) error {
				return w.HandleViewTasks()
			})
		},
	}
}

// withWidget loads config, sets up logging and hands a ready widget to fn
func withWidget(cmd *cobra.Command, fs afero.Fs, opts *options, fn func(*widget.Widget) error) error {
	config, err := loadConfig(fs, opts)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(config.LogLevel)
	if err != nil {
		return err
	}
	if err := logging.Initialize(&logging.Config{
		ActionLogPath: config.ActionLogPath,
		AppLogPath:    config.AppLogPath,
		Level:         level,
		MaxSize:       config.LogMaxSize,
	}); err != nil {
		return fmt.Errorf("failed to initialize logging: %v", err)
	}
	defer logging.Shutdown()

	w, err := buildWidget(config, fs, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return fn(w)
}

func loadConfig(fs afero.Fs, opts *options) (*Config, error) {
	var config Config
	if err := LoadConfig(fs, opts.cfgFile, &config); err != nil {
		return nil, fmt.Errorf("failed to load config: %v", err)
	}
	if err := ApplyEnv(fs, opts.envFile, &config); err != nil {
		return nil, fmt.Errorf("failed to load environment: %v", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func buildTracker(config *Config) (*rank.Tracker, error) {
	table, err := config.RankTable()
	if err != nil {
		return nil, fmt.Errorf("failed to build rank table: %w", err)
	}
	policy, err := rank.ParsePolicy(config.RankPolicy)
	if err != nil {
		return nil, err
	}
	return rank.NewTracker(table, policy), nil
}

func buildWidget(config *Config, fs afero.Fs, out io.Writer) (*widget.Widget, error) {
	tracker, err := buildTracker(config)
	if err != nil {
		return nil, err
	}

	var source tasks.Source = tasks.NewMemorySource(nil)
	if config.TasksFile != "" {
		source = tasks.NewFileSource(fs, config.TasksFile)
	}

	gen, err := referral.NewGenerator(config.BotName, config.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to create referral generator: %w", err)
	}

	term, err := display.NewWriterSurface(out)
	if err != nil {
		return nil, err
	}
	var surface display.Surface = term
	if config.DisplayFile != "" {
		file, err := display.NewFileSurface(fs, config.DisplayFile)
		if err != nil {
			return nil, fmt.Errorf("failed to create display file: %w", err)
		}
		surface = display.Multi{term, file}
	}

	return widget.New(widget.Config{
		Tracker:  tracker,
		Tasks:    source,
		Referral: gen,
		Surface:  surface,
	})
}
