package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"fitx/internal/bootstrap"
	activitydto "fitx/internal/modules/activity/dto"
	progressdto "fitx/internal/modules/progress/dto"
	"fitx/internal/platform/config"
	"fitx/internal/platform/logging"
	"fitx/internal/platform/slug"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalFlags struct {
	dataDir string
	envFile string
	user    string
	json    bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "fitx",
		Short:         "Fitness tracker: log workouts and meals, review progress",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", ".", "directory holding fitx.yaml, the database and reports")
	root.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "optional dotenv file")
	root.PersistentFlags().StringVar(&flags.user, "user", "", "user id (defaults to the configured user)")
	root.PersistentFlags().BoolVar(&flags.json, "json", false, "print JSON instead of text")

	root.AddCommand(newLogCmd(flags))
	root.AddCommand(newHistoryCmd(flags))
	root.AddCommand(newSummaryCmd(flags))
	root.AddCommand(newReportCmd(flags))
	root.AddCommand(newExportCmd(flags))
	root.AddCommand(newServeCmd(flags))
	root.AddCommand(newBotCmd(flags))
	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newPluginCmd(flags))
	return root
}

func loadApp(ctx context.Context, flags *globalFlags) (*bootstrap.App, error) {
	cfg, err := config.Load(flags.dataDir, flags.envFile)
	if err != nil {
		return nil, err
	}
	if flags.user != "" {
		cfg.UserID = flags.user
	}
	logger := logging.New(logging.Options{Level: cfg.LogLevel, JSON: cfg.LogJSON})
	return bootstrap.New(ctx, cfg, logger)
}

// withApp loads the app, runs fn and closes the store afterwards.
func withApp(cmd *cobra.Command, flags *globalFlags, fn func(ctx context.Context, app *bootstrap.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app, err := loadApp(ctx, flags)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(ctx, app)
}

func printJSON(w io.Writer, payload any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func newLogCmd(flags *globalFlags) *cobra.Command {
	logCmd := &cobra.Command{Use: "log", Short: "Record a workout or a meal"}

	var minutes, workoutCalories int
	var intensity string
	workoutCmd := &cobra.Command{
		Use:   "workout <exercise...>",
		Short: "Record a completed workout",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ActivityCLI.LogWorkout(ctx, strings.Join(args, " "), minutes, intensity, workoutCalories)
				if err != nil {
					return err
				}
				if flags.json {
					return printJSON(cmd.OutOrStdout(), out)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Message)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d min  %s intensity  %d kcal  %.1f kcal/min\n",
					out.DurationMinutes, out.Intensity, out.EstimatedCalories, out.CaloriesPerMinute)
				return nil
			})
		},
	}
	workoutCmd.Flags().IntVar(&minutes, "minutes", 30, "duration in minutes")
	workoutCmd.Flags().StringVar(&intensity, "intensity", "moderate", "low|moderate|high|very_high")
	workoutCmd.Flags().IntVar(&workoutCalories, "calories", 0, "calories burned")

	var mealType string
	var items []string
	var mealCalories int
	mealCmd := &cobra.Command{
		Use:   "meal",
		Short: "Record a meal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ActivityCLI.LogMeal(ctx, mealType, items, mealCalories)
				if err != nil {
					return err
				}
				if flags.json {
					return printJSON(cmd.OutOrStdout(), out)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Message)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d items  %d kcal  %s meal\n%s\n",
					out.ItemCount, out.EstimatedCalories, out.MealSize, out.TrackingNote)
				return nil
			})
		},
	}
	mealCmd.Flags().StringVar(&mealType, "type", "snack", "breakfast|lunch|dinner|snack")
	mealCmd.Flags().StringSliceVar(&items, "items", nil, "food items")
	mealCmd.Flags().IntVar(&mealCalories, "calories", 0, "total calories")

	logCmd.AddCommand(workoutCmd, mealCmd)
	return logCmd
}

func newHistoryCmd(flags *globalFlags) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded workouts and meals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ActivityCLI.Recent(ctx, days)
				if err != nil {
					return err
				}
				if flags.json {
					return printJSON(cmd.OutOrStdout(), out)
				}
				printHistory(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "window length in days")
	return cmd
}

func printHistory(w io.Writer, h activitydto.HistoryOutput) {
	if len(h.Workouts) == 0 && len(h.Meals) == 0 {
		_, _ = fmt.Fprintln(w, "nothing recorded in this window")
		return
	}
	for _, wo := range h.Workouts {
		_, _ = fmt.Fprintf(w, "%s  workout  %-16s %3d min  %-8s %4d kcal\n",
			wo.Timestamp.Format(time.RFC3339), wo.Exercise, wo.DurationMinutes, wo.Intensity, wo.EstimatedCalories)
	}
	for _, m := range h.Meals {
		_, _ = fmt.Fprintf(w, "%s  meal     %-16s %4d kcal  %s\n",
			m.Timestamp.Format(time.RFC3339), m.MealType, m.EstimatedCalories, strings.Join(m.Items, ", "))
	}
}

func newSummaryCmd(flags *globalFlags) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize progress over a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ProgressCLI.Summarize(ctx, days)
				if err != nil {
					return err
				}
				if flags.json {
					return printJSON(cmd.OutOrStdout(), out)
				}
				printSummary(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "window length in days")
	return cmd
}

func printSummary(w io.Writer, s progressdto.SummaryOutput) {
	_, _ = fmt.Fprintf(w, "%s for %s\n", s.Period, s.UserID)
	_, _ = fmt.Fprintf(w, "workouts     %d / %d  (%d active min, %d kcal burned)\n",
		s.WorkoutStats.WorkoutsCompleted, s.WorkoutStats.TargetWorkouts,
		s.WorkoutStats.TotalActiveMinutes, s.WorkoutStats.TotalCaloriesBurned)
	_, _ = fmt.Fprintf(w, "consistency  %s  %s  (%s)\n",
		s.Consistency.Percentage, s.Consistency.Rating, s.Consistency.WorkoutFrequency)
	_, _ = fmt.Fprintf(w, "goal         %s  %s\n", s.GoalProgress.Percentage, s.GoalProgress.Status)
	_, _ = fmt.Fprintf(w, "nutrition    %d meals  %d kcal in  %d net\n",
		s.Nutrition.MealsLogged, s.Nutrition.CaloriesConsumed, s.Nutrition.NetCalories)
	_, _ = fmt.Fprintf(w, "milestone    %s  %s\n", s.NextMilestone.Target, s.NextMilestone.Message)
	for _, line := range append(append([]string{}, s.Insights...), s.PluginInsights...) {
		_, _ = fmt.Fprintln(w, "  • "+line)
	}
}

func newReportCmd(flags *globalFlags) *cobra.Command {
	var days int
	var save bool
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the Markdown progress report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				if save {
					out, err := app.ProgressCLI.ExportReport(ctx, days)
					if err != nil {
						return err
					}
					if flags.json {
						return printJSON(cmd.OutOrStdout(), out)
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "report %s written to %s\n", out.ReportID, out.Path)
					return nil
				}
				out, err := app.ProgressCLI.Report(ctx, days)
				if err != nil {
					return err
				}
				if flags.json {
					return printJSON(cmd.OutOrStdout(), out)
				}
				_, err = io.WriteString(cmd.OutOrStdout(), out.Markdown)
				return err
			})
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "window length in days")
	cmd.Flags().BoolVar(&save, "save", false, "write the report note under <data-dir>/reports")
	return cmd
}

func newExportCmd(flags *globalFlags) *cobra.Command {
	var days int
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export history to an Excel workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				path := out
				if path == "" {
					name := fmt.Sprintf("fitx-%s-%dd.xlsx", slug.Make(app.ActivityCLI.UserID()), days)
					path = filepath.Join(app.ExportDir(), name)
				}
				res, err := app.ActivityCLI.Export(ctx, days, path)
				if err != nil {
					return err
				}
				if flags.json {
					return printJSON(cmd.OutOrStdout(), res)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d workouts and %d meals to %s\n", res.Workouts, res.Meals, res.Path)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&days, "days", 30, "window length in days")
	cmd.Flags().StringVar(&out, "out", "", "workbook path (defaults to <data-dir>/exports)")
	return cmd
}

func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// startScheduler registers the report job and runs it in g unless disabled.
func startScheduler(ctx context.Context, g *errgroup.Group, app *bootstrap.App, disabled bool) error {
	if disabled {
		return nil
	}
	sched, err := app.Scheduler(ctx)
	if err != nil {
		return err
	}
	g.Go(func() error { return sched.Run(ctx) })
	return nil
}

func newServeCmd(flags *globalFlags) *cobra.Command {
	var addr string
	var noSchedule bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and run scheduled reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalContext(cmd)
			defer cancel()
			app, err := loadApp(ctx, flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if addr == "" {
				addr = app.Config.HTTPAddr
			}

			g, gctx := errgroup.WithContext(ctx)
			if err := startScheduler(gctx, g, app, noSchedule); err != nil {
				return err
			}
			g.Go(func() error { return app.HTTPServer().Run(gctx, addr) })
			return g.Wait()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to FITX_HTTP_ADDR)")
	cmd.Flags().BoolVar(&noSchedule, "no-schedule", false, "do not run the report scheduler")
	return cmd
}

func newBotCmd(flags *globalFlags) *cobra.Command {
	var noSchedule bool
	cmd := &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot and scheduled reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalContext(cmd)
			defer cancel()
			app, err := loadApp(ctx, flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			bot, err := app.Bot()
			if err != nil {
				return err
			}

			g, gctx := errgroup.WithContext(ctx)
			if err := startScheduler(gctx, g, app, noSchedule); err != nil {
				return err
			}
			g.Go(func() error { return bot.Run(gctx) })
			return g.Wait()
		},
	}
	cmd.Flags().BoolVar(&noSchedule, "no-schedule", false, "do not run the report scheduler")
	return cmd
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(_ context.Context, app *bootstrap.App) error {
				return bootstrap.RunTUI(app)
			})
		},
	}
}

func newPluginCmd(flags *globalFlags) *cobra.Command {
	plugin := &cobra.Command{Use: "plugin", Short: "Insight plugin operations"}
	plugin.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List plugin manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				plugins, err := app.PluginCLI.List(ctx)
				if err != nil {
					return err
				}
				if flags.json {
					return printJSON(cmd.OutOrStdout(), plugins)
				}
				if len(plugins) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
					return nil
				}
				for _, p := range plugins {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t binary=%s capabilities=%s\n",
						p.Name, p.Version, p.Enabled, p.Binary, strings.Join(p.Capabilities, ","))
				}
				return nil
			})
		},
	})

	plugin.AddCommand(&cobra.Command{
		Use:   "doctor [name]",
		Short: "Validate plugin checksums and lifecycle",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			}
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				results, err := app.PluginCLI.Doctor(ctx, name)
				if err != nil {
					return err
				}
				if flags.json {
					return printJSON(cmd.OutOrStdout(), results)
				}
				if len(results) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
					return nil
				}
				for _, r := range results {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s checksum=%t binary=%t lifecycle=%t", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK)
					if r.Error != "" {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout())
				}
				return nil
			})
		},
	})
	return plugin
}
