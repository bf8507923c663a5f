// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the pipeline on a cron schedule until interrupted",
	Long: `Schedule runs the daily pipeline on a standard five-field cron
expression (minute hour day-of-month month day-of-week) in the given
timezone. Each run uses the same configuration as "run".`,
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().String("cron", "0 9 * * *", "cron expression for the daily run")
	scheduleCmd.Flags().String("timezone", "UTC", "IANA timezone for the cron expression")
	scheduleCmd.Flags().Duration("run-timeout", 2*time.Hour, "maximum duration of one run")
	scheduleCmd.Flags().Bool("dry-run", true, "print threads without posting them")
	_ = viper.BindPFlag("schedule.cron", scheduleCmd.Flags().Lookup("cron"))
	_ = viper.BindPFlag("schedule.timezone", scheduleCmd.Flags().Lookup("timezone"))
	_ = viper.BindPFlag("schedule.run_timeout", scheduleCmd.Flags().Lookup("run-timeout"))

	rootCmd.AddCommand(scheduleCmd)
}

// validateSchedule parses a five-field cron expression.
func validateSchedule(spec string) error {
	if spec == "" {
		return fmt.Errorf("invalid cron schedule: cannot be empty")
	}
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(spec); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", spec, err)
	}
	return nil
}

func runSchedule(cmd *cobra.Command, args []string) error {
	spec := viper.GetString("schedule.cron")
	if err := validateSchedule(spec); err != nil {
		return err
	}

	tz := viper.GetString("schedule.timezone")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	runTimeout := viper.GetDuration("schedule.run_timeout")

	// post.dry_run is bound to the run command's flag, not this one.
	v := viper.GetViper()
	if cmd.Flags().Changed("dry-run") {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		v.Set("post.dry_run", dryRun)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc(spec, func() {
		runCtx, cancel := context.WithTimeout(ctx, runTimeout)
		defer cancel()

		start := time.Now()
		logger.Info("scheduled run started")
		if err := runPipeline(runCtx, loadConfig(v, loadedSecrets), os.Stdout); err != nil {
			logger.Error("scheduled run failed", slog.String("error", err.Error()))
			return
		}
		logger.Info("scheduled run completed", slog.Duration("duration", time.Since(start)))
	})
	if err != nil {
		return fmt.Errorf("adding cron job: %w", err)
	}

	c.Start()
	logger.Info("scheduler started", slog.String("schedule", spec), slog.String("timezone", loc.String()))

	<-ctx.Done()
	logger.Info("scheduler stopping")
	<-c.Stop().Done()
	return nil
}
