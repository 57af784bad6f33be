// ABOUTME: CLI command that runs today's workout with a live countdown.
// ABOUTME: Reads p/s/q commands from stdin while a ticker drives the session.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/fitday/internal/models"
	"github.com/harperreed/fitday/internal/session"
	"github.com/harperreed/fitday/internal/tracker"
	"github.com/spf13/cobra"
)

var (
	startTick    time.Duration
	startNoSound bool
)

var startCmd = &cobra.Command{
	Use:     "start",
	Aliases: []string{"go"},
	Short:   "Run today's workout",
	Long: `Run today's workout with a timer.

Each exercise has a work interval followed by a rest interval. When the last
exercise finishes the workout is recorded and counts toward your progress.

CONTROLS (type a letter and press Enter):

  p   pause or resume
  s   skip to the next exercise
  q   stop the workout (asks for confirmation; nothing is recorded)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		tr, err := loadTracker(ctx)
		if err != nil {
			return err
		}

		sound := soundEnabled() && !startNoSound
		return runWorkout(ctx, tr, tr.TodayWorkout(), cmd.InOrStdin(), cmd.OutOrStdout(), session.NewRealTicker(startTick), sound)
	},
}

// runWorkout runs w to a terminal state and records it through tr.
func runWorkout(ctx context.Context, tr *tracker.Tracker, w *models.Workout, in io.Reader, out io.Writer, ticker session.Ticker, sound bool) error {
	if tr.IsCompletedToday() {
		color.New(color.Faint).Fprintln(out, "Today's workout is already done; going again anyway.")
	}
	printWorkout(out, w)
	fmt.Fprintln(out, "\nControls: p pause/resume, s skip, q stop")

	m := session.NewMachine(logger)

	var recordErr error
	tr.Attach(ctx, m, func(r *models.CompletionRecord, err error) {
		recordErr = err
	})

	settled := make(chan struct{})
	m.OnEvent(func(ev session.Event) {
		printEvent(out, w, ev, sound, m.Progress())
		if ev.Kind == session.EventWorkoutCompleted || ev.Kind == session.EventWorkoutAborted {
			close(settled)
		}
	})

	if err := m.Start(w); err != nil {
		return fmt.Errorf("start workout: %w", err)
	}

	go readControls(ctx, in, out, m)

	runErr := session.NewRunner(m, ticker, logger).Run(ctx)
	if runErr != nil {
		// Interrupted: end the session without recording it.
		_ = m.Stop()
		<-settled
		if errors.Is(runErr, context.Canceled) {
			return nil
		}
		return runErr
	}
	<-settled

	if m.Snapshot().Status != session.StatusCompleted {
		return nil
	}
	if err := warnTransient(recordErr); err != nil {
		return fmt.Errorf("record completion: %w", err)
	}

	fmt.Fprintln(out)
	printSummary(out, tr.Summary())
	return nil
}

func printEvent(out io.Writer, w *models.Workout, ev session.Event, sound bool, done float64) {
	faint := color.New(color.Faint)
	bell := func() {
		if sound {
			fmt.Fprint(out, "\a")
		}
	}

	switch ev.Kind {
	case session.EventPhaseStarted:
		e := w.Exercises[ev.ExerciseIndex]
		if ev.Phase == session.PhaseWorking {
			bell()
			color.New(color.Bold).Fprintf(out, "\n[%d/%d] %s: %s\n", ev.ExerciseIndex+1, w.Len(), e.Name, e.Target())
			for _, step := range e.Instructions {
				faint.Fprintf(out, "  - %s\n", step)
			}
			fmt.Fprintf(out, "  Go! %ds\n", ev.Remaining)
		} else {
			fmt.Fprintf(out, "  Rest %ds", ev.Remaining)
			if next := ev.ExerciseIndex + 1; next < w.Len() {
				faint.Fprintf(out, ", next: %s", w.Exercises[next].Name)
			}
			fmt.Fprintln(out)
		}
	case session.EventPaused:
		color.New(color.FgYellow).Fprintf(out, "  Paused with %ds left, %.0f%% done (p to resume)\n", ev.Remaining, done*100)
	case session.EventResumed:
		fmt.Fprintln(out, "  Resumed")
	case session.EventSkipped:
		faint.Fprintln(out, "  Skipped")
	case session.EventWorkoutCompleted:
		bell()
		color.New(color.FgGreen).Fprintf(out, "\n✓ Workout complete: %d/%d exercises in %s\n",
			ev.ExercisesCompleted, w.Len(), time.Duration(ev.DurationSeconds)*time.Second)
	case session.EventWorkoutAborted:
		color.New(color.FgYellow).Fprintln(out, "\nWorkout stopped. Nothing was recorded.")
	}
}

// readControls applies p/s/q commands until the session ends or input closes.
func readControls(ctx context.Context, in io.Reader, out io.Writer, m *session.Machine) {
	done := m.Done()
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		default:
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "p":
			m.TogglePause()
		case "s":
			if err := m.Skip(); err != nil {
				return
			}
		case "q":
			wasPaused := m.Snapshot().Paused
			m.Pause()
			fmt.Fprint(out, "Stop workout? Progress will not be saved. [y/N]: ")
			if !scanner.Scan() {
				return
			}
			if answer := strings.ToLower(strings.TrimSpace(scanner.Text())); answer == "y" || answer == "yes" {
				_ = m.Stop()
				return
			}
			if !wasPaused {
				m.Resume()
			}
		}
	}
}

func init() {
	startCmd.Flags().DurationVar(&startTick, "tick", time.Second, "length of one countdown second")
	startCmd.Flags().BoolVar(&startNoSound, "quiet", false, "no bell for this run")
	_ = startCmd.Flags().MarkHidden("tick")
	rootCmd.AddCommand(startCmd)
}
