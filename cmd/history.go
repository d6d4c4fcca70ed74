package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"eyerest/internal/history"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var historyOpts struct {
	since time.Duration
	prune time.Duration
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed rest breaks",
	Long: `List rest breaks recorded by the running timer.

Examples:
  # Breaks taken in the last day
  eyerest history

  # Breaks taken this week
  eyerest history --since 168h

  # Forget breaks older than 30 days
  eyerest history --prune 720h`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().DurationVar(&historyOpts.since, "since", 24*time.Hour,
		"Show breaks started within this duration")
	historyCmd.Flags().DurationVar(&historyOpts.prune, "prune", 0,
		"Delete breaks older than this duration before listing")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyOpts.since <= 0 {
		return fmt.Errorf("--since must be positive")
	}

	store, err := history.Open(globalOpts.historyDB)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	now := time.Now()
	if historyOpts.prune > 0 {
		removed, err := store.Prune(now.Add(-historyOpts.prune))
		if err != nil {
			return err
		}
		logger.Info("pruned rest breaks", "removed", removed)
	}

	since := now.Add(-historyOpts.since)
	breaks, err := store.Since(since)
	if err != nil {
		return err
	}
	summary, err := store.Summarize(since)
	if err != nil {
		return err
	}

	renderHistory(cmd.OutOrStdout(), breaks, summary, now)
	return nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func renderHistory(out io.Writer, breaks []history.RestBreak, summary history.Summary, now time.Time) {
	if len(breaks) == 0 {
		fmt.Fprintln(out, "No rest breaks recorded")
		return
	}

	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%-20s %-16s %8s %8s %8s", "STARTED", "", "REST", "WORK", "DISPLAYS")))
	for _, restBreak := range breaks {
		line := fmt.Sprintf("%-20s %s %8s %8s %8d",
			restBreak.StartedAt.Local().Format("2006-01-02 15:04:05"),
			dimStyle.Render(fmt.Sprintf("%-16s", humanize.RelTime(restBreak.StartedAt, now, "ago", "from now"))),
			formatSeconds(restBreak.RestSeconds),
			fmt.Sprintf("%dm", restBreak.WorkMinutes),
			restBreak.Displays,
		)
		fmt.Fprintln(out, strings.TrimRight(line, " "))
	}

	fmt.Fprintf(out, "\n%s rest breaks, %s rested in total\n",
		humanize.Comma(summary.Breaks),
		formatSeconds(int(summary.TotalSeconds)))
}

func formatSeconds(seconds int) string {
	minutes, secs := seconds/60, seconds%60
	switch {
	case minutes >= 60:
		return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
	case minutes == 0:
		return fmt.Sprintf("%ds", secs)
	case secs == 0:
		return fmt.Sprintf("%dm", minutes)
	default:
		return fmt.Sprintf("%dm%02ds", minutes, secs)
	}
}
