// Package main provides the CLI entrypoint for elotrack.
package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/elotrack/internal/config"
	"github.com/verte-zerg/elotrack/internal/dashui"
	"github.com/verte-zerg/elotrack/internal/history"
	"github.com/verte-zerg/elotrack/internal/model"
	"github.com/verte-zerg/elotrack/internal/summary"
)

const (
	defaultSummaryDays = 7
	defaultTrendDays   = 30
	defaultTrendWindow = 7
)

var (
	recordDate string

	summaryDays int
	summaryDate string
	summaryAll  bool

	historyLimit int

	trendDays   int
	trendWindow int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "elotrack",
		Short:         "Track Pokémon GO GBL Elo progression for each daily set",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(newRecordCmd())
	rootCmd.AddCommand(newSummaryCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newTrendCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newDashCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func newRecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record <rating>",
		Short: "Record the Elo after a set",
		Args:  cobra.ExactArgs(1),
		RunE:  runRecordCmd,
	}
	cmd.Flags().StringVar(&recordDate, "date", "", "day to record the set for (YYYY-MM-DD, defaults to today)")
	return cmd
}

func runRecordCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	date := time.Now()
	if recordDate != "" {
		parsed, err := history.ParseDate(recordDate)
		if err != nil {
			return err
		}
		date = parsed
	}

	st := newStore(fileCfg)
	h, err := st.Load()
	if err != nil {
		return err
	}
	rating, err := history.ParseRating(args[0], h.MaxRating())
	if err != nil {
		return err
	}
	setNumber, err := h.Append(date, rating)
	if err != nil {
		return err
	}
	if err := st.Save(h); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Recorded set #%d for %s with Elo %d.\n", setNumber, history.DateKey(date), rating)
	return err
}

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show a summary for a date or recent days",
		Args:  cobra.NoArgs,
		RunE:  runSummaryCmd,
	}
	cmd.Flags().IntVar(&summaryDays, "days", defaultSummaryDays, "number of recent days to include in the summary")
	cmd.Flags().StringVar(&summaryDate, "date", "", "specific date to summarize (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&summaryAll, "all", false, "include every recorded day")
	return cmd
}

func runSummaryCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "days", &summaryDays, fileCfg.Tracker.SummaryDays)

	st := newStore(fileCfg)
	h, err := st.Load()
	if err != nil {
		return err
	}

	if summaryDate != "" {
		date, err := history.ParseDate(summaryDate)
		if err != nil {
			return err
		}
		s, err := summary.ForDate(h, date)
		if err != nil {
			return err
		}
		day, err := h.Day(date)
		if err != nil {
			return err
		}
		return summary.RenderTable(cmd.OutOrStdout(), []model.DaySummary{s}, []model.Day{day})
	}

	days := summaryDays
	if summaryAll {
		days = 0
	} else if days <= 0 {
		return fmt.Errorf("%w: --days must be greater than 0, got %d", history.ErrInvalidArgument, days)
	}
	summaries, err := summary.Range(h, days)
	if err != nil {
		return err
	}
	return summary.RenderTable(cmd.OutOrStdout(), summaries, selectedDays(h, days))
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded days with their raw ratings",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLimit, "limit", 0, "only display the most recent N days")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	st := newStore(fileCfg)
	h, err := st.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("limit") {
		h, err = h.MostRecent(historyLimit)
		if err != nil {
			return err
		}
	}
	return summary.RenderHistory(cmd.OutOrStdout(), h.SortedDays())
}

func newTrendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Plot the Elo trend over recent days",
		Args:  cobra.NoArgs,
		RunE:  runTrendCmd,
	}
	cmd.Flags().IntVar(&trendDays, "days", defaultTrendDays, "number of recent days to plot")
	cmd.Flags().IntVar(&trendWindow, "window", defaultTrendWindow, "moving average window in days")
	return cmd
}

func runTrendCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "window", &trendWindow, fileCfg.Tracker.TrendWindow)
	if trendDays <= 0 {
		return fmt.Errorf("%w: --days must be greater than 0, got %d", history.ErrInvalidArgument, trendDays)
	}
	if trendWindow <= 0 {
		return fmt.Errorf("%w: --window must be greater than 0, got %d", history.ErrInvalidArgument, trendWindow)
	}

	st := newStore(fileCfg)
	h, err := st.Load()
	if err != nil {
		return err
	}
	summaries, err := summary.Range(h, trendDays)
	if err != nil {
		return err
	}
	return summary.RenderTrend(cmd.OutOrStdout(), summaries, trendWindow)
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete all Elo history",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if _, err := fmt.Fprint(cmd.OutOrStdout(), "This will delete all tracked Elo data. Type 'yes' to confirm: "); err != nil {
		return err
	}
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		_, werr := fmt.Fprintln(cmd.OutOrStdout(), "Reset cancelled.")
		return werr
	}
	if !strings.EqualFold(strings.TrimSpace(line), "yes") {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "Reset cancelled.")
		return err
	}

	st := newStore(fileCfg)
	h, err := st.Load()
	if err != nil {
		return err
	}
	if err := st.Save(h.Clear()); err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), "All Elo data has been cleared.")
	return err
}

func newDashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dash",
		Short: "Open the Elo dashboard",
		Args:  cobra.NoArgs,
		RunE:  runDashCmd,
	}
}

func runDashCmd(_ *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	st := newStore(fileCfg)
	cfg := model.QueryConfig{
		Days:   resolveInt(fileCfg.Tracker.SummaryDays, 0),
		Window: resolveInt(fileCfg.Tracker.TrendWindow, defaultTrendWindow),
	}
	m := dashui.NewModel(st, cfg)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newStore(fileCfg config.FileConfig) *history.Store {
	dataDir := ""
	if fileCfg.Tracker.DataDir != nil {
		dataDir = *fileCfg.Tracker.DataDir
	}
	return history.NewStore(config.HistoryPath(dataDir), resolveInt(fileCfg.Tracker.MaxRating, history.DefaultMaxRating))
}

func selectedDays(h *history.History, days int) []model.Day {
	sorted := h.SortedDays()
	if days > 0 && len(sorted) > days {
		sorted = sorted[len(sorted)-days:]
	}
	return sorted
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func resolveInt(value *int, fallback int) int {
	if value == nil {
		return fallback
	}
	return *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# elotrack configuration
# Uncomment a value to enable it. CLI flags override config values.

[tracker]
# data-dir = ""          # History directory (default ~/.elo_tracker; %s overrides)
# max-rating = %d     # Highest accepted Elo rating
# summary-days = %d       # Recent days shown by 'summary'
# trend-window = %d       # Moving average window for 'trend'
`,
		config.DataDirEnv,
		history.DefaultMaxRating,
		defaultSummaryDays,
		defaultTrendWindow,
	)
}
